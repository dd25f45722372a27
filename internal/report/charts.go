// Package report renders dashboard chart pages from the pre-built
// aggregate tables using go-echarts. It never touches raw records.
package report

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/velodata/cycling.report/internal/accident"
	"github.com/velodata/cycling.report/internal/analytics"
	"github.com/velodata/cycling.report/internal/dataset"
)

// severityColors keeps chart series visually consistent across pages.
var severityColors = map[string]string{
	"Unharmed":     "#2ecc71",
	"Minor injury": "#f1c40f",
	"Hospitalized": "#e67e22",
	"Killed":       "#c0392b",
}

// Handler serves the chart pages for one dataset snapshot.
type Handler struct {
	snap *dataset.Snapshot
}

func NewHandler(snap *dataset.Snapshot) *Handler {
	return &Handler{snap: snap}
}

func (h *Handler) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/years", h.handleYears)
	mux.HandleFunc("/hours", h.handleHours)
	mux.HandleFunc("/lighting", h.handleLighting)
	mux.HandleFunc("/infrastructure", h.handleInfrastructure)
	mux.HandleFunc("/ages", h.handleAges)
	mux.HandleFunc("/", h.handleDashboard)
	return mux
}

func renderChart(w http.ResponseWriter, c interface{ Render(w io.Writer) error }) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		http.Error(w, fmt.Sprintf("failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// severitySeries pivots (category, severity, count) rows into per-
// severity bar series over the given category order. Absent
// combinations plot as zero; the aggregate tables omit them by
// contract.
func severitySeries(categories []string, counts map[string]map[string]int) map[string][]opts.BarData {
	series := make(map[string][]opts.BarData)
	for _, severity := range accident.SeverityLabels() {
		data := make([]opts.BarData, len(categories))
		present := false
		for i, cat := range categories {
			n := counts[cat][severity]
			if n > 0 {
				present = true
			}
			data[i] = opts.BarData{Value: n}
		}
		if present {
			series[severity] = data
		}
	}
	return series
}

func newStackedBar(title, subtitle string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title, Width: "1100px", Height: "550px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)
	return bar
}

func addSeverityBars(bar *charts.Bar, series map[string][]opts.BarData) {
	for _, severity := range accident.SeverityLabels() {
		data, ok := series[severity]
		if !ok {
			continue
		}
		bar.AddSeries(severity, data,
			charts.WithBarChartOpts(opts.BarChart{Stack: "severity"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: severityColors[severity]}),
		)
	}
}

func (h *Handler) handleYears(w http.ResponseWriter, r *http.Request) {
	table := h.snap.Aggregates().ByYear

	counts := make(map[string]map[string]int)
	var years []int
	seen := make(map[int]bool)
	for _, row := range table {
		if !seen[row.Year] {
			seen[row.Year] = true
			years = append(years, row.Year)
		}
		key := strconv.Itoa(row.Year)
		if counts[key] == nil {
			counts[key] = make(map[string]int)
		}
		counts[key][row.Severity] += row.Count
	}
	sort.Ints(years)
	categories := make([]string, len(years))
	for i, y := range years {
		categories[i] = strconv.Itoa(y)
	}

	bar := newStackedBar("Victims by Year and Severity", "Cycling accident victims in France")
	bar.SetXAxis(categories)
	addSeverityBars(bar, severitySeries(categories, counts))
	renderChart(w, bar)
}

func (h *Handler) handleHours(w http.ResponseWriter, r *http.Request) {
	table := h.snap.Aggregates().ByHour

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Victims by Hour", Width: "1100px", Height: "550px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Victims by Hour of Day and Severity",
			Subtitle: "Records without a parseable time are excluded from this view",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)

	categories := make([]string, 24)
	for hh := 0; hh < 24; hh++ {
		categories[hh] = fmt.Sprintf("%02dh", hh)
	}
	line.SetXAxis(categories)

	byHour := make(map[string][]int)
	for _, row := range table {
		if row.Hour == analytics.UnknownHour {
			continue
		}
		if byHour[row.Severity] == nil {
			byHour[row.Severity] = make([]int, 24)
		}
		byHour[row.Severity][row.Hour] += row.Count
	}
	for _, severity := range accident.SeverityLabels() {
		values, ok := byHour[severity]
		if !ok {
			continue
		}
		data := make([]opts.LineData, 24)
		for hh, n := range values {
			data[hh] = opts.LineData{Value: n}
		}
		line.AddSeries(severity, data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: severityColors[severity]}),
		)
	}
	renderChart(w, line)
}

func (h *Handler) labelSeverityBar(w http.ResponseWriter, table []analytics.LabelSeverityCount, title, subtitle string) {
	counts := make(map[string]map[string]int)
	var categories []string
	seen := make(map[string]bool)
	for _, row := range table {
		if !seen[row.Label] {
			seen[row.Label] = true
			categories = append(categories, row.Label)
		}
		if counts[row.Label] == nil {
			counts[row.Label] = make(map[string]int)
		}
		counts[row.Label][row.Severity] += row.Count
	}
	sort.Strings(categories)

	bar := newStackedBar(title, subtitle)
	bar.SetXAxis(categories)
	addSeverityBars(bar, severitySeries(categories, counts))
	renderChart(w, bar)
}

func (h *Handler) handleLighting(w http.ResponseWriter, r *http.Request) {
	h.labelSeverityBar(w, h.snap.Aggregates().ByLighting,
		"Victims by Lighting Condition", "Severity split per lighting condition")
}

func (h *Handler) handleInfrastructure(w http.ResponseWriter, r *http.Request) {
	h.labelSeverityBar(w, h.snap.Aggregates().ByInfrastructure,
		"Victims by Cycling Infrastructure", "Severity split per infrastructure class")
}

func (h *Handler) handleAges(w http.ResponseWriter, r *http.Request) {
	h.labelSeverityBar(w, h.snap.Aggregates().ByAgeGroup,
		"Victims by Age Group", "Severity split per age group")
}

const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Cycling Safety in France</title>
<style>
body { font-family: sans-serif; margin: 0; background: #fafafa; }
h1 { margin: 16px 24px; color: #2c3e50; }
iframe { display: block; width: 1140px; height: 590px; border: none; margin: 8px 24px; background: #fff; }
</style>
</head>
<body>
<h1>Cycling Safety in France</h1>
<iframe src="years"></iframe>
<iframe src="hours"></iframe>
<iframe src="lighting"></iframe>
<iframe src="infrastructure"></iframe>
<iframe src="ages"></iframe>
</body>
</html>
`

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(dashboardHTML))
}
