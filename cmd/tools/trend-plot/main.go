// trend-plot renders a PNG of victim counts per year with the fitted
// linear trend line overlaid. One-shot tool for reports and slides.
package main

import (
	"flag"
	"image/color"
	"log"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/velodata/cycling.report/internal/analytics"
	"github.com/velodata/cycling.report/internal/config"
	"github.com/velodata/cycling.report/internal/dataset"
	"github.com/velodata/cycling.report/internal/security"
)

var (
	dataPath   = flag.String("data", "data/accidentsVelofull.csv", "Path to the accident CSV file")
	configPath = flag.String("config", "", "Path to a JSON config file (optional)")
	outPath    = flag.String("out", "trend.png", "Output PNG path")
)

func main() {
	flag.Parse()

	if err := security.ValidateExportPath(*outPath); err != nil {
		log.Fatalf("invalid output path: %v", err)
	}

	cfg := &config.Config{}
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	store := dataset.NewStore(cfg.PipelineOptions())
	snap, err := store.LoadFile(*dataPath)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}

	totals := make(map[int]int)
	for _, row := range snap.Aggregates().ByYear {
		totals[row.Year] += row.Count
	}
	years := make([]int, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Ints(years)
	if len(years) == 0 {
		log.Fatal("no cleaned records to plot")
	}

	pts := make(plotter.XYs, 0, len(years))
	for _, y := range years {
		pts = append(pts, plotter.XY{X: float64(y), Y: float64(totals[y])})
	}

	p := plot.New()
	p.Title.Text = "Cycling accident victims per year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Victims"

	line, err := plotter.NewLine(pts)
	if err != nil {
		log.Fatalf("failed to build series: %v", err)
	}
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("victims", line)

	trend := snap.Trend(analytics.FilterSpec{})
	if trend.Slope == trend.Slope { // defined only with two or more years
		fit := plotter.XYs{
			{X: float64(years[0]), Y: trend.Intercept + trend.Slope*float64(years[0])},
			{X: float64(years[len(years)-1]), Y: trend.Intercept + trend.Slope*float64(years[len(years)-1])},
		}
		fitLine, err := plotter.NewLine(fit)
		if err != nil {
			log.Fatalf("failed to build trend series: %v", err)
		}
		fitLine.Width = vg.Points(1)
		fitLine.Color = color.RGBA{R: 192, G: 57, B: 43, A: 255}
		fitLine.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(fitLine)
		p.Legend.Add("linear trend", fitLine)
	}

	if err := p.Save(10*vg.Inch, 5*vg.Inch, *outPath); err != nil {
		log.Fatalf("failed to save plot: %v", err)
	}
	log.Printf("wrote %s (%d years)", *outPath, len(years))
}
