package analytics

import (
	"encoding/json"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/velodata/cycling.report/internal/accident"
)

// Rate is a percentage or mean that may be undefined. An undefined
// value (zero-count denominator) is NaN in memory and null on the
// wire, never a division fault and never a fake zero.
type Rate float64

func (r Rate) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(r)) || math.IsInf(float64(r), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(r))
}

// Defined reports whether the rate has a meaningful value.
func (r Rate) Defined() bool {
	return !math.IsNaN(float64(r)) && !math.IsInf(float64(r), 0)
}

// Summary holds the headline figures for a (possibly filtered) record
// set. Rates are percentages of the set size.
type Summary struct {
	TotalVictims int    `json:"total_victims"`
	FatalCount   int    `json:"fatal_count"`
	SevereCount  int    `json:"severe_count"`
	FatalRate    Rate   `json:"fatal_rate"`
	SevereRate   Rate   `json:"severe_rate"`
	AverageAge   Rate   `json:"average_age"`
	PeakPeriod   string `json:"peak_period"`
}

// Summarize computes the summary over a record set. An empty set is a
// valid input: counts are zero, rates undefined, peak period empty.
func Summarize(records []*accident.CleanedRecord) Summary {
	s := Summary{TotalVictims: len(records)}

	var ages []float64
	periods := make(map[accident.TimePeriod]int)
	for _, r := range records {
		if r.IsFatal {
			s.FatalCount++
		}
		if r.IsSevere {
			s.SevereCount++
		}
		if r.Age != nil {
			ages = append(ages, float64(*r.Age))
		}
		if r.TimePeriod != accident.PeriodUnknown {
			periods[r.TimePeriod]++
		}
	}

	if s.TotalVictims > 0 {
		s.FatalRate = Rate(float64(s.FatalCount) / float64(s.TotalVictims) * 100)
		s.SevereRate = Rate(float64(s.SevereCount) / float64(s.TotalVictims) * 100)
	} else {
		s.FatalRate = Rate(math.NaN())
		s.SevereRate = Rate(math.NaN())
	}

	if len(ages) > 0 {
		s.AverageAge = Rate(stat.Mean(ages, nil))
	} else {
		s.AverageAge = Rate(math.NaN())
	}

	s.PeakPeriod = string(peakPeriod(periods))
	return s
}

// peakPeriod returns the most common period, breaking ties by label so
// the result is deterministic.
func peakPeriod(counts map[accident.TimePeriod]int) accident.TimePeriod {
	keys := make([]accident.TimePeriod, 0, len(counts))
	for p := range counts {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	best := accident.PeriodUnknown
	bestCount := 0
	for _, p := range keys {
		if counts[p] > bestCount {
			best = p
			bestCount = counts[p]
		}
	}
	return best
}

// Trend is the least-squares line fitted to victim counts per year.
type Trend struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
}

// YearlyTrend fits a linear trend to the total victims per year. Fewer
// than two distinct years yield a NaN trend.
func YearlyTrend(records []*accident.CleanedRecord) Trend {
	totals := make(map[int]int)
	for _, r := range records {
		totals[r.Year]++
	}
	if len(totals) < 2 {
		return Trend{Slope: math.NaN(), Intercept: math.NaN(), RSquared: math.NaN()}
	}

	years := make([]int, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Ints(years)

	xs := make([]float64, len(years))
	ys := make([]float64, len(years))
	for i, y := range years {
		xs[i] = float64(y)
		ys[i] = float64(totals[y])
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	return Trend{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  stat.RSquared(xs, ys, nil, intercept, slope),
	}
}
