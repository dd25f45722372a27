// Package analytics builds the pre-computed group-by tables, the
// filter engine, and the descriptive statistics that the reporting
// surfaces consume. Everything here reads the cleaned table and never
// mutates it.
package analytics

import (
	"errors"
	"sort"

	"github.com/velodata/cycling.report/internal/accident"
)

// ErrUnknownAggregate is returned by Aggregates.ByName for a name that
// is not one of the built tables.
var ErrUnknownAggregate = errors.New("unknown aggregate")

// UnknownKey is the group key for records whose value for the grouping
// dimension is absent (invalid department, unparseable hour, missing
// age). Keeping an explicit bucket preserves the contract that each
// table's counts sum to the size of the cleaned set it was built from.
const UnknownKey = "Unknown"

// UnknownHour is the hour-table key for records without a parseable
// time field.
const UnknownHour = -1

// YearSeverityCount is one row of the year x severity table.
type YearSeverityCount struct {
	Year     int    `json:"year"`
	Severity string `json:"severity"`
	Count    int    `json:"count"`
}

// DepartmentCount is one row of the department table. Latitude and
// Longitude are the first observed coordinates for the department and
// are nil for the unknown-department bucket.
type DepartmentCount struct {
	Department string   `json:"department"`
	Total      int      `json:"total_accidents"`
	Fatal      int      `json:"fatal"`
	Severe     int      `json:"severe"`
	Latitude   *float64 `json:"lat"`
	Longitude  *float64 `json:"long"`
}

// LabelSeverityCount is one row of a label x severity table (lighting,
// infrastructure, age group).
type LabelSeverityCount struct {
	Label    string `json:"label"`
	Severity string `json:"severity"`
	Count    int    `json:"count"`
}

// HourSeverityCount is one row of the hour x severity table. Hour is
// UnknownHour for records without a parseable time.
type HourSeverityCount struct {
	Hour     int    `json:"hour"`
	Severity string `json:"severity"`
	Count    int    `json:"count"`
}

// MonthPurposeCount is one row of the month x trip-purpose table.
type MonthPurposeCount struct {
	MonthNum    int    `json:"month_num"`
	MonthName   string `json:"month_name"`
	TripPurpose string `json:"trip_purpose"`
	Count       int    `json:"count"`
}

// Aggregates holds the fixed set of pre-computed tables built once per
// load. Categories with zero observations are simply absent; consumers
// must not assume every category is present.
type Aggregates struct {
	ByYear           []YearSeverityCount  `json:"by_year"`
	ByDepartment     []DepartmentCount    `json:"by_department"`
	ByLighting       []LabelSeverityCount `json:"by_lighting"`
	ByInfrastructure []LabelSeverityCount `json:"by_infrastructure"`
	ByHour           []HourSeverityCount  `json:"by_hour"`
	ByMonthPurpose   []MonthPurposeCount  `json:"by_month_purpose"`
	ByAgeGroup       []LabelSeverityCount `json:"by_age"`
}

// AggregateNames lists the tables ByName accepts.
var AggregateNames = []string{
	"by_year", "by_department", "by_lighting", "by_infrastructure",
	"by_hour", "by_month_purpose", "by_age",
}

// ByName returns one of the built tables by its registered name.
func (a *Aggregates) ByName(name string) (interface{}, error) {
	switch name {
	case "by_year":
		return a.ByYear, nil
	case "by_department":
		return a.ByDepartment, nil
	case "by_lighting":
		return a.ByLighting, nil
	case "by_infrastructure":
		return a.ByInfrastructure, nil
	case "by_hour":
		return a.ByHour, nil
	case "by_month_purpose":
		return a.ByMonthPurpose, nil
	case "by_age":
		return a.ByAgeGroup, nil
	}
	return nil, ErrUnknownAggregate
}

// Build computes all aggregate tables from the cleaned records. Each
// table is an independent grouping pass; construction order does not
// matter, and output ordering is deterministic.
func Build(records []*accident.CleanedRecord) *Aggregates {
	return &Aggregates{
		ByYear:           buildYearSeverity(records),
		ByDepartment:     buildDepartments(records),
		ByLighting:       buildLabelSeverity(records, func(r *accident.CleanedRecord) string { return r.Lighting.Label() }),
		ByInfrastructure: buildLabelSeverity(records, func(r *accident.CleanedRecord) string { return r.Infrastructure.Label() }),
		ByHour:           buildHourSeverity(records),
		ByMonthPurpose:   buildMonthPurpose(records),
		ByAgeGroup:       buildLabelSeverity(records, ageGroupKey),
	}
}

func ageGroupKey(r *accident.CleanedRecord) string {
	if r.AgeGroup == accident.AgeGroupUnknown {
		return UnknownKey
	}
	return string(r.AgeGroup)
}

func buildYearSeverity(records []*accident.CleanedRecord) []YearSeverityCount {
	type key struct {
		year     int
		severity string
	}
	counts := make(map[key]int)
	for _, r := range records {
		counts[key{r.Year, r.Severity.Label()}]++
	}
	out := make([]YearSeverityCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, YearSeverityCount{Year: k.year, Severity: k.severity, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Severity < out[j].Severity
	})
	return out
}

func buildDepartments(records []*accident.CleanedRecord) []DepartmentCount {
	byDep := make(map[string]*DepartmentCount)
	for _, r := range records {
		dep := r.Department
		if !r.DepartmentValid {
			dep = UnknownKey
		}
		entry, ok := byDep[dep]
		if !ok {
			entry = &DepartmentCount{Department: dep}
			byDep[dep] = entry
		}
		entry.Total++
		if r.IsFatal {
			entry.Fatal++
		}
		if r.IsSevere {
			entry.Severe++
		}
		// First observed coordinates stand in for the department
		// centroid, matching the source dashboard's map behaviour.
		if dep != UnknownKey && entry.Latitude == nil && r.Latitude != nil && r.Longitude != nil {
			entry.Latitude = r.Latitude
			entry.Longitude = r.Longitude
		}
	}
	out := make([]DepartmentCount, 0, len(byDep))
	for _, entry := range byDep {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

func buildLabelSeverity(records []*accident.CleanedRecord, label func(*accident.CleanedRecord) string) []LabelSeverityCount {
	type key struct {
		label    string
		severity string
	}
	counts := make(map[key]int)
	for _, r := range records {
		counts[key{label(r), r.Severity.Label()}]++
	}
	out := make([]LabelSeverityCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, LabelSeverityCount{Label: k.label, Severity: k.severity, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Label != out[j].Label {
			return out[i].Label < out[j].Label
		}
		return out[i].Severity < out[j].Severity
	})
	return out
}

func buildHourSeverity(records []*accident.CleanedRecord) []HourSeverityCount {
	type key struct {
		hour     int
		severity string
	}
	counts := make(map[key]int)
	for _, r := range records {
		hour := UnknownHour
		if r.Hour != nil {
			hour = *r.Hour
		}
		counts[key{hour, r.Severity.Label()}]++
	}
	out := make([]HourSeverityCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, HourSeverityCount{Hour: k.hour, Severity: k.severity, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hour != out[j].Hour {
			return out[i].Hour < out[j].Hour
		}
		return out[i].Severity < out[j].Severity
	})
	return out
}

func buildMonthPurpose(records []*accident.CleanedRecord) []MonthPurposeCount {
	type key struct {
		month   int
		purpose string
	}
	counts := make(map[key]int)
	names := make(map[int]string)
	for _, r := range records {
		counts[key{r.MonthNum, r.TripPurpose.Label()}]++
		names[r.MonthNum] = r.MonthName
	}
	out := make([]MonthPurposeCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, MonthPurposeCount{
			MonthNum:    k.month,
			MonthName:   names[k.month],
			TripPurpose: k.purpose,
			Count:       c,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MonthNum != out[j].MonthNum {
			return out[i].MonthNum < out[j].MonthNum
		}
		return out[i].TripPurpose < out[j].TripPurpose
	})
	return out
}
