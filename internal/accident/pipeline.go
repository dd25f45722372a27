package accident

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Options are the dataset-edition-dependent pipeline parameters. The
// valid year range and the bike-infrastructure definition vary between
// revisions of the source dataset, so both are configuration rather
// than constants.
type Options struct {
	YearMin int
	YearMax int
	// BikeInfrastructure lists the infrastructure codes counted by the
	// has_bike_infrastructure flag. The default is the narrow reading:
	// physically separated and painted lanes only.
	BikeInfrastructure []int
	// DropColumns are source-only technical columns pruned from the
	// output table.
	DropColumns []string
}

// DefaultOptions returns the parameters for the 2005-2023 dataset
// edition.
func DefaultOptions() Options {
	return Options{
		YearMin:            2005,
		YearMax:            2023,
		BikeInfrastructure: []int{int(InfrastructureSeparated), int(InfrastructurePainted)},
		DropColumns: []string{
			"Num_Acc", "vehiculeid", "lartpc", "larrout", "nbv",
			"_infos_commune.code_epci",
		},
	}
}

func (o Options) validate() error {
	if o.YearMin > o.YearMax {
		return fmt.Errorf("year range [%d, %d] is inverted", o.YearMin, o.YearMax)
	}
	return nil
}

func (o Options) bikeInfraSet() map[Infrastructure]bool {
	set := make(map[Infrastructure]bool, len(o.BikeInfrastructure))
	for _, code := range o.BikeInfrastructure {
		set[Infrastructure(code)] = true
	}
	return set
}

// ColumnMissing is one row of the per-column missing-value table.
type ColumnMissing struct {
	Column  string  `json:"column"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// CleaningReport summarizes one pipeline run: row and column counts
// before and after, the per-rule rejection breakdown, and the
// missing-value profile of the cleaned table. It is derived
// deterministically from the input (the run ID aside) and recomputed
// on each load.
type CleaningReport struct {
	RunID           string          `json:"run_id"`
	OriginalRows    int             `json:"original_rows"`
	OriginalColumns int             `json:"original_columns"`
	CleanedRows     int             `json:"cleaned_rows"`
	CleanedColumns  int             `json:"cleaned_columns"`
	RowsRemoved     int             `json:"rows_removed"`
	ColumnsDropped  []string        `json:"columns_dropped"`
	Rejections      RejectionStats  `json:"rejections"`
	MissingValues   []ColumnMissing `json:"missing_values"`
}

// cleanedColumns enumerates the output table schema. The missing-value
// report and the column counts are computed against this list.
var cleanedColumns = []string{
	"date", "year", "month_num", "month_name", "day_of_week", "hour",
	"time_period", "season", "department", "lat", "long", "severity",
	"lighting", "weather", "agglomeration", "intersection_type",
	"road_category", "surface_condition", "infrastructure", "situation",
	"gender", "trip_purpose", "collision_type", "age", "age_group",
	"is_fatal", "is_severe", "is_weekend", "dangerous_conditions",
	"has_bike_infrastructure",
}

// columnMissing reports whether the named column is missing on r. A
// decoded categorical counts as missing when it carries the
// unspecified sentinel; derived booleans and date components are never
// missing by construction.
func columnMissing(r *CleanedRecord, column string) bool {
	switch column {
	case "hour":
		return r.Hour == nil
	case "time_period":
		return r.TimePeriod == PeriodUnknown
	case "department":
		return !r.DepartmentValid
	case "lat":
		return r.Latitude == nil
	case "long":
		return r.Longitude == nil
	case "age":
		return r.Age == nil
	case "age_group":
		return r.AgeGroup == AgeGroupUnknown
	case "severity":
		return r.Severity == SeverityUnspecified
	case "lighting":
		return r.Lighting == LightingUnspecified
	case "weather":
		return r.Weather == WeatherUnspecified
	case "agglomeration":
		return r.Agglomeration == AgglomerationUnspecified
	case "intersection_type":
		return r.Intersection == IntersectionUnspecified
	case "road_category":
		return r.RoadCategory == RoadCategoryUnspecified
	case "surface_condition":
		return r.Surface == SurfaceUnspecified
	case "infrastructure":
		return r.Infrastructure == InfrastructureUnspecified
	case "situation":
		return r.Situation == SituationNotSpecified
	case "gender":
		return r.Gender == GenderUnspecified
	case "trip_purpose":
		return r.TripPurpose == TripPurposeUnspecified
	case "collision_type":
		return r.Collision == CollisionUnspecified
	}
	return false
}

// missingValueReport computes the per-column missing percentages over
// the cleaned set, listing only columns with at least one miss, sorted
// by percentage descending then by name for determinism.
func missingValueReport(records []*CleanedRecord) []ColumnMissing {
	if len(records) == 0 {
		return nil
	}
	var report []ColumnMissing
	for _, col := range cleanedColumns {
		count := 0
		for _, r := range records {
			if columnMissing(r, col) {
				count++
			}
		}
		if count > 0 {
			report = append(report, ColumnMissing{
				Column:  col,
				Count:   count,
				Percent: float64(count) / float64(len(records)) * 100,
			})
		}
	}
	sort.Slice(report, func(i, j int) bool {
		if report[i].Count != report[j].Count {
			return report[i].Count > report[j].Count
		}
		return report[i].Column < report[j].Column
	})
	return report
}

// Clean runs the full pipeline over a raw table: admission rules, then
// enrichment, then the static column prune, producing the canonical
// cleaned table and its report. columns is the source file header, used
// for the column accounting in the report.
//
// Clean is deterministic: two runs over the same input produce
// identical record sets. Malformed rows are excluded and counted,
// never escalated; only invalid Options are an error.
func Clean(rows []RawRecord, columns []string, opts Options) ([]*CleanedRecord, *CleaningReport, error) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}

	admitted, rejections := Admit(rows, opts.YearMin, opts.YearMax)
	records, lateRejected := Enrich(admitted, opts.bikeInfraSet())
	if lateRejected > 0 {
		// Dates that decomposed during validation but not during
		// enrichment fold into the date rule so the report still
		// reconciles with the raw row count.
		rejections.Total += lateRejected
		rejections.ByReason[ReasonInvalidDate] += lateRejected
	}

	dropped := prunedColumns(columns, opts.DropColumns)

	report := &CleaningReport{
		RunID:           uuid.NewString(),
		OriginalRows:    len(rows),
		OriginalColumns: len(columns),
		CleanedRows:     len(records),
		CleanedColumns:  len(cleanedColumns),
		RowsRemoved:     len(rows) - len(records),
		ColumnsDropped:  dropped,
		Rejections:      rejections,
		MissingValues:   missingValueReport(records),
	}
	return records, report, nil
}

// prunedColumns returns the configured drop-list entries that actually
// appear in the source header, preserving header order.
func prunedColumns(columns, dropList []string) []string {
	drop := make(map[string]bool, len(dropList))
	for _, c := range dropList {
		drop[c] = true
	}
	var pruned []string
	for _, c := range columns {
		if drop[c] {
			pruned = append(pruned, c)
		}
	}
	return pruned
}
