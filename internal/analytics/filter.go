package analytics

import (
	"fmt"

	"github.com/velodata/cycling.report/internal/accident"
)

// Agglomeration filter vocabulary.
const (
	AgglomerationAll   = "all"
	AgglomerationUrban = "urban"
	AgglomerationRural = "rural"
)

// FilterSpec is one user-chosen filter combination. The zero value is
// the identity filter (everything passes).
//
// Departments and Severities distinguish "all" from "none": a nil
// slice means no restriction, while a non-nil empty slice is an
// explicit empty selection that matches nothing. Year bounds of zero
// are unbounded.
type FilterSpec struct {
	YearMin       int                 `json:"year_min"`
	YearMax       int                 `json:"year_max"`
	Departments   []string            `json:"departments"`
	Severities    []accident.Severity `json:"severities"`
	Agglomeration string              `json:"agglomeration"`
}

// Validate checks the agglomeration choice and the year bounds.
func (s FilterSpec) Validate() error {
	switch s.Agglomeration {
	case "", AgglomerationAll, AgglomerationUrban, AgglomerationRural:
	default:
		return fmt.Errorf("invalid agglomeration %q (want all, urban, or rural)", s.Agglomeration)
	}
	if s.YearMin != 0 && s.YearMax != 0 && s.YearMin > s.YearMax {
		return fmt.Errorf("year range [%d, %d] is inverted", s.YearMin, s.YearMax)
	}
	return nil
}

// matches evaluates the conjunction of the four predicates. Each
// predicate is independent and side-effect free, so evaluation order
// never changes the result.
func (s FilterSpec) matches(r *accident.CleanedRecord, departments map[string]bool, severities map[accident.Severity]bool) bool {
	if s.YearMin != 0 && r.Year < s.YearMin {
		return false
	}
	if s.YearMax != 0 && r.Year > s.YearMax {
		return false
	}
	if departments != nil && !departments[r.Department] {
		return false
	}
	if severities != nil && !severities[r.Severity] {
		return false
	}
	if s.Agglomeration != "" && s.Agglomeration != AgglomerationAll &&
		r.Agglomeration.Class() != s.Agglomeration {
		return false
	}
	return true
}

// Apply returns the records matching the spec. The result is a fresh
// slice over the same immutable records; the input set is never
// mutated. An explicit empty selection set yields zero records, which
// is a valid outcome, not an error.
func Apply(records []*accident.CleanedRecord, spec FilterSpec) []*accident.CleanedRecord {
	var departments map[string]bool
	if spec.Departments != nil {
		departments = make(map[string]bool, len(spec.Departments))
		for _, d := range spec.Departments {
			departments[d] = true
		}
	}
	var severities map[accident.Severity]bool
	if spec.Severities != nil {
		severities = make(map[accident.Severity]bool, len(spec.Severities))
		for _, s := range spec.Severities {
			severities[s] = true
		}
	}

	matched := make([]*accident.CleanedRecord, 0, len(records))
	for _, r := range records {
		if spec.matches(r, departments, severities) {
			matched = append(matched, r)
		}
	}
	return matched
}
