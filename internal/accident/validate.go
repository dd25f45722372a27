package accident

import "time"

// RejectReason identifies the first admission rule a row failed.
type RejectReason string

const (
	ReasonMissingYear     RejectReason = "missing_year"
	ReasonMissingSeverity RejectReason = "missing_severity"
	ReasonYearOutOfRange  RejectReason = "year_out_of_range"
	ReasonInvalidDate     RejectReason = "invalid_date"
	ReasonInvalidAge      RejectReason = "invalid_age"
)

// RejectReasons lists the admission rules in evaluation order.
var RejectReasons = []RejectReason{
	ReasonMissingYear,
	ReasonMissingSeverity,
	ReasonYearOutOfRange,
	ReasonInvalidDate,
	ReasonInvalidAge,
}

// RejectionStats counts rows excluded by the admission rules, broken
// down by the first rule each row failed.
type RejectionStats struct {
	Total    int                  `json:"total"`
	ByReason map[RejectReason]int `json:"by_reason"`
}

func newRejectionStats() RejectionStats {
	return RejectionStats{ByReason: make(map[RejectReason]int)}
}

func (s *RejectionStats) reject(reason RejectReason) {
	s.Total++
	s.ByReason[reason]++
}

// dateLayouts are the accepted day-level date formats, tried in order.
var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// ParseDate parses a day-level date field. It accepts ISO dates and the
// French day-first form found in older dataset editions.
func ParseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

const (
	minValidAge = 0
	maxValidAge = 120
)

// admissible applies the five admission rules in order and returns the
// first failed rule. First failure wins; later rules are not evaluated
// for a rejected row.
func admissible(r *RawRecord, yearMin, yearMax int) (RejectReason, bool) {
	if r.Year == nil {
		return ReasonMissingYear, false
	}
	if r.SeverityCode == nil {
		return ReasonMissingSeverity, false
	}
	if *r.Year < yearMin || *r.Year > yearMax {
		return ReasonYearOutOfRange, false
	}
	if _, ok := ParseDate(r.Date); !ok {
		return ReasonInvalidDate, false
	}
	if r.Age != nil && (*r.Age < minValidAge || *r.Age > maxValidAge) {
		return ReasonInvalidAge, false
	}
	return "", true
}

// Admit applies the row admission rules to the raw table and returns
// the admitted subset plus rejection statistics. Admitted rows keep all
// of their original fields; column pruning happens later in the
// pipeline. Admit never fails on malformed rows — it excludes them.
func Admit(rows []RawRecord, yearMin, yearMax int) ([]RawRecord, RejectionStats) {
	stats := newRejectionStats()
	admitted := make([]RawRecord, 0, len(rows))
	for i := range rows {
		if reason, ok := admissible(&rows[i], yearMin, yearMax); !ok {
			stats.reject(reason)
		} else {
			admitted = append(admitted, rows[i])
		}
	}
	return admitted, stats
}
