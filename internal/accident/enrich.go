package accident

import (
	"strconv"
	"strings"
	"time"

	"github.com/velodata/cycling.report/internal/monitoring"
)

// timePeriodFor buckets an hour of day into the 4-way day phase.
// Intervals are half-open: a boundary hour belongs to the lower bucket.
func timePeriodFor(hour int) TimePeriod {
	switch {
	case hour >= 0 && hour < 6:
		return PeriodNight
	case hour < 12:
		return PeriodMorning
	case hour < 18:
		return PeriodAfternoon
	case hour < 24:
		return PeriodEvening
	}
	return PeriodUnknown
}

func seasonFor(month time.Month) Season {
	switch month {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}

// ageGroupFor buckets a validated age. Boundaries are inclusive on the
// lower edge; the final bucket is open-ended.
func ageGroupFor(age int) AgeGroup {
	switch {
	case age <= 12:
		return "0-12"
	case age <= 17:
		return "13-17"
	case age <= 25:
		return "18-25"
	case age <= 35:
		return "26-35"
	case age <= 50:
		return "36-50"
	case age <= 65:
		return "51-65"
	default:
		return "65+"
	}
}

// parseHour extracts the hour from an "HH:MM" time field. It returns
// nil rather than zero for unparseable values so hourly aggregates are
// not biased toward midnight.
func parseHour(raw string) *int {
	raw = strings.TrimSpace(raw)
	idx := strings.IndexByte(raw, ':')
	if idx <= 0 {
		return nil
	}
	h, err := strconv.Atoi(raw[:idx])
	if err != nil || h < 0 || h > 23 {
		return nil
	}
	return &h
}

// Enrich derives the cleaned-record attributes from the admitted rows:
// date/time decomposition, categorical decoding, department
// normalization, and the boolean/bucket flags. bikeInfra is the set of
// infrastructure codes that count as cycling infrastructure (the
// dataset editions disagree on whether reserved lanes belong, so the
// set is configuration, not a constant here).
//
// A row whose date no longer decomposes is dropped and counted in the
// returned late-rejection count; Enrich never emits a record without a
// valid date.
func Enrich(rows []RawRecord, bikeInfra map[Infrastructure]bool) ([]*CleanedRecord, int) {
	records := make([]*CleanedRecord, 0, len(rows))
	lateRejected := 0

	for i := range rows {
		r := &rows[i]

		date, ok := ParseDate(r.Date)
		if !ok {
			lateRejected++
			continue
		}

		// The validated year field normally agrees with the parsed
		// date. When it does not, the date wins and the mismatch is a
		// data-quality anomaly worth surfacing, not a fatal condition.
		year := date.Year()
		if r.Year != nil && *r.Year != year {
			monitoring.Logf("year field %d disagrees with date %s; using date year",
				*r.Year, date.Format("2006-01-02"))
		}

		hour := parseHour(r.Time)
		period := PeriodUnknown
		if hour != nil {
			period = timePeriodFor(*hour)
		}

		dep, depValid := NormalizeDepartment(r.Department)
		if r.Department != "" && !depValid {
			monitoring.Logf("department %q does not normalize; excluded from geographic aggregation", r.Department)
		}

		severity := SeverityFrom(r.SeverityCode)
		lighting := LightingFrom(r.LightingCode)
		weather := WeatherFrom(r.WeatherCode)
		surface := SurfaceFrom(r.SurfaceCode)
		infra := InfrastructureFrom(r.InfrastructureCode)

		ageGroup := AgeGroupUnknown
		if r.Age != nil {
			ageGroup = ageGroupFor(*r.Age)
		}

		weekday := date.Weekday()

		records = append(records, &CleanedRecord{
			Date:       date,
			Year:       year,
			MonthNum:   int(date.Month()),
			MonthName:  date.Month().String(),
			DayOfWeek:  weekday.String(),
			Hour:       hour,
			TimePeriod: period,
			Season:     seasonFor(date.Month()),

			Department:      dep,
			DepartmentValid: depValid,
			Latitude:        r.Latitude,
			Longitude:       r.Longitude,

			Severity:       severity,
			Lighting:       lighting,
			Weather:        weather,
			Agglomeration:  AgglomerationFrom(r.AgglomerationCode),
			Intersection:   IntersectionFrom(r.IntersectionCode),
			RoadCategory:   RoadCategoryFrom(r.RoadCategoryCode),
			Surface:        surface,
			Infrastructure: infra,
			Situation:      SituationFrom(r.SituationCode),
			Gender:         GenderFrom(r.GenderCode),
			TripPurpose:    TripPurposeFrom(r.TripPurposeCode),
			Collision:      CollisionFrom(r.CollisionCode),

			Age:      r.Age,
			AgeGroup: ageGroup,

			IsFatal:               severity.Fatal(),
			IsSevere:              severity.Severe(),
			IsWeekend:             weekday == time.Saturday || weekday == time.Sunday,
			DangerousConditions:   lighting.Night() || weather.Adverse() || surface.Slippery(),
			HasBikeInfrastructure: bikeInfra[infra],
		})
	}

	return records, lateRejected
}
