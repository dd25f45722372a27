package accident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultBikeInfra() map[Infrastructure]bool {
	return map[Infrastructure]bool{
		InfrastructureSeparated: true,
		InfrastructurePainted:   true,
	}
}

func enrichOne(t *testing.T, row RawRecord) *CleanedRecord {
	t.Helper()
	records, late := Enrich([]RawRecord{row}, defaultBikeInfra())
	require.Len(t, records, 1)
	require.Zero(t, late)
	return records[0]
}

func TestEnrichScenario(t *testing.T) {
	t.Parallel()

	row := RawRecord{
		Year:         intPtr(2023),
		Date:         "2023-06-15",
		Time:         "08:05",
		SeverityCode: intPtr(2),
		Age:          intPtr(34),
		Department:   "7",
	}
	r := enrichOne(t, row)

	assert.True(t, r.IsFatal)
	assert.True(t, r.IsSevere)
	assert.Equal(t, "Killed", r.Severity.Label())
	assert.Equal(t, SeasonSummer, r.Season)
	assert.Equal(t, PeriodMorning, r.TimePeriod)
	assert.Equal(t, "07", r.Department)
	assert.True(t, r.DepartmentValid)
	require.NotNil(t, r.Hour)
	assert.Equal(t, 8, *r.Hour)
	assert.Equal(t, 2023, r.Year)
	assert.Equal(t, 6, r.MonthNum)
	assert.Equal(t, "June", r.MonthName)
	assert.Equal(t, "Thursday", r.DayOfWeek)
	assert.False(t, r.IsWeekend)
	assert.Equal(t, AgeGroup("26-35"), r.AgeGroup)
}

func TestTimePeriodBoundaries(t *testing.T) {
	t.Parallel()

	// Half-open buckets: a boundary hour belongs to the lower bucket.
	cases := map[int]TimePeriod{
		0: PeriodNight, 5: PeriodNight,
		6: PeriodMorning, 11: PeriodMorning,
		12: PeriodAfternoon, 17: PeriodAfternoon,
		18: PeriodEvening, 23: PeriodEvening,
	}
	for hour, want := range cases {
		assert.Equal(t, want, timePeriodFor(hour), "hour %d", hour)
	}
}

func TestSeasonMap(t *testing.T) {
	t.Parallel()

	row := validRow()
	cases := map[string]Season{
		"2023-01-10": SeasonWinter,
		"2023-12-25": SeasonWinter,
		"2023-03-01": SeasonSpring,
		"2023-05-31": SeasonSpring,
		"2023-06-01": SeasonSummer,
		"2023-08-31": SeasonSummer,
		"2023-09-01": SeasonAutumn,
		"2023-11-30": SeasonAutumn,
	}
	for date, want := range cases {
		row.Date = date
		r := enrichOne(t, row)
		assert.Equal(t, want, r.Season, "date %s", date)
	}
}

func TestWeekendFlag(t *testing.T) {
	t.Parallel()

	row := validRow()
	row.Date = "2023-06-17" // Saturday
	assert.True(t, enrichOne(t, row).IsWeekend)

	row.Date = "2023-06-18" // Sunday
	assert.True(t, enrichOne(t, row).IsWeekend)

	row.Date = "2023-06-19" // Monday
	assert.False(t, enrichOne(t, row).IsWeekend)
}

func TestUnparseableHourStaysNil(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "na", "25:00", ":30", "8h05"} {
		row := validRow()
		row.Time = raw
		r := enrichOne(t, row)
		assert.Nil(t, r.Hour, "time %q", raw)
		assert.Equal(t, PeriodUnknown, r.TimePeriod, "time %q", raw)
	}
}

func TestAgeGroups(t *testing.T) {
	t.Parallel()

	cases := map[int]AgeGroup{
		0: "0-12", 12: "0-12",
		13: "13-17", 17: "13-17",
		18: "18-25", 25: "18-25",
		26: "26-35", 35: "26-35",
		36: "36-50", 50: "36-50",
		51: "51-65", 65: "51-65",
		66: "65+", 100: "65+",
	}
	for age, want := range cases {
		assert.Equal(t, want, ageGroupFor(age), "age %d", age)
	}

	row := validRow()
	row.Age = nil
	assert.Equal(t, AgeGroupUnknown, enrichOne(t, row).AgeGroup)
}

func TestFatalImpliesSevere(t *testing.T) {
	t.Parallel()

	row := validRow()
	for code := -2; code <= 10; code++ {
		row.SeverityCode = intPtr(code)
		r := enrichOne(t, row)
		if r.IsFatal {
			assert.True(t, r.IsSevere, "severity code %d", code)
		}
	}
}

func TestDangerousConditions(t *testing.T) {
	t.Parallel()

	t.Run("clear daylight on dry road is not dangerous", func(t *testing.T) {
		t.Parallel()
		row := validRow()
		row.LightingCode = intPtr(1)
		row.WeatherCode = intPtr(1)
		row.SurfaceCode = intPtr(1)
		assert.False(t, enrichOne(t, row).DangerousConditions)
	})

	t.Run("any of night, bad weather, slippery surface suffices", func(t *testing.T) {
		t.Parallel()
		base := validRow()
		base.LightingCode = intPtr(1)
		base.WeatherCode = intPtr(1)
		base.SurfaceCode = intPtr(1)

		night := base
		night.LightingCode = intPtr(3)
		assert.True(t, enrichOne(t, night).DangerousConditions)

		rain := base
		rain.WeatherCode = intPtr(3)
		assert.True(t, enrichOne(t, rain).DangerousConditions)

		ice := base
		ice.SurfaceCode = intPtr(7)
		assert.True(t, enrichOne(t, ice).DangerousConditions)
	})
}

func TestBikeInfrastructureDefinition(t *testing.T) {
	t.Parallel()

	t.Run("narrow default counts only separated and painted lanes", func(t *testing.T) {
		t.Parallel()
		want := map[int]bool{0: false, 1: true, 2: true, 3: false, 4: false}
		for code, expected := range want {
			row := validRow()
			row.InfrastructureCode = intPtr(code)
			assert.Equal(t, expected, enrichOne(t, row).HasBikeInfrastructure, "infra code %d", code)
		}
	})

	t.Run("reserved lanes count when configured in", func(t *testing.T) {
		t.Parallel()
		infra := defaultBikeInfra()
		infra[InfrastructureReserved] = true

		row := validRow()
		row.InfrastructureCode = intPtr(3)
		records, _ := Enrich([]RawRecord{row}, infra)
		require.Len(t, records, 1)
		assert.True(t, records[0].HasBikeInfrastructure)
	})
}

func TestEnrichYearDisagreementUsesDate(t *testing.T) {
	t.Parallel()

	row := validRow()
	row.Year = intPtr(2021)
	row.Date = "2023-06-15"
	r := enrichOne(t, row)
	assert.Equal(t, 2023, r.Year)
}

func TestEnrichInvalidDepartmentKept(t *testing.T) {
	t.Parallel()

	row := validRow()
	row.Department = "banana"
	r := enrichOne(t, row)
	assert.False(t, r.DepartmentValid)
	// The record survives for temporal and demographic analysis.
	assert.Equal(t, 2023, r.Year)
}

func TestEnrichDropsUndecomposableDates(t *testing.T) {
	t.Parallel()

	good := validRow()
	bad := validRow()
	bad.Date = "garbage"
	records, late := Enrich([]RawRecord{good, bad}, defaultBikeInfra())
	assert.Len(t, records, 1)
	assert.Equal(t, 1, late)
}
