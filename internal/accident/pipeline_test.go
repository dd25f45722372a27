package accident

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleColumns() []string {
	return []string{
		"Num_Acc", "an", "date", "hrmn", "grav", "age", "dep", "lat", "long",
		"lum", "atm", "agg", "int", "catr", "surf", "infra", "situ", "sexe",
		"trajet", "col", "nbv",
	}
}

func sampleRows() []RawRecord {
	rows := []RawRecord{
		{
			Year: intPtr(2023), Date: "2023-06-15", Time: "08:05",
			SeverityCode: intPtr(2), Age: intPtr(34), Department: "7",
			LightingCode: intPtr(1), WeatherCode: intPtr(1), SurfaceCode: intPtr(1),
			AgglomerationCode: intPtr(2), GenderCode: intPtr(1),
			InfrastructureCode: intPtr(0), TripPurposeCode: intPtr(5),
			Latitude: floatPtr(45.76), Longitude: floatPtr(4.84),
		},
		{
			Year: intPtr(2022), Date: "2022-11-02", Time: "18:40",
			SeverityCode: intPtr(4), Age: intPtr(17), Department: "2A",
			LightingCode: intPtr(5), WeatherCode: intPtr(2), SurfaceCode: intPtr(2),
			AgglomerationCode: intPtr(1), GenderCode: intPtr(2),
			InfrastructureCode: intPtr(1), TripPurposeCode: intPtr(1),
		},
		// Rejected: year missing.
		{Date: "2021-05-01", Time: "12:00", SeverityCode: intPtr(1)},
		// Rejected: age out of range.
		{
			Year: intPtr(2021), Date: "2021-03-04", Time: "07:15",
			SeverityCode: intPtr(3), Age: intPtr(150),
		},
	}
	return rows
}

func TestCleanCounts(t *testing.T) {
	t.Parallel()

	records, report, err := Clean(sampleRows(), sampleColumns(), DefaultOptions())
	require.NoError(t, err)

	assert.Len(t, records, 2)
	assert.Equal(t, 4, report.OriginalRows)
	assert.Equal(t, 2, report.CleanedRows)
	assert.Equal(t, 2, report.RowsRemoved)
	assert.Equal(t, len(sampleColumns()), report.OriginalColumns)
	assert.Equal(t, len(cleanedColumns), report.CleanedColumns)

	// Every raw row is accounted for: cleaned + rejected == raw.
	assert.Equal(t, report.OriginalRows, report.CleanedRows+report.Rejections.Total)
	assert.Equal(t, 1, report.Rejections.ByReason[ReasonMissingYear])
	assert.Equal(t, 1, report.Rejections.ByReason[ReasonInvalidAge])
}

func TestCleanDropsConfiguredColumns(t *testing.T) {
	t.Parallel()

	_, report, err := Clean(sampleRows(), sampleColumns(), DefaultOptions())
	require.NoError(t, err)
	// Only drop-list entries present in this header are reported.
	assert.Equal(t, []string{"Num_Acc", "nbv"}, report.ColumnsDropped)
}

func TestCleanIdempotent(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	first, reportA, err := Clean(sampleRows(), sampleColumns(), opts)
	require.NoError(t, err)
	second, reportB, err := Clean(sampleRows(), sampleColumns(), opts)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("record sets differ between identical runs (-first +second):\n%s", diff)
	}

	// Reports match apart from the per-run identifier.
	reportA.RunID = ""
	reportB.RunID = ""
	if diff := cmp.Diff(reportA, reportB); diff != "" {
		t.Fatalf("reports differ between identical runs (-first +second):\n%s", diff)
	}
}

func TestCleanMissingValueReport(t *testing.T) {
	t.Parallel()

	rows := []RawRecord{
		{Year: intPtr(2020), Date: "2020-01-01", Time: "10:00", SeverityCode: intPtr(1), Age: intPtr(30), Department: "75"},
		{Year: intPtr(2020), Date: "2020-01-02", Time: "", SeverityCode: intPtr(1), Department: "75"},
	}
	_, report, err := Clean(rows, []string{"an", "date", "hrmn", "grav", "age", "dep"}, DefaultOptions())
	require.NoError(t, err)

	byColumn := make(map[string]ColumnMissing)
	for _, mv := range report.MissingValues {
		byColumn[mv.Column] = mv
	}

	// One of two rows lacks an hour and an age.
	assert.Equal(t, 1, byColumn["hour"].Count)
	assert.InDelta(t, 50.0, byColumn["hour"].Percent, 0.01)
	assert.Equal(t, 1, byColumn["age"].Count)
	// Both rows lack coordinates.
	assert.Equal(t, 2, byColumn["lat"].Count)
	assert.InDelta(t, 100.0, byColumn["lat"].Percent, 0.01)
	// Decoded sentinels count as missing: no lighting code was given.
	assert.Equal(t, 2, byColumn["lighting"].Count)
}

func TestCleanInvalidOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.YearMin, opts.YearMax = 2023, 2005
	_, _, err := Clean(sampleRows(), sampleColumns(), opts)
	assert.Error(t, err)
}

func TestCleanEmptyInput(t *testing.T) {
	t.Parallel()

	records, report, err := Clean(nil, []string{"an", "date", "grav"}, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, report.OriginalRows)
	assert.Zero(t, report.RowsRemoved)
	assert.Empty(t, report.MissingValues)
}
