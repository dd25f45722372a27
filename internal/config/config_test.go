package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	assert.Equal(t, 2005, cfg.GetYearMin())
	assert.Equal(t, 2023, cfg.GetYearMax())
	assert.Equal(t, []int{1, 2}, cfg.GetBikeInfrastructureCodes())
	assert.Contains(t, cfg.GetDropColumns(), "Num_Acc")

	opts := cfg.PipelineOptions()
	assert.Equal(t, 2005, opts.YearMin)
	assert.Equal(t, 2023, opts.YearMax)
}

func TestLoadPartialConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "edition2022.json", `{"year_max": 2022}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	// Only the named field is overridden.
	assert.Equal(t, 2022, cfg.GetYearMax())
	assert.Equal(t, 2005, cfg.GetYearMin())
	assert.Equal(t, []int{1, 2}, cfg.GetBikeInfrastructureCodes())
}

func TestLoadFullConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "cfg.json", `{
		"year_min": 2010,
		"year_max": 2020,
		"bike_infrastructure_codes": [1, 2, 3],
		"drop_columns": ["Num_Acc"]
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2010, cfg.GetYearMin())
	assert.Equal(t, []int{1, 2, 3}, cfg.GetBikeInfrastructureCodes())
	assert.Equal(t, []string{"Num_Acc"}, cfg.GetDropColumns())
}

func TestLoadRejectsNonJSONExtension(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "cfg.yaml", "year_max: 2022")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadJSON(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "cfg.json", `{"year_max": `)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	year := func(v int) *int { return &v }

	assert.NoError(t, (&Config{}).Validate())
	assert.Error(t, (&Config{YearMin: year(2023), YearMax: year(2005)}).Validate())
	assert.Error(t, (&Config{YearMin: year(1800)}).Validate())

	codes := []int{0, 5}
	assert.Error(t, (&Config{BikeInfrastructureCodes: &codes}).Validate())
	ok := []int{0, 1, 2, 3, 4}
	assert.NoError(t, (&Config{BikeInfrastructureCodes: &ok}).Validate())
}
