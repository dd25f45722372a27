package report

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/velodata/cycling.report/internal/accident"
	"github.com/velodata/cycling.report/internal/dataset"
)

const sampleCSV = `an,date,hrmn,grav,age,dep,lum,infra
2023,2023-06-15,08:05,2,34,7,3,1
2022,2022-11-02,18:40,3,17,2A,1,0
2021,2021-03-04,,4,41,75,5,2
`

func chartServer(t *testing.T) *httptest.Server {
	t.Helper()
	snap, err := dataset.NewStore(accident.DefaultOptions()).Load([]byte(sampleCSV))
	require.NoError(t, err)
	srv := httptest.NewServer(NewHandler(snap).ServeMux())
	t.Cleanup(srv.Close)
	return srv
}

func getPage(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestChartPages(t *testing.T) {
	t.Parallel()
	srv := chartServer(t)

	for _, page := range []string{"/years", "/hours", "/lighting", "/infrastructure", "/ages"} {
		status, body := getPage(t, srv.URL+page)
		assert.Equal(t, http.StatusOK, status, page)
		assert.Contains(t, body, "echarts", page)
	}
}

func TestDashboardIndex(t *testing.T) {
	t.Parallel()
	srv := chartServer(t)

	status, body := getPage(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	for _, page := range []string{"years", "hours", "lighting", "infrastructure", "ages"} {
		assert.True(t, strings.Contains(body, `src="`+page+`"`), page)
	}
}

func TestSeveritySeries(t *testing.T) {
	t.Parallel()

	categories := []string{"2022", "2023"}
	counts := map[string]map[string]int{
		"2022": {"Killed": 2},
		"2023": {"Killed": 1, "Hospitalized": 4},
	}
	series := severitySeries(categories, counts)

	require.Contains(t, series, "Killed")
	require.Contains(t, series, "Hospitalized")
	// Severities with no observations anywhere are omitted entirely.
	assert.NotContains(t, series, "Unharmed")

	assert.Equal(t, []opts.BarData{{Value: 2}, {Value: 1}}, series["Killed"])
	assert.Equal(t, []opts.BarData{{Value: 0}, {Value: 4}}, series["Hospitalized"])
}
