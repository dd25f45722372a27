package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/velodata/cycling.report/internal/accident"
	"github.com/velodata/cycling.report/internal/monitoring"
)

// ErrMissingColumn indicates a required column is structurally absent
// from the input file. This is a schema mismatch, not a data-quality
// issue, and aborts the load.
var ErrMissingColumn = errors.New("required column missing")

// Table is the raw table as ingested: the source header plus one
// loosely-typed RawRecord per data row. MalformedRows counts rows the
// CSV layer could not read at all (they never reach the validator).
type Table struct {
	Columns       []string
	Rows          []accident.RawRecord
	MalformedRows int
}

// ReadFile loads the raw accident table from a CSV file.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses the raw accident table from delimited text. The header
// row is mandatory; rows with unreadable CSV structure are skipped and
// counted. Cell-level problems (empty or unparseable values) become
// nil fields for the validator to judge, never errors here.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // dataset revisions vary in width

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	colMap := make(map[string]int, len(header))
	for i, col := range header {
		colMap[col] = i
	}
	for _, required := range RequiredColumns() {
		if _, ok := colMap[required]; !ok {
			return nil, fmt.Errorf("%w: %q (%s)", ErrMissingColumn, required, Describe(required))
		}
	}

	table := &Table{Columns: header}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			monitoring.Logf("skipping malformed CSV row: %v", err)
			table.MalformedRows++
			continue
		}
		table.Rows = append(table.Rows, parseRow(row, colMap))
	}
	return table, nil
}

func parseRow(row []string, colMap map[string]int) accident.RawRecord {
	return accident.RawRecord{
		Year:         intCell(row, colMap, "an"),
		Date:         cell(row, colMap, "date"),
		Time:         cell(row, colMap, "hrmn"),
		SeverityCode: intCell(row, colMap, "grav"),
		Age:          intCell(row, colMap, "age"),
		Department:   cell(row, colMap, "dep"),
		Latitude:     floatCell(row, colMap, "lat"),
		Longitude:    floatCell(row, colMap, "long"),

		LightingCode:       intCell(row, colMap, "lum"),
		WeatherCode:        intCell(row, colMap, "atm"),
		AgglomerationCode:  intCell(row, colMap, "agg"),
		IntersectionCode:   intCell(row, colMap, "int"),
		RoadCategoryCode:   intCell(row, colMap, "catr"),
		SurfaceCode:        intCell(row, colMap, "surf"),
		InfrastructureCode: intCell(row, colMap, "infra"),
		SituationCode:      intCell(row, colMap, "situ"),
		GenderCode:         intCell(row, colMap, "sexe"),
		TripPurposeCode:    intCell(row, colMap, "trajet"),
		CollisionCode:      intCell(row, colMap, "col"),
	}
}

// cell returns the trimmed value of the named column, or "" when the
// column is absent from this file revision or the row is short.
func cell(row []string, colMap map[string]int, column string) string {
	idx, ok := colMap[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// intCell parses an integer cell. Coded columns sometimes carry float
// renderings ("3.0"), so a float parse backs up the integer parse.
func intCell(row []string, colMap map[string]int, column string) *int {
	raw := cell(row, colMap, column)
	if raw == "" {
		return nil
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return &v
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == float64(int(f)) {
		v := int(f)
		return &v
	}
	return nil
}

func floatCell(row []string, colMap map[string]int, column string) *float64 {
	raw := cell(row, colMap, column)
	if raw == "" {
		return nil
	}
	// Older editions use a decimal comma for coordinates.
	raw = strings.ReplaceAll(raw, ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
