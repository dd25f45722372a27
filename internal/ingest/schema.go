// Package ingest loads the raw accident table from its delimited source
// file and carries the column schema registry.
package ingest

import "sort"

// Field describes one canonical source column. Columns come and go
// between dataset revisions, so presence of a described column is
// never assumed; lookups fall back rather than fail.
type Field struct {
	Name        string
	Description string
	Kind        string // int, float, string, date, time
	Required    bool
}

// schema is the registry of known source columns, keyed by the BAAC
// column name.
var schema = map[string]Field{
	"an":     {Name: "an", Description: "accident year", Kind: "int", Required: true},
	"date":   {Name: "date", Description: "accident date (day level)", Kind: "date", Required: true},
	"hrmn":   {Name: "hrmn", Description: "accident time (HH:MM)", Kind: "time"},
	"grav":   {Name: "grav", Description: "severity code", Kind: "int", Required: true},
	"age":    {Name: "age", Description: "age of the person involved", Kind: "int"},
	"dep":    {Name: "dep", Description: "department code", Kind: "string"},
	"lat":    {Name: "lat", Description: "latitude", Kind: "float"},
	"long":   {Name: "long", Description: "longitude", Kind: "float"},
	"lum":    {Name: "lum", Description: "lighting condition code", Kind: "int"},
	"atm":    {Name: "atm", Description: "weather condition code", Kind: "int"},
	"agg":    {Name: "agg", Description: "agglomeration code", Kind: "int"},
	"int":    {Name: "int", Description: "intersection type code", Kind: "int"},
	"catr":   {Name: "catr", Description: "road category code", Kind: "int"},
	"surf":   {Name: "surf", Description: "surface condition code", Kind: "int"},
	"infra":  {Name: "infra", Description: "cycling infrastructure code", Kind: "int"},
	"situ":   {Name: "situ", Description: "situation code (position on the road)", Kind: "int"},
	"sexe":   {Name: "sexe", Description: "gender code", Kind: "int"},
	"trajet": {Name: "trajet", Description: "trip purpose code", Kind: "int"},
	"col":    {Name: "col", Description: "collision type code", Kind: "int"},
}

// NoDescription is returned by Describe for columns outside the
// registry (technical identifiers, revision-specific extras).
const NoDescription = "no description available"

// Describe returns the registered description for a column, or
// NoDescription when the column is unknown.
func Describe(column string) string {
	if f, ok := schema[column]; ok {
		return f.Description
	}
	return NoDescription
}

// Lookup returns the registered field definition for a column.
func Lookup(column string) (Field, bool) {
	f, ok := schema[column]
	return f, ok
}

// RequiredColumns returns the columns whose structural absence is a
// fatal schema mismatch, sorted for stable error messages.
func RequiredColumns() []string {
	var required []string
	for name, f := range schema {
		if f.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)
	return required
}
