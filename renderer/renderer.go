// Package renderer assembles the narrative CMR report from extracted values
// and reference ranges.
package renderer

import (
	"embed"
	"strings"
	"text/template"

	"github.com/giygas/cmr-report/cmrparser/entities"
	"github.com/giygas/cmr-report/interfaces"
	"github.com/giygas/cmr-report/logging"
)

//go:embed templates/report.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.tmpl"))

// Scanner descriptions and native T1 reference ranges per field strength.
const (
	Scanner3T      = "3T (Philips 7700)"
	Scanner15T     = "1,5T"
	T1Normal3T     = "1130–1300 ms"
	T1Normal15T    = "<1045 ms"
	superscriptTwo = "²"
)

// Input carries everything a report depends on.
type Input struct {
	Sex           string
	Age           int
	Field3T       bool
	Values        entities.ValueMap
	LV            *entities.Table
	RV            *entities.Table
	IncludeTables bool
}

// templateData is the view handed to the report template.
type templateData struct {
	Scanner  string
	T1Normal string
	V        map[string]string
	N        map[string]string
}

// Render produces the report text. Missing values and reference ranges are
// left blank. When IncludeTables is set the LV and RV tables are appended.
// Every "^2" in the result becomes a superscript two.
func Render(in Input, lookup interfaces.NormalsLookup) string {
	data := templateData{
		Scanner:  Scanner15T,
		T1Normal: T1Normal15T,
		V:        map[string]string(in.Values),
		N:        map[string]string{},
	}
	if in.Field3T {
		data.Scanner = Scanner3T
		data.T1Normal = T1Normal3T
	}
	if data.V == nil {
		data.V = map[string]string{}
	}
	if lookup != nil {
		data.N = lookup.LookupAll(in.Sex, in.Age)
	}

	var b strings.Builder
	if err := reportTemplate.Execute(&b, data); err != nil {
		logging.Error("Failed to execute report template", "error", err)
	}

	if in.IncludeTables {
		b.WriteString("\n")
		b.WriteString(FormatASCIITable("LV", in.LV))
		b.WriteString("\n")
		b.WriteString(FormatASCIITable("RV", in.RV))
	}

	return strings.ReplaceAll(b.String(), "^2", superscriptTwo)
}
