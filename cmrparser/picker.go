package cmrparser

import (
	"regexp"
	"strings"

	"github.com/giygas/cmr-report/cmrparser/entities"
)

// Column names read by the picker.
const (
	colValue        = "Value"
	colValueBSA     = "Value / BSA"
	colVolume       = "Volume"
	colName         = "Name"
	colNativeT1     = "Native T1 (ms)"
	colECV          = "ECV Value (%)"
	t2ValueColumn   = 1
	myocardiumShort = "myo"
	myocardiumLong  = "myocardium"
)

// numberToken matches an integer or a decimal written with a comma or a dot.
var numberToken = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// pick copies one column of a labelled row into a semantic key.
type pick struct {
	column  string
	key     string
	percent bool
}

// rowPicks lists, per section, the row labels looked up and what is copied out of them.
var rowPicks = map[string][]struct {
	label string
	picks []pick
}{
	entities.SectionLV: {
		{"LV EDV", []pick{{colValue, entities.KeyLVEDV, false}, {colValueBSA, entities.KeyLVEDVBSA, false}}},
		{"LV EDM", []pick{{colValue, entities.KeyLVMass, false}, {colValueBSA, entities.KeyLVMassBSA, false}}},
		{"LV EF", []pick{{colValue, entities.KeyLVEF, true}}},
	},
	entities.SectionRV: {
		{"RV EDV", []pick{{colValue, entities.KeyRVEDV, false}, {colValueBSA, entities.KeyRVEDVBSA, false}}},
		{"RV EF", []pick{{colValue, entities.KeyRVEF, true}}},
	},
	entities.SectionAtria: {
		{"LA Maximum", []pick{{colVolume, entities.KeyLA, false}, {colValueBSA, entities.KeyLABSA, false}}},
		{"RA Maximum", []pick{{colVolume, entities.KeyRA, false}, {colValueBSA, entities.KeyRABSA, false}}},
	},
}

// FindRow returns the first row whose Metric cell equals label, ignoring case
// and surrounding whitespace.
func FindRow(table *entities.Table, label string) ([]string, bool) {
	idx := table.ColumnIndex(metricColumn)
	if idx < 0 {
		return nil, false
	}
	for _, row := range table.Rows {
		if strings.EqualFold(strings.TrimSpace(row[idx]), label) {
			return row, true
		}
	}
	return nil, false
}

// StripPercent removes '%' signs and surrounding whitespace from a value.
func StripPercent(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, "%", ""))
}

// FirstToken returns the first whitespace-delimited token of value.
func FirstToken(value string) (string, bool) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// FirstNumber returns the first integer or decimal number found in value.
func FirstNumber(value string) (string, bool) {
	m := numberToken.FindString(value)
	return m, m != ""
}

// PickValues copies the known metrics of a parsed report into a flat map.
// Only the first table of each anatomical section is used. A missing row or
// column leaves its key out of the map; an empty cell maps to "".
func PickValues(sections entities.Sections) entities.ValueMap {
	out := make(entities.ValueMap)

	for _, name := range []string{entities.SectionLV, entities.SectionRV, entities.SectionAtria} {
		if table, ok := FirstTable(sections.Lines(name)); ok {
			pickRows(out, &table, name)
		}
	}

	if table, ok := ExtractGlobalTable(sections.Lines(entities.SectionT1)); ok {
		pickT1(out, &table)
	}
	if table, ok := ExtractGlobalTable(sections.Lines(entities.SectionT2)); ok {
		pickT2(out, &table)
	}

	return out
}

// FirstTable returns the first measurement table of a section.
func FirstTable(lines []string) (entities.Table, bool) {
	tables := ExtractTables(lines)
	if len(tables) == 0 {
		return entities.Table{}, false
	}
	return tables[0], true
}

func pickRows(out entities.ValueMap, table *entities.Table, section string) {
	for _, rp := range rowPicks[section] {
		row, ok := FindRow(table, rp.label)
		if !ok {
			continue
		}
		for _, p := range rp.picks {
			v, ok := table.Cell(row, p.column)
			if !ok {
				continue
			}
			if p.percent {
				v = StripPercent(v)
			}
			// an empty cell of a found row is kept as ""
			out[p.key] = strings.TrimSpace(v)
		}
	}
}

// myocardiumRow returns the global row describing the whole myocardium.
func myocardiumRow(table *entities.Table) ([]string, bool) {
	idx := table.ColumnIndex(colName)
	if idx < 0 {
		return nil, false
	}
	for _, row := range table.Rows {
		name := strings.ToLower(strings.TrimSpace(row[idx]))
		if name == myocardiumShort || name == myocardiumLong {
			return row, true
		}
	}
	return nil, false
}

func pickT1(out entities.ValueMap, table *entities.Table) {
	row, ok := myocardiumRow(table)
	if !ok {
		return
	}

	if cell, ok := table.Cell(row, colNativeT1); ok {
		if tok, ok := FirstToken(cell); ok {
			out[entities.KeyT1Native] = strings.ReplaceAll(tok, ",", "")
		}
	}
	if cell, ok := table.Cell(row, colECV); ok {
		if tok, ok := FirstToken(cell); ok {
			out[entities.KeyECV] = tok
		}
	}
}

func pickT2(out entities.ValueMap, table *entities.Table) {
	row, ok := myocardiumRow(table)
	if !ok || len(row) <= t2ValueColumn {
		return
	}
	if n, ok := FirstNumber(row[t2ValueColumn]); ok {
		out[entities.KeyT2] = n
	}
}
