// Package normals loads the age and sex stratified reference ranges used to
// annotate a report, and answers lookups against them.
package normals

import (
	"strings"
)

const (
	// VariableColumn is the lookup key column of every reference table.
	VariableColumn = "Variable"
	// DefaultSection collects the rows that come before the first section marker.
	DefaultSection = "Generale"

	SexMale   = "M"
	SexFemale = "F"
)

// Row is one reference variable with its cells keyed by column name.
type Row struct {
	Variable string            `json:"variable"`
	Cells    map[string]string `json:"cells"`
}

// Section is a named group of rows inside a reference table.
type Section struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// SexTable is the reference table of one sex, split into sections.
type SexTable struct {
	Columns  []string  `json:"columns"`
	Sections []Section `json:"sections"`

	// first row per variable, in section order
	index map[string]Row
}

// Tables holds the reference tables of both sexes. It is never modified after
// construction, so it can be shared between goroutines freely.
type Tables struct {
	bySex map[string]*SexTable
}

// NewTables builds the lookup structure from the male and female tables.
func NewTables(male, female *SexTable) *Tables {
	t := &Tables{bySex: make(map[string]*SexTable, 2)}
	if male != nil {
		t.bySex[SexMale] = male
	}
	if female != nil {
		t.bySex[SexFemale] = female
	}
	return t
}

// Table returns the reference table for sex (M or F, any case).
func (t *Tables) Table(sex string) (*SexTable, bool) {
	if t == nil {
		return nil, false
	}
	st, ok := t.bySex[strings.ToUpper(strings.TrimSpace(sex))]
	return st, ok
}

// Lookup returns the normal range of a semantic key for the given sex and age.
// An unknown sex, key, variable or age column yields the empty string.
func (t *Tables) Lookup(sex string, age int, key string) string {
	variable, ok := VariableFor(key)
	if !ok {
		return ""
	}
	st, ok := t.Table(sex)
	if !ok {
		return ""
	}
	row, ok := st.Row(variable)
	if !ok {
		return ""
	}
	return row.Cells[BracketFor(age)]
}

// LookupAll returns the normal range of every mapped key for sex and age.
func (t *Tables) LookupAll(sex string, age int) map[string]string {
	out := make(map[string]string, len(keyToVariable))
	for _, key := range Keys() {
		out[key] = t.Lookup(sex, age, key)
	}
	return out
}

// RowCount returns the number of reference rows loaded for each sex.
func (t *Tables) RowCount() map[string]int {
	counts := make(map[string]int, 2)
	if t == nil {
		return counts
	}
	for sex, st := range t.bySex {
		for _, sec := range st.Sections {
			counts[sex] += len(sec.Rows)
		}
	}
	return counts
}

// Row returns the first row named variable, scanning sections in order.
func (st *SexTable) Row(variable string) (Row, bool) {
	if st == nil {
		return Row{}, false
	}
	row, ok := st.index[variable]
	return row, ok
}

// isSectionMarker reports whether row names a section: a variable and no age values.
func isSectionMarker(row Row, columns []string) bool {
	if row.Variable == "" {
		return false
	}
	for _, c := range AgeColumns {
		if !containsColumn(columns, c) {
			continue
		}
		if row.Cells[c] != "" {
			return false
		}
	}
	return true
}

func containsColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

// splitSections groups rows under the section markers that precede them.
// Markers followed by no rows produce no section, and a section name seen
// twice keeps its first position but the later rows.
func splitSections(rows []Row, columns []string) []Section {
	var order []string
	byName := make(map[string][]Row)

	current := DefaultSection
	var pending []Row

	flush := func() {
		if len(pending) == 0 {
			return
		}
		if _, seen := byName[current]; !seen {
			order = append(order, current)
		}
		byName[current] = pending
		pending = nil
	}

	for _, row := range rows {
		if isSectionMarker(row, columns) {
			flush()
			current = row.Variable
			continue
		}
		pending = append(pending, row)
	}
	flush()

	sections := make([]Section, 0, len(order))
	for _, name := range order {
		sections = append(sections, Section{Name: name, Rows: byName[name]})
	}
	return sections
}

// buildIndex records the first row of every variable, in section order.
func buildIndex(sections []Section) map[string]Row {
	index := make(map[string]Row)
	for _, sec := range sections {
		for _, row := range sec.Rows {
			if _, ok := index[row.Variable]; !ok {
				index[row.Variable] = row
			}
		}
	}
	return index
}
