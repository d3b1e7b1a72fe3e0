package entities

// Table is a row/column grid recovered from report text.
// Every row holds exactly len(Columns) cells.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the position of the first column named name, or -1.
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column named name.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// IsEmpty reports whether the table is absent or has no rows.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// Cell returns the cell of row at the named column and whether the column exists.
func (t *Table) Cell(row []string, column string) (string, bool) {
	idx := t.ColumnIndex(column)
	if idx < 0 || idx >= len(row) {
		return "", false
	}
	return row[idx], true
}
