package cmrparser

import (
	"github.com/giygas/cmr-report/cmrparser/entities"
)

// ExtractTables recovers the measurement tables of a section.
//
// A table starts at a dashed separator. The first non-blank line after it is
// the header and must pass IsValueHeader, otherwise the separator is ignored.
// A "Metric" column is prepended to the header unless the header already
// starts with one, and one separator right below it is skipped. Rows follow until the next separator or a line with fewer than
// two cells; blank lines inside the run are skipped. Scanning resumes after
// the last consumed row.
func ExtractTables(lines []string) []entities.Table {
	tables := []entities.Table{}

	i := 0
	for i < len(lines) {
		if !IsSeparator(lines[i]) {
			i++
			continue
		}

		table, next, ok := readTableAt(lines, i)
		if ok {
			tables = append(tables, table)
			i = next
			continue
		}
		i++
	}

	return tables
}

// readTableAt tries to read a table whose separator sits at lines[sep].
// It returns the table, the index where scanning should resume and whether any
// row was captured.
func readTableAt(lines []string, sep int) (entities.Table, int, bool) {
	j := sep + 1
	for j < len(lines) && IsBlank(lines[j]) {
		j++
	}
	if j >= len(lines) {
		return entities.Table{}, sep + 1, false
	}

	header := SplitColumns(lines[j])
	if !IsValueHeader(header) {
		return entities.Table{}, sep + 1, false
	}

	columns := header
	if header[0] != metricColumn {
		columns = append([]string{metricColumn}, header...)
	}

	k := j + 1
	if k < len(lines) && IsSeparator(lines[k]) {
		k++
	}

	rows := [][]string{}
	for k < len(lines) {
		if IsSeparator(lines[k]) {
			break
		}
		if IsBlank(lines[k]) {
			k++
			continue
		}
		cells := SplitColumns(lines[k])
		if len(cells) < 2 {
			break
		}
		rows = append(rows, fitRow(cells, len(columns)))
		k++
	}

	if len(rows) == 0 {
		return entities.Table{}, sep + 1, false
	}
	return entities.Table{Columns: columns, Rows: rows}, k, true
}

// ExtractGlobalTable recovers the global summary table of a T1 or T2 section.
//
// The anchor is a line starting with "Global". Separators right after it are
// skipped, the next line is the header, one separator below the header is
// skipped and rows run until a blank line. The first anchor that yields a row
// wins.
func ExtractGlobalTable(lines []string) (entities.Table, bool) {
	for i := range lines {
		if !IsGlobalAnchor(lines[i]) {
			continue
		}

		j := i + 1
		for j < len(lines) && IsSeparator(lines[j]) {
			j++
		}
		if j >= len(lines) {
			continue
		}

		header := SplitColumns(lines[j])

		k := j + 1
		if k < len(lines) && IsSeparator(lines[k]) {
			k++
		}

		rows := [][]string{}
		for k < len(lines) && !IsBlank(lines[k]) {
			rows = append(rows, fitRow(SplitColumns(lines[k]), len(header)))
			k++
		}

		if len(rows) > 0 {
			return entities.Table{Columns: header, Rows: rows}, true
		}
	}

	return entities.Table{}, false
}
