package renderer

import (
	"strings"
	"unicode/utf8"

	"github.com/giygas/cmr-report/cmrparser/entities"
)

const (
	minRuleWidth = 20
	cellGap      = "  "
	noData       = "(nessun dato)"
)

// TableColumns are the columns kept when a ventricle table is appended to a report.
var TableColumns = []string{"Metric", "Value", "Value / BSA"}

// FormatASCIITable renders table as fixed-width text limited to TableColumns.
//
// The output is a "--- title ---" line followed by a dash rule, the header,
// another rule, the rows and a closing rule. Cells are left-aligned to the
// widest entry of their column and separated by two spaces. A missing or empty
// table renders as the title and a "no data" line.
func FormatASCIITable(title string, table *entities.Table) string {
	heading := "--- " + title + " ---"
	if table.IsEmpty() {
		return heading + "\n" + noData + "\n"
	}

	var kept []string
	for _, c := range TableColumns {
		if table.HasColumn(c) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return heading + "\n" + noData + "\n"
	}

	header := []string{"Metric"}
	for _, c := range kept {
		if c != "Metric" {
			header = append(header, c)
		}
	}

	grid := [][]string{header}
	for _, row := range table.Rows {
		line := make([]string, len(header))
		for i, h := range header {
			cell, _ := table.Cell(row, h)
			line[i] = strings.TrimSpace(cell)
		}
		grid = append(grid, line)
	}

	widths := columnWidths(grid)
	total := 0
	for _, w := range widths {
		total += w
	}
	total += len(cellGap) * (len(widths) - 1)
	rule := strings.Repeat("-", max(minRuleWidth, total))

	out := []string{heading, rule, formatRow(header, widths), rule}
	for _, line := range grid[1:] {
		out = append(out, formatRow(line, widths))
	}
	out = append(out, rule)

	return strings.Join(out, "\n") + "\n"
}

// columnWidths returns the widest cell of each column, counted in characters.
func columnWidths(grid [][]string) []int {
	n := 0
	for _, row := range grid {
		n = max(n, len(row))
	}
	widths := make([]int, n)
	for _, row := range grid {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	return widths
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = padRight(c, widths[i])
	}
	return strings.Join(padded, cellGap)
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
