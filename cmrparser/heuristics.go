package cmrparser

import (
	"regexp"
	"strings"
)

// The heuristics below encode the layout of the vendor's plain-text export.
// Each one is kept separate so it can be tested and replaced on its own.

const (
	// minSeparatorLen is the shortest run of dashes treated as a table rule.
	minSeparatorLen = 5
	// metricColumn is prepended to generic table headers; it labels the row names.
	metricColumn = "Metric"
	// globalPrefix anchors the T1/T2 global summary tables.
	globalPrefix = "Global"
)

// columnGap matches the runs of two or more blanks that separate fixed-width columns.
var columnGap = regexp.MustCompile(`[\s\v\p{Z}]{2,}`)

// IsSeparator reports whether line is a dashed rule: only '-' once trimmed, at least five long.
func IsSeparator(line string) bool {
	s := strings.TrimSpace(line)
	return len(s) >= minSeparatorLen && strings.Trim(s, "-") == ""
}

// IsBlank reports whether line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// SplitColumns splits a fixed-width line into cells. Tabs count as spaces and
// a single space stays inside a cell, so "Value / BSA" survives as one column.
func SplitColumns(line string) []string {
	line = strings.TrimSpace(strings.ReplaceAll(line, "\t", " "))
	if line == "" {
		return []string{}
	}

	parts := columnGap.Split(line, -1)
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}

// IsValueHeader reports whether header looks like the header of a measurement
// table: two columns or more, one of them mentioning "Value" or named "Volume".
func IsValueHeader(header []string) bool {
	if len(header) < 2 {
		return false
	}
	for _, h := range header {
		if strings.Contains(h, "Value") || h == "Volume" {
			return true
		}
	}
	return false
}

// IsGlobalAnchor reports whether line opens a global summary block.
func IsGlobalAnchor(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), globalPrefix)
}

// fitRow pads cells with empty strings up to width and drops any extra cells.
func fitRow(cells []string, width int) []string {
	row := make([]string, width)
	copy(row, cells)
	return row
}
