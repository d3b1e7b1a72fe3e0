package cmrparser

import (
	"strings"

	"github.com/giygas/cmr-report/cmrparser/entities"
)

var headings = func() map[string]bool {
	m := make(map[string]bool, len(entities.SectionNames))
	for _, name := range entities.SectionNames {
		m[name] = true
	}
	return m
}()

// SplitLines splits text on \n, \r\n and \r.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// SplitSections partitions report text into the LV, RV, Atria, T1 and T2 blocks.
// A line equal to a heading (once trimmed) opens that block, and every later
// line belongs to it until the next heading. Text before the first heading is
// dropped. Seeing a heading again starts its block over.
func SplitSections(text string) entities.Sections {
	sections := make(entities.Sections)
	current := ""

	for _, line := range SplitLines(text) {
		if name := strings.TrimSpace(line); headings[name] {
			current = name
			sections[current] = entities.Section{Name: current, Lines: []string{}}
			continue
		}
		if current == "" {
			continue
		}
		sec := sections[current]
		sec.Lines = append(sec.Lines, line)
		sections[current] = sec
	}

	return sections
}
