// Package cmrparser extracts measurements from the plain-text export of a
// cardiac MRI post-processing workstation.
//
// The export is split into named sections, fixed-width tables are recovered
// from each section and a fixed set of metrics is copied into a flat map.
// Nothing in this package fails on malformed input: missing structure simply
// yields missing values.
package cmrparser

import (
	"github.com/giygas/cmr-report/cmrparser/entities"
	"github.com/giygas/cmr-report/interfaces"
)

// Compile-time check to ensure ReportParser implements Extractor interface
var _ interfaces.Extractor = (*ReportParser)(nil)

// ReportParser implements the Extractor interface
type ReportParser struct{}

// NewReportParser creates a new ReportParser instance
func NewReportParser() *ReportParser {
	return &ReportParser{}
}

// Extract implements the Extractor interface
func (p *ReportParser) Extract(text string) entities.Extraction {
	return Extract(text)
}

// Extract runs the whole pipeline over report text.
func Extract(text string) entities.Extraction {
	sections := SplitSections(text)

	result := entities.Extraction{
		Values:   PickValues(sections),
		Sections: []string{},
	}

	for _, name := range entities.SectionNames {
		if _, ok := sections[name]; ok {
			result.Sections = append(result.Sections, name)
		}
	}

	if lv, ok := FirstTable(sections.Lines(entities.SectionLV)); ok {
		result.LV = &lv
	}
	if rv, ok := FirstTable(sections.Lines(entities.SectionRV)); ok {
		result.RV = &rv
	}

	return result
}
