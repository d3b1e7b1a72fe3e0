package entities

// Section names recognised as headings in a report.
const (
	SectionLV    = "LV"
	SectionRV    = "RV"
	SectionAtria = "Atria"
	SectionT1    = "T1"
	SectionT2    = "T2"
)

// SectionNames lists the headings in the order reports present them.
var SectionNames = []string{SectionLV, SectionRV, SectionAtria, SectionT1, SectionT2}

// Section is a named block of consecutive report lines.
type Section struct {
	Name  string   `json:"name"`
	Lines []string `json:"lines"`
}

// Sections maps a heading name to its block. Headings never seen are absent.
type Sections map[string]Section

// Lines returns the lines of the named section, nil when absent.
func (s Sections) Lines(name string) []string {
	if sec, ok := s[name]; ok {
		return sec.Lines
	}
	return nil
}

// MissingSections returns the known headings not listed in found.
func MissingSections(found []string) []string {
	present := make(map[string]bool, len(found))
	for _, name := range found {
		present[name] = true
	}

	var missing []string
	for _, name := range SectionNames {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
