package metrics

import "github.com/giygas/cmr-report/cmrparser/entities"

// ObserveExtraction records which sections a report lacked and how many
// values it produced.
func ObserveExtraction(ex entities.Extraction) {
	for _, name := range entities.MissingSections(ex.Sections) {
		SectionsMissingTotal.WithLabelValues(name).Inc()
	}
	ExtractedValues.Observe(float64(len(ex.Values)))
}
