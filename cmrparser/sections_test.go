package cmrparser

import (
	"reflect"
	"testing"

	"github.com/giygas/cmr-report/cmrparser/entities"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		text     string
		expected []string
	}{
		{"a\nb\n", []string{"a", "b"}},
		{"a\r\nb", []string{"a", "b"}},
		{"a\rb\r", []string{"a", "b"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"", nil},
	}

	for _, tt := range tests {
		if got := SplitLines(tt.text); !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("SplitLines(%q) = %q, want %q", tt.text, got, tt.expected)
		}
	}
}

func TestSplitSections(t *testing.T) {
	text := "Header line\nLV\nl1\n\nl2\n  RV  \nr1\nunknown\nT2\nt1"

	sections := SplitSections(text)

	if _, ok := sections[entities.SectionAtria]; ok {
		t.Error("Expected Atria to be absent")
	}
	if got := sections.Lines(entities.SectionLV); !reflect.DeepEqual(got, []string{"l1", "", "l2"}) {
		t.Errorf("Unexpected LV lines: %q", got)
	}
	if got := sections.Lines(entities.SectionRV); !reflect.DeepEqual(got, []string{"r1", "unknown"}) {
		t.Errorf("Unexpected RV lines: %q", got)
	}
	if got := sections.Lines(entities.SectionT2); !reflect.DeepEqual(got, []string{"t1"}) {
		t.Errorf("Unexpected T2 lines: %q", got)
	}
	for _, sec := range sections {
		for _, line := range sec.Lines {
			if line == "Header line" {
				t.Error("Expected lines before the first heading to be dropped")
			}
		}
	}
}

func TestSplitSectionsRepeatedHeadingRestarts(t *testing.T) {
	sections := SplitSections("LV\nfirst\nRV\nr\nLV\nsecond")

	if got := sections.Lines(entities.SectionLV); !reflect.DeepEqual(got, []string{"second"}) {
		t.Errorf("Expected repeated heading to restart the section, got %q", got)
	}
}

func TestSplitSectionsNoHeadings(t *testing.T) {
	if sections := SplitSections("no headings here\nat all"); len(sections) != 0 {
		t.Errorf("Expected no sections, got %v", sections)
	}
	if sections := SplitSections(""); len(sections) != 0 {
		t.Errorf("Expected no sections for empty text, got %v", sections)
	}
}

func TestSplitSectionsEmptyHeading(t *testing.T) {
	sections := SplitSections("T1")

	sec, ok := sections[entities.SectionT1]
	if !ok {
		t.Fatal("Expected T1 section to exist")
	}
	if len(sec.Lines) != 0 {
		t.Errorf("Expected no lines, got %q", sec.Lines)
	}
}
