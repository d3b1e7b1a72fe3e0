package cmrparser

import (
	"testing"

	"github.com/giygas/cmr-report/cmrparser/entities"
)

func TestFindRowIgnoresCaseAndSpaces(t *testing.T) {
	table := &entities.Table{
		Columns: []string{"Metric", "Value"},
		Rows:    [][]string{{"lv edv ", "150 ml"}, {"LV EDV", "999 ml"}},
	}

	row, ok := FindRow(table, "LV EDV")
	if !ok {
		t.Fatal("Expected to find the row")
	}
	if row[1] != "150 ml" {
		t.Errorf("Expected the first matching row, got %q", row)
	}

	if _, ok := FindRow(table, "LV ESV"); ok {
		t.Error("Expected no match for an absent label")
	}
	if _, ok := FindRow(&entities.Table{Columns: []string{"Name"}}, "LV EDV"); ok {
		t.Error("Expected no match without a Metric column")
	}
}

func TestStripPercent(t *testing.T) {
	tests := map[string]string{
		"60 %":   "60",
		"55%":    "55",
		" 62 ":   "62",
		"%":      "",
		"58.3 %": "58.3",
	}
	for in, want := range tests {
		if got := StripPercent(in); got != want {
			t.Errorf("StripPercent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFirstNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"45.2 ± 3.1 ms", "45.2", true},
		{"45,2 ms", "45,2", true},
		{"approx 50", "50", true},
		{"n/a", "", false},
	}
	for _, tt := range tests {
		got, ok := FirstNumber(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FirstNumber(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPickValuesGenericSections(t *testing.T) {
	text := `LV
-----
         Value      Value / BSA
-----
lv edv   150 ml     79.8 ml/m^2
LV EF    60 %
LV EDM   110 g      58.5 g/m^2
-----

RV
-----
         Value      Value / BSA
-----
RV EDV   160 ml     85.1 ml/m^2
RV EF    55%
-----

Atria
-----
             Volume     Value / BSA
-----
LA Maximum   70 ml      37.2 ml/m^2
RA Maximum   65 ml
`

	values := PickValues(SplitSections(text))

	expected := map[string]string{
		entities.KeyLVEDV:     "150 ml",
		entities.KeyLVEDVBSA:  "79.8 ml/m^2",
		entities.KeyLVMass:    "110 g",
		entities.KeyLVMassBSA: "58.5 g/m^2",
		entities.KeyLVEF:      "60",
		entities.KeyRVEDV:     "160 ml",
		entities.KeyRVEDVBSA:  "85.1 ml/m^2",
		entities.KeyRVEF:      "55",
		entities.KeyLA:        "70 ml",
		entities.KeyLABSA:     "37.2 ml/m^2",
		entities.KeyRA:        "65 ml",
		entities.KeyRABSA:     "",
	}
	for key, want := range expected {
		if got, ok := values[key]; !ok || got != want {
			t.Errorf("values[%s] = %q (present=%v), want %q", key, got, ok, want)
		}
	}
	if len(values) != len(expected) {
		t.Errorf("Expected %d values, got %d: %v", len(expected), len(values), values)
	}
}

func TestPickValuesHeaderWithMetricColumn(t *testing.T) {
	text := "LV\n-----\nMetric  Value  Value / BSA\nLV EDV   120 mL   65 mL/m2\n"

	values := PickValues(SplitSections(text))

	if got := values[entities.KeyLVEDV]; got != "120 mL" {
		t.Errorf("Expected LVedv 120 mL, got %q", got)
	}
	if got := values[entities.KeyLVEDVBSA]; got != "65 mL/m2" {
		t.Errorf("Expected LVedvbsa 65 mL/m2, got %q", got)
	}
}

func TestPickValuesMissingColumn(t *testing.T) {
	text := `LV
-----
         Value
         Value
-----
LV EDV   150 ml
-----`
	// a single-column header is not a value header, so nothing is picked
	if values := PickValues(SplitSections(text)); len(values) != 0 {
		t.Errorf("Expected no values, got %v", values)
	}

	text = `LV
-----
         Value      Other
-----
LV EDV   150 ml     x
-----`
	values := PickValues(SplitSections(text))
	if values[entities.KeyLVEDV] != "150 ml" {
		t.Errorf("Expected LVedv, got %v", values)
	}
	if _, ok := values[entities.KeyLVEDVBSA]; ok {
		t.Error("Expected LVedvbsa to be absent without a Value / BSA column")
	}
}

func TestPickValuesOnlyFirstTable(t *testing.T) {
	text := `LV
-----
         Value      Value / BSA
-----
LV EF    60 %
-----
-----
         Value      Value / BSA
-----
LV EDV   999 ml     999 ml/m^2
-----`

	values := PickValues(SplitSections(text))
	if _, ok := values[entities.KeyLVEDV]; ok {
		t.Error("Expected rows of the second table to be ignored")
	}
	if values[entities.KeyLVEF] != "60" {
		t.Errorf("Expected LVEF 60, got %q", values[entities.KeyLVEF])
	}
}

func TestPickValuesT1(t *testing.T) {
	tests := []struct {
		name       string
		row        string
		wantT1     string
		wantECV    string
		wantT1Some bool
	}{
		{"short name", "Myo          1,250 ± 38      28.5 ± 2.0", "1250", "28.5", true},
		{"long name", "Myocardium   1180            26", "1180", "26", true},
		{"upper case", "MYO          1,100", "1100", "", true},
		{"other row", "Blood        1,900           50", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := "T1\nGlobal\n-----\nName         Native T1 (ms)      ECV Value (%)\n-----\n" + tt.row + "\n"
			values := PickValues(SplitSections(text))

			got, ok := values[entities.KeyT1Native]
			if ok != tt.wantT1Some || got != tt.wantT1 {
				t.Errorf("T1_native = %q (present=%v), want %q", got, ok, tt.wantT1)
			}
			if values[entities.KeyECV] != tt.wantECV {
				t.Errorf("ECV = %q, want %q", values[entities.KeyECV], tt.wantECV)
			}
		})
	}
}

func TestPickValuesT2(t *testing.T) {
	text := "T2\nGlobal\n-----\nName         T2 (ms)\n-----\nBasal        47\nmyocardium   45,2 ± 3.1 ms\n"

	values := PickValues(SplitSections(text))
	if values[entities.KeyT2] != "45,2" {
		t.Errorf("Expected T2 45,2, got %q", values[entities.KeyT2])
	}

	values = PickValues(SplitSections("T2\nGlobal\nName   T2 (ms)\nMyo   n/a\n"))
	if _, ok := values[entities.KeyT2]; ok {
		t.Error("Expected T2 to be absent without a number")
	}
}

func TestPickValuesEmptyReport(t *testing.T) {
	if values := PickValues(SplitSections("")); len(values) != 0 {
		t.Errorf("Expected no values, got %v", values)
	}
}
