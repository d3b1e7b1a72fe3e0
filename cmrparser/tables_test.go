package cmrparser

import (
	"reflect"
	"strings"
	"testing"
)

func lines(text string) []string {
	return strings.Split(text, "\n")
}

func TestExtractTablesSingleRow(t *testing.T) {
	section := lines(`-----
Value   Value / BSA
-----
LV EDV   150 ml   80 ml/m^2
-----`)

	tables := ExtractTables(section)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}

	table := tables[0]
	if want := []string{"Metric", "Value", "Value / BSA"}; !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("Expected columns %q, got %q", want, table.Columns)
	}
	if want := [][]string{{"LV EDV", "150 ml", "80 ml/m^2"}}; !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Expected rows %q, got %q", want, table.Rows)
	}
}

func TestExtractTablesHeaderWithMetricColumn(t *testing.T) {
	section := lines("-----\nMetric  Value  Value / BSA\nLV EDV   120 mL   65 mL/m2")

	tables := ExtractTables(section)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}

	table := tables[0]
	if want := []string{"Metric", "Value", "Value / BSA"}; !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("Expected columns %q, got %q", want, table.Columns)
	}
	if want := [][]string{{"LV EDV", "120 mL", "65 mL/m2"}}; !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Expected rows %q, got %q", want, table.Rows)
	}
}

func TestExtractTablesPadsAndTruncatesRows(t *testing.T) {
	section := lines(`-----
Value   Value / BSA
-----
LV EF   60 %
LV EDV   150 ml   80 ml/m^2   extra
-----`)

	tables := ExtractTables(section)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}
	for _, row := range tables[0].Rows {
		if len(row) != len(tables[0].Columns) {
			t.Errorf("Row %q does not match %d columns", row, len(tables[0].Columns))
		}
	}
	if got := tables[0].Rows[0][2]; got != "" {
		t.Errorf("Expected padded cell, got %q", got)
	}
	if got := tables[0].Rows[1][2]; got != "80 ml/m^2" {
		t.Errorf("Expected extra cells dropped, got %q", got)
	}
}

func TestExtractTablesRowRun(t *testing.T) {
	section := lines(`-----

Value   Value / BSA
-----
LV EDV   150 ml   80 ml/m^2

LV ESV   60 ml   32 ml/m^2
Comment line
LV EF   60 %`)

	tables := ExtractTables(section)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}
	if len(tables[0].Rows) != 2 {
		t.Errorf("Expected blank lines skipped and the run to stop at a single-cell line, got %q", tables[0].Rows)
	}
}

func TestExtractTablesRejectsNonValueHeaders(t *testing.T) {
	section := lines(`-----
Name   Comment
-----
a   b
------
Volume   Value / BSA
------
LA Maximum   70 ml   37 ml/m^2`)

	tables := ExtractTables(section)
	if len(tables) != 1 {
		t.Fatalf("Expected only the Volume table, got %d tables", len(tables))
	}
	if tables[0].Columns[1] != "Volume" {
		t.Errorf("Unexpected columns %q", tables[0].Columns)
	}
}

func TestExtractTablesMultipleTables(t *testing.T) {
	section := lines(`Function
-----
Value   Value / BSA
-----
LV EDV   150 ml   80 ml/m^2
-----

Segments
-----
Value   Value / BSA
-----
LV EDV   999 ml   999 ml/m^2
-----`)

	tables := ExtractTables(section)
	if len(tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(tables))
	}
	if tables[0].Rows[0][1] != "150 ml" || tables[1].Rows[0][1] != "999 ml" {
		t.Errorf("Tables out of order: %q, %q", tables[0].Rows, tables[1].Rows)
	}
}

func TestExtractTablesEmpty(t *testing.T) {
	testCases := []struct {
		name    string
		section []string
	}{
		{"no lines", nil},
		{"no separator", lines("Value   Value / BSA\nLV EDV   150 ml   80")},
		{"separator at end", lines("text\n-----")},
		{"header without rows", lines("-----\nValue   Value / BSA\n-----\n-----")},
		{"only blank lines after separator", lines("-----\n\n   \n")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tables := ExtractTables(tc.section); len(tables) != 0 {
				t.Errorf("Expected no tables, got %d", len(tables))
			}
		})
	}
}

func TestExtractGlobalTable(t *testing.T) {
	section := lines(`Segmental values
Global
-----
-----
Name   Native T1 (ms)   ECV Value (%)
-----
Basal   1,240 ± 41   27.9 ± 2.2
Myo   1,250 ± 38

Later   text`)

	table, ok := ExtractGlobalTable(section)
	if !ok {
		t.Fatal("Expected a global table")
	}
	if want := []string{"Name", "Native T1 (ms)", "ECV Value (%)"}; !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("Expected columns %q, got %q", want, table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Expected rows to stop at the blank line, got %q", table.Rows)
	}
	if got := table.Rows[1]; !reflect.DeepEqual(got, []string{"Myo", "1,250 ± 38", ""}) {
		t.Errorf("Expected padded Myo row, got %q", got)
	}
}

func TestExtractGlobalTableSkipsEmptyAnchors(t *testing.T) {
	section := lines(`Global mean
Name   T2 (ms)
-----

Global
Name   T2 (ms)
-----
Myocardium   45.2`)

	table, ok := ExtractGlobalTable(section)
	if !ok {
		t.Fatal("Expected the second anchor to yield a table")
	}
	if table.Rows[0][0] != "Myocardium" {
		t.Errorf("Unexpected rows %q", table.Rows)
	}
}

func TestExtractGlobalTableMissing(t *testing.T) {
	testCases := []struct {
		name    string
		section []string
	}{
		{"no anchor", lines("Name   T2 (ms)\nMyo   45")},
		{"anchor at end", lines("Global")},
		{"anchor then separators", lines("Global\n-----\n-----")},
		{"no rows", lines("Global\nName   T2 (ms)\n-----\n")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := ExtractGlobalTable(tc.section); ok {
				t.Error("Expected no global table")
			}
		})
	}
}
