package normals

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/giygas/cmr-report/logging"
)

// ParseTable reads a reference table in CSV form.
//
// The first record is a generic header written by the export tool and is
// discarded; the second record holds the real column names. The first column
// is the lookup key and is renamed "Variable" unless such a column exists.
// Missing cells read as empty strings and every cell is trimmed.
func ParseTable(r io.Reader) (*SexTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read reference table: %w", err)
	}
	if len(records) < 2 {
		return nil, errors.New("reference table has no header row")
	}

	columns := promoteHeader(records[1])

	rows := make([]Row, 0, len(records)-2)
	skippedRows := 0
	for _, record := range records[2:] {
		if isEmptyRecord(record) {
			skippedRows++
			continue
		}
		row := Row{Cells: make(map[string]string, len(columns))}
		for i, name := range columns {
			cell := ""
			if i < len(record) {
				cell = strings.TrimSpace(record[i])
			}
			// duplicate column names keep the first cell
			if _, exists := row.Cells[name]; !exists {
				row.Cells[name] = cell
			}
		}
		row.Variable = row.Cells[VariableColumn]
		rows = append(rows, row)
	}

	if skippedRows > 0 {
		logging.Debug("Reference table skip statistics", "empty_rows", skippedRows, "rows_parsed", len(rows))
	}

	sections := splitSections(rows, columns)
	return &SexTable{
		Columns:  columns,
		Sections: sections,
		index:    buildIndex(sections),
	}, nil
}

// promoteHeader trims the header cells and names the key column.
func promoteHeader(record []string) []string {
	columns := make([]string, len(record))
	hasVariable := false
	for i, c := range record {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
		if columns[i] == VariableColumn {
			hasVariable = true
		}
	}
	if !hasVariable && len(columns) > 0 {
		first := columns[0]
		for i, c := range columns {
			if c == first {
				columns[i] = VariableColumn
			}
		}
	}
	return columns
}

func isEmptyRecord(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// LoadFile reads one reference table from disk.
func LoadFile(path string) (*SexTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference table %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("Failed to close reference table", "path", path, "error", err)
		}
	}()

	table, err := ParseTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Load parses the male and female tables from readers.
func Load(male, female io.Reader) (*Tables, error) {
	maleTable, err := ParseTable(male)
	if err != nil {
		return nil, fmt.Errorf("failed to parse male reference table: %w", err)
	}
	femaleTable, err := ParseTable(female)
	if err != nil {
		return nil, fmt.Errorf("failed to parse female reference table: %w", err)
	}
	return NewTables(maleTable, femaleTable), nil
}

// LoadDir reads dir/maleFile and dir/femaleFile.
func LoadDir(dir, maleFile, femaleFile string) (*Tables, error) {
	male, err := LoadFile(filepath.Join(dir, maleFile))
	if err != nil {
		return nil, fmt.Errorf("failed to load male reference table: %w", err)
	}
	female, err := LoadFile(filepath.Join(dir, femaleFile))
	if err != nil {
		return nil, fmt.Errorf("failed to load female reference table: %w", err)
	}
	return NewTables(male, female), nil
}

// FileLoader loads the male and female tables from a directory.
type FileLoader struct {
	Dir        string
	MaleFile   string
	FemaleFile string
}

// NewFileLoader creates a loader for dir/maleFile and dir/femaleFile.
func NewFileLoader(dir, maleFile, femaleFile string) *FileLoader {
	return &FileLoader{Dir: dir, MaleFile: maleFile, FemaleFile: femaleFile}
}

// Paths returns the male and female table paths.
func (l *FileLoader) Paths() (string, string) {
	return filepath.Join(l.Dir, l.MaleFile), filepath.Join(l.Dir, l.FemaleFile)
}

// Load reads both tables.
func (l *FileLoader) Load() (*Tables, error) {
	tables, err := LoadDir(l.Dir, l.MaleFile, l.FemaleFile)
	if err != nil {
		return nil, err
	}

	counts := tables.RowCount()
	logging.Info("Reference tables loaded",
		"dir", l.Dir,
		"male_rows", counts[SexMale],
		"female_rows", counts[SexFemale])

	return tables, nil
}

// ModTime returns the latest modification time of the two table files.
func (l *FileLoader) ModTime() (time.Time, error) {
	var latest time.Time
	malePath, femalePath := l.Paths()
	for _, p := range []string{malePath, femalePath} {
		info, err := os.Stat(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	return latest, nil
}
