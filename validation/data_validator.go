// Package validation checks report request fields and reference tables
// before they reach the renderer.
package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/giygas/cmr-report/interfaces"
	"github.com/giygas/cmr-report/logging"
	"github.com/giygas/cmr-report/normals"
)

const (
	MinAge     = 0
	MaxAge     = 110
	DefaultAge = 18
)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// ValidateSex accepts M or F in any case and returns it upper-cased
func (v *DataValidatorImpl) ValidateSex(input string) (string, error) {
	sex := strings.ToUpper(strings.TrimSpace(input))
	switch sex {
	case normals.SexMale, normals.SexFemale:
		return sex, nil
	case "":
		return "", errors.New("sex is required: use M or F")
	default:
		return "", fmt.Errorf("invalid sex %q: use M or F", input)
	}
}

// ValidateAge parses an age in years. An empty value means DefaultAge.
func (v *DataValidatorImpl) ValidateAge(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return DefaultAge, nil
	}

	age, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1, fmt.Errorf("invalid age %q: must be a whole number", input)
	}
	if age < MinAge || age > MaxAge {
		return -1, fmt.Errorf("age must be between %d and %d, got %d", MinAge, MaxAge, age)
	}
	return age, nil
}

// ParseFlag reads a boolean form field. Checkboxes submit "on";
// an empty value means defaultValue.
func (v *DataValidatorImpl) ParseFlag(input string, defaultValue bool) (bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	switch trimmed {
	case "":
		return defaultValue, nil
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}

	b, err := strconv.ParseBool(trimmed)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid boolean %q", input)
	}
	return b, nil
}

// ValidateTables checks that freshly loaded reference tables can serve lookups:
// both sexes present, every age column present and at least one row each.
// Mapped variables that are missing are logged but not rejected.
func (v *DataValidatorImpl) ValidateTables(tables *normals.Tables) error {
	if tables == nil {
		return errors.New("reference tables are nil")
	}

	counts := tables.RowCount()
	for _, sex := range []string{normals.SexMale, normals.SexFemale} {
		st, ok := tables.Table(sex)
		if !ok {
			return fmt.Errorf("reference table for sex %s is missing", sex)
		}
		if missing := missingColumns(st.Columns, normals.AgeColumns); len(missing) > 0 {
			return fmt.Errorf("reference table for sex %s lacks age columns %v", sex, missing)
		}
		if counts[sex] == 0 {
			return fmt.Errorf("reference table for sex %s has no rows", sex)
		}

		var missingVars []string
		for _, key := range normals.Keys() {
			variable, _ := normals.VariableFor(key)
			if _, ok := st.Row(variable); !ok {
				missingVars = append(missingVars, variable)
			}
		}
		if len(missingVars) > 0 {
			logging.Warn("Reference table lacks mapped variables",
				"sex", sex,
				"count", len(missingVars),
				"variables", missingVars)
		}
	}

	return nil
}

func missingColumns(columns, required []string) []string {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	var missing []string
	for _, c := range required {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}
