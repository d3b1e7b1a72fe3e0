package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/giygas/cmr-report/cmrparser"
	"github.com/giygas/cmr-report/interfaces"
)

// Form field names shared by the HTML form and the API.
const (
	fieldFile          = "file"
	fieldText          = "text"
	fieldSex           = "sex"
	fieldAge           = "age"
	fieldField3T       = "field3t"
	fieldIncludeTables = "include_tables"
)

// maxMultipartMemory is the part of a multipart body kept in memory; the
// rest is spooled to temporary files by net/http.
const maxMultipartMemory = 1 << 20

// errBodyTooLarge marks requests rejected by http.MaxBytesReader.
var errBodyTooLarge = errors.New("request body too large")

// reportRequest is a validated report request.
type reportRequest struct {
	Text          string
	Sex           string
	Age           int
	Field3T       bool
	IncludeTables bool
}

// parseReportRequest reads the report text and options from a multipart or
// urlencoded form. An uploaded file wins over the text field.
// Unchecked HTML checkboxes are not submitted at all, so with fromCheckboxes
// an absent include_tables means false instead of the API default of true.
func parseReportRequest(r *http.Request, validator interfaces.DataValidator, fromCheckboxes bool) (reportRequest, error) {
	var req reportRequest

	if err := parseForm(r); err != nil {
		return req, err
	}

	text, err := readReportText(r)
	if err != nil {
		return req, err
	}
	req.Text = text

	if req.Sex, err = validator.ValidateSex(r.FormValue(fieldSex)); err != nil {
		return req, err
	}
	if req.Age, err = validator.ValidateAge(r.FormValue(fieldAge)); err != nil {
		return req, err
	}
	if req.Field3T, err = validator.ParseFlag(r.FormValue(fieldField3T), false); err != nil {
		return req, fmt.Errorf("%s: %w", fieldField3T, err)
	}
	if req.IncludeTables, err = validator.ParseFlag(r.FormValue(fieldIncludeTables), !fromCheckboxes); err != nil {
		return req, fmt.Errorf("%s: %w", fieldIncludeTables, err)
	}

	return req, nil
}

func parseForm(r *http.Request) error {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxMultipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errBodyTooLarge
	}
	return fmt.Errorf("invalid form: %w", err)
}

// readReportText returns the uploaded file decoded to UTF-8, or the text field.
func readReportText(r *http.Request) (string, error) {
	if r.MultipartForm != nil && len(r.MultipartForm.File[fieldFile]) > 0 {
		f, err := r.MultipartForm.File[fieldFile][0].Open()
		if err != nil {
			return "", fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer f.Close()

		text, err := cmrparser.ReadText(f)
		if err != nil {
			return "", fmt.Errorf("failed to read uploaded file: %w", err)
		}
		return text, nil
	}

	// pasted text goes through the same decoding as uploads
	return cmrparser.DecodeText([]byte(r.FormValue(fieldText))), nil
}

// statusFor maps a request error to its HTTP status.
func statusFor(err error) int {
	if errors.Is(err, errBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
