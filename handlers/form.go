package handlers

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"github.com/giygas/cmr-report/cmrparser/entities"
	"github.com/giygas/cmr-report/logging"
	"github.com/giygas/cmr-report/validation"
)

//go:embed templates/form.html
var formFS embed.FS

var formTemplate = template.Must(template.ParseFS(formFS, "templates/form.html"))

// formPage is the view handed to the form template.
type formPage struct {
	Error         string
	Sex           string
	Age           string
	Field3T       bool
	IncludeTables bool
	Text          string

	ReportID  string
	Report    string
	Missing   []string
	DebugJSON string
}

// ServeForm renders the empty upload form
func (h *HTTPHandlerImpl) ServeForm(w http.ResponseWriter, r *http.Request) {
	renderForm(w, http.StatusOK, formPage{
		Age:           strconv.Itoa(validation.DefaultAge),
		IncludeTables: true,
	})
}

// SubmitForm renders the report below the form, with the extracted values
// shown as JSON for debugging.
func (h *HTTPHandlerImpl) SubmitForm(w http.ResponseWriter, r *http.Request) {
	req, err := parseReportRequest(r, h.validator, true)

	page := formPage{
		Sex:           r.FormValue(fieldSex),
		Age:           r.FormValue(fieldAge),
		Field3T:       req.Field3T,
		IncludeTables: req.IncludeTables,
		Text:          r.FormValue(fieldText),
	}
	if err != nil {
		page.Error = err.Error()
		renderForm(w, statusFor(err), page)
		return
	}

	resp := h.buildReport(req, FormatHTML)
	page.Sex = req.Sex
	page.Age = strconv.Itoa(req.Age)
	page.ReportID = resp.ID
	page.Report = resp.Report
	page.Missing = entities.MissingSections(resp.Sections)

	debug, err := json.MarshalIndent(resp.Values, "", "  ")
	if err != nil {
		logging.Warn("Failed to marshal extracted values", "error", err)
	}
	page.DebugJSON = string(debug)

	renderForm(w, http.StatusOK, page)
}

func renderForm(w http.ResponseWriter, code int, page formPage) {
	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, page); err != nil {
		logging.Error("Failed to execute form template", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Debug("Failed to write form page", "error", err)
	}
}
