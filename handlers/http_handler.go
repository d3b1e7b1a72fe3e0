// Package handlers provides the HTTP handlers of the report builder: the
// upload form, the report API, reference range lookups and health.
package handlers

import (
	"net/http"

	"github.com/giygas/cmr-report/cmrparser/entities"
	"github.com/giygas/cmr-report/interfaces"
	"github.com/giygas/cmr-report/metrics"
	"github.com/giygas/cmr-report/normals"
	"github.com/giygas/cmr-report/renderer"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Output formats of POST /v1/reports.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatHTML = "html"
)

// Compile-time check to ensure HTTPHandlerImpl implements HTTPHandler interface
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	store     interfaces.NormalsStore
	validator interfaces.DataValidator
	extractor interfaces.Extractor
	health    interfaces.HealthChecker
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(
	store interfaces.NormalsStore,
	validator interfaces.DataValidator,
	extractor interfaces.Extractor,
	health interfaces.HealthChecker,
) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		store:     store,
		validator: validator,
		extractor: extractor,
		health:    health,
	}
}

// ReportResponse is the JSON body of a rendered report
type ReportResponse struct {
	ID       string            `json:"id"`
	Report   string            `json:"report"`
	Values   entities.ValueMap `json:"values"`
	Sections []string          `json:"sections"`
}

// NormalsResponse is the JSON body of a reference range lookup
type NormalsResponse struct {
	Sex     string            `json:"sex"`
	Age     int               `json:"age"`
	Bracket string            `json:"bracket"`
	Normals map[string]string `json:"normals"`
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status string         `json:"status"`
	Data   map[string]any `json:"data"`
}

// buildReport runs extraction and rendering for a validated request.
func (h *HTTPHandlerImpl) buildReport(req reportRequest, format string) ReportResponse {
	extraction := h.extractor.Extract(req.Text)
	metrics.ObserveExtraction(extraction)

	report := renderer.Render(renderer.Input{
		Sex:           req.Sex,
		Age:           req.Age,
		Field3T:       req.Field3T,
		Values:        extraction.Values,
		LV:            extraction.LV,
		RV:            extraction.RV,
		IncludeTables: req.IncludeTables,
	}, h.store.GetNormals())
	metrics.ReportsRenderedTotal.WithLabelValues(format).Inc()

	return ReportResponse{
		ID:       uuid.NewString(),
		Report:   report,
		Values:   extraction.Values,
		Sections: extraction.Sections,
	}
}

// CreateReport renders a report from an uploaded or pasted export.
// ?format=text returns the report alone as plain text.
func (h *HTTPHandlerImpl) CreateReport(w http.ResponseWriter, r *http.Request) {
	format := FormatJSON
	switch r.URL.Query().Get("format") {
	case "", FormatJSON:
	case FormatText:
		format = FormatText
	default:
		RespondWithError(w, http.StatusBadRequest, "format must be json or text")
		return
	}

	req, err := parseReportRequest(r, h.validator, false)
	if err != nil {
		RespondWithError(w, statusFor(err), err.Error())
		return
	}

	resp := h.buildReport(req, format)
	w.Header().Set("X-Report-ID", resp.ID)

	if format == FormatText {
		RespondWithText(w, http.StatusOK, resp.Report)
		return
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// ServeNormals returns every mapped reference range for a sex and age
func (h *HTTPHandlerImpl) ServeNormals(w http.ResponseWriter, r *http.Request) {
	sex, err := h.validator.ValidateSex(chi.URLParam(r, "sex"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ageParam := chi.URLParam(r, "age")
	if ageParam == "" {
		RespondWithError(w, http.StatusBadRequest, "age is required")
		return
	}
	age, err := h.validator.ValidateAge(ageParam)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.store.GetLastModified().IsZero() {
		w.Header().Set("Last-Modified", h.store.GetLastModified().UTC().Format(http.TimeFormat))
	}

	RespondWithJSON(w, http.StatusOK, NormalsResponse{
		Sex:     sex,
		Age:     age,
		Bracket: normals.BracketFor(age),
		Normals: h.store.GetNormals().LookupAll(sex, age),
	})
}

// HealthCheck returns the health status of the reference tables
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, data, httpStatus := h.health.HealthCheck()
	RespondWithJSON(w, httpStatus, HealthResponse{Status: status, Data: data})
}
