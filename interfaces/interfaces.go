// Package interfaces defines the contracts between the packages of the report
// builder, so handlers, scheduler and health checks can be tested with fakes.
package interfaces

import (
	"net/http"
	"time"

	"github.com/giygas/cmr-report/cmrparser/entities"
	"github.com/giygas/cmr-report/normals"
)

// Extractor turns report text into extracted values and tables.
type Extractor interface {
	Extract(text string) entities.Extraction
}

// NormalsLookup answers reference range lookups.
// *normals.Tables satisfies it.
type NormalsLookup interface {
	Lookup(sex string, age int, key string) string
	LookupAll(sex string, age int) map[string]string
}

// NormalsStore holds the current reference tables. Each snapshot is immutable;
// a reload swaps the whole snapshot.
type NormalsStore interface {
	GetNormals() *normals.Tables
	GetLastLoaded() time.Time
	GetLastModified() time.Time
	IsReloading() bool
	GetServerStartTime() time.Time

	UpdateNormals(tables *normals.Tables, modified time.Time)
	BeginReload() bool
	EndReload()
}

// NormalsLoader reads reference tables from their source.
type NormalsLoader interface {
	Load() (*normals.Tables, error)
	ModTime() (time.Time, error)
}

// LogCleaner removes log files past their retention period.
type LogCleaner interface {
	Cleanup() error
}

// Scheduler defines the contract for background jobs.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker reports service health for the /health endpoint.
type HealthChecker interface {
	HealthCheck() (status string, details map[string]any, httpStatus int)
}

// DataValidator validates request fields and freshly loaded reference tables.
type DataValidator interface {
	ValidateSex(input string) (string, error)
	ValidateAge(input string) (int, error)
	ParseFlag(input string, defaultValue bool) (bool, error)
	ValidateTables(tables *normals.Tables) error
}

// HTTPHandler defines the contract for HTTP request handlers.
type HTTPHandler interface {
	ServeForm(w http.ResponseWriter, r *http.Request)
	SubmitForm(w http.ResponseWriter, r *http.Request)
	CreateReport(w http.ResponseWriter, r *http.Request)
	ServeNormals(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}
