// Package health reports whether the reference tables are loaded and usable.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/cmr-report/interfaces"
	"github.com/giygas/cmr-report/normals"
)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	store interfaces.NormalsStore
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(store interfaces.NormalsStore) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		store: store,
	}
}

// HealthCheck returns the status served by /health.
// Reports can still be rendered without reference tables, but the normal
// ranges would be blank, so a missing table makes the service unhealthy.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	counts := h.store.GetNormals().RowCount()
	maleRows := counts[normals.SexMale]
	femaleRows := counts[normals.SexFemale]
	lastLoaded := h.store.GetLastLoaded()
	isReloading := h.store.IsReloading()

	switch {
	case maleRows == 0 && femaleRows == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case maleRows == 0 || femaleRows == 0:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"male_rows":    maleRows,
		"female_rows":  femaleRows,
		"is_reloading": isReloading,
	}
	if !lastLoaded.IsZero() {
		data["last_loaded"] = lastLoaded.Format(time.RFC3339)
		data["last_modified"] = h.store.GetLastModified().Format(time.RFC3339)
	}
	if start := h.store.GetServerStartTime(); !start.IsZero() {
		data["uptime_hours"] = math.Round(time.Since(start).Hours()*10) / 10
	}

	return status, data, httpStatus
}
