// Package data holds the reference tables shared by all requests. Snapshots
// are swapped atomically so a reload never blocks a report being rendered.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/cmr-report/interfaces"
	"github.com/giygas/cmr-report/logging"
	"github.com/giygas/cmr-report/normals"
)

// Compile-time check to ensure NormalsContainer implements NormalsStore
var _ interfaces.NormalsStore = (*NormalsContainer)(nil)

// NormalsContainer holds the current reference tables
type NormalsContainer struct {
	normals         atomic.Pointer[normals.Tables]
	lastLoaded      atomic.Value // time.Time
	lastModified    atomic.Value // time.Time
	reloading       atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewNormalsContainer creates a container with empty tables
func NewNormalsContainer() *NormalsContainer {
	c := &NormalsContainer{}
	c.normals.Store(normals.NewTables(nil, nil))
	c.lastLoaded.Store(time.Time{})
	c.lastModified.Store(time.Time{})
	c.serverStartTime.Store(time.Time{})
	return c
}

// GetNormals returns the current snapshot. It is never nil.
func (c *NormalsContainer) GetNormals() *normals.Tables {
	if t := c.normals.Load(); t != nil {
		return t
	}

	logging.Warn("Reference tables are not loaded")
	return normals.NewTables(nil, nil)
}

// GetLastLoaded returns when the current snapshot was loaded
func (c *NormalsContainer) GetLastLoaded() time.Time {
	return loadTime(&c.lastLoaded)
}

// GetLastModified returns the file modification time of the current snapshot
func (c *NormalsContainer) GetLastModified() time.Time {
	return loadTime(&c.lastModified)
}

// IsReloading returns true if a reload is in progress
func (c *NormalsContainer) IsReloading() bool {
	return c.reloading.Load()
}

// SetServerStartTime sets the server start time
func (c *NormalsContainer) SetServerStartTime(startTime time.Time) {
	c.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (c *NormalsContainer) GetServerStartTime() time.Time {
	return loadTime(&c.serverStartTime)
}

// UpdateNormals atomically replaces the snapshot
func (c *NormalsContainer) UpdateNormals(tables *normals.Tables, modified time.Time) {
	if tables == nil {
		logging.Warn("Ignoring nil reference tables update")
		return
	}
	c.normals.Store(tables)
	c.lastModified.Store(modified)
	c.lastLoaded.Store(time.Now())
}

// BeginReload marks the start of a reload.
// Returns false if another reload is in progress.
func (c *NormalsContainer) BeginReload() bool {
	return c.reloading.CompareAndSwap(false, true)
}

// EndReload marks the end of a reload
func (c *NormalsContainer) EndReload() {
	c.reloading.Store(false)
}

func loadTime(v *atomic.Value) time.Time {
	if t, ok := v.Load().(time.Time); ok {
		return t
	}
	return time.Time{}
}
