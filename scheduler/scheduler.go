// Package scheduler keeps the reference tables current and the log directory
// tidy. Tables are loaded once at start, then reloaded whenever their files
// change on disk. A reload that fails or does not validate leaves the
// previous snapshot in place.
package scheduler

import (
	"fmt"
	"time"

	"github.com/giygas/cmr-report/interfaces"
	"github.com/giygas/cmr-report/logging"
	"github.com/giygas/cmr-report/metrics"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Reload outcomes, used as metric labels.
const (
	ReloadSuccess   = "success"
	ReloadUnchanged = "unchanged"
	ReloadFailed    = "failed"
	ReloadSkipped   = "skipped"
)

// CleanupAt is the daily time of the log cleanup job.
const CleanupAt = "03:00"

// Scheduler handles reference table reloads and log cleanup using dependency injection
type Scheduler struct {
	store       interfaces.NormalsStore
	loader      interfaces.NormalsLoader
	validator   interfaces.DataValidator
	cleaner     interfaces.LogCleaner
	reloadEvery time.Duration
	scheduler   *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies.
// cleaner may be nil when logs are not written to disk.
func NewScheduler(
	store interfaces.NormalsStore,
	loader interfaces.NormalsLoader,
	validator interfaces.DataValidator,
	cleaner interfaces.LogCleaner,
	reloadEvery time.Duration,
) *Scheduler {
	return &Scheduler{
		store:       store,
		loader:      loader,
		validator:   validator,
		cleaner:     cleaner,
		reloadEvery: reloadEvery,
		scheduler:   gocron.NewScheduler(time.Local),
	}
}

// Start performs the initial load and schedules the background jobs
func (s *Scheduler) Start() error {
	if err := s.Reload(); err != nil {
		logging.Error("Failed to perform initial reference table load", "error", err)
		return fmt.Errorf("initial reference table load failed: %w", err)
	}

	_, err := s.scheduler.Every(s.reloadEvery).SingletonMode().WaitForSchedule().Do(func() {
		if err := s.ReloadIfChanged(); err != nil {
			logging.Error("Failed to reload reference tables", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule reference table reloads", "error", err)
		return fmt.Errorf("failed to schedule reloads: %w", err)
	}

	if s.cleaner != nil {
		_, err = s.scheduler.Every(1).Days().At(CleanupAt).Do(func() {
			if err := s.cleaner.Cleanup(); err != nil {
				logging.Warn("Log cleanup failed", "error", err)
			}
		})
		if err != nil {
			logging.Error("Failed to schedule log cleanup", "error", err)
			return fmt.Errorf("failed to schedule log cleanup: %w", err)
		}
	}

	s.scheduler.StartAsync()
	logging.Info("Scheduler started", "reload_every", s.reloadEvery.String(), "jobs", len(s.scheduler.Jobs()))

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// ReloadIfChanged reloads the tables when their files are newer than the
// current snapshot.
func (s *Scheduler) ReloadIfChanged() error {
	modified, err := s.loader.ModTime()
	if err != nil {
		metrics.NormalsReloadTotal.WithLabelValues(ReloadFailed).Inc()
		return fmt.Errorf("failed to check reference tables: %w", err)
	}

	if modified.Equal(s.store.GetLastModified()) {
		metrics.NormalsReloadTotal.WithLabelValues(ReloadUnchanged).Inc()
		logging.Debug("Reference tables unchanged", "modified", modified.Format(time.RFC3339))
		return nil
	}

	logging.Info("Reference tables changed on disk", "modified", modified.Format(time.RFC3339))
	return s.reload(modified)
}

// Reload loads the tables unconditionally
func (s *Scheduler) Reload() error {
	modified, err := s.loader.ModTime()
	if err != nil {
		metrics.NormalsReloadTotal.WithLabelValues(ReloadFailed).Inc()
		return fmt.Errorf("failed to check reference tables: %w", err)
	}
	return s.reload(modified)
}

func (s *Scheduler) reload(modified time.Time) error {
	// Prevent concurrent reloads
	if !s.store.BeginReload() {
		metrics.NormalsReloadTotal.WithLabelValues(ReloadSkipped).Inc()
		logging.Info("Reload already in progress, skipping...")
		return nil
	}
	defer s.store.EndReload()

	start := time.Now()

	tables, err := s.loader.Load()
	if err != nil {
		metrics.NormalsReloadTotal.WithLabelValues(ReloadFailed).Inc()
		return fmt.Errorf("failed to load reference tables: %w", err)
	}

	if err := s.validator.ValidateTables(tables); err != nil {
		metrics.NormalsReloadTotal.WithLabelValues(ReloadFailed).Inc()
		return fmt.Errorf("reference tables rejected: %w", err)
	}

	s.store.UpdateNormals(tables, modified)
	metrics.NormalsReloadTotal.WithLabelValues(ReloadSuccess).Inc()

	logging.Info("Reference tables reloaded", "duration", time.Since(start).String())
	return nil
}
