// Package logging sets up structured logging for the report builder: console
// text output, JSON output to weekly rotating files and an HTTP request logger.
package logging

import (
	"log/slog"
	"os"

	"github.com/giygas/cmr-report/config"
)

type LoggingService struct {
	Logger   *slog.Logger
	Rotating *RotatingLogger
}

var DefaultLoggingService *LoggingService

// fallback is used until InitLogger runs
var fallback = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// InitLogger initializes the global logger from the configuration
func InitLogger(cfg *config.Config) *LoggingService {
	logger, rotating := SetupLogger(cfg.LogDir, parseLogLevel(cfg.LogLevel), cfg.LogRetentionWeeks, cfg.MaxLogFileSize)
	DefaultLoggingService = &LoggingService{
		Logger:   logger,
		Rotating: rotating,
	}
	slog.SetDefault(logger)
	return DefaultLoggingService
}

// InitConsoleLogger initializes a console-only logger, used by the CLI and tests
func InitConsoleLogger(level string) *LoggingService {
	logger, _ := SetupLogger("", parseLogLevel(level), 0, 0)
	DefaultLoggingService = &LoggingService{Logger: logger}
	slog.SetDefault(logger)
	return DefaultLoggingService
}

// Cleanup removes expired log files. It is a no-op without a log directory.
func (s *LoggingService) Cleanup() error {
	if s == nil || s.Rotating == nil {
		return nil
	}
	return s.Rotating.Cleanup()
}

// Close flushes and closes the log file
func (s *LoggingService) Close() error {
	if s == nil || s.Rotating == nil {
		return nil
	}
	return s.Rotating.Close()
}

// Logger returns the active logger, or a console fallback before initialization
func Logger() *slog.Logger {
	return current()
}

func current() *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return fallback
	}
	return DefaultLoggingService.Logger
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}
