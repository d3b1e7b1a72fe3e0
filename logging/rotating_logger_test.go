package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRotatingLoggerWritesWeeklyFile(t *testing.T) {
	dir := t.TempDir()
	rl := NewRotatingLogger(dir, 1, 0)
	defer rl.Close()

	if _, err := rl.Write([]byte("first line\n")); err != nil {
		t.Fatalf("Failed to write to log: %v", err)
	}

	path := filepath.Join(dir, logFilePrefix+getWeekKey(time.Now())+".log")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected log file %s: %v", path, err)
	}
	if !strings.Contains(string(content), "first line") {
		t.Errorf("Log file does not contain message: %s", content)
	}
}

func TestRotatingLoggerRotatesOnSize(t *testing.T) {
	dir := t.TempDir()
	rl := NewRotatingLogger(dir, 1, 32)
	defer rl.Close()

	line := []byte(strings.Repeat("x", 20) + "\n")
	for i := 0; i < 3; i++ {
		if _, err := rl.Write(line); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}

	week := getWeekKey(time.Now())
	for _, name := range []string{logFilePrefix + week + ".log", logFilePrefix + week + "_01.log", logFilePrefix + week + "_02.log"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}
}

func TestRotatingLoggerCleanup(t *testing.T) {
	dir := t.TempDir()
	rl := NewRotatingLogger(dir, 1, 0)

	old := filepath.Join(dir, logFilePrefix+"2020-W01.log")
	recent := filepath.Join(dir, logFilePrefix+"2099-W01.log")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, recent, other} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-30 * 24 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(other, past, past); err != nil {
		t.Fatal(err)
	}

	if err := rl.Cleanup(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Errorf("Expected %s to be removed", old)
	}
	if _, err := os.Stat(recent); err != nil {
		t.Errorf("Expected %s to be kept", recent)
	}
	if _, err := os.Stat(other); err != nil {
		t.Errorf("Expected unrelated file to be kept")
	}
}

func TestGetWeekKey(t *testing.T) {
	got := getWeekKey(time.Date(2025, 10, 7, 12, 0, 0, 0, time.UTC))
	if got != "2025-W41" {
		t.Errorf("Expected week key 2025-W41, got %s", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSetupLoggerWithoutDirIsConsoleOnly(t *testing.T) {
	logger, rotating := SetupLogger("", slog.LevelInfo, 1, 0)
	if logger == nil {
		t.Fatal("Expected a logger")
	}
	if rotating != nil {
		t.Error("Expected no rotating logger without a directory")
	}
}

func TestLoggingServiceCleanupWithoutFile(t *testing.T) {
	var s *LoggingService
	if err := s.Cleanup(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if err := (&LoggingService{}).Close(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}
