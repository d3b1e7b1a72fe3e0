package data

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/giygas/cmr-report/logging"
	"github.com/giygas/cmr-report/normals"
)

const testCSV = "h0,h1,h2,h3,h4,h5,h6\n" +
	"Variable,18- 29,30- 39,40- 49,50- 59,60- 69,70+\n" +
	"LVEDV (ml),110-220,105-210,100-200,95-190,90-180,85-170\n"

func testTables(t *testing.T) *normals.Tables {
	t.Helper()
	tables, err := normals.Load(strings.NewReader(testCSV), strings.NewReader(testCSV))
	if err != nil {
		t.Fatalf("Failed to load test tables: %v", err)
	}
	return tables
}

func TestNewNormalsContainer(t *testing.T) {
	logging.InitConsoleLogger("error")

	c := NewNormalsContainer()
	if c == nil {
		t.Fatal("NewNormalsContainer returned nil")
	}

	if c.IsReloading() {
		t.Error("NewNormalsContainer should not be reloading")
	}
	if !c.GetLastLoaded().IsZero() {
		t.Error("NewNormalsContainer should have zero lastLoaded time")
	}
	if !c.GetLastModified().IsZero() {
		t.Error("NewNormalsContainer should have zero lastModified time")
	}

	tables := c.GetNormals()
	if tables == nil {
		t.Fatal("GetNormals should never return nil")
	}
	if counts := tables.RowCount(); counts[normals.SexMale] != 0 || counts[normals.SexFemale] != 0 {
		t.Errorf("Expected empty tables, got %v", counts)
	}
}

func TestUpdateNormals(t *testing.T) {
	logging.InitConsoleLogger("error")

	c := NewNormalsContainer()
	modified := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	c.UpdateNormals(testTables(t), modified)

	if got := c.GetNormals().Lookup("M", 45, "LVedv"); got != "100-200" {
		t.Errorf("Expected 100-200, got %q", got)
	}
	if !c.GetLastModified().Equal(modified) {
		t.Errorf("Expected lastModified %v, got %v", modified, c.GetLastModified())
	}
	if time.Since(c.GetLastLoaded()) > time.Minute {
		t.Error("lastLoaded should be set to the update time")
	}
}

func TestUpdateNormalsIgnoresNil(t *testing.T) {
	logging.InitConsoleLogger("error")

	c := NewNormalsContainer()
	tables := testTables(t)
	c.UpdateNormals(tables, time.Now())
	c.UpdateNormals(nil, time.Now())

	if c.GetNormals() != tables {
		t.Error("A nil update should keep the current snapshot")
	}
}

func TestBeginEndReload(t *testing.T) {
	c := NewNormalsContainer()

	if !c.BeginReload() {
		t.Fatal("First BeginReload should succeed")
	}
	if !c.IsReloading() {
		t.Error("Container should be reloading")
	}
	if c.BeginReload() {
		t.Error("Second BeginReload should fail while reloading")
	}

	c.EndReload()
	if c.IsReloading() {
		t.Error("Container should not be reloading after EndReload")
	}
	if !c.BeginReload() {
		t.Error("BeginReload should succeed after EndReload")
	}
}

func TestServerStartTime(t *testing.T) {
	c := NewNormalsContainer()
	start := time.Now()
	c.SetServerStartTime(start)

	if !c.GetServerStartTime().Equal(start) {
		t.Errorf("Expected %v, got %v", start, c.GetServerStartTime())
	}
}

func TestConcurrentReadsDuringUpdate(t *testing.T) {
	logging.InitConsoleLogger("error")

	c := NewNormalsContainer()
	tables := testTables(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.UpdateNormals(tables, time.Now())
		}()
		go func() {
			defer wg.Done()
			got := c.GetNormals().Lookup("F", 30, "LVedv")
			if got != "" && got != "105-210" {
				t.Errorf("Unexpected lookup during update: %q", got)
			}
		}()
	}
	wg.Wait()

	if got := c.GetNormals().Lookup("F", 30, "LVedv"); got != "105-210" {
		t.Errorf("Expected 105-210 after updates, got %q", got)
	}
}
