package iocache

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/plotsense/plotsense/schema"
)

func TestTracking(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		testDBPath := filepath.Join(t.TempDir(), "tracking.db")
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		// Test initialization with SQLite backend
		err := InitTracking(schema.SQLiteBackend, testDBPath)
		if err != nil {
			t.Fatalf("Failed to initialize persistence: %v", err)
		}

		// Test that Manager is accessible
		if Manager == nil {
			t.Fatal("Manager is nil")
		}

		// Test that the store is accessible
		if Manager.GetAnalysisStore() == nil {
			t.Fatal("Analysis store is nil")
		}

		// Test cleanup
		CloseTracking()

		// Verify database file was created
		if _, err := os.Stat(testDBPath); os.IsNotExist(err) {
			t.Fatal("Database file was not created")
		}
	})

	t.Run("idempotent setup", func(t *testing.T) {
		testDBPath := filepath.Join(t.TempDir(), "tracking.db")
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		// Multiple initializations should be safe (sync.Once)
		err1 := InitTracking(schema.SQLiteBackend, testDBPath)
		err2 := InitTracking(schema.SQLiteBackend, testDBPath)
		err3 := InitTracking(schema.SQLiteBackend, testDBPath)

		if err1 != nil {
			t.Fatalf("First init failed: %v", err1)
		}
		if err2 != nil {
			t.Fatalf("Second init failed: %v", err2)
		}
		if err3 != nil {
			t.Fatalf("Third init failed: %v", err3)
		}

		// Multiple closes should be safe (sync.Once)
		CloseTracking()
		CloseTracking()
		CloseTracking()
	})

	t.Run("none backend", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		// Test initialization with None backend (no database)
		err := InitTracking(schema.NoneBackend, "")
		if err != nil {
			t.Fatalf("Failed to initialize with none backend: %v", err)
		}

		if Manager.GetAnalysisStore() == nil {
			t.Fatal("Analysis store is nil for none backend")
		}

		CloseTracking()
	})
}

func TestExecuteAnalysisExportMissingOutputFile(t *testing.T) {
	err := ExecuteAnalysisExport("")
	if err == nil {
		t.Fatal("Expected error for missing output file")
	}
	if !strings.Contains(err.Error(), "--output-file is required") {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestExecuteAnalysisExportNoData(t *testing.T) {
	initOnce = sync.Once{}  // Reset for test
	closeOnce = sync.Once{} // Reset for test

	if err := InitTracking(schema.NoneBackend, ""); err != nil {
		t.Fatalf("Failed to initialize with none backend: %v", err)
	}
	defer CloseTracking()

	err := ExecuteAnalysisExport(filepath.Join(t.TempDir(), "export"))
	if err == nil {
		t.Fatal("Expected error for empty analysis store")
	}
	if !strings.Contains(err.Error(), "no analysis data found to export") {
		t.Fatalf("Unexpected error: %v", err)
	}
}
