package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAndRecent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Record(AnalysisRun{
		FilePath:   "main.xs",
		StartedAt:  time.Unix(0, 0),
		DurationMs: 12,
		ErrorCount: 0,
	}); err != nil {
		t.Fatal(err)
	}

	runs, err := store.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].FilePath != "main.xs" {
		t.Fatalf("unexpected file path: %q", runs[0].FilePath)
	}
}

func TestDefaultPathPrefersXDG(t *testing.T) {
	got := DefaultPath("/home/user/.state", "/tmp")
	want := "/home/user/.state/xs-check/history.db"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDefaultPathFallsBackToTemp(t *testing.T) {
	got := DefaultPath("", "/tmp")
	want := "/tmp/xs-check/history.db"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
