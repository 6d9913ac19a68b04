package storage

import (
	"path/filepath"
	"testing"
	"time"

	"routelens/internal/logging"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	logger := logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.ErrorLevel})
	db, err := Open(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenCreatesStateDir(t *testing.T) {
	db := openTestDB(t)
	if filepath.Base(filepath.Dir(db.Path())) != ".routelens" {
		t.Errorf("database should live under .routelens, got %s", db.Path())
	}
}

func TestRecordAndListRuns(t *testing.T) {
	db := openTestDB(t)

	first, err := db.RecordRun(Run{
		Kind:      RunKindExtract,
		BuildSalt: "salt-1",
		Routes:    4,
		Nodes:     7,
		Edges:     5,
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if first.ID == "" {
		t.Error("RecordRun should fill a missing id")
	}

	_, err = db.RecordRun(Run{
		Kind:      RunKindImpact,
		BaseRev:   "HEAD~1",
		HeadRev:   "HEAD",
		Routes:    2,
		Warnings:  1,
		CreatedAt: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns returned %d runs, want 2", len(runs))
	}
	if runs[0].Kind != RunKindImpact {
		t.Errorf("newest run first: got %s, want impact", runs[0].Kind)
	}
	if runs[1].BuildSalt != "salt-1" {
		t.Errorf("BuildSalt = %s, want salt-1", runs[1].BuildSalt)
	}
}

func TestListRunsLimit(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 5; i++ {
		if _, err := db.RecordRun(Run{Kind: RunKindExtract}); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	runs, err := db.ListRuns(3)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("ListRuns(3) returned %d runs", len(runs))
	}
}
