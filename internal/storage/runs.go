package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run kinds.
const (
	RunKindExtract = "extract"
	RunKindImpact  = "impact"
)

// Run is one recorded engine run.
type Run struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	BuildSalt  string    `json:"buildSalt,omitempty"`
	BaseRev    string    `json:"baseRev,omitempty"`
	HeadRev    string    `json:"headRev,omitempty"`
	Routes     int       `json:"routes"`
	Nodes      int       `json:"nodes"`
	Edges      int       `json:"edges"`
	Warnings   int       `json:"warnings"`
	DurationMS int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RecordRun inserts a run row. A missing id is filled with a UUID; the
// filled run is returned.
func (db *DB) RecordRun(run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := db.conn.Exec(`
		INSERT INTO runs (id, kind, build_salt, base_rev, head_rev, routes, nodes, edges, warnings, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Kind, run.BuildSalt, run.BaseRev, run.HeadRev,
		run.Routes, run.Nodes, run.Edges, run.Warnings, run.DurationMS, run.CreatedAt,
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to record run: %w", err)
	}

	db.logger.Debug("Run recorded", map[string]interface{}{
		"id":   run.ID,
		"kind": run.Kind,
	})
	return run, nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 returns
// the default of 20.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.conn.Query(`
		SELECT id, kind, build_salt, base_rev, head_rev, routes, nodes, edges, warnings, duration_ms, created_at
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID, &run.Kind, &run.BuildSalt, &run.BaseRev, &run.HeadRev,
			&run.Routes, &run.Nodes, &run.Edges, &run.Warnings, &run.DurationMS, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
