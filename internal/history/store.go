// Package history persists audit and repair runs in a local SQLite
// database so operators can compare the bank's health over time.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"

	"github.com/liyuwen/bankctl/internal/repair"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	kind          TEXT NOT NULL,
	started_at    TIMESTAMP NOT NULL,
	total         INTEGER NOT NULL,
	passed        INTEGER NOT NULL,
	issue_count   INTEGER NOT NULL,
	warning_count INTEGER NOT NULL,
	report        TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS changes (
	run_id      TEXT NOT NULL REFERENCES runs(id),
	question_id TEXT NOT NULL,
	action      TEXT NOT NULL,
	detail      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_changes_run ON changes(run_id);
`

// Run is one recorded pipeline invocation.
type Run struct {
	ID           string
	Kind         string // "audit" or "repair"
	StartedAt    time.Time
	Total        int
	Passed       int
	IssueCount   int
	WarningCount int
	Report       json.RawMessage
}

// Store wraps the SQLite connection.
type Store struct {
	db *sql.DB
}

// Open connects to the history database at path, applies the
// recommended pragmas and creates the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts a run, assigning an ID when none is set, and
// returns the run ID.
func (s *Store) RecordRun(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Report == nil {
		run.Report = json.RawMessage("{}")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, started_at, total, passed, issue_count, warning_count, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Kind, run.StartedAt.UTC(), run.Total, run.Passed,
		run.IssueCount, run.WarningCount, string(run.Report))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return run.ID, nil
}

// RecordChanges attaches a repair change log to a run.
func (s *Store) RecordChanges(ctx context.Context, runID string, changes []repair.Change) error {
	if len(changes) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO changes (run_id, question_id, action, detail) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range changes {
		if _, err := stmt.ExecContext(ctx, runID, c.QuestionID, c.Action, c.Detail); err != nil {
			return fmt.Errorf("insert change for %s: %w", c.QuestionID, err)
		}
	}
	return tx.Commit()
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, started_at, total, passed, issue_count, warning_count, report
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var reportJSON string
		if err := rows.Scan(&r.ID, &r.Kind, &r.StartedAt, &r.Total, &r.Passed,
			&r.IssueCount, &r.WarningCount, &reportJSON); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Report = json.RawMessage(reportJSON)
		out = append(out, r)
	}
	return out, rows.Err()
}

// LastRun returns the most recent run, or nil when none is recorded.
func (s *Store) LastRun(ctx context.Context) (*Run, error) {
	runs, err := s.Runs(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// Changes returns the change log recorded for a run.
func (s *Store) Changes(ctx context.Context, runID string) ([]repair.Change, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question_id, action, detail FROM changes WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("query changes: %w", err)
	}
	defer rows.Close()

	var out []repair.Change
	for rows.Next() {
		var c repair.Change
		if err := rows.Scan(&c.QuestionID, &c.Action, &c.Detail); err != nil {
			return nil, fmt.Errorf("scan change: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// applyPragmas configures SQLite for single-user batch use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
