// Package history keeps a local append-only journal of status transitions
// and checkpoint runs in SQLite. The journal is best-effort observability:
// it never gates a workflow operation, and a missing journal is not an
// error for readers.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/001_initial_schema.sql
var migrationV1 string

// Journal records workflow events in a project-local SQLite database.
type Journal struct {
	dbPath string
	db     *sql.DB
}

// Open creates or opens the journal database and applies migrations.
func Open(dbPath string) (*Journal, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	j := &Journal{dbPath: dbPath, db: db}
	if err := j.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return j, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	_, err := j.db.Exec(`CREATE TABLE IF NOT EXISTS history_schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	var currentVersion int
	row := j.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM history_schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("checking schema version: %w", err)
	}

	migrations := []string{migrationV1}
	for i, migration := range migrations {
		version := i + 1
		if version <= currentVersion {
			continue
		}

		tx, err := j.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration transaction: %w", err)
		}
		for _, stmt := range splitStatements(migration) {
			if _, err := tx.Exec(stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("executing migration v%d: %w", version, err)
			}
		}
		if _, err := tx.Exec(
			"INSERT INTO history_schema_migrations (version, applied_at) VALUES (?, ?)",
			version, time.Now().UTC().Format(time.RFC3339),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration v%d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration v%d: %w", version, err)
		}
	}
	return nil
}

// splitStatements splits a migration file into individual statements.
func splitStatements(migration string) []string {
	var out []string
	for _, stmt := range strings.Split(migration, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// Transition is one recorded status change.
type Transition struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	RecordedAt time.Time `json:"recorded_at"`
}

// CheckpointRun is one recorded finalize execution.
type CheckpointRun struct {
	ID         string    `json:"id"`
	Scope      string    `json:"scope"`
	Checkpoint string    `json:"checkpoint"`
	Status     string    `json:"status"`
	Batches    int       `json:"batches"`
	Committed  int       `json:"committed"`
	Pushed     bool      `json:"pushed"`
	PushError  string    `json:"push_error,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// RecordTransition appends a status change. The returned id identifies the
// journal entry.
func (j *Journal) RecordTransition(ctx context.Context, itemID, from, to string) (string, error) {
	id := uuid.NewString()
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO status_transitions (id, item_id, from_status, to_status, recorded_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, itemID, from, to, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("recording transition: %w", err)
	}
	return id, nil
}

// RecordCheckpoint appends a finalize run. The run id is assigned here and
// returned for reporting.
func (j *Journal) RecordCheckpoint(ctx context.Context, run CheckpointRun) (string, error) {
	id := uuid.NewString()
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO checkpoint_runs
		 (id, scope, checkpoint_key, status, batches, committed, pushed, push_error, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, run.Scope, run.Checkpoint, run.Status, run.Batches, run.Committed,
		boolToInt(run.Pushed), run.PushError, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("recording checkpoint run: %w", err)
	}
	return id, nil
}

// RecentTransitions returns the newest status changes, newest first.
func (j *Journal) RecentTransitions(ctx context.Context, limit int) ([]Transition, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, item_id, from_status, to_status, recorded_at
		 FROM status_transitions ORDER BY recorded_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying transitions: %w", err)
	}
	defer rows.Close()

	var out []Transition
	for rows.Next() {
		var t Transition
		var ts string
		if err := rows.Scan(&t.ID, &t.ItemID, &t.FromStatus, &t.ToStatus, &ts); err != nil {
			return nil, fmt.Errorf("scanning transition: %w", err)
		}
		t.RecordedAt, _ = time.Parse(time.RFC3339Nano, ts)
		out = append(out, t)
	}
	return out, rows.Err()
}

// RecentCheckpoints returns the newest finalize runs, newest first.
func (j *Journal) RecentCheckpoints(ctx context.Context, limit int) ([]CheckpointRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, scope, checkpoint_key, status, batches, committed, pushed, push_error, recorded_at
		 FROM checkpoint_runs ORDER BY recorded_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying checkpoint runs: %w", err)
	}
	defer rows.Close()

	var out []CheckpointRun
	for rows.Next() {
		var r CheckpointRun
		var pushed int
		var ts string
		if err := rows.Scan(&r.ID, &r.Scope, &r.Checkpoint, &r.Status,
			&r.Batches, &r.Committed, &pushed, &r.PushError, &ts); err != nil {
			return nil, fmt.Errorf("scanning checkpoint run: %w", err)
		}
		r.Pushed = pushed != 0
		r.RecordedAt, _ = time.Parse(time.RFC3339Nano, ts)
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
