// Package manifest records generation runs in SQLite so unchanged inputs
// can be skipped on the next run. Only run metadata and content hashes are
// stored; compiled schemas and their graphs never touch disk.
package manifest

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const createRunsTable = `
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    started_at  TIMESTAMP NOT NULL,
    target      TEXT NOT NULL,
    inputs      INTEGER NOT NULL,
    classes     INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL
)`

const createInputsTable = `
CREATE TABLE IF NOT EXISTS inputs (
    path        TEXT PRIMARY KEY,
    sha256      TEXT NOT NULL,
    run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    output_path TEXT NOT NULL
)`

// Run is one recorded generation run.
type Run struct {
	ID        string
	StartedAt time.Time
	Target    string
	Inputs    int
	Classes   int
	Duration  time.Duration
}

// Store persists runs and per-input hashes.
type Store struct {
	db     *sql.DB
	ownsDB bool
}

// Open opens (creating if needed) a manifest database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	s := &Store{db: db, ownsDB: true}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing connection; the caller manages its lifecycle.
func NewWithDB(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the database connection if owned by this store.
func (s *Store) Close() error {
	if !s.ownsDB || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// createSchema creates both tables transactionally.
func (s *Store) createSchema() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	for _, ddl := range []string{createRunsTable, createInputsTable} {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("failed to create manifest table: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

// BeginRun allocates a run ID; the run row is written by FinishRun.
func (s *Store) BeginRun(target string) *Run {
	return &Run{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
		Target:    target,
	}
}

// FinishRun writes the run row and the per-input rows in one transaction.
// Input rows replace any previous row for the same path, so the inputs
// table always reflects the latest hash seen per file.
func (s *Store) FinishRun(run *Run, inputs map[string]InputRecord) error {
	run.Duration = time.Since(run.StartedAt)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := sq.Insert("runs").
		Columns("id", "started_at", "target", "inputs", "classes", "duration_ms").
		Values(run.ID, run.StartedAt, run.Target, run.Inputs, run.Classes, run.Duration.Milliseconds()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build run insert: %w", err)
	}
	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for path, rec := range inputs {
		query, args, err := sq.Replace("inputs").
			Columns("path", "sha256", "run_id", "output_path").
			Values(path, rec.SHA256, run.ID, rec.OutputPath).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build input insert: %w", err)
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to insert input %s: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// InputRecord is the stored state of one compiled input.
type InputRecord struct {
	SHA256     string
	OutputPath string
}

// Lookup returns the stored record for an input path, if any.
func (s *Store) Lookup(path string) (InputRecord, bool, error) {
	query, args, err := sq.Select("sha256", "output_path").
		From("inputs").
		Where(sq.Eq{"path": path}).
		ToSql()
	if err != nil {
		return InputRecord{}, false, fmt.Errorf("failed to build lookup: %w", err)
	}

	var rec InputRecord
	err = s.db.QueryRow(query, args...).Scan(&rec.SHA256, &rec.OutputPath)
	if err == sql.ErrNoRows {
		return InputRecord{}, false, nil
	}
	if err != nil {
		return InputRecord{}, false, fmt.Errorf("failed to look up input %s: %w", path, err)
	}
	return rec, true, nil
}

// LastRun returns the most recent run row, if any.
func (s *Store) LastRun() (*Run, bool, error) {
	query, args, err := sq.Select("id", "started_at", "target", "inputs", "classes", "duration_ms").
		From("runs").
		OrderBy("started_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build query: %w", err)
	}

	var run Run
	var durationMs int64
	err = s.db.QueryRow(query, args...).Scan(&run.ID, &run.StartedAt, &run.Target, &run.Inputs, &run.Classes, &durationMs)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read last run: %w", err)
	}
	run.Duration = time.Duration(durationMs) * time.Millisecond
	return &run, true, nil
}

// HashContent returns the hex SHA-256 of an input document.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
