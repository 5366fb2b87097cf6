// Package history provides SQLite-backed persistence for the local call
// history: one row per dispatched API request, kept so `sparkhub history`
// can show recent activity without any server round-trip.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sparkhub/sparkhub-cli/internal/adapter/outbound/rest"
)

const dbTimeLayout = "2006-01-02 15:04:05"

// DefaultPath returns the fixed namespace location for the history
// database, next to the session file.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sparkhub-history.db"
	}
	return filepath.Join(home, ".sparkhub", "history.db")
}

// Store records dispatched calls and serves recent history.
type Store struct {
	db *sql.DB
}

var _ rest.CallRecorder = (*Store)(nil)

// Entry is one recorded call.
type Entry struct {
	ID        int64
	Method    string
	Path      string
	RequestID string
	// Status is 0 when no response was received (network failure).
	Status   int
	Duration time.Duration
	At       time.Time
}

// New opens (or creates) the history database and runs migrations.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("history: create dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: set WAL: %w", err)
	}
	// Avoid "database is locked" when another invocation overlaps.
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: set busy_timeout: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS calls (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		method      TEXT    NOT NULL,
		path        TEXT    NOT NULL,
		request_id  TEXT    NOT NULL DEFAULT '',
		status      INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		at          TEXT    NOT NULL DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_calls_at ON calls(at);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	return nil
}

// Record persists one call. Called from the request pipeline on every
// dispatched request; failures are swallowed there, so this only needs to
// report them.
func (s *Store) Record(ctx context.Context, rec rest.CallRecord) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO calls (method, path, request_id, status, duration_ms, at) VALUES (?, ?, ?, ?, ?, ?)",
		rec.Method, rec.Path, rec.RequestID, rec.Status,
		rec.Duration.Milliseconds(), rec.At.UTC().Format(dbTimeLayout))
	if err != nil {
		return fmt.Errorf("history: record call: %w", err)
	}
	return nil
}

// Recent returns the newest limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, method, path, request_id, status, duration_ms, at FROM calls ORDER BY id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("history: list calls: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var durationMS int64
		var at string
		if err := rows.Scan(&e.ID, &e.Method, &e.Path, &e.RequestID, &e.Status, &durationMS, &at); err != nil {
			return nil, fmt.Errorf("history: scan call: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.At, err = time.ParseInLocation(dbTimeLayout, at, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("history: scan call: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes entries older than the retention window and returns the
// number removed.
func (s *Store) Prune(ctx context.Context, keep time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-keep).Format(dbTimeLayout)
	res, err := s.db.ExecContext(ctx, "DELETE FROM calls WHERE at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("history: prune: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
