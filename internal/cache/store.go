// Package cache stores lint results in SQLite so unchanged files are not
// re-linted.
//
// A result is keyed by file path and by a content key that mixes the file
// bytes with a fingerprint of the active rule set. Changing either the text
// or the rule configuration yields a new key and a cache miss.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register the "sqlite" driver

	"github.com/leapstack-labs/phraselint/pkg/lint"
)

// ErrNotOpen is returned by operations on a closed or unopened store.
var ErrNotOpen = errors.New("cache database not opened")

// Store is a SQLite-backed lint result cache.
// It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Run records one lint invocation.
type Run struct {
	ID          string
	Fingerprint string
	StartedAt   time.Time
	CompletedAt *time.Time
	Files       int
	Cached      int
	Issues      int
}

// Open opens (creating if needed) the cache database at path and applies
// migrations. Use ":memory:" for an in-memory cache.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create cache directory: %w", err)
			}
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and avoids
	// SQLITE_BUSY between concurrent writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	s := NewWithDB(db, logger)
	s.path = path
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("cache opened", slog.String("path", path))
	return s, nil
}

// NewWithDB wraps an existing, already migrated connection.
func NewWithDB(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{db: db, logger: logger}
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string { return s.path }

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Get returns the cached lints for path when they were stored under key.
// The boolean is false on a miss.
func (s *Store) Get(ctx context.Context, path, key string) ([]lint.Lint, bool, error) {
	if s.db == nil {
		return nil, false, ErrNotOpen
	}

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT lints FROM results WHERE path = ? AND key = ?`, path, key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Debug("cache miss", slog.String("path", path))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached result for %s: %w", path, err)
	}

	var lints []lint.Lint
	if err := json.Unmarshal([]byte(raw), &lints); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached result for %s: %w", path, err)
	}
	s.logger.Debug("cache hit", slog.String("path", path), slog.Int("lints", len(lints)))
	return lints, true, nil
}

// Put stores lints for path under key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, path, key string, lints []lint.Lint) error {
	if s.db == nil {
		return ErrNotOpen
	}
	if lints == nil {
		lints = []lint.Lint{}
	}

	raw, err := json.Marshal(lints)
	if err != nil {
		return fmt.Errorf("failed to encode result for %s: %w", path, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO results (path, key, lints, lint_count, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET key = excluded.key, lints = excluded.lints,
		   lint_count = excluded.lint_count, updated_at = excluded.updated_at`,
		path, key, string(raw), len(lints), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store result for %s: %w", path, err)
	}
	return nil
}

// Forget removes the entry for path.
func (s *Store) Forget(ctx context.Context, path string) error {
	if s.db == nil {
		return ErrNotOpen
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM results WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to forget %s: %w", path, err)
	}
	return nil
}

// Clear removes every cached result.
func (s *Store) Clear(ctx context.Context) error {
	if s.db == nil {
		return ErrNotOpen
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// --- Run operations ---

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// BeginRun records the start of a lint invocation.
func (s *Store) BeginRun(ctx context.Context, fingerprint string) (*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	run := &Run{
		ID:          generateID(),
		Fingerprint: fingerprint,
		StartedAt:   time.Now().UTC(),
	}

	s.logger.Debug("creating run", slog.String("id", run.ID))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, fingerprint, started_at) VALUES (?, ?, ?)`,
		run.ID, run.Fingerprint, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// CompleteRun stores the totals of a finished run.
func (s *Store) CompleteRun(ctx context.Context, run *Run) error {
	if s.db == nil {
		return ErrNotOpen
	}

	now := time.Now().UTC()
	run.CompletedAt = &now

	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET completed_at = ?, files = ?, cached = ?, issues = ? WHERE id = ?`,
		now, run.Files, run.Cached, run.Issues, run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// LatestRun returns the most recently started run, or nil when none exists.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	run := &Run{}
	var completedAt sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT id, fingerprint, started_at, completed_at, files, cached, issues
		 FROM runs ORDER BY started_at DESC LIMIT 1`,
	).Scan(&run.ID, &run.Fingerprint, &run.StartedAt, &completedAt, &run.Files, &run.Cached, &run.Issues)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	return run, nil
}
