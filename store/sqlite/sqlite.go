/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:

	Implements generic.Store and generic.TxStore on SQLite. Each engine
	document (settings, roster, shift history, pipeline board) is one row
	holding its JSON encoding.

KEY TABLES:

	documents: key -> JSON body, with a version bumped on every save

CONCURRENCY:

	Uses sync.RWMutex for thread-safety and a single connection, so an
	":memory:" database is shared by every caller of the same Store.

WAL MODE:

	SQLite is opened with WAL (Write-Ahead Logging):
	- Readers don't block the writer
	- Better crash recovery

USAGE:

	store, err := sqlite.New("./proago.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

MIGRATION:

	Schema is auto-migrated on New().

SEE ALSO:
  - generic/store.go: Interface definitions
  - generic/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/proago/crm-engine/generic"
)

// Store implements generic.TxStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		key TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// =============================================================================
// STORE (generic.Store interface)
// =============================================================================

func (s *Store) Load(ctx context.Context, key generic.Key, dst any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return load(ctx, s.db, key, dst)
}

func (s *Store) Save(ctx context.Context, key generic.Key, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return save(ctx, s.db, key, v)
}

func load(ctx context.Context, q querier, key generic.Key, dst any) (bool, error) {
	var body string
	err := q.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?`, string(key)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		return true, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func save(ctx context.Context, q querier, key generic.Key, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO documents (key, body, version, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			body = excluded.body,
			version = documents.version + 1,
			updated_at = excluded.updated_at
	`, string(key), string(body), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// =============================================================================
// TRANSACTIONAL STORE (generic.TxStore interface)
// =============================================================================

// WithTx executes a function within a database transaction.
func (s *Store) WithTx(ctx context.Context, fn func(store generic.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{tx: sqlTx}); err != nil {
		return err
	}

	return sqlTx.Commit()
}

type txStore struct {
	tx *sql.Tx
}

func (ts *txStore) Load(ctx context.Context, key generic.Key, dst any) (bool, error) {
	return load(ctx, ts.tx, key, dst)
}

func (ts *txStore) Save(ctx context.Context, key generic.Key, v any) error {
	return save(ctx, ts.tx, key, v)
}

// =============================================================================
// UTILITIES
// =============================================================================

// Version returns how many times key has been saved, 0 if never.
func (s *Store) Version(ctx context.Context, key generic.Key) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var version int
	err := s.db.QueryRowContext(ctx, `SELECT version FROM documents WHERE key = ?`, string(key)).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return version, err
}

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM documents")
	return err
}
