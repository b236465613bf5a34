/*
store.go - Persistence interface for engine documents

PURPOSE:

	Defines the interface between the domain logic and the database.
	The engine persists a handful of JSON documents (settings, roster,
	shift history, pipeline board) addressed by a fixed key. Different
	implementations can use SQLite or in-memory storage.

KEY INTERFACES:

	Store:   Load and save a document by key
	TxStore: Transactional operations (atomic multi-document writes)

DOCUMENT SEMANTICS:
  - Save() replaces the whole document under a key
  - Load() reports whether the key exists; a missing key is not an error
  - Values are encoded as JSON so both stores share one representation

ATOMIC WRITES:

	Hiring a pipeline entity touches two documents (pipeline and roster).
	WithTx() ensures both are written or neither is.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - generic/store/memory.go: In-memory for testing

EXAMPLE:

	var roster compensation.Roster
	found, err := store.Load(ctx, generic.KeyRecruiters, &roster)

SEE ALSO:
  - compensation/history.go: Higher-level interface using Store
  - store/sqlite/sqlite.go: Concrete implementation
*/
package generic

import "context"

// Key addresses one persisted document.
type Key string

const (
	KeySettings   Key = "settings"
	KeyRecruiters Key = "recruiters"
	KeyHistory    Key = "history"
	KeyPipeline   Key = "pipeline"
)

// Keys lists every document the engine persists.
var Keys = []Key{KeySettings, KeyRecruiters, KeyHistory, KeyPipeline}

// =============================================================================
// STORE - Interface for document persistence
// =============================================================================

type Store interface {
	// Load decodes the document stored under key into dst.
	// Returns false (and leaves dst untouched) if nothing is stored.
	Load(ctx context.Context, key Key, dst any) (bool, error)

	// Save encodes v and replaces the document stored under key.
	Save(ctx context.Context, key Key, v any) error
}

// =============================================================================
// TRANSACTIONAL STORE - For atomic operations across multiple writes
// =============================================================================

// TxStore wraps Store with transaction support.
type TxStore interface {
	Store

	// WithTx executes fn within a transaction.
	// If fn returns error, transaction is rolled back.
	// If fn returns nil, transaction is committed.
	WithTx(ctx context.Context, fn func(Store) error) error
}

// LoadOr loads the document under key, falling back to def when it is missing.
func LoadOr[T any](ctx context.Context, s Store, key Key, def T) (T, error) {
	var v T
	found, err := s.Load(ctx, key, &v)
	if err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}
	return v, nil
}

// Atomically runs fn in a transaction when s supports one, otherwise directly.
func Atomically(ctx context.Context, s Store, fn func(Store) error) error {
	if tx, ok := s.(TxStore); ok {
		return tx.WithTx(ctx, fn)
	}
	return fn(s)
}
