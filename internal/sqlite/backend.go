// Package sqlite implements the SQLite storage backend for Binder: the
// page tree, per-page block lists, schema-flexible databases with their
// items and views, and the substring search over all of them.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/binder-notes/binder/pkg/types"
)

// dbFileName is the SQLite database file created inside DataDir.
const dbFileName = "binder.db"

// Store implements the types.Store interface on a single SQLite database.
// Mutating operations take the write lock, so reorders of one sibling
// scope never interleave; reads share the read lock.
type Store struct {
	mu     sync.RWMutex
	open   bool
	config types.Config
	db     *sql.DB
	log    zerolog.Logger
}

// Compile-time interface check: Store must implement types.Store.
var _ types.Store = (*Store)(nil)

// NewStore creates a new SQLite store instance.
// The store is not open; call Open with a Config to initialize.
func NewStore() *Store {
	return &Store{log: zerolog.Nop()}
}

// SetLogger replaces the store's logger. The default discards everything.
func (s *Store) SetLogger(log zerolog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = log
}

// Open initializes the store with the given configuration. Creates DataDir
// if it does not exist, opens the database file, and applies the schema.
// Returns ErrAlreadyOpen if already open.
func (s *Store) Open(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return types.ErrAlreadyOpen
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return err
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA foreign_keys=ON;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return fmt.Errorf("applying pragma: %w", err)
		}
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating indexes: %w", err)
		}
	}

	s.db = db
	s.config = config
	s.open = true

	s.log.Info().Str("data_dir", dataDir).Msg("store opened")
	return nil
}

// Close releases all resources held by the store. After Close, all
// operations return ErrStoreClosed. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil // idempotent
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}

	s.open = false
	s.log.Info().Msg("store closed")
	return nil
}

// querier is the subset of *sql.DB and *sql.Tx the accessors use, so
// helpers work inside and outside transactions.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// newID generates a short opaque identifier: the first eight hex
// characters of a random UUID. All persisted entities share this format.
func newID() string {
	return uuid.NewString()[:8]
}

// nowUTC returns the current time truncated to whole seconds, matching
// the stored RFC 3339 precision.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}
