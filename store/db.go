// Package store is the persistence layer: a single SQLite database holding
// conversations, messages, food entries, notes, settings and the web search
// cache. All timestamps are stored as UTC datetime strings so they compare
// correctly against SQLite range queries.
package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Message roles. tool_call rows hold a serialized ToolCallRecord rather than
// display text; they only ever carry terminal (done or error) states.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleToolCall  = "tool_call"
)

type Store struct {
	db *sql.DB

	// now is the clock used for all written timestamps. Tests override it.
	now func() time.Time
}

// Open opens (creating if needed) the BiteBook database in dataDir and brings
// the schema up to date.
func Open(dataDir string) (*Store, error) {
	dbPath := filepath.Join(dataDir, "bitebook.db")
	return openPath(dbPath)
}

// OpenMemory opens a throwaway in-memory database. Used by tests.
func OpenMemory() (*Store, error) {
	return openPath(":memory:")
}

func openPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// The modernc driver opens one connection per call; the schema and all
	// temp state must live on a single connection for :memory: databases.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	s := &Store{db: db, now: time.Now}

	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
