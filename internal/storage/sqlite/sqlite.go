// Package sqlite opens the SQLite-backed storage.Store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/forkful/internal/storage/sqldb"
)

// pragmas are applied on every connection the driver opens.
const pragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// New creates a new SQLite store with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*sqldb.Store, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath+pragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer at a time; a single connection serializes
	// writers in the pool instead of surfacing SQLITE_BUSY to callers.
	db.SetMaxOpenConns(1)

	store, err := sqldb.New(context.Background(), db, sqldb.SQLite)
	if err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}
