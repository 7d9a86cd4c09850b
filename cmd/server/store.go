package main

import (
	"context"
	"strings"

	"github.com/mmynk/forkful/internal/storage/postgres"
	"github.com/mmynk/forkful/internal/storage/sqldb"
	"github.com/mmynk/forkful/internal/storage/sqlite"
)

// openStore picks the backend from the URL scheme. Anything that is not a
// postgres URL is treated as a SQLite path, with an optional sqlite:// prefix.
func openStore(ctx context.Context, databaseURL string) (*sqldb.Store, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return postgres.Open(ctx, databaseURL)
	}
	return sqlite.New(strings.TrimPrefix(databaseURL, "sqlite://"))
}
