package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mmynk/forkful/internal/storage/sqldb"
)

func TestOpenStoreSQLite(t *testing.T) {
	for _, prefix := range []string{"", "sqlite://"} {
		path := filepath.Join(t.TempDir(), "nested", "forkful.db")

		store, err := openStore(context.Background(), prefix+path)
		if err != nil {
			t.Fatalf("openStore(%q) failed: %v", prefix+path, err)
		}
		if store.Dialect() != sqldb.SQLite {
			t.Errorf("dialect: got %v, want SQLite", store.Dialect())
		}
		if err := store.Ping(context.Background()); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
		store.Close()
	}
}
