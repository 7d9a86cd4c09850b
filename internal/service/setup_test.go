package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/forkful/internal/auth"
	"github.com/mmynk/forkful/internal/models"
	"github.com/mmynk/forkful/internal/storage/sqldb"
	"github.com/mmynk/forkful/internal/storage/sqlite"
)

// setupTestStore creates a temp SQLite database removed at test end.
func setupTestStore(t *testing.T) *sqldb.Store {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUserService(store *sqldb.Store, revocations auth.RevocationStore) *UserService {
	return NewUserService(
		auth.NewPasswordAuthenticator(store),
		auth.NewJWTManager("test-secret", time.Hour),
		revocations,
		store,
		discardLogger(),
	)
}

// mustUser inserts a user directly, skipping bcrypt.
func mustUser(t *testing.T, store *sqldb.Store, username string) *models.User {
	t.Helper()

	user := models.NewUser(username, username+"-first", username+"-last", "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", username, err)
	}
	return user
}
