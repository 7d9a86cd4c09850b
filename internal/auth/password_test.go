package auth

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmynk/forkful/internal/storage/sqlite"
)

func TestPasswordAuthenticator(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	a := NewPasswordAuthenticator(store)
	ctx := context.Background()

	t.Run("Register hashes the password", func(t *testing.T) {
		user, err := a.Register(ctx, Profile{Username: "alice", FirstName: "Alice"}, "secretpass1")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.ID == "" {
			t.Error("expected user ID")
		}
		if user.PasswordHash == "secretpass1" || user.PasswordHash == "" {
			t.Errorf("expected bcrypt hash, got %q", user.PasswordHash)
		}
	})

	t.Run("Register rejects taken username", func(t *testing.T) {
		_, err := a.Register(ctx, Profile{Username: "alice"}, "anotherpass1")
		if !errors.Is(err, ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		user, err := a.Authenticate(ctx, "alice", "secretpass1")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.Username != "alice" {
			t.Errorf("username: got %s, want alice", user.Username)
		}

		if _, err := a.Authenticate(ctx, "alice", "wrongpass12"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := a.Authenticate(ctx, "nobody", "secretpass1"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestValidateCredential(t *testing.T) {
	a := NewPasswordAuthenticator(nil)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"too short", "short", true},
		{"minimum length", strings.Repeat("a", MinPasswordLength), false},
		{"maximum length", strings.Repeat("a", MaxPasswordLength), false},
		{"too long", strings.Repeat("a", MaxPasswordLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.ValidateCredential(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCredential(%d chars) error = %v, wantErr %v", len(tt.password), err, tt.wantErr)
			}
		})
	}
}
