package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmynk/forkful/internal/auth"
)

// memoryRevocations records revoked token IDs for assertions.
type memoryRevocations struct {
	revoked map[string]time.Time
}

func (m *memoryRevocations) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	m.revoked[tokenID] = expiresAt
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := m.revoked[tokenID]
	return ok, nil
}

func TestUserService(t *testing.T) {
	store := setupTestStore(t)
	revocations := &memoryRevocations{revoked: make(map[string]time.Time)}
	svc := newTestUserService(store, revocations)
	jwt := auth.NewJWTManager("test-secret", time.Hour)
	ctx := context.Background()

	t.Run("Register", func(t *testing.T) {
		user, err := svc.Register(ctx, RegisterCommand{Username: "alice", Password: "secretpass1", FirstName: "Alice"})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.ID == "" || user.Username != "alice" {
			t.Errorf("unexpected user: %+v", user)
		}
	})

	t.Run("Register surfaces taken username as validation error", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterCommand{Username: "alice", Password: "secretpass1"})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if verr.Field != "username" {
			t.Errorf("field: got %s, want username", verr.Field)
		}
	})

	t.Run("Register rejects weak password", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterCommand{Username: "bob", Password: "short"})
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "password" {
			t.Fatalf("expected password ValidationError, got %v", err)
		}
	})

	t.Run("ListUsers", func(t *testing.T) {
		users, err := svc.ListUsers(ctx)
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if len(users) != 1 {
			t.Errorf("expected 1 user, got %d", len(users))
		}
	})

	t.Run("Login and Logout", func(t *testing.T) {
		token, err := svc.Login(ctx, "alice", "secretpass1")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		claims, err := jwt.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}

		if err := svc.Logout(ctx, claims); err != nil {
			t.Fatalf("Logout failed: %v", err)
		}
		if revoked, _ := revocations.IsRevoked(ctx, claims.ID); !revoked {
			t.Error("expected token to be revoked after logout")
		}
	})

	t.Run("Login with wrong password", func(t *testing.T) {
		if _, err := svc.Login(ctx, "alice", "wrongpass12"); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("Refresh revokes the old token", func(t *testing.T) {
		token, _ := svc.Login(ctx, "alice", "secretpass1")
		claims, _ := jwt.Validate(token)

		refreshed, err := svc.Refresh(ctx, claims)
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		if refreshed == token {
			t.Error("expected a new token")
		}
		if revoked, _ := revocations.IsRevoked(ctx, claims.ID); !revoked {
			t.Error("expected old token to be revoked")
		}
	})
}
