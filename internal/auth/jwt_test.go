package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/mmynk/forkful/internal/models"
)

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "user-123", Username: "alice"}

	t.Run("Generate and Validate round trip", func(t *testing.T) {
		token, err := manager.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := manager.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != user.ID {
			t.Errorf("user ID: got %s, want %s", claims.UserID, user.ID)
		}
		if claims.Username != user.Username {
			t.Errorf("username: got %s, want %s", claims.Username, user.Username)
		}
		if claims.ID == "" {
			t.Error("expected token ID to be set")
		}
	})

	t.Run("Refresh issues a new token ID", func(t *testing.T) {
		token, _ := manager.Generate(user)
		claims, _ := manager.Validate(token)

		refreshed, err := manager.Refresh(claims)
		if err != nil {
			t.Fatalf("Refresh failed: %v", err)
		}
		newClaims, err := manager.Validate(refreshed)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if newClaims.ID == claims.ID {
			t.Error("expected refreshed token to have a different ID")
		}
		if newClaims.UserID != user.ID {
			t.Errorf("user ID: got %s, want %s", newClaims.UserID, user.ID)
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token, _ := NewJWTManager("other-secret", time.Hour).Generate(user)
		if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, _ := NewJWTManager("test-secret", -time.Minute).Generate(user)
		if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		if _, err := manager.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
