package auth

import (
	"context"
	"time"

	"github.com/mmynk/forkful/internal/models"
)

// Profile carries the non-credential fields captured at registration.
type Profile struct {
	Username  string
	FirstName string
	LastName  string
}

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates a new user account with the given profile and credential.
	// Returns the created user or an error if registration fails.
	Register(ctx context.Context, profile Profile, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}

// RevocationStore remembers tokens that were logged out before expiring.
type RevocationStore interface {
	// Revoke marks tokenID as unusable until expiresAt.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	// IsRevoked reports whether tokenID has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NoRevocation is used when no session store is configured.
// Logout is then handled client-side by discarding the token.
type NoRevocation struct{}

func (NoRevocation) Revoke(context.Context, string, time.Time) error { return nil }

func (NoRevocation) IsRevoked(context.Context, string) (bool, error) { return false, nil }
