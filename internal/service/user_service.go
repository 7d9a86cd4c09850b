package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/forkful/internal/auth"
	"github.com/mmynk/forkful/internal/models"
	"github.com/mmynk/forkful/internal/storage"
)

// UserService registers users and issues their bearer tokens.
type UserService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	revocations   auth.RevocationStore
	store         storage.UserStore
	logger        *slog.Logger
}

// NewUserService creates a new user service.
// A nil revocations store disables server-side logout.
func NewUserService(
	authenticator auth.Authenticator,
	jwtManager *auth.JWTManager,
	revocations auth.RevocationStore,
	store storage.UserStore,
	logger *slog.Logger,
) *UserService {
	if revocations == nil {
		revocations = auth.NoRevocation{}
	}
	return &UserService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		revocations:   revocations,
		store:         store,
		logger:        logger,
	}
}

// Register creates a new user account.
func (s *UserService) Register(ctx context.Context, cmd RegisterCommand) (*models.User, error) {
	s.logger.Info("Register request", "username", cmd.Username)

	user, err := s.authenticator.Register(ctx, auth.Profile{
		Username:  cmd.Username,
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
	}, cmd.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			return nil, validationError("username", "Username already taken")
		}
		if errors.Is(err, auth.ErrWeakPassword) {
			return nil, validationError("password", err.Error())
		}
		s.logger.Error("Registration failed", "username", cmd.Username, "error", err)
		return nil, err
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// ListUsers returns every user in registration order.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		s.logger.Error("ListUsers failed", "error", err)
		return nil, err
	}
	return users, nil
}

// Login authenticates a user and returns a signed token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		s.logger.Warn("Login failed", "username", username, "error", err)
		return "", auth.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return "", err
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return token, nil
}

// Refresh trades valid claims for a new token and revokes the old one.
func (s *UserService) Refresh(ctx context.Context, claims *auth.Claims) (string, error) {
	token, err := s.jwtManager.Refresh(claims)
	if err != nil {
		return "", err
	}
	if err := s.revoke(ctx, claims); err != nil {
		return "", err
	}
	return token, nil
}

// Logout revokes the token described by claims.
func (s *UserService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.revoke(ctx, claims); err != nil {
		return err
	}
	s.logger.Info("User logged out", "user_id", claims.UserID)
	return nil
}

func (s *UserService) revoke(ctx context.Context, claims *auth.Claims) error {
	if claims.ExpiresAt == nil || claims.ID == "" {
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
