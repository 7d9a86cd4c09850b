package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the login name. Unique across all users.
	Username string

	// FirstName and LastName are display fields, stored trimmed.
	FirstName string
	LastName  string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// Friends is the ordered list of user IDs this user has added.
	// Friendship is directional: adding B to A's list does not touch B's list.
	Friends []string

	// Groups is the list of group IDs this user owns.
	Groups []string

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64
}

// NewUser creates a user with a fresh ID and creation time.
func NewUser(username, firstName, lastName, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}

// FullName joins first and last name, trimmed.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// FriendView is the minimal projection of a user shown in a friend list.
type FriendView struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
