// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/forkful/internal/models"
)

var (
	// ErrNotFound is returned when a referenced user, group or vote does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken is returned by CreateUser when the username is in use.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrNotMember is returned by UpsertVote when the voter is not in the group.
	ErrNotMember = errors.New("user is not a member of the group")
)

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts a new user. Returns ErrUsernameTaken if the
	// username already exists; the check and insert are one statement.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID returns the user with its friend and owned-group IDs.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByUsername returns ErrNotFound if no user has that username.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// ListUsers returns all users in registration order.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// GetUsersByIDs returns a map of user ID to user.
	// Users that don't exist are omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// FriendStore persists directional friend edges.
type FriendStore interface {
	// AddFriend inserts friendID into ownerID's set if absent and returns the
	// updated list in insertion order.
	AddFriend(ctx context.Context, ownerID, friendID string) ([]string, error)

	// RemoveFriend deletes the edge if present and returns the updated list.
	RemoveFriend(ctx context.Context, ownerID, friendID string) ([]string, error)

	// ListFriendIDs returns ownerID's friends in insertion order.
	ListFriendIDs(ctx context.Context, ownerID string) ([]string, error)
}

// GroupStore persists groups and their member lists.
type GroupStore interface {
	// CreateGroup persists a new group and its members in one transaction.
	// The group.ID and group.CreatedAt fields are populated when empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// DeleteGroup removes the group with the given ID, whoever owns it.
	// It reports whether a group was actually removed.
	DeleteGroup(ctx context.Context, groupID string) (bool, error)

	// ListGroupsOwnedBy returns the owner's groups in creation order.
	ListGroupsOwnedBy(ctx context.Context, ownerID string) ([]*models.Group, error)

	// ListGroupsWithMember returns every group whose member list contains
	// memberID, ordered by owner registration order then group creation order.
	ListGroupsWithMember(ctx context.Context, memberID string) ([]*models.Group, error)
}

// VoteStore persists votes.
type VoteStore interface {
	// UpsertVote creates or replaces the vote for (vote.GroupID, vote.MemberID)
	// and adds its ID to the group's vote references, in one transaction.
	// On return vote.ID, vote.CreatedAt and vote.UpdatedAt hold the stored values.
	// Returns ErrNotFound for an unknown group and ErrNotMember for a non-member.
	UpsertVote(ctx context.Context, vote *models.Vote) error

	// ListVotesByGroup returns the group's votes ordered by first cast.
	ListVotesByGroup(ctx context.Context, groupID string) ([]*models.Vote, error)

	// PruneOrphanVotes deletes votes whose group no longer exists.
	PruneOrphanVotes(ctx context.Context) (int64, error)
}

// Store defines the full persistence contract used by the services.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	UserStore
	FriendStore
	GroupStore
	VoteStore

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
