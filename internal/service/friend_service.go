package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/forkful/internal/models"
	"github.com/mmynk/forkful/internal/storage"
)

// FriendService manages each user's directional friend list.
type FriendService struct {
	store storage.Store
}

// NewFriendService creates a new FriendService with the given storage backend.
func NewFriendService(store storage.Store) *FriendService {
	return &FriendService{store: store}
}

// AddFriend adds friendID to the owner's list. Adding an existing friend is a
// no-op. friendID is not checked for existence.
func (s *FriendService) AddFriend(ctx context.Context, ownerID, friendID string) ([]string, error) {
	if friendID == ownerID {
		return nil, validationError("id", "Cannot add yourself as a friend")
	}

	friends, err := s.store.AddFriend(ctx, ownerID, friendID)
	if err != nil {
		slog.Error("AddFriend failed", "user_id", ownerID, "friend_id", friendID, "error", err)
		return nil, err
	}

	slog.Info("Friend added", "user_id", ownerID, "friend_id", friendID, "friends_count", len(friends))
	return friends, nil
}

// RemoveFriend drops friendID from the owner's list, if present.
func (s *FriendService) RemoveFriend(ctx context.Context, ownerID, friendID string) ([]string, error) {
	friends, err := s.store.RemoveFriend(ctx, ownerID, friendID)
	if err != nil {
		slog.Error("RemoveFriend failed", "user_id", ownerID, "friend_id", friendID, "error", err)
		return nil, err
	}

	slog.Info("Friend removed", "user_id", ownerID, "friend_id", friendID, "friends_count", len(friends))
	return friends, nil
}

// ListFriends resolves the owner's friend IDs to display projections, in the
// order they were added. IDs with no matching user are skipped.
func (s *FriendService) ListFriends(ctx context.Context, ownerID string) ([]models.FriendView, error) {
	ids, err := s.store.ListFriendIDs(ctx, ownerID)
	if err != nil {
		slog.Error("ListFriends failed", "user_id", ownerID, "error", err)
		return nil, err
	}

	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		slog.Error("ListFriends failed - could not resolve users", "user_id", ownerID, "error", err)
		return nil, err
	}

	friends := make([]models.FriendView, 0, len(ids))
	for _, id := range ids {
		user, ok := users[id]
		if !ok {
			continue
		}
		friends = append(friends, models.FriendView{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		})
	}

	return friends, nil
}
