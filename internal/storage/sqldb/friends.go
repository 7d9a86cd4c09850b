package sqldb

import (
	"context"
	"fmt"
)

// AddFriend inserts a directional edge. Re-adding an existing friend matches
// the primary key and is a no-op.
func (s *Store) AddFriend(ctx context.Context, ownerID, friendID string) ([]string, error) {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO friends (owner_id, friend_id, seq)
		VALUES (?, ?, ?)
		ON CONFLICT (owner_id, friend_id) DO NOTHING
	`), ownerID, friendID, nextSeq())
	if err != nil {
		return nil, fmt.Errorf("failed to add friend: %w", err)
	}

	return s.ListFriendIDs(ctx, ownerID)
}

// RemoveFriend deletes the edge. Removing an absent friend succeeds.
func (s *Store) RemoveFriend(ctx context.Context, ownerID, friendID string) ([]string, error) {
	_, err := s.db.ExecContext(ctx, s.q(`DELETE FROM friends WHERE owner_id = ? AND friend_id = ?`), ownerID, friendID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove friend: %w", err)
	}

	return s.ListFriendIDs(ctx, ownerID)
}

// ListFriendIDs returns the owner's friends in the order they were added.
func (s *Store) ListFriendIDs(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`SELECT friend_id FROM friends WHERE owner_id = ? ORDER BY seq`), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan friends: %w", err)
	}
	return ids, nil
}
