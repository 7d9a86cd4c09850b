package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/forkful/internal/models"
	"github.com/mmynk/forkful/internal/storage"
)

// CreateGroup persists a new group and its member list.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO groups (id, owner_id, name, created_at, seq)
		VALUES (?, ?, ?, ?, ?)
	`), group.ID, group.OwnerID, group.Name, group.CreatedAt, nextSeq())
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i, memberID := range group.Members {
		_, err = tx.ExecContext(ctx, s.q(`
			INSERT INTO group_members (group_id, user_id, position)
			VALUES (?, ?, ?)
			ON CONFLICT (group_id, user_id) DO NOTHING
		`), group.ID, memberID, i)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID, including members and vote references.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT id, owner_id, name, created_at FROM groups WHERE id = ?
	`), groupID).Scan(&group.ID, &group.OwnerID, &group.Name, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := s.hydrateGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup removes a group. Member rows and vote references go with it
// through ON DELETE CASCADE; vote rows stay.
func (s *Store) DeleteGroup(ctx context.Context, groupID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM groups WHERE id = ?`), groupID)
	if err != nil {
		return false, fmt.Errorf("failed to delete group: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete group: %w", err)
	}
	return n > 0, nil
}

// ListGroupsOwnedBy returns the owner's groups in creation order.
func (s *Store) ListGroupsOwnedBy(ctx context.Context, ownerID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id, owner_id, name, created_at
		FROM groups
		WHERE owner_id = ?
		ORDER BY seq, id
	`), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned groups: %w", err)
	}
	return s.collectGroups(ctx, rows)
}

// ListGroupsWithMember returns every group listing memberID as a member,
// walking owners in registration order.
func (s *Store) ListGroupsWithMember(ctx context.Context, memberID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT g.id, g.owner_id, g.name, g.created_at
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		JOIN users u ON u.id = g.owner_id
		WHERE m.user_id = ?
		ORDER BY u.seq, u.id, g.seq, g.id
	`), memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member groups: %w", err)
	}
	return s.collectGroups(ctx, rows)
}

// collectGroups drains rows, then loads members and votes for each group.
func (s *Store) collectGroups(ctx context.Context, rows *sql.Rows) ([]*models.Group, error) {
	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.OwnerID, &group.Name, &group.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	rows.Close()

	for _, group := range groups {
		if err := s.hydrateGroup(ctx, group); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (s *Store) hydrateGroup(ctx context.Context, group *models.Group) error {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT user_id FROM group_members WHERE group_id = ? ORDER BY position
	`), group.ID)
	if err != nil {
		return fmt.Errorf("failed to get group members: %w", err)
	}
	members, err := scanIDs(rows)
	if err != nil {
		return fmt.Errorf("failed to scan group member: %w", err)
	}
	group.Members = members

	rows, err = s.db.QueryContext(ctx, s.q(`
		SELECT vote_id FROM group_votes WHERE group_id = ? ORDER BY seq
	`), group.ID)
	if err != nil {
		return fmt.Errorf("failed to get group votes: %w", err)
	}
	votes, err := scanIDs(rows)
	if err != nil {
		return fmt.Errorf("failed to scan group vote: %w", err)
	}
	group.Votes = votes

	return nil
}
