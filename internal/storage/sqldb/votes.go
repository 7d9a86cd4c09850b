package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/forkful/internal/models"
	"github.com/mmynk/forkful/internal/storage"
)

// UpsertVote creates or replaces a member's vote and records it on the group.
//
// The vote row is written with one INSERT ... ON CONFLICT statement keyed on
// (group_id, member_id), so concurrent casts for the same pair converge on a
// single row whose ID never changes. The group reference is an
// append-if-absent insert in the same transaction.
func (s *Store) UpsertVote(ctx context.Context, vote *models.Vote) error {
	categories, err := json.Marshal(nonNil(vote.Categories))
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}

	var rating interface{} = nil
	if vote.Rating != nil {
		rating = *vote.Rating
	}

	now := time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, s.q(`SELECT 1 FROM groups WHERE id = ?`), vote.GroupID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("group %s: %w", vote.GroupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check group existence: %w", err)
	}

	err = tx.QueryRowContext(ctx, s.q(`
		SELECT 1 FROM group_members WHERE group_id = ? AND user_id = ?
	`), vote.GroupID, vote.MemberID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotMember
	}
	if err != nil {
		return fmt.Errorf("failed to check group membership: %w", err)
	}

	var id string
	var createdAt int64
	err = tx.QueryRowContext(ctx, s.q(`
		INSERT INTO votes (id, group_id, member_id, categories, rating, created_at, updated_at, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (group_id, member_id) DO UPDATE SET
			categories = excluded.categories,
			rating = excluded.rating,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`),
		uuid.New().String(), vote.GroupID, vote.MemberID, string(categories), rating, now, now, nextSeq(),
	).Scan(&id, &createdAt)
	if err != nil {
		return fmt.Errorf("failed to upsert vote: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO group_votes (group_id, vote_id, seq)
		VALUES (?, ?, ?)
		ON CONFLICT (group_id, vote_id) DO NOTHING
	`), vote.GroupID, id, nextSeq())
	if err != nil {
		return fmt.Errorf("failed to link vote to group: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	vote.ID = id
	vote.CreatedAt = createdAt
	vote.UpdatedAt = now
	return nil
}

// ListVotesByGroup retrieves all votes for a group in first-cast order.
func (s *Store) ListVotesByGroup(ctx context.Context, groupID string) ([]*models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id, group_id, member_id, categories, rating, created_at, updated_at
		FROM votes WHERE group_id = ? ORDER BY seq
	`), groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes by group: %w", err)
	}
	defer rows.Close()

	var votes []*models.Vote
	for rows.Next() {
		vote := &models.Vote{}
		var categories string
		var rating sql.NullFloat64

		if err := rows.Scan(&vote.ID, &vote.GroupID, &vote.MemberID, &categories, &rating,
			&vote.CreatedAt, &vote.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}

		if err := json.Unmarshal([]byte(categories), &vote.Categories); err != nil {
			return nil, fmt.Errorf("failed to decode categories for vote %s: %w", vote.ID, err)
		}
		if rating.Valid {
			r := rating.Float64
			vote.Rating = &r
		}

		votes = append(votes, vote)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate votes: %w", err)
	}

	return votes, nil
}

// PruneOrphanVotes removes votes left behind by deleted groups.
func (s *Store) PruneOrphanVotes(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM votes
		WHERE NOT EXISTS (SELECT 1 FROM groups g WHERE g.id = votes.group_id)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prune orphan votes: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to prune orphan votes: %w", err)
	}
	return n, nil
}

func nonNil(categories []string) []string {
	if categories == nil {
		return []string{}
	}
	return categories
}
