package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mmynk/forkful/internal/calculator"
	"github.com/mmynk/forkful/internal/metrics"
	"github.com/mmynk/forkful/internal/models"
	"github.com/mmynk/forkful/internal/storage"
)

// VoteService is the vote ledger: one vote per member per group.
type VoteService struct {
	store storage.Store
}

// NewVoteService creates a new VoteService with the given storage backend.
func NewVoteService(store storage.Store) *VoteService {
	return &VoteService{store: store}
}

// CastVote creates the caller's vote in a group or replaces its selections.
// The vote keeps its ID across re-casts and is referenced once by the group.
func (s *VoteService) CastVote(ctx context.Context, cmd CastVoteCommand) (*models.Vote, error) {
	slog.Info("CastVote request received",
		"group_id", cmd.GroupID,
		"member_id", cmd.MemberID,
		"categories_count", len(cmd.Categories),
	)

	vote := &models.Vote{
		GroupID:    cmd.GroupID,
		MemberID:   cmd.MemberID,
		Categories: normalizeCategories(cmd.Categories),
		Rating:     cmd.Rating,
	}

	if err := s.store.UpsertVote(ctx, vote); err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrNotMember) {
			slog.Warn("CastVote rejected", "group_id", cmd.GroupID, "member_id", cmd.MemberID, "error", err)
		} else {
			slog.Error("CastVote failed", "group_id", cmd.GroupID, "member_id", cmd.MemberID, "error", err)
		}
		return nil, err
	}
	metrics.VotesCast.Inc()

	slog.Info("Vote stored", "vote_id", vote.ID, "group_id", vote.GroupID, "member_id", vote.MemberID)
	return vote, nil
}

// ListVotes returns every member's selections for a group in first-cast order.
func (s *VoteService) ListVotes(ctx context.Context, groupID string) ([]*models.Vote, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		slog.Warn("ListVotes failed - group not found", "group_id", groupID, "error", err)
		return nil, err
	}

	votes, err := s.store.ListVotesByGroup(ctx, groupID)
	if err != nil {
		slog.Error("ListVotes failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return votes, nil
}

// Tally aggregates a group's votes into per-category counts and winners.
func (s *VoteService) Tally(ctx context.Context, groupID string) (calculator.Result, error) {
	votes, err := s.ListVotes(ctx, groupID)
	if err != nil {
		return calculator.Result{}, err
	}

	ballots := make([]calculator.Ballot, len(votes))
	for i, v := range votes {
		ballots[i] = calculator.Ballot{
			MemberID:   v.MemberID,
			Categories: v.Categories,
			Rating:     v.Rating,
		}
	}

	result := calculator.Tally(ballots)
	slog.Info("Tally successful",
		"group_id", groupID,
		"ballots_count", len(ballots),
		"winners", result.Winners,
	)
	return result, nil
}

// PruneOrphanVotes deletes votes whose group has been deleted.
func (s *VoteService) PruneOrphanVotes(ctx context.Context) (int64, error) {
	n, err := s.store.PruneOrphanVotes(ctx)
	if err != nil {
		slog.Error("PruneOrphanVotes failed", "error", err)
		return 0, err
	}
	if n > 0 {
		metrics.OrphanVotesPruned.Add(float64(n))
		slog.Info("Orphan votes pruned", "count", n)
	}
	return n, nil
}

// normalizeCategories trims labels and drops empty and repeated ones.
func normalizeCategories(categories []string) []string {
	seen := make(map[string]bool, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
