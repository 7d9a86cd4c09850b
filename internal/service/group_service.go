package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmynk/forkful/internal/models"
	"github.com/mmynk/forkful/internal/resolver"
	"github.com/mmynk/forkful/internal/storage"
)

// GroupService creates, resolves and deletes groups.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group owned by ownerID.
//
// Members are deduplicated in order and the owner is prepended when missing,
// so a group always contains its creator.
func (s *GroupService) CreateGroup(ctx context.Context, ownerID string, cmd CreateGroupCommand) (*models.Group, error) {
	slog.Info("CreateGroup request received",
		"owner_id", ownerID,
		"name", cmd.GroupName,
		"members_count", len(cmd.Members),
	)

	if len(cmd.Votes) > 0 {
		// A group that does not exist yet cannot own any vote
		slog.Debug("CreateGroup ignoring vote references", "count", len(cmd.Votes))
	}

	group := &models.Group{
		OwnerID: ownerID,
		Name:    cmd.GroupName,
		Members: normalizeMembers(ownerID, cmd.Members),
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "owner_id", ownerID, "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(group.Members))
	return group, nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return group, nil
}

// VisibleGroups returns the groups viewerID owns followed by the groups of
// other users that list viewerID as a member. Each group appears once.
func (s *GroupService) VisibleGroups(ctx context.Context, viewerID string) ([]*models.Group, error) {
	owned, err := s.store.ListGroupsOwnedBy(ctx, viewerID)
	if err != nil {
		slog.Error("VisibleGroups failed - owned groups", "user_id", viewerID, "error", err)
		return nil, err
	}

	shared, err := s.store.ListGroupsWithMember(ctx, viewerID)
	if err != nil {
		slog.Error("VisibleGroups failed - member groups", "user_id", viewerID, "error", err)
		return nil, err
	}

	groups := resolver.Visible(viewerID, owned, shared)
	slog.Info("VisibleGroups successful", "user_id", viewerID, "count", len(groups))
	return groups, nil
}

// DeleteGroup removes the group with groupID, matched on the group alone.
// It reports whether a group was removed; no match is not an error.
// Votes cast in the group are left for PruneOrphanVotes.
func (s *GroupService) DeleteGroup(ctx context.Context, viewerID, groupID string) (bool, error) {
	slog.Info("DeleteGroup request received", "user_id", viewerID, "group_id", groupID)

	deleted, err := s.store.DeleteGroup(ctx, groupID)
	if err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return false, err
	}

	if deleted {
		slog.Info("Group deleted", "group_id", groupID)
	} else {
		slog.Info("DeleteGroup matched nothing", "group_id", groupID)
	}
	return deleted, nil
}

// normalizeMembers trims and deduplicates member IDs, keeping first
// occurrences, and puts ownerID first if it is not already listed.
func normalizeMembers(ownerID string, members []string) []string {
	seen := make(map[string]bool, len(members)+1)
	out := make([]string, 0, len(members)+1)

	var hasOwner bool
	for _, m := range members {
		if strings.TrimSpace(m) == ownerID {
			hasOwner = true
			break
		}
	}
	if !hasOwner {
		out = append(out, ownerID)
		seen[ownerID] = true
	}

	for _, m := range members {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
