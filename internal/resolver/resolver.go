// Package resolver computes which groups a user may see.
package resolver

import "github.com/mmynk/forkful/internal/models"

// Visible merges the viewer's own groups with groups listing the viewer as a
// member.
//
// owned comes first in its given order, followed by the entries of shared not
// owned by the viewer, in their given order. Each group ID appears once; when
// a group shows up in both inputs the owned copy wins.
func Visible(viewerID string, owned, shared []*models.Group) []*models.Group {
	seen := make(map[string]bool, len(owned)+len(shared))
	visible := make([]*models.Group, 0, len(owned)+len(shared))

	for _, g := range owned {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		visible = append(visible, g)
	}

	for _, g := range shared {
		if g.OwnerID == viewerID || seen[g.ID] {
			continue
		}
		if !g.HasMember(viewerID) {
			continue
		}
		seen[g.ID] = true
		visible = append(visible, g)
	}

	return visible
}
