package models

// Group represents a named set of users reaching a joint decision.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// OwnerID is the user who created the group.
	OwnerID string

	// Name is the display name of the group (e.g., "dinner", "Friday lunch").
	Name string

	// Members is the ordered list of member user IDs. Always contains OwnerID.
	Members []string

	// Votes references the votes cast within this group. Never holds duplicates.
	Votes []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether userID appears in the member list.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}
