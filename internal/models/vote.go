package models

// Vote holds one member's category selections for one group.
// There is at most one Vote per (GroupID, MemberID).
type Vote struct {
	// ID is the unique identifier for the vote (UUID format).
	// It is kept stable across re-casts by the same member.
	ID string

	// GroupID is the group this vote belongs to.
	GroupID string

	// MemberID is the user who cast the vote.
	MemberID string

	// Categories are the selected labels (e.g., "sushi", "tacos"), deduplicated.
	Categories []string

	// Rating is an optional numeric score attached to the vote.
	Rating *float64

	// CreatedAt is the Unix timestamp of the first cast.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the latest cast.
	UpdatedAt int64
}
