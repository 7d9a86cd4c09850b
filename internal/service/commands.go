package service

// RegisterCommand creates a user account. Fields arrive validated and trimmed.
type RegisterCommand struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// CreateGroupCommand creates a group owned by the caller.
type CreateGroupCommand struct {
	GroupName string
	Members   []string
	// Votes may list vote IDs to attach; only votes already belonging to the
	// group qualify, so a brand new group starts with none.
	Votes []string
}

// CastVoteCommand records the caller's selections for a group.
type CastVoteCommand struct {
	GroupID    string
	MemberID   string
	Categories []string
	Rating     *float64
}
