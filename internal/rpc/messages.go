package rpc

// Group is the wire form of a group.
type Group struct {
	Id        string   `json:"id"`
	Name      string   `json:"name"`
	OwnerId   string   `json:"ownerId"`
	Members   []string `json:"members"`
	Votes     []string `json:"votes"`
	CreatedAt int64    `json:"createdAt"`
}

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupId string `json:"groupId"`
}

// DeleteGroupResponse reports whether a group matched the ID.
type DeleteGroupResponse struct {
	Deleted bool `json:"deleted"`
}

type CastVoteRequest struct {
	GroupId    string   `json:"groupId"`
	Categories []string `json:"categories"`
	Rating     *float64 `json:"rating,omitempty"`
}

// Vote is the wire form of a stored vote.
type Vote struct {
	Id         string   `json:"id"`
	GroupId    string   `json:"groupId"`
	MemberId   string   `json:"memberId"`
	Categories []string `json:"categories"`
	Rating     *float64 `json:"rating,omitempty"`
	UpdatedAt  int64    `json:"updatedAt"`
}

type CastVoteResponse struct {
	Vote *Vote `json:"vote"`
}

type GetTallyRequest struct {
	GroupId string `json:"groupId"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Votes    int32  `json:"votes"`
}

type GetTallyResponse struct {
	GroupId      string           `json:"groupId"`
	Ballots      int32            `json:"ballots"`
	Counts       []*CategoryCount `json:"counts"`
	Winners      []string         `json:"winners"`
	MeanRating   *float64         `json:"meanRating,omitempty"`
	RatedBallots int32            `json:"ratedBallots"`
}
