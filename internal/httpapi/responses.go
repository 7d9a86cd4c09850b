package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/forkful/internal/calculator"
	"github.com/mmynk/forkful/internal/models"
	"github.com/mmynk/forkful/internal/service"
)

// UserView is the public representation of a user.
type UserView struct {
	ID        string   `json:"_id"`
	Username  string   `json:"username"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	FullName  string   `json:"fullName"`
	Friends   []string `json:"friends"`
	Groups    []string `json:"groups"`
}

func newUserView(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Friends:   nonNil(u.Friends),
		Groups:    nonNil(u.Groups),
	}
}

// GroupView is the public representation of a group.
type GroupView struct {
	ID        string   `json:"_id"`
	GroupName string   `json:"groupName"`
	OwnerID   string   `json:"ownerId"`
	Members   []string `json:"members"`
	Votes     []string `json:"votes"`
	CreatedAt int64    `json:"createdAt"`
}

func newGroupView(g *models.Group) GroupView {
	return GroupView{
		ID:        g.ID,
		GroupName: g.Name,
		OwnerID:   g.OwnerID,
		Members:   nonNil(g.Members),
		Votes:     nonNil(g.Votes),
		CreatedAt: g.CreatedAt,
	}
}

// VoteView is returned by a vote cast: the stored category set.
type VoteView struct {
	ID         string   `json:"_id"`
	Categories []string `json:"categories"`
	Rating     *float64 `json:"rating,omitempty"`
}

type ballotView struct {
	MemberID   string   `json:"memberId"`
	Categories []string `json:"categories"`
	Rating     *float64 `json:"rating,omitempty"`
}

type countView struct {
	Category string `json:"category"`
	Votes    int    `json:"votes"`
}

// TallyView summarizes every vote in a group.
type TallyView struct {
	GroupID      string       `json:"groupId"`
	Ballots      []ballotView `json:"ballots"`
	Counts       []countView  `json:"counts"`
	Winners      []string     `json:"winners"`
	MeanRating   *float64     `json:"meanRating"`
	RatedBallots int          `json:"ratedBallots"`
}

func newTallyView(groupID string, r calculator.Result) TallyView {
	view := TallyView{
		GroupID:      groupID,
		Ballots:      make([]ballotView, len(r.Ballots)),
		Counts:       make([]countView, len(r.Counts)),
		Winners:      nonNil(r.Winners),
		MeanRating:   r.MeanRating,
		RatedBallots: r.RatedBallots,
	}
	for i, b := range r.Ballots {
		view.Ballots[i] = ballotView{MemberID: b.MemberID, Categories: nonNil(b.Categories), Rating: b.Rating}
	}
	for i, c := range r.Counts {
		view.Counts[i] = countView{Category: c.Category, Votes: c.Votes}
	}
	return view
}

type tokenResponse struct {
	AuthToken string `json:"authToken"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeStatus writes the generic {code, message} failure body.
func writeStatus(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"code":    status,
		"message": message,
	})
}

func writeValidationError(w http.ResponseWriter, verr *service.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"code":     http.StatusUnprocessableEntity,
		"reason":   "ValidationError",
		"message":  verr.Message,
		"location": verr.Field,
	})
}

// writeError maps a service error to a response. Store failures are logged
// and reported generically.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr)
	case errors.Is(err, service.ErrNotFound):
		writeStatus(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrNotMember):
		writeStatus(w, http.StatusForbidden, "Not a member of this group")
	default:
		slog.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeStatus(w, http.StatusInternalServerError, "Internal server error")
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
