package httpapi

import (
	"net/http"

	"github.com/mmynk/forkful/internal/middleware"
)

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	cmd, verr := decodeCastVote(w, r, r.PathValue("id"), middleware.GetUserID(r.Context()))
	if verr != nil {
		writeValidationError(w, verr)
		return
	}

	vote, err := s.votes.CastVote(r.Context(), cmd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, VoteView{
		ID:         vote.ID,
		Categories: nonNil(vote.Categories),
		Rating:     vote.Rating,
	})
}

func (s *Server) handleTally(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	result, err := s.votes.Tally(r.Context(), groupID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTallyView(groupID, result))
}
