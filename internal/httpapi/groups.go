package httpapi

import (
	"net/http"

	"github.com/mmynk/forkful/internal/middleware"
)

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	cmd, verr := decodeCreateGroup(w, r)
	if verr != nil {
		writeValidationError(w, verr)
		return
	}

	if _, err := s.groups.CreateGroup(r.Context(), middleware.GetUserID(r.Context()), cmd); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.VisibleGroups(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	views := make([]GroupView, len(groups))
	for i, g := range groups {
		views[i] = newGroupView(g)
	}
	writeJSON(w, http.StatusOK, views)
}

// handleDeleteGroup answers 204 whether or not a group matched.
func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if _, err := s.groups.DeleteGroup(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
