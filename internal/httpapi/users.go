package httpapi

import (
	"net/http"

	"github.com/mmynk/forkful/internal/middleware"
)

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	cmd, verr := decodeCreateUser(w, r)
	if verr != nil {
		writeValidationError(w, verr)
		return
	}

	user, err := s.users.Register(r.Context(), cmd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newUserView(user))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	views := make([]UserView, len(users))
	for i, u := range users {
		views[i] = newUserView(u)
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleAddFriend(w http.ResponseWriter, r *http.Request) {
	if _, err := s.friends.AddFriend(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	if _, err := s.friends.RemoveFriend(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := s.friends.ListFriends(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, friends)
}
