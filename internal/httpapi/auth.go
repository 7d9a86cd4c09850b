package httpapi

import (
	"errors"
	"net/http"

	"github.com/mmynk/forkful/internal/auth"
	"github.com/mmynk/forkful/internal/middleware"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username, password, ok := decodeLogin(w, r)
	if !ok {
		writeStatus(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := s.users.Login(r.Context(), username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeStatus(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AuthToken: token})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	token, err := s.users.Refresh(r.Context(), middleware.GetClaims(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AuthToken: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Logout(r.Context(), middleware.GetClaims(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
