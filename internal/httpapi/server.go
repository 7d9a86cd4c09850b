// Package httpapi serves the REST surface under /api/users and /api/auth.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/mmynk/forkful/internal/middleware"
	"github.com/mmynk/forkful/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles the handlers' collaborators.
type Services struct {
	Users    *service.UserService
	Friends  *service.FriendService
	Groups   *service.GroupService
	Votes    *service.VoteService
	Verifier *middleware.Verifier
	Health   Pinger
}

// Server holds the REST handlers.
type Server struct {
	users    *service.UserService
	friends  *service.FriendService
	groups   *service.GroupService
	votes    *service.VoteService
	verifier *middleware.Verifier
	health   Pinger
}

// NewServer creates a REST server over the given services.
func NewServer(s Services) *Server {
	return &Server{
		users:    s.Users,
		friends:  s.Friends,
		groups:   s.Groups,
		votes:    s.Votes,
		verifier: s.Verifier,
		health:   s.Health,
	}
}

// Register mounts every route on mux.
func (s *Server) Register(mux *http.ServeMux) {
	authed := middleware.RequireAuthHTTP(s.verifier)
	protect := func(h http.HandlerFunc) http.Handler { return authed(h) }

	mux.HandleFunc("POST /api/users", s.handleCreateUser)
	mux.HandleFunc("GET /api/users", s.handleListUsers)
	mux.Handle("PUT /api/users/group/create", protect(s.handleCreateGroup))
	mux.Handle("PUT /api/users/{id}", protect(s.handleAddFriend))
	mux.Handle("DELETE /api/users/friends/{id}", protect(s.handleRemoveFriend))
	mux.Handle("DELETE /api/users/group/{id}", protect(s.handleDeleteGroup))
	mux.Handle("GET /api/users/myusers", protect(s.handleListFriends))
	mux.Handle("GET /api/users/group", protect(s.handleListGroups))
	mux.Handle("GET /api/users/group/{id}/tally", protect(s.handleTally))
	mux.Handle("POST /api/users/vote/{id}", protect(s.handleCastVote))

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.Handle("POST /api/auth/refresh", protect(s.handleRefresh))
	mux.Handle("POST /api/auth/logout", protect(s.handleLogout))

	mux.HandleFunc("GET /healthz", s.handleHealth)
}

// Handler returns a mux serving only the REST routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.health.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"ok":       false,
			"database": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
