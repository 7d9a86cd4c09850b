package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/mmynk/forkful/internal/auth"
	"github.com/mmynk/forkful/internal/middleware"
	"github.com/mmynk/forkful/internal/service"
	"github.com/mmynk/forkful/internal/session"
	"github.com/mmynk/forkful/internal/storage/sqlite"
)

// newTestServer wires the REST surface over a temp SQLite store and a
// miniredis revocation store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	mr := miniredis.RunT(t)
	revocations, err := session.NewRedisStore("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("failed to create revocation store: %v", err)
	}
	t.Cleanup(func() { revocations.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := NewServer(Services{
		Users:    service.NewUserService(auth.NewPasswordAuthenticator(store), jwtManager, revocations, store, logger),
		Friends:  service.NewFriendService(store),
		Groups:   service.NewGroupService(store),
		Votes:    service.NewVoteService(store),
		Verifier: middleware.NewVerifier(jwtManager, revocations),
		Health:   store,
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// do sends a JSON request and decodes a JSON response into out when non-nil.
func do(t *testing.T, ts *httptest.Server, method, path, token string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func register(t *testing.T, ts *httptest.Server, username string) UserView {
	t.Helper()

	var user UserView
	status := do(t, ts, http.MethodPost, "/api/users", "", map[string]string{
		"username": username,
		"password": "secretpass1",
	}, &user)
	if status != http.StatusCreated {
		t.Fatalf("register %s: status %d", username, status)
	}
	return user
}

func login(t *testing.T, ts *httptest.Server, username string) string {
	t.Helper()

	var resp tokenResponse
	status := do(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": "secretpass1",
	}, &resp)
	if status != http.StatusOK {
		t.Fatalf("login %s: status %d", username, status)
	}
	return resp.AuthToken
}
