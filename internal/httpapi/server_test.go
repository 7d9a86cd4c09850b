package httpapi

import (
	"net/http"
	"testing"
)

func TestDinnerScenario(t *testing.T) {
	ts := newTestServer(t)

	alice := register(t, ts, "alice")
	if alice.ID == "" || alice.Username != "alice" {
		t.Fatalf("unexpected user: %+v", alice)
	}
	token := login(t, ts, "alice")

	status := do(t, ts, http.MethodPut, "/api/users/group/create", token, map[string]any{
		"groupName": "dinner",
		"members":   []string{alice.ID},
	}, nil)
	if status != http.StatusNoContent {
		t.Fatalf("create group: status %d", status)
	}

	var groups []GroupView
	if status := do(t, ts, http.MethodGet, "/api/users/group", token, nil, &groups); status != http.StatusOK {
		t.Fatalf("list groups: status %d", status)
	}
	if len(groups) != 1 || groups[0].GroupName != "dinner" {
		t.Fatalf("expected dinner group, got %+v", groups)
	}
	dinner := groups[0]

	for _, category := range []string{"sushi", "tacos"} {
		var vote VoteView
		status := do(t, ts, http.MethodPost, "/api/users/vote/"+dinner.ID, token, map[string]any{
			"categories": []string{category},
		}, &vote)
		if status != http.StatusOK {
			t.Fatalf("vote %s: status %d", category, status)
		}
		if len(vote.Categories) != 1 || vote.Categories[0] != category {
			t.Errorf("vote %s: got %v", category, vote.Categories)
		}
	}

	var tally TallyView
	if status := do(t, ts, http.MethodGet, "/api/users/group/"+dinner.ID+"/tally", token, nil, &tally); status != http.StatusOK {
		t.Fatalf("tally: status %d", status)
	}
	if len(tally.Ballots) != 1 {
		t.Fatalf("expected one ballot, got %+v", tally.Ballots)
	}
	if got := tally.Ballots[0].Categories; len(got) != 1 || got[0] != "tacos" {
		t.Errorf("ballot categories: got %v, want [tacos]", got)
	}
	if len(tally.Winners) != 1 || tally.Winners[0] != "tacos" {
		t.Errorf("winners: got %v", tally.Winners)
	}

	bob := register(t, ts, "bob")
	for i := 0; i < 2; i++ {
		if status := do(t, ts, http.MethodPut, "/api/users/"+bob.ID, token, nil, nil); status != http.StatusNoContent {
			t.Fatalf("add friend: status %d", status)
		}
	}

	var friends []map[string]string
	if status := do(t, ts, http.MethodGet, "/api/users/myusers", token, nil, &friends); status != http.StatusOK {
		t.Fatalf("list friends: status %d", status)
	}
	if len(friends) != 1 || friends[0]["_id"] != bob.ID {
		t.Errorf("expected exactly bob, got %v", friends)
	}

	var users []UserView
	do(t, ts, http.MethodGet, "/api/users", "", nil, &users)
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if len(users[0].Friends) != 1 || len(users[0].Groups) != 1 {
		t.Errorf("alice: friends %v, groups %v", users[0].Friends, users[0].Groups)
	}
}

func TestGroupAccess(t *testing.T) {
	ts := newTestServer(t)

	alice := register(t, ts, "alice")
	bob := register(t, ts, "bob")
	register(t, ts, "carol")
	aliceToken := login(t, ts, "alice")
	bobToken := login(t, ts, "bob")
	carolToken := login(t, ts, "carol")

	do(t, ts, http.MethodPut, "/api/users/group/create", aliceToken, map[string]any{
		"groupName": "lunch",
		"members":   []string{alice.ID, bob.ID},
	}, nil)

	var groups []GroupView
	do(t, ts, http.MethodGet, "/api/users/group", bobToken, nil, &groups)
	if len(groups) != 1 || groups[0].OwnerID != alice.ID {
		t.Fatalf("bob should see alice's group once, got %+v", groups)
	}
	lunch := groups[0]

	vote := map[string]any{"categories": []string{"pho"}, "rating": 4}
	if status := do(t, ts, http.MethodPost, "/api/users/vote/"+lunch.ID, bobToken, vote, nil); status != http.StatusOK {
		t.Errorf("member vote: status %d", status)
	}
	if status := do(t, ts, http.MethodPost, "/api/users/vote/"+lunch.ID, carolToken, vote, nil); status != http.StatusForbidden {
		t.Errorf("non-member vote: status %d, want 403", status)
	}
	if status := do(t, ts, http.MethodPost, "/api/users/vote/missing", bobToken, vote, nil); status != http.StatusNotFound {
		t.Errorf("unknown group vote: status %d, want 404", status)
	}
	if status := do(t, ts, http.MethodGet, "/api/users/group/missing/tally", bobToken, nil, nil); status != http.StatusNotFound {
		t.Errorf("unknown group tally: status %d, want 404", status)
	}

	for i := 0; i < 2; i++ {
		if status := do(t, ts, http.MethodDelete, "/api/users/group/"+lunch.ID, aliceToken, nil, nil); status != http.StatusNoContent {
			t.Errorf("delete %d: status %d, want 204", i, status)
		}
	}

	groups = nil
	do(t, ts, http.MethodGet, "/api/users/group", bobToken, nil, &groups)
	if len(groups) != 0 {
		t.Errorf("expected no groups after delete, got %+v", groups)
	}
}

func TestAuthRoutes(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice")

	var body map[string]any
	if status := do(t, ts, http.MethodGet, "/api/users/group", "", nil, &body); status != http.StatusUnauthorized {
		t.Fatalf("no token: status %d, want 401", status)
	}
	if body["message"] != "Unauthorized" {
		t.Errorf("unexpected body: %v", body)
	}

	status := do(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrongpass12",
	}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("bad password: status %d, want 401", status)
	}

	token := login(t, ts, "alice")

	var refreshed tokenResponse
	if status := do(t, ts, http.MethodPost, "/api/auth/refresh", token, nil, &refreshed); status != http.StatusOK {
		t.Fatalf("refresh: status %d", status)
	}
	if status := do(t, ts, http.MethodGet, "/api/users/myusers", token, nil, nil); status != http.StatusUnauthorized {
		t.Errorf("refreshed-away token: status %d, want 401", status)
	}

	if status := do(t, ts, http.MethodPost, "/api/auth/logout", refreshed.AuthToken, nil, nil); status != http.StatusNoContent {
		t.Fatalf("logout: status %d", status)
	}
	if status := do(t, ts, http.MethodGet, "/api/users/myusers", refreshed.AuthToken, nil, nil); status != http.StatusUnauthorized {
		t.Errorf("logged-out token: status %d, want 401", status)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]any
	if status := do(t, ts, http.MethodGet, "/healthz", "", nil, &body); status != http.StatusOK {
		t.Fatalf("status %d", status)
	}
	if body["ok"] != true {
		t.Errorf("unexpected body: %v", body)
	}
}
