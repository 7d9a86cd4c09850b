package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/mmynk/forkful/internal/models"
)

// TestPostgresVoteUpsert runs against a real server when TEST_DATABASE_URL is set.
func TestPostgresVoteUpsert(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := Open(ctx, databaseURL)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer store.Close()

	owner := models.NewUser("pg-owner-"+uuid.New().String(), "", "", "hash")
	if err := store.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	group := &models.Group{OwnerID: owner.ID, Name: "pg dinner", Members: []string{owner.ID}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	defer store.DeleteGroup(ctx, group.ID)

	for _, category := range []string{"sushi", "tacos"} {
		vote := &models.Vote{GroupID: group.ID, MemberID: owner.ID, Categories: []string{category}}
		if err := store.UpsertVote(ctx, vote); err != nil {
			t.Fatalf("UpsertVote failed: %v", err)
		}
	}

	votes, err := store.ListVotesByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListVotesByGroup failed: %v", err)
	}
	if len(votes) != 1 || votes[0].Categories[0] != "tacos" {
		t.Errorf("expected one vote with [tacos], got %+v", votes)
	}
}
