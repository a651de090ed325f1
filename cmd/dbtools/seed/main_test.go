package main

import (
	"context"
	"testing"

	"github.com/codr1/Fixturely/internal/api/auth"
	"github.com/codr1/Fixturely/internal/api/authz"
	"github.com/codr1/Fixturely/internal/testutil"
)

func TestSeedAdminIsIdempotent(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	user, created, err := seedAdmin(ctx, database.Queries, " Admin@Example.com ", "Site Admin", "correct horse battery")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !created || user.Role != authz.RoleAdmin || user.Email != "admin@example.com" {
		t.Fatalf("unexpected seeded user %+v (created=%v)", user, created)
	}
	if !auth.VerifyPassword(user.PasswordHash.String, "correct horse battery") {
		t.Fatal("expected stored hash to verify")
	}

	again, created, err := seedAdmin(ctx, database.Queries, "admin@example.com", "Someone Else", "another long password")
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if created || again.ID != user.ID {
		t.Fatalf("expected existing user returned, got %+v (created=%v)", again, created)
	}
}
