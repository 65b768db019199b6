package oauthstate_test

import (
	"testing"
	"time"

	"github.com/ecoecho-app/ecoecho/internal/app/store/oauthstate"
	"github.com/ecoecho-app/ecoecho/internal/testutil"
)

func TestSaveAndValidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx := testutil.TestContext(t)

	if err := store.Save(ctx, "state-123", "/profile", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	returnURL, valid, err := store.Validate(ctx, "state-123")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !valid {
		t.Fatal("fresh state should validate")
	}
	if returnURL != "/profile" {
		t.Errorf("return URL = %q, want /profile", returnURL)
	}

	// One-time use: a second validation fails.
	if _, valid, _ := store.Validate(ctx, "state-123"); valid {
		t.Error("state must be consumed on first validation")
	}
}

func TestValidate_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx := testutil.TestContext(t)

	if err := store.Save(ctx, "stale", "/", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, valid, err := store.Validate(ctx, "stale"); err != nil || valid {
		t.Errorf("expired state: valid=%v err=%v, want false,nil", valid, err)
	}
}

func TestCleanupExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx := testutil.TestContext(t)

	if err := store.Save(ctx, "old", "/", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "new", "/", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	n, err := store.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("cleaned %d states, want 1", n)
	}
	if _, valid, _ := store.Validate(ctx, "new"); !valid {
		t.Error("unexpired state should survive cleanup")
	}
}
