package orgstore_test

import (
	"testing"

	orgstore "github.com/ecoecho-app/ecoecho/internal/app/store/organizations"
	"github.com/ecoecho-app/ecoecho/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestUpsertForOwner_CreateThenUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := orgstore.New(db)
	ctx := testutil.TestContext(t)

	owner := primitive.NewObjectID()

	created, err := store.UpsertForOwner(ctx, owner, orgstore.Upsert{
		Name:        "Green Milano",
		Description: "<p>local cleanups</p><script>x()</script>",
		Website:     "https://greenmilano.example",
	})
	if err != nil {
		t.Fatalf("UpsertForOwner (create): %v", err)
	}
	if created.OwnerID != owner {
		t.Errorf("owner = %v, want %v", created.OwnerID, owner)
	}
	if created.Description != "<p>local cleanups</p>" {
		t.Errorf("description not sanitized: %q", created.Description)
	}

	updated, err := store.UpsertForOwner(ctx, owner, orgstore.Upsert{
		Name:    "Green Milano APS",
		Website: "https://greenmilano.example",
	})
	if err != nil {
		t.Fatalf("UpsertForOwner (update): %v", err)
	}
	if updated.ID != created.ID {
		t.Error("upsert for the same owner must update, not create")
	}
	if updated.Name != "Green Milano APS" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Error("created_at must survive updates")
	}
}

func TestGetByOwner_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := orgstore.New(db)
	ctx := testutil.TestContext(t)

	if _, err := store.GetByOwner(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestDeleteByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := orgstore.New(db)
	ctx := testutil.TestContext(t)

	owner := primitive.NewObjectID()
	if _, err := store.UpsertForOwner(ctx, owner, orgstore.Upsert{Name: "Org"}); err != nil {
		t.Fatalf("UpsertForOwner: %v", err)
	}

	n, err := store.DeleteByOwner(ctx, owner)
	if err != nil || n != 1 {
		t.Fatalf("DeleteByOwner: n=%d err=%v, want 1,nil", n, err)
	}
	if n, _ := store.DeleteByOwner(ctx, owner); n != 0 {
		t.Errorf("second delete removed %d documents, want 0", n)
	}
}
