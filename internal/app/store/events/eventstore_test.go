package eventstore_test

import (
	"testing"
	"time"

	eventstore "github.com/ecoecho-app/ecoecho/internal/app/store/events"
	"github.com/ecoecho-app/ecoecho/internal/domain/models"
	"github.com/ecoecho-app/ecoecho/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx := testutil.TestContext(t)

	creator := primitive.NewObjectID()
	created, err := store.Create(ctx, models.Event{
		Title:       "  Beach Cleanup ",
		Description: "bring gloves",
		Category:    "Beach Cleanup",
		Country:     "IT",
		StartAt:     time.Now().Add(24 * time.Hour),
		EndAt:       time.Now().Add(26 * time.Hour),
		CreatedBy:   creator,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Title != "Beach Cleanup" {
		t.Errorf("title not trimmed: %q", created.Title)
	}
	if created.Category != "cleanup" {
		t.Errorf("category not canonicalized: %q", created.Category)
	}
	if created.Participants == nil || len(created.Participants) != 0 {
		t.Errorf("participants must start as an empty array, got %v", created.Participants)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CreatedBy != creator {
		t.Errorf("creator = %v, want %v", got.CreatedBy, creator)
	}
}

func TestJoinAndLeave(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx := testutil.TestContext(t)

	fx := testutil.NewFixtures(t, db)
	creator := fx.CreateCitizen(ctx, "Creator", "creator@example.com")
	joiner := fx.CreateCitizen(ctx, "Joiner", "joiner@example.com")
	event := fx.CreateEvent(ctx, "Park Gardening", creator.ID)

	joined, err := store.Join(ctx, event.ID, joiner.ID)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if !joined.HasParticipant(joiner.ID) {
		t.Error("joiner missing from refreshed event")
	}

	// Joining twice is a no-op.
	again, err := store.Join(ctx, event.ID, joiner.ID)
	if err != nil {
		t.Fatalf("second Join: %v", err)
	}
	if len(again.Participants) != 1 {
		t.Errorf("double join duplicated participant: %v", again.Participants)
	}

	left, err := store.Leave(ctx, event.ID, joiner.ID)
	if err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if left.HasParticipant(joiner.ID) {
		t.Error("joiner still present after Leave")
	}

	// Leaving again stays a no-op.
	if _, err := store.Leave(ctx, event.ID, joiner.ID); err != nil {
		t.Fatalf("second Leave: %v", err)
	}
}

func TestJoin_CreatorRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx := testutil.TestContext(t)

	fx := testutil.NewFixtures(t, db)
	creator := fx.CreateCitizen(ctx, "Creator", "creator@example.com")
	event := fx.CreateEvent(ctx, "Recycling Drive", creator.ID)

	if _, err := store.Join(ctx, event.ID, creator.ID); err != eventstore.ErrCreatorJoin {
		t.Errorf("expected ErrCreatorJoin, got %v", err)
	}

	got, err := store.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Participants) != 0 {
		t.Errorf("creator leaked into participants: %v", got.Participants)
	}
}

func TestList_SortAndFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx := testutil.TestContext(t)

	creator := primitive.NewObjectID()
	now := time.Now()
	for i, spec := range []struct {
		title    string
		category string
		start    time.Time
	}{
		{"Older", "cleanup", now.Add(1 * time.Hour)},
		{"Newer", "cleanup", now.Add(48 * time.Hour)},
		{"Workshop", "workshop", now.Add(24 * time.Hour)},
	} {
		_, err := store.Create(ctx, models.Event{
			Title:     spec.title,
			Category:  spec.category,
			StartAt:   spec.start,
			EndAt:     spec.start.Add(time.Hour),
			CreatedBy: creator,
		})
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	all, err := store.List(ctx, eventstore.ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List returned %d events, want 3", len(all))
	}
	if all[0].Title != "Newer" {
		t.Errorf("expected newest start first, got %q", all[0].Title)
	}

	cleanups, err := store.List(ctx, eventstore.ListFilter{Category: "cleanup"})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(cleanups) != 2 {
		t.Errorf("category filter returned %d events, want 2", len(cleanups))
	}
}

func TestUpdateAndDeleteByCreator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventstore.New(db)
	ctx := testutil.TestContext(t)

	fx := testutil.NewFixtures(t, db)
	creator := fx.CreateCitizen(ctx, "Creator", "creator@example.com")
	stranger := fx.CreateCitizen(ctx, "Stranger", "stranger@example.com")
	event := fx.CreateEvent(ctx, "Original", creator.ID)

	upd := eventstore.Update{
		Title:    "Renamed",
		Category: "gardening",
		StartAt:  event.StartAt,
		EndAt:    event.EndAt,
	}

	if _, err := store.UpdateByCreator(ctx, event.ID, stranger.ID, upd); err != mongo.ErrNoDocuments {
		t.Errorf("non-creator update: expected ErrNoDocuments, got %v", err)
	}

	updated, err := store.UpdateByCreator(ctx, event.ID, creator.ID, upd)
	if err != nil {
		t.Fatalf("UpdateByCreator: %v", err)
	}
	if updated.Title != "Renamed" || updated.Category != "gardening" {
		t.Errorf("update not applied: %+v", updated)
	}

	if n, err := store.DeleteByCreator(ctx, event.ID, stranger.ID); err != nil || n != 0 {
		t.Errorf("non-creator delete: n=%d err=%v, want 0,nil", n, err)
	}
	if n, err := store.DeleteByCreator(ctx, event.ID, creator.ID); err != nil || n != 1 {
		t.Errorf("creator delete: n=%d err=%v, want 1,nil", n, err)
	}
}
