// internal/app/features/events/handler_test.go
package events

import (
	"fmt"
	"testing"
	"time"

	eventstore "github.com/ecoecho-app/ecoecho/internal/app/store/events"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"github.com/ecoecho-app/ecoecho/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := NewHandler(eventstore.New(db), logger, uierrors.NewErrorLogger(logger))
	return h, testutil.NewFixtures(t, db)
}

func TestHandleCreateAndServeList(t *testing.T) {
	h, _ := newTestHandler(t)

	user := testutil.CitizenUser()
	start := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	body := fmt.Sprintf(`{"title":"Park Cleanup","description":"bring gloves","category":"cleanup","country":"it","startAt":%q}`, start)

	req := testutil.WithUser(testutil.NewJSONRequest("POST", "/api/events", body), user)
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 201)
	rec.AssertContains(t, "Park Cleanup")

	listReq := testutil.NewRequest("GET", "/api/events?category=cleanup")
	listRec := testutil.NewRecorder()
	h.ServeList(listRec.ResponseRecorder, listReq)

	listRec.AssertStatus(t, 200)
	listRec.AssertContains(t, "Park Cleanup")
}

func TestHandleCreateValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.WithUser(
		testutil.NewJSONRequest("POST", "/api/events", `{"description":"no title"}`),
		testutil.CitizenUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 400)
	rec.AssertContains(t, "title")
	rec.AssertContains(t, "startAt")
}

func TestHandleCreateUnknownCategory(t *testing.T) {
	h, _ := newTestHandler(t)

	start := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	body := fmt.Sprintf(`{"title":"Mystery Meetup","category":"knitting","startAt":%q}`, start)
	req := testutil.WithUser(
		testutil.NewJSONRequest("POST", "/api/events", body),
		testutil.CitizenUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 400)
	rec.AssertContains(t, "category")
}

func TestHandleCreateUnauthenticated(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewJSONRequest("POST", "/api/events", `{"title":"x"}`)
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 401)
}

func TestHandleJoinRejectsCreator(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := testutil.TestContext(t)

	creator := fx.CreateCitizen(ctx, "Anna", "anna@example.com")
	event := fx.CreateEvent(ctx, "Tree Planting", creator.ID)

	req := testutil.NewAuthenticatedRequest("POST", "/api/events/"+event.ID.Hex()+"/join",
		testutil.UserFor(creator.ID, creator.Name, creator.Role))
	req = testutil.WithChiURLParam(req, "id", event.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleJoin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 409)
}

func TestHandleJoinAndLeave(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := testutil.TestContext(t)

	creator := fx.CreateCitizen(ctx, "Anna", "anna@example.com")
	joiner := fx.CreateCitizen(ctx, "Ben", "ben@example.com")
	event := fx.CreateEvent(ctx, "Tree Planting", creator.ID)
	tu := testutil.UserFor(joiner.ID, joiner.Name, joiner.Role)

	joinReq := testutil.NewAuthenticatedRequest("POST", "/api/events/"+event.ID.Hex()+"/join", tu)
	joinReq = testutil.WithChiURLParam(joinReq, "id", event.ID.Hex())
	joinRec := testutil.NewRecorder()
	h.HandleJoin(joinRec.ResponseRecorder, joinReq)

	joinRec.AssertStatus(t, 200)
	joinRec.AssertContains(t, joiner.ID.Hex())

	leaveReq := testutil.NewAuthenticatedRequest("POST", "/api/events/"+event.ID.Hex()+"/leave", tu)
	leaveReq = testutil.WithChiURLParam(leaveReq, "id", event.ID.Hex())
	leaveRec := testutil.NewRecorder()
	h.HandleLeave(leaveRec.ResponseRecorder, leaveReq)

	leaveRec.AssertStatus(t, 200)

	refreshed, err := h.Events.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if refreshed.HasParticipant(joiner.ID) {
		t.Error("participant still present after leave")
	}
}

func TestHandleUpdateNonCreator(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := testutil.TestContext(t)

	creator := fx.CreateCitizen(ctx, "Anna", "anna@example.com")
	stranger := fx.CreateCitizen(ctx, "Eve", "eve@example.com")
	event := fx.CreateEvent(ctx, "Tree Planting", creator.ID)

	start := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	body := fmt.Sprintf(`{"title":"Hijacked","startAt":%q}`, start)
	req := testutil.WithUser(
		testutil.NewJSONRequest("PUT", "/api/events/"+event.ID.Hex(), body),
		testutil.UserFor(stranger.ID, stranger.Name, stranger.Role))
	req = testutil.WithChiURLParam(req, "id", event.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 404)
}

func TestHandleDeleteByCreator(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := testutil.TestContext(t)

	creator := fx.CreateCitizen(ctx, "Anna", "anna@example.com")
	event := fx.CreateEvent(ctx, "Tree Planting", creator.ID)

	req := testutil.NewAuthenticatedRequest("DELETE", "/api/events/"+event.ID.Hex(),
		testutil.UserFor(creator.ID, creator.Name, creator.Role))
	req = testutil.WithChiURLParam(req, "id", event.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)
}

func TestServeEventNotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	id := primitive.NewObjectID().Hex()
	req := testutil.NewRequest("GET", "/api/events/"+id)
	req = testutil.WithChiURLParam(req, "id", id)
	rec := testutil.NewRecorder()
	h.ServeEvent(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 404)
}
