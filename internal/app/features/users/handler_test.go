// internal/app/features/users/handler_test.go
package users

import (
	"strings"
	"testing"

	articlestore "github.com/ecoecho-app/ecoecho/internal/app/store/articles"
	eventstore "github.com/ecoecho-app/ecoecho/internal/app/store/events"
	userstore "github.com/ecoecho-app/ecoecho/internal/app/store/users"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"github.com/ecoecho-app/ecoecho/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := NewHandler(
		userstore.New(db),
		eventstore.New(db),
		articlestore.New(db),
		logger,
		uierrors.NewErrorLogger(logger),
	)
	return h, testutil.NewFixtures(t, db)
}

func TestServeUserPublicProfile(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := testutil.TestContext(t)

	user := fx.CreateCitizen(ctx, "Marco", "marco@example.com")
	fx.CreateEvent(ctx, "Beach Cleanup", user.ID)

	req := testutil.NewRequest("GET", "/api/users/"+user.ID.Hex())
	req = testutil.WithChiURLParam(req, "id", user.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeUser(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, "Marco")
	rec.AssertContains(t, `"ecoPoints":50`)
	if strings.Contains(rec.Body.String(), "marco@example.com") {
		t.Error("public profile leaked the email address")
	}
}

func TestServeUserNotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	id := primitive.NewObjectID().Hex()
	req := testutil.NewRequest("GET", "/api/users/"+id)
	req = testutil.WithChiURLParam(req, "id", id)
	rec := testutil.NewRecorder()
	h.ServeUser(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 404)
}

func TestServeUserInvalidID(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewRequest("GET", "/api/users/nope")
	req = testutil.WithChiURLParam(req, "id", "nope")
	rec := testutil.NewRecorder()
	h.ServeUser(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 400)
}

func TestServeUserDisabledHidden(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := testutil.TestContext(t)

	user := fx.CreateCitizen(ctx, "Gone", "gone@example.com")
	_, err := fx.DB().Collection("users").UpdateByID(ctx, user.ID,
		bson.M{"$set": bson.M{"status": "disabled"}})
	if err != nil {
		t.Fatalf("disable user: %v", err)
	}

	req := testutil.NewRequest("GET", "/api/users/"+user.ID.Hex())
	req = testutil.WithChiURLParam(req, "id", user.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeUser(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 404)
}

func TestServeUserDisabledHiddenMixedCase(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := testutil.TestContext(t)

	user := fx.CreateCitizen(ctx, "Gone", "gone@example.com")
	_, err := fx.DB().Collection("users").UpdateByID(ctx, user.ID,
		bson.M{"$set": bson.M{"status": "Disabled"}})
	if err != nil {
		t.Fatalf("disable user: %v", err)
	}

	req := testutil.NewRequest("GET", "/api/users/"+user.ID.Hex())
	req = testutil.WithChiURLParam(req, "id", user.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeUser(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 404)
}
