// internal/app/features/chats/handler_test.go
package chats

import (
	"fmt"
	"testing"

	chatstore "github.com/ecoecho-app/ecoecho/internal/app/store/chats"
	userstore "github.com/ecoecho-app/ecoecho/internal/app/store/users"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"github.com/ecoecho-app/ecoecho/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := NewHandler(chatstore.New(db), userstore.New(db), logger, uierrors.NewErrorLogger(logger))
	return h, testutil.NewFixtures(t, db)
}

func TestHandleOpenIsSingleton(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := testutil.TestContext(t)

	alice := fx.CreateCitizen(ctx, "Alice", "alice@example.com")
	bob := fx.CreateCitizen(ctx, "Bob", "bob@example.com")

	open := func(to string, tu testutil.TestUser) *testutil.ResponseRecorder {
		body := fmt.Sprintf(`{"userId":%q}`, to)
		req := testutil.WithUser(testutil.NewJSONRequest("POST", "/api/chats", body), tu)
		rec := testutil.NewRecorder()
		h.HandleOpen(rec.ResponseRecorder, req)
		return rec
	}

	rec1 := open(bob.ID.Hex(), testutil.UserFor(alice.ID, alice.Name, alice.Role))
	rec1.AssertStatus(t, 200)

	// Opening from the other side returns the same chat.
	rec2 := open(alice.ID.Hex(), testutil.UserFor(bob.ID, bob.Name, bob.Role))
	rec2.AssertStatus(t, 200)

	chats, err := h.Chats.ListForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(chats) != 1 {
		t.Fatalf("chat count: got %d, want 1", len(chats))
	}
	if got := chats[0].Participants[bob.ID.Hex()].Name; got != "Bob" {
		t.Errorf("participant snapshot: got %q, want Bob", got)
	}
}

func TestHandleOpenSelfRejected(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := testutil.TestContext(t)

	alice := fx.CreateCitizen(ctx, "Alice", "alice@example.com")
	body := fmt.Sprintf(`{"userId":%q}`, alice.ID.Hex())
	req := testutil.WithUser(testutil.NewJSONRequest("POST", "/api/chats", body),
		testutil.UserFor(alice.ID, alice.Name, alice.Role))
	rec := testutil.NewRecorder()
	h.HandleOpen(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 400)
}

func TestSendAndListMessages(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := testutil.TestContext(t)

	alice := fx.CreateCitizen(ctx, "Alice", "alice@example.com")
	bob := fx.CreateCitizen(ctx, "Bob", "bob@example.com")
	chat, err := h.Chats.LookupOrCreate(ctx, alice, bob)
	if err != nil {
		t.Fatalf("LookupOrCreate: %v", err)
	}
	aliceTU := testutil.UserFor(alice.ID, alice.Name, alice.Role)

	sendReq := testutil.WithUser(
		testutil.NewJSONRequest("POST", "/api/chats/"+chat.ID.Hex()+"/messages", `{"text":"hi bob"}`),
		aliceTU)
	sendReq = testutil.WithChiURLParam(sendReq, "id", chat.ID.Hex())
	sendRec := testutil.NewRecorder()
	h.HandleSend(sendRec.ResponseRecorder, sendReq)

	sendRec.AssertStatus(t, 201)
	sendRec.AssertContains(t, "hi bob")

	listReq := testutil.NewAuthenticatedRequest("GET", "/api/chats/"+chat.ID.Hex()+"/messages",
		testutil.UserFor(bob.ID, bob.Name, bob.Role))
	listReq = testutil.WithChiURLParam(listReq, "id", chat.ID.Hex())
	listRec := testutil.NewRecorder()
	h.ServeMessages(listRec.ResponseRecorder, listReq)

	listRec.AssertStatus(t, 200)
	listRec.AssertContains(t, "hi bob")
}

func TestNonMemberGets404(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := testutil.TestContext(t)

	alice := fx.CreateCitizen(ctx, "Alice", "alice@example.com")
	bob := fx.CreateCitizen(ctx, "Bob", "bob@example.com")
	eve := fx.CreateCitizen(ctx, "Eve", "eve@example.com")
	chat, err := h.Chats.LookupOrCreate(ctx, alice, bob)
	if err != nil {
		t.Fatalf("LookupOrCreate: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("GET", "/api/chats/"+chat.ID.Hex(),
		testutil.UserFor(eve.ID, eve.Name, eve.Role))
	req = testutil.WithChiURLParam(req, "id", chat.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeChat(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 404)
}

func TestHandleSendEmptyAfterStripping(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := testutil.TestContext(t)

	alice := fx.CreateCitizen(ctx, "Alice", "alice@example.com")
	bob := fx.CreateCitizen(ctx, "Bob", "bob@example.com")
	chat, err := h.Chats.LookupOrCreate(ctx, alice, bob)
	if err != nil {
		t.Fatalf("LookupOrCreate: %v", err)
	}

	req := testutil.WithUser(
		testutil.NewJSONRequest("POST", "/api/chats/"+chat.ID.Hex()+"/messages", `{"text":"<b></b>"}`),
		testutil.UserFor(alice.ID, alice.Name, alice.Role))
	req = testutil.WithChiURLParam(req, "id", chat.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleSend(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 400)
}
