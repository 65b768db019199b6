// internal/app/features/articles/handler_test.go
package articles

import (
	"strings"
	"testing"

	articlestore "github.com/ecoecho-app/ecoecho/internal/app/store/articles"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"github.com/ecoecho-app/ecoecho/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := NewHandler(articlestore.New(db), logger, uierrors.NewErrorLogger(logger))
	return h, testutil.NewFixtures(t, db)
}

func TestHandleCreateSanitizesContent(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"title":"Compost Basics","content":"<p>Start small.</p><script>alert(1)</script>","excerpt":"Start small."}`
	req := testutil.WithUser(
		testutil.NewJSONRequest("POST", "/api/articles", body),
		testutil.CitizenUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 201)
	rec.AssertContains(t, "Start small.")
	if strings.Contains(rec.Body.String(), "<script>") {
		t.Error("script tag survived sanitization")
	}
}

func TestHandleCreateValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.WithUser(
		testutil.NewJSONRequest("POST", "/api/articles", `{"excerpt":"no title or content"}`),
		testutil.CitizenUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 400)
	rec.AssertContains(t, "title")
	rec.AssertContains(t, "content")
}

func TestServeListNewestFirst(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := testutil.TestContext(t)

	author := fx.CreateCitizen(ctx, "Rita", "rita@example.com")
	fx.CreateArticle(ctx, "First", author.ID)
	fx.CreateArticle(ctx, "Second", author.ID)

	req := testutil.NewRequest("GET", "/api/articles")
	rec := testutil.NewRecorder()
	h.ServeList(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)
	bodyStr := rec.Body.String()
	if strings.Index(bodyStr, "Second") > strings.Index(bodyStr, "First") {
		t.Error("articles are not newest first")
	}
}

func TestHandleUpdateNonAuthor(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := testutil.TestContext(t)

	author := fx.CreateCitizen(ctx, "Rita", "rita@example.com")
	stranger := fx.CreateCitizen(ctx, "Eve", "eve@example.com")
	article := fx.CreateArticle(ctx, "Original", author.ID)

	body := `{"title":"Hijacked","content":"<p>x</p>"}`
	req := testutil.WithUser(
		testutil.NewJSONRequest("PUT", "/api/articles/"+article.ID.Hex(), body),
		testutil.UserFor(stranger.ID, stranger.Name, stranger.Role))
	req = testutil.WithChiURLParam(req, "id", article.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 404)
}

func TestHandleDeleteByAuthor(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx := testutil.TestContext(t)

	author := fx.CreateCitizen(ctx, "Rita", "rita@example.com")
	article := fx.CreateArticle(ctx, "Going Away", author.ID)

	req := testutil.NewAuthenticatedRequest("DELETE", "/api/articles/"+article.ID.Hex(),
		testutil.UserFor(author.ID, author.Name, author.Role))
	req = testutil.WithChiURLParam(req, "id", article.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)

	delReq := testutil.NewRequest("GET", "/api/articles/"+article.ID.Hex())
	delReq = testutil.WithChiURLParam(delReq, "id", article.ID.Hex())
	delRec := testutil.NewRecorder()
	h.ServeArticle(delRec.ResponseRecorder, delReq)
	delRec.AssertStatus(t, 404)
}
