// internal/app/features/leaderboard/handler_test.go
package leaderboard

import (
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	articlestore "github.com/ecoecho-app/ecoecho/internal/app/store/articles"
	eventstore "github.com/ecoecho-app/ecoecho/internal/app/store/events"
	userstore "github.com/ecoecho-app/ecoecho/internal/app/store/users"
	"github.com/ecoecho-app/ecoecho/internal/app/system/cache"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"github.com/ecoecho-app/ecoecho/internal/testutil"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, c *cache.Cache) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := NewHandler(
		userstore.New(db),
		eventstore.New(db),
		articlestore.New(db),
		c,
		logger,
		uierrors.NewErrorLogger(logger),
	)
	return h, testutil.NewFixtures(t, db)
}

func TestServeBoardRanking(t *testing.T) {
	h, fx := newTestHandler(t, nil)
	ctx := testutil.TestContext(t)

	organizer := fx.CreateCitizen(ctx, "Organizer", "organizer@example.com")
	writer := fx.CreateCitizen(ctx, "Writer", "writer@example.com")
	fx.CreateEvent(ctx, "Cleanup", organizer.ID)
	fx.CreateArticle(ctx, "Recycling Tips", writer.ID)

	req := testutil.NewRequest("GET", "/api/leaderboard")
	rec := testutil.NewRecorder()
	h.ServeBoard(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)
	body := rec.Body.String()
	if strings.Index(body, "Organizer") > strings.Index(body, "Writer") {
		t.Errorf("expected 50-point organizer ranked above 25-point writer: %s", body)
	}
	rec.AssertContains(t, `"rank":1`)
}

func TestServeBoardEmpty(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	req := testutil.NewRequest("GET", "/api/leaderboard")
	rec := testutil.NewRecorder()
	h.ServeBoard(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, `"entries":[]`)
}

func TestServeBoardCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.New(rdb, time.Minute, zap.NewNop())

	h, fx := newTestHandler(t, c)
	ctx := testutil.TestContext(t)

	user := fx.CreateCitizen(ctx, "Organizer", "organizer@example.com")
	fx.CreateEvent(ctx, "Cleanup", user.ID)

	req := testutil.NewRequest("GET", "/api/leaderboard")
	rec := testutil.NewRecorder()
	h.ServeBoard(rec.ResponseRecorder, req)
	rec.AssertStatus(t, 200)

	if !mr.Exists(CacheKey) {
		t.Fatal("leaderboard was not written to the cache")
	}

	// Second request is served from the cache even after the data moves.
	fx.CreateArticle(ctx, "New Article", user.ID)
	rec2 := testutil.NewRecorder()
	h.ServeBoard(rec2.ResponseRecorder, testutil.NewRequest("GET", "/api/leaderboard"))
	rec2.AssertStatus(t, 200)
	rec2.AssertContains(t, `"ecoPoints":50`)
	if strings.Contains(rec2.Body.String(), `"ecoPoints":75`) {
		t.Error("cached board was recomputed")
	}
}
