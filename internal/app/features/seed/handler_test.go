// internal/app/features/seed/handler_test.go
package seed

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	articlestore "github.com/ecoecho-app/ecoecho/internal/app/store/articles"
	chatstore "github.com/ecoecho-app/ecoecho/internal/app/store/chats"
	eventstore "github.com/ecoecho-app/ecoecho/internal/app/store/events"
	orgstore "github.com/ecoecho-app/ecoecho/internal/app/store/organizations"
	userstore "github.com/ecoecho-app/ecoecho/internal/app/store/users"
	"github.com/ecoecho-app/ecoecho/internal/app/features/impact"
	"github.com/ecoecho-app/ecoecho/internal/app/features/leaderboard"
	"github.com/ecoecho-app/ecoecho/internal/app/system/cache"
	"github.com/ecoecho-app/ecoecho/internal/app/system/indexes"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"github.com/ecoecho-app/ecoecho/internal/testutil"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, c *cache.Cache) *Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	// Duplicate-email detection on rerun depends on the unique index.
	if err := indexes.EnsureAll(testutil.TestContext(t), db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	logger := zap.NewNop()
	return NewHandler(
		userstore.New(db),
		eventstore.New(db),
		articlestore.New(db),
		orgstore.New(db),
		chatstore.New(db),
		c,
		logger,
		uierrors.NewErrorLogger(logger),
	)
}

func TestServeSeedsBaseline(t *testing.T) {
	h := newTestHandler(t, nil)
	ctx := testutil.TestContext(t)

	req := testutil.NewRequest("POST", "/seed")
	rec := testutil.NewRecorder()
	h.Serve(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, `"users":7`)
	rec.AssertContains(t, `"organizations":1`)
	rec.AssertContains(t, `"chats":1`)
	rec.AssertContains(t, `"messages":3`)

	count, err := h.Users.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 7 {
		t.Errorf("user count: got %d, want 7", count)
	}
}

func TestServeIsRerunnable(t *testing.T) {
	h := newTestHandler(t, nil)
	ctx := testutil.TestContext(t)

	for i := 0; i < 2; i++ {
		req := testutil.NewRequest("POST", "/seed")
		rec := testutil.NewRecorder()
		h.Serve(rec.ResponseRecorder, req)
		rec.AssertStatus(t, 200)
	}

	// The fixed cast is keyed by email, so a second run adds no users.
	count, err := h.Users.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 7 {
		t.Errorf("user count after rerun: got %d, want 7", count)
	}
}

func TestServeWithExtras(t *testing.T) {
	h := newTestHandler(t, nil)
	ctx := testutil.TestContext(t)

	req := testutil.NewRequest("POST", "/seed?extra=3")
	rec := testutil.NewRecorder()
	h.Serve(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, `"users":10`)

	count, err := h.Users.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 10 {
		t.Errorf("user count: got %d, want 10", count)
	}
}

func TestServeInvalidatesCachedAggregates(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.New(rdb, time.Minute, zap.NewNop())

	h := newTestHandler(t, c)
	if err := mr.Set(leaderboard.CacheKey, `{"entries":[]}`); err != nil {
		t.Fatalf("set cache key: %v", err)
	}
	if err := mr.Set(impact.CacheKey, `{"users":0,"events":0,"articles":0}`); err != nil {
		t.Fatalf("set cache key: %v", err)
	}

	req := testutil.NewRequest("POST", "/seed")
	rec := testutil.NewRecorder()
	h.Serve(rec.ResponseRecorder, req)
	rec.AssertStatus(t, 200)

	if mr.Exists(leaderboard.CacheKey) {
		t.Error("leaderboard cache should be invalidated after seeding")
	}
	if mr.Exists(impact.CacheKey) {
		t.Error("impact cache should be invalidated after seeding")
	}
}

func TestServeRejectsBadExtra(t *testing.T) {
	h := newTestHandler(t, nil)

	for _, target := range []string{"/seed?extra=-1", "/seed?extra=9999", "/seed?extra=abc"} {
		req := testutil.NewRequest("POST", target)
		rec := testutil.NewRecorder()
		h.Serve(rec.ResponseRecorder, req)
		rec.AssertStatus(t, 400)
	}
}
