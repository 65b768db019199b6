// internal/app/features/leaderboard/handler.go
package leaderboard

import (
	"context"
	"net/http"

	articlestore "github.com/ecoecho-app/ecoecho/internal/app/store/articles"
	eventstore "github.com/ecoecho-app/ecoecho/internal/app/store/events"
	userstore "github.com/ecoecho-app/ecoecho/internal/app/store/users"
	"github.com/ecoecho-app/ecoecho/internal/app/system/cache"
	"github.com/ecoecho-app/ecoecho/internal/app/system/timeouts"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"github.com/ecoecho-app/ecoecho/internal/domain/scoring"
	"go.uber.org/zap"
)

// CacheKey is the Redis key the ranked board is cached under. The board
// is recomputed from activity records on every miss; writes do not
// invalidate it, so the TTL bounds staleness.
const CacheKey = "leaderboard:v1"

// Handler serves the community leaderboard.
type Handler struct {
	Users    *userstore.Store
	Events   *eventstore.Store
	Articles *articlestore.Store
	Cache    *cache.Cache
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

func NewHandler(
	users *userstore.Store,
	events *eventstore.Store,
	articles *articlestore.Store,
	c *cache.Cache,
	logger *zap.Logger,
	errLog *uierrors.ErrorLogger,
) *Handler {
	return &Handler{
		Users:    users,
		Events:   events,
		Articles: articles,
		Cache:    c,
		Log:      logger,
		ErrLog:   errLog,
	}
}

type boardResponse struct {
	Entries []scoring.Entry `json:"entries"`
}

// ServeBoard handles GET /api/leaderboard.
func (h *Handler) ServeBoard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long)
	defer cancel()

	var resp boardResponse
	err := h.Cache.Aside(ctx, CacheKey, &resp, func() error {
		users, err := h.Users.All(ctx)
		if err != nil {
			return err
		}
		events, err := h.Events.All(ctx)
		if err != nil {
			return err
		}
		articles, err := h.Articles.All(ctx)
		if err != nil {
			return err
		}
		resp.Entries = scoring.Build(users, events, articles)
		return nil
	})
	if err != nil {
		h.ErrLog.LogError(r, "leaderboard", err)
		uierrors.RenderServerError(w, "failed to build leaderboard")
		return
	}
	if resp.Entries == nil {
		resp.Entries = []scoring.Entry{}
	}
	uierrors.WriteJSON(w, http.StatusOK, resp)
}
