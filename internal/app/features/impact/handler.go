// internal/app/features/impact/handler.go
package impact

import (
	"context"
	"net/http"

	articlestore "github.com/ecoecho-app/ecoecho/internal/app/store/articles"
	eventstore "github.com/ecoecho-app/ecoecho/internal/app/store/events"
	userstore "github.com/ecoecho-app/ecoecho/internal/app/store/users"
	"github.com/ecoecho-app/ecoecho/internal/app/system/cache"
	"github.com/ecoecho-app/ecoecho/internal/app/system/timeouts"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"go.uber.org/zap"
)

// CacheKey is the Redis key the totals are cached under.
const CacheKey = "impact:v1"

// Handler serves the community-wide impact totals shown on the landing
// page.
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

type totalsResponse struct {
	Users    int64 `json:"users"`
	Events   int64 `json:"events"`
	Articles int64 `json:"articles"`
}

// ServeTotals handles GET /api/impact.
func (h *Handler) ServeTotals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long)
	defer cancel()

	var resp totalsResponse
	err := h.Cache.Aside(ctx, CacheKey, &resp, func() error {
		var err error
		if resp.Users, err = h.Users.Count(ctx); err != nil {
			return err
		}
		if resp.Events, err = h.Events.Count(ctx); err != nil {
			return err
		}
		resp.Articles, err = h.Articles.Count(ctx)
		return err
	})
	if err != nil {
		h.ErrLog.LogError(r, "impact", err)
		uierrors.RenderServerError(w, "failed to load impact totals")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, resp)
}
