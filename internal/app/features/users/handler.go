// internal/app/features/users/handler.go
package users

import (
	"context"
	"errors"
	"net/http"

	articlestore "github.com/ecoecho-app/ecoecho/internal/app/store/articles"
	eventstore "github.com/ecoecho-app/ecoecho/internal/app/store/events"
	userstore "github.com/ecoecho-app/ecoecho/internal/app/store/users"
	"github.com/ecoecho-app/ecoecho/internal/app/system/normalize"
	"github.com/ecoecho-app/ecoecho/internal/app/system/timeouts"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"github.com/ecoecho-app/ecoecho/internal/domain/models"
	"github.com/ecoecho-app/ecoecho/internal/domain/scoring"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves public user profiles.
type Handler struct {
	Users    *userstore.Store
	Events   *eventstore.Store
	Articles *articlestore.Store
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

func NewHandler(
	users *userstore.Store,
	events *eventstore.Store,
	articles *articlestore.Store,
	logger *zap.Logger,
	errLog *uierrors.ErrorLogger,
) *Handler {
	return &Handler{
		Users:    users,
		Events:   events,
		Articles: articles,
		Log:      logger,
		ErrLog:   errLog,
	}
}

type publicProfileResponse struct {
	User      models.PublicUser `json:"user"`
	EcoPoints int               `json:"ecoPoints"`
	Counts    scoring.Counts    `json:"counts"`
}

// ServeUser handles GET /api/users/{id}: a public view of a user with
// their activity-derived EcoPoints. Email and auth details stay private.
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, "invalid user id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long)
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, "user not found")
			return
		}
		h.ErrLog.LogError(r, "users.get", err)
		uierrors.RenderServerError(w, "failed to load user")
		return
	}
	if normalize.Status(user.Status) == "disabled" {
		uierrors.RenderNotFound(w, "user not found")
		return
	}

	events, err := h.Events.All(ctx)
	if err != nil {
		h.ErrLog.LogError(r, "users.get", err)
		uierrors.RenderServerError(w, "failed to load user")
		return
	}
	articles, err := h.Articles.All(ctx)
	if err != nil {
		h.ErrLog.LogError(r, "users.get", err)
		uierrors.RenderServerError(w, "failed to load user")
		return
	}

	counts := scoring.Count(events, articles, id)
	uierrors.WriteJSON(w, http.StatusOK, publicProfileResponse{
		User:      user.Public(),
		EcoPoints: counts.Score(),
		Counts:    counts,
	})
}
