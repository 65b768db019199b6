// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"encoding/json"
	"net/http"

	articlestore "github.com/ecoecho-app/ecoecho/internal/app/store/articles"
	chatstore "github.com/ecoecho-app/ecoecho/internal/app/store/chats"
	eventstore "github.com/ecoecho-app/ecoecho/internal/app/store/events"
	userstore "github.com/ecoecho-app/ecoecho/internal/app/store/users"
	"github.com/ecoecho-app/ecoecho/internal/app/system/authz"
	"github.com/ecoecho-app/ecoecho/internal/app/system/countries"
	"github.com/ecoecho-app/ecoecho/internal/app/system/inputval"
	"github.com/ecoecho-app/ecoecho/internal/app/system/normalize"
	"github.com/ecoecho-app/ecoecho/internal/app/system/ratelimit"
	"github.com/ecoecho-app/ecoecho/internal/app/system/timeouts"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"github.com/ecoecho-app/ecoecho/internal/ai"
	"github.com/ecoecho-app/ecoecho/internal/domain/models"
	"github.com/ecoecho-app/ecoecho/internal/domain/scoring"
	"go.uber.org/zap"
)

// Handler serves the signed-in user's own profile.
type Handler struct {
	Users     *userstore.Store
	Events    *eventstore.Store
	Articles  *articlestore.Store
	Chats     *chatstore.Store
	Describer ai.Describer
	Limiter   *ratelimit.Limiter
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
}

func NewHandler(
	users *userstore.Store,
	events *eventstore.Store,
	articles *articlestore.Store,
	chats *chatstore.Store,
	describer ai.Describer,
	logger *zap.Logger,
	errLog *uierrors.ErrorLogger,
) *Handler {
	return &Handler{
		Users:     users,
		Events:    events,
		Articles:  articles,
		Chats:     chats,
		Describer: describer,
		Limiter:   ratelimit.NewDescribeLimiter(),
		Log:       logger,
		ErrLog:    errLog,
	}
}

type profileResponse struct {
	User      models.PublicUser `json:"user"`
	Email     string            `json:"email"`
	EcoPoints int               `json:"ecoPoints"`
	Counts    scoring.Counts    `json:"counts"`
}

// ServeProfile handles GET /api/profile. EcoPoints are recomputed from
// activity on every read; the stored field is refreshed as a side
// effect so other surfaces show the same number.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.ErrLog.LogError(r, "profile.get", err)
		uierrors.RenderServerError(w, "failed to load profile")
		return
	}

	events, err := h.Events.All(ctx)
	if err != nil {
		h.ErrLog.LogError(r, "profile.get", err)
		uierrors.RenderServerError(w, "failed to load profile")
		return
	}
	articles, err := h.Articles.All(ctx)
	if err != nil {
		h.ErrLog.LogError(r, "profile.get", err)
		uierrors.RenderServerError(w, "failed to load profile")
		return
	}

	counts := scoring.Count(events, articles, userID)
	points := counts.Score()
	if points != user.EcoPoints {
		if err := h.Users.SetEcoPoints(ctx, userID, points); err != nil {
			h.Log.Warn("failed to refresh eco points",
				zap.String("user_id", userID.Hex()), zap.Error(err))
		}
		user.EcoPoints = points
	}

	uierrors.WriteJSON(w, http.StatusOK, profileResponse{
		User:      user.Public(),
		Email:     user.Email,
		EcoPoints: points,
		Counts:    counts,
	})
}

type updateRequest struct {
	Name          string   `json:"name"`
	Country       string   `json:"country"`
	ProfileImage  string   `json:"profileImage"`
	Badges        []string `json:"badges"`
	Contributions string   `json:"contributions"`
}

// HandleUpdate handles PUT /api/profile. After a successful edit the
// user's chat snapshots are refreshed so conversations do not show the
// old name or image.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.RenderBadRequest(w, "invalid request body", nil)
		return
	}

	fields := map[string]string{}
	if !inputval.WithinLen(req.Name, inputval.MaxNameLen) {
		fields["name"] = "name is required"
	}
	if req.ProfileImage != "" && !inputval.IsValidHTTPURL(req.ProfileImage) {
		fields["profileImage"] = "profile image must be an http(s) URL"
	}
	if req.Country != "" && !countries.IsSupported(normalize.Country(req.Country)) {
		fields["country"] = "country is not supported"
	}
	if len(fields) > 0 {
		uierrors.RenderBadRequest(w, "validation failed", fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long)
	defer cancel()

	updated, err := h.Users.UpdateProfile(ctx, userID, userstore.ProfileUpdate{
		Name:          req.Name,
		Country:       req.Country,
		ProfileImage:  req.ProfileImage,
		Badges:        req.Badges,
		Contributions: req.Contributions,
	})
	if err != nil {
		h.ErrLog.LogError(r, "profile.update", err)
		uierrors.RenderServerError(w, "failed to update profile")
		return
	}

	if err := h.Chats.RefreshParticipantInfo(ctx, *updated); err != nil {
		// The profile edit stands; chat snapshots catch up next edit.
		h.Log.Warn("failed to refresh chat snapshots",
			zap.String("user_id", userID.Hex()), zap.Error(err))
	}

	uierrors.WriteJSON(w, http.StatusOK, profileResponse{
		User:      updated.Public(),
		Email:     updated.Email,
		EcoPoints: updated.EcoPoints,
	})
}

type describeResponse struct {
	Description string `json:"description"`
}

// HandleDescribe handles POST /api/profile/describe: generates an
// eco-profile description from the stored profile and saves it.
func (h *Handler) HandleDescribe(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return
	}
	if h.Describer == nil {
		uierrors.RenderServerError(w, "description generation is not configured")
		return
	}
	if !h.Limiter.Allow(userID.Hex()) {
		uierrors.RenderTooManyRequests(w, "description generation limit reached, try again later")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.ErrLog.LogError(r, "profile.describe", err)
		uierrors.RenderServerError(w, "failed to load profile")
		return
	}

	in := ai.DescribeInput{
		UserName:      user.Name,
		Country:       countries.Name(user.Country),
		EcoPoints:     user.EcoPoints,
		Badges:        user.Badges,
		Contributions: user.Contributions,
	}
	if err := in.Validate(); err != nil {
		uierrors.RenderBadRequest(w, err.Error(), nil)
		return
	}

	out, err := h.Describer.Describe(ctx, in)
	if err != nil {
		h.ErrLog.LogError(r, "profile.describe", err)
		uierrors.RenderServerError(w, "failed to generate description")
		return
	}

	if err := h.Users.SetDescription(ctx, userID, out.Description); err != nil {
		h.ErrLog.LogError(r, "profile.describe", err)
		uierrors.RenderServerError(w, "failed to save description")
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, describeResponse{Description: out.Description})
}
