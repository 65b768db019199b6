// internal/app/features/events/handler.go
package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	eventstore "github.com/ecoecho-app/ecoecho/internal/app/store/events"
	"github.com/ecoecho-app/ecoecho/internal/app/system/authz"
	"github.com/ecoecho-app/ecoecho/internal/app/system/inputval"
	"github.com/ecoecho-app/ecoecho/internal/app/system/taxonomy"
	"github.com/ecoecho-app/ecoecho/internal/app/system/timeouts"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"github.com/ecoecho-app/ecoecho/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves community events.
type Handler struct {
	Events *eventstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(events *eventstore.Store, logger *zap.Logger, errLog *uierrors.ErrorLogger) *Handler {
	return &Handler{Events: events, Log: logger, ErrLog: errLog}
}

// ServeList handles GET /api/events with optional ?category= and
// ?country= filters.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter := eventstore.ListFilter{
		Category: query.Get(r, "category"),
		Country:  query.Get(r, "country"),
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	events, err := h.Events.List(ctx, filter)
	if err != nil {
		h.ErrLog.LogError(r, "events.list", err)
		uierrors.RenderServerError(w, "failed to load events")
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}

// ServeEvent handles GET /api/events/{id}.
func (h *Handler) ServeEvent(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, "invalid event id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	event, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, "event not found")
			return
		}
		h.ErrLog.LogError(r, "events.get", err)
		uierrors.RenderServerError(w, "failed to load event")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"event": event})
}

type eventRequest struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Category     string             `json:"category"`
	Location     *models.GeoPoint   `json:"location"`
	Address      string             `json:"address"`
	Country      string             `json:"country"`
	StartAt      time.Time          `json:"startAt"`
	EndAt        time.Time          `json:"endAt"`
	Cost         int                `json:"cost"`
	Impact       models.EventImpact `json:"impact"`
	BeforePhotos []string           `json:"beforePhotos"`
	AfterPhotos  []string           `json:"afterPhotos"`
}

func (req eventRequest) validate() map[string]string {
	fields := map[string]string{}
	if !inputval.WithinLen(req.Title, inputval.MaxTitleLen) {
		fields["title"] = "title is required"
	}
	if req.StartAt.IsZero() {
		fields["startAt"] = "start time is required"
	}
	if !req.EndAt.IsZero() && req.EndAt.Before(req.StartAt) {
		fields["endAt"] = "end time must not be before the start time"
	}
	if req.Cost < 0 {
		fields["cost"] = "cost must not be negative"
	}
	if req.Category != "" && !taxonomy.IsCategory(req.Category) {
		fields["category"] = "unknown category"
	}
	return fields
}

// HandleCreate handles POST /api/events. Any signed-in user may create
// an event; creating one earns organizer points.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.RenderBadRequest(w, "invalid request body", nil)
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		uierrors.RenderBadRequest(w, "validation failed", fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	event, err := h.Events.Create(ctx, models.Event{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Location:     req.Location,
		Address:      req.Address,
		Country:      req.Country,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		Cost:         req.Cost,
		Impact:       req.Impact,
		BeforePhotos: req.BeforePhotos,
		AfterPhotos:  req.AfterPhotos,
		CreatedBy:    userID,
	})
	if err != nil {
		h.ErrLog.LogError(r, "events.create", err)
		uierrors.RenderServerError(w, "failed to create event")
		return
	}
	uierrors.WriteJSON(w, http.StatusCreated, map[string]any{"event": event})
}

// HandleUpdate handles PUT /api/events/{id}. Only the creator may edit.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, "invalid event id", nil)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.RenderBadRequest(w, "invalid request body", nil)
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		uierrors.RenderBadRequest(w, "validation failed", fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	event, err := h.Events.UpdateByCreator(ctx, id, userID, eventstore.Update{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Location:     req.Location,
		Address:      req.Address,
		Country:      req.Country,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		Cost:         req.Cost,
		Impact:       req.Impact,
		BeforePhotos: req.BeforePhotos,
		AfterPhotos:  req.AfterPhotos,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either no such event or not the creator; do not distinguish.
			uierrors.RenderNotFound(w, "event not found")
			return
		}
		h.ErrLog.LogError(r, "events.update", err)
		uierrors.RenderServerError(w, "failed to update event")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"event": event})
}

// HandleDelete handles DELETE /api/events/{id}. Only the creator may
// delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, "invalid event id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	deleted, err := h.Events.DeleteByCreator(ctx, id, userID)
	if err != nil {
		h.ErrLog.LogError(r, "events.delete", err)
		uierrors.RenderServerError(w, "failed to delete event")
		return
	}
	if deleted == 0 {
		uierrors.RenderNotFound(w, "event not found")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// HandleJoin handles POST /api/events/{id}/join.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, "invalid event id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	event, err := h.Events.Join(ctx, id, userID)
	if err != nil {
		switch {
		case errors.Is(err, eventstore.ErrCreatorJoin):
			uierrors.RenderConflict(w, err.Error())
		case errors.Is(err, mongo.ErrNoDocuments):
			uierrors.RenderNotFound(w, "event not found")
		default:
			h.ErrLog.LogError(r, "events.join", err)
			uierrors.RenderServerError(w, "failed to join event")
		}
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"event": event})
}

// HandleLeave handles POST /api/events/{id}/leave.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, "invalid event id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	event, err := h.Events.Leave(ctx, id, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, "event not found")
			return
		}
		h.ErrLog.LogError(r, "events.leave", err)
		uierrors.RenderServerError(w, "failed to leave event")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"event": event})
}
