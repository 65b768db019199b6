// internal/app/features/organizations/handler.go
package organizations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	orgstore "github.com/ecoecho-app/ecoecho/internal/app/store/organizations"
	"github.com/ecoecho-app/ecoecho/internal/app/system/authz"
	"github.com/ecoecho-app/ecoecho/internal/app/system/inputval"
	"github.com/ecoecho-app/ecoecho/internal/app/system/timeouts"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the signed-in account's organization profile. Only
// organization roles (ngo, school, municipality) have one.
type Handler struct {
	Orgs   *orgstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(orgs *orgstore.Store, logger *zap.Logger, errLog *uierrors.ErrorLogger) *Handler {
	return &Handler{Orgs: orgs, Log: logger, ErrLog: errLog}
}

func (h *Handler) ownerFromRequest(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return primitive.NilObjectID, false
	}
	if !authz.IsOrgRole(r) {
		uierrors.RenderForbidden(w, "an organization account is required")
		return primitive.NilObjectID, false
	}
	return userID, true
}

// ServeOrganization handles GET /api/organization.
func (h *Handler) ServeOrganization(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerFromRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	org, err := h.Orgs.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, "no organization profile yet")
			return
		}
		h.ErrLog.LogError(r, "organizations.get", err)
		uierrors.RenderServerError(w, "failed to load organization")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"organization": org})
}

type upsertRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

// HandleUpsert handles PUT /api/organization: creates the profile on
// first save, updates it afterwards.
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerFromRequest(w, r)
	if !ok {
		return
	}

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.RenderBadRequest(w, "invalid request body", nil)
		return
	}

	fields := map[string]string{}
	if !inputval.WithinLen(req.Name, inputval.MaxNameLen) {
		fields["name"] = "name is required"
	}
	if req.Website != "" && !inputval.IsValidHTTPURL(req.Website) {
		fields["website"] = "website must be an http(s) URL"
	}
	if len(fields) > 0 {
		uierrors.RenderBadRequest(w, "validation failed", fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	org, err := h.Orgs.UpsertForOwner(ctx, ownerID, orgstore.Upsert{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
	})
	if err != nil {
		if errors.Is(err, orgstore.ErrDuplicateOwner) {
			uierrors.RenderConflict(w, err.Error())
			return
		}
		h.ErrLog.LogError(r, "organizations.upsert", err)
		uierrors.RenderServerError(w, "failed to save organization")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"organization": org})
}

// HandleDelete handles DELETE /api/organization.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerFromRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	deleted, err := h.Orgs.DeleteByOwner(ctx, ownerID)
	if err != nil {
		h.ErrLog.LogError(r, "organizations.delete", err)
		uierrors.RenderServerError(w, "failed to delete organization")
		return
	}
	if deleted == 0 {
		uierrors.RenderNotFound(w, "no organization profile yet")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
