// internal/app/features/articles/handler.go
package articles

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	articlestore "github.com/ecoecho-app/ecoecho/internal/app/store/articles"
	"github.com/ecoecho-app/ecoecho/internal/app/system/authz"
	"github.com/ecoecho-app/ecoecho/internal/app/system/inputval"
	"github.com/ecoecho-app/ecoecho/internal/app/system/timeouts"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"github.com/ecoecho-app/ecoecho/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves educational articles.
type Handler struct {
	Articles *articlestore.Store
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

func NewHandler(articles *articlestore.Store, logger *zap.Logger, errLog *uierrors.ErrorLogger) *Handler {
	return &Handler{Articles: articles, Log: logger, ErrLog: errLog}
}

// ServeList handles GET /api/articles, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	articles, err := h.Articles.List(ctx)
	if err != nil {
		h.ErrLog.LogError(r, "articles.list", err)
		uierrors.RenderServerError(w, "failed to load articles")
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

// ServeArticle handles GET /api/articles/{id}.
func (h *Handler) ServeArticle(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, "invalid article id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	article, err := h.Articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, "article not found")
			return
		}
		h.ErrLog.LogError(r, "articles.get", err)
		uierrors.RenderServerError(w, "failed to load article")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"article": article})
}

type articleRequest struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

func (req articleRequest) validate() map[string]string {
	fields := map[string]string{}
	if !inputval.WithinLen(req.Title, inputval.MaxTitleLen) {
		fields["title"] = "title is required"
	}
	if req.Content == "" || len(req.Content) > inputval.MaxBodyLen {
		fields["content"] = "content is required"
	}
	if len(req.Excerpt) > inputval.MaxExcerptLen {
		fields["excerpt"] = "excerpt is too long"
	}
	if req.Image != "" && !inputval.IsValidHTTPURL(req.Image) {
		fields["image"] = "image must be an http(s) URL"
	}
	return fields
}

// HandleCreate handles POST /api/articles. Writing an article earns
// author points.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, name, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return
	}

	var req articleRequest
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

	article, err := h.Articles.Create(ctx, models.Article{
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Image:     req.Image,
		Category:  req.Category,
		Author:    name,
		CreatedBy: userID,
	})
	if err != nil {
		h.ErrLog.LogError(r, "articles.create", err)
		uierrors.RenderServerError(w, "failed to create article")
		return
	}
	uierrors.WriteJSON(w, http.StatusCreated, map[string]any{"article": article})
}

// HandleUpdate handles PUT /api/articles/{id}. Only the author may edit.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, "invalid article id", nil)
		return
	}

	var req articleRequest
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

	article, err := h.Articles.UpdateByAuthor(ctx, id, userID, articlestore.Update{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Image:    req.Image,
		Category: req.Category,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, "article not found")
			return
		}
		h.ErrLog.LogError(r, "articles.update", err)
		uierrors.RenderServerError(w, "failed to update article")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"article": article})
}

// HandleDelete handles DELETE /api/articles/{id}. Only the author may
// delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, "invalid article id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	deleted, err := h.Articles.DeleteByAuthor(ctx, id, userID)
	if err != nil {
		h.ErrLog.LogError(r, "articles.delete", err)
		uierrors.RenderServerError(w, "failed to delete article")
		return
	}
	if deleted == 0 {
		uierrors.RenderNotFound(w, "article not found")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
