// internal/app/features/chats/handler.go
package chats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	chatstore "github.com/ecoecho-app/ecoecho/internal/app/store/chats"
	userstore "github.com/ecoecho-app/ecoecho/internal/app/store/users"
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

// Handler serves 1:1 chats. Every endpoint requires a signed-in user,
// and chat access is limited to the two participants.
type Handler struct {
	Chats  *chatstore.Store
	Users  *userstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(chats *chatstore.Store, users *userstore.Store, logger *zap.Logger, errLog *uierrors.ErrorLogger) *Handler {
	return &Handler{Chats: chats, Users: users, Log: logger, ErrLog: errLog}
}

// ServeList handles GET /api/chats: the user's conversations, most
// recent activity first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	chats, err := h.Chats.ListForUser(ctx, userID)
	if err != nil {
		h.ErrLog.LogError(r, "chats.list", err)
		uierrors.RenderServerError(w, "failed to load chats")
		return
	}
	if chats == nil {
		chats = []models.Chat{}
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"chats": chats})
}

type openRequest struct {
	UserID string `json:"userId"`
}

// HandleOpen handles POST /api/chats: opens (or returns) the chat with
// another user.
func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return
	}

	var req openRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.RenderBadRequest(w, "invalid request body", nil)
		return
	}
	otherID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		uierrors.RenderBadRequest(w, "invalid user id", map[string]string{"userId": "must be a valid user id"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	me, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.ErrLog.LogError(r, "chats.open", err)
		uierrors.RenderServerError(w, "failed to open chat")
		return
	}
	other, err := h.Users.GetByID(ctx, otherID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, "user not found")
			return
		}
		h.ErrLog.LogError(r, "chats.open", err)
		uierrors.RenderServerError(w, "failed to open chat")
		return
	}

	chat, err := h.Chats.LookupOrCreate(ctx, *me, *other)
	if err != nil {
		if errors.Is(err, chatstore.ErrSelfChat) {
			uierrors.RenderBadRequest(w, err.Error(), nil)
			return
		}
		h.ErrLog.LogError(r, "chats.open", err)
		uierrors.RenderServerError(w, "failed to open chat")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"chat": chat})
}

// chatForMember loads the chat and enforces membership. Non-members get
// a 404, not a 403, so chat ids do not leak existence.
func (h *Handler) chatForMember(w http.ResponseWriter, r *http.Request) (*models.Chat, primitive.ObjectID, bool) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, "")
		return nil, primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, "invalid chat id", nil)
		return nil, primitive.NilObjectID, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	chat, err := h.Chats.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, "chat not found")
			return nil, primitive.NilObjectID, false
		}
		h.ErrLog.LogError(r, "chats.get", err)
		uierrors.RenderServerError(w, "failed to load chat")
		return nil, primitive.NilObjectID, false
	}
	if !chat.HasParticipant(userID) {
		uierrors.RenderNotFound(w, "chat not found")
		return nil, primitive.NilObjectID, false
	}
	return chat, userID, true
}

// ServeChat handles GET /api/chats/{id}.
func (h *Handler) ServeChat(w http.ResponseWriter, r *http.Request) {
	chat, _, ok := h.chatForMember(w, r)
	if !ok {
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"chat": chat})
}

// ServeMessages handles GET /api/chats/{id}/messages, oldest first.
func (h *Handler) ServeMessages(w http.ResponseWriter, r *http.Request) {
	chat, _, ok := h.chatForMember(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	messages, err := h.Chats.ListMessages(ctx, chat.ID)
	if err != nil {
		h.ErrLog.LogError(r, "chats.messages", err)
		uierrors.RenderServerError(w, "failed to load messages")
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

type sendRequest struct {
	Text string `json:"text"`
}

// HandleSend handles POST /api/chats/{id}/messages.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	chat, userID, ok := h.chatForMember(w, r)
	if !ok {
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.RenderBadRequest(w, "invalid request body", nil)
		return
	}
	if !inputval.WithinLen(req.Text, inputval.MaxChatMessageLen) {
		uierrors.RenderBadRequest(w, "validation failed",
			map[string]string{"text": "message text is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	msg, err := h.Chats.AppendMessage(ctx, chat.ID, userID, req.Text)
	if err != nil {
		if errors.Is(err, chatstore.ErrEmptyMessage) {
			uierrors.RenderBadRequest(w, err.Error(),
				map[string]string{"text": "message text is required"})
			return
		}
		h.ErrLog.LogError(r, "chats.send", err)
		uierrors.RenderServerError(w, "failed to send message")
		return
	}
	uierrors.WriteJSON(w, http.StatusCreated, map[string]any{"message": msg})
}
