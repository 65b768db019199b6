// internal/app/features/account/handler.go
package account

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/ecoecho-app/ecoecho/internal/app/store/users"
	"github.com/ecoecho-app/ecoecho/internal/app/system/auth"
	"github.com/ecoecho-app/ecoecho/internal/app/system/authutil"
	"github.com/ecoecho-app/ecoecho/internal/app/system/countries"
	"github.com/ecoecho-app/ecoecho/internal/app/system/inputval"
	"github.com/ecoecho-app/ecoecho/internal/app/system/normalize"
	"github.com/ecoecho-app/ecoecho/internal/app/system/ratelimit"
	"github.com/ecoecho-app/ecoecho/internal/app/system/timeouts"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
	"github.com/ecoecho-app/ecoecho/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler covers password-based registration and login.
type Handler struct {
	Users    *userstore.Store
	Sessions *auth.SessionManager
	Limiter  *ratelimit.LoginLimiter
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

func NewHandler(users *userstore.Store, sessions *auth.SessionManager, logger *zap.Logger, errLog *uierrors.ErrorLogger) *Handler {
	return &Handler{
		Users:    users,
		Sessions: sessions,
		Limiter:  ratelimit.NewLoginLimiter(),
		Log:      logger,
		ErrLog:   errLog,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Country  string `json:"country"`
}

type accountResponse struct {
	User models.PublicUser `json:"user"`
}

// HandleRegister handles POST /api/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.RenderBadRequest(w, "invalid request body", nil)
		return
	}

	fields := map[string]string{}
	if normalize.Name(req.Name) == "" {
		fields["name"] = "name is required"
	}
	if !inputval.IsValidEmail(req.Email) {
		fields["email"] = "a valid email is required"
	}
	if err := authutil.ValidatePassword(req.Password); err != nil {
		fields["password"] = err.Error()
	}
	if req.Country != "" && !countries.IsSupported(normalize.Country(req.Country)) {
		fields["country"] = "country is not supported"
	}
	if len(fields) > 0 {
		uierrors.RenderBadRequest(w, "validation failed", fields)
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		h.ErrLog.LogError(r, "account.register", err)
		uierrors.RenderServerError(w, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium)
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		AuthMethod:   "internal",
		PasswordHash: &hash,
		Role:         req.Role,
		Country:      req.Country,
	})
	if err == userstore.ErrDuplicateEmail {
		uierrors.RenderConflict(w, err.Error())
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "account.register", err)
		uierrors.RenderServerError(w, "")
		return
	}

	if err := h.Sessions.SignIn(w, r, sessionUserFor(user)); err != nil {
		h.ErrLog.LogError(r, "account.register", err)
		uierrors.RenderServerError(w, "account created but sign-in failed")
		return
	}

	h.Log.Info("account registered",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", user.Role))
	uierrors.WriteJSON(w, http.StatusCreated, accountResponse{User: user.Public()})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles POST /api/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.RenderBadRequest(w, "invalid request body", nil)
		return
	}

	if allowed, reason := h.Limiter.Check(r, req.Email); !allowed {
		uierrors.RenderTooManyRequests(w, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderUnauthorized(w, "invalid email or password")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "account.login", err)
		uierrors.RenderServerError(w, "")
		return
	}

	if user.PasswordHash == nil || !authutil.CheckPassword(req.Password, *user.PasswordHash) {
		uierrors.RenderUnauthorized(w, "invalid email or password")
		return
	}
	if normalize.Status(user.Status) == "disabled" {
		uierrors.RenderForbidden(w, "this account is disabled")
		return
	}

	if err := h.Sessions.SignIn(w, r, sessionUserFor(*user)); err != nil {
		h.ErrLog.LogError(r, "account.login", err)
		uierrors.RenderServerError(w, "")
		return
	}
	h.Limiter.ResetEmail(req.Email)

	uierrors.WriteJSON(w, http.StatusOK, accountResponse{User: user.Public()})
}

// HandleLogout handles POST /api/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.SignOut(w, r)
	uierrors.WriteJSON(w, http.StatusOK, map[string]bool{"signedOut": true})
}

func sessionUserFor(u models.User) *auth.SessionUser {
	return &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
