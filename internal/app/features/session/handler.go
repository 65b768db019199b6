package session

import (
	"net/http"

	"github.com/ecoecho-app/ecoecho/internal/app/system/auth"
	"github.com/ecoecho-app/ecoecho/internal/app/system/uierrors"
)

// Handler reports who the current session belongs to.
type Handler struct{}

// NewHandler constructs a session Handler.
func NewHandler() *Handler {
	return &Handler{}
}

type sessionResponse struct {
	SignedIn bool       `json:"signedIn"`
	User     *userBrief `json:"user,omitempty"`
}

type userBrief struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// Serve handles GET /api/session. Always 200; anonymous sessions get
// {"signedIn": false}.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.WriteJSON(w, http.StatusOK, sessionResponse{SignedIn: false})
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, sessionResponse{
		SignedIn: true,
		User: &userBrief{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}
