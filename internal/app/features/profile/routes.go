// internal/app/features/profile/routes.go
package profile

import (
	"github.com/ecoecho-app/ecoecho/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes builds the profile router. Every endpoint needs a signed-in
// user.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/", h.ServeProfile)
	r.Put("/", h.HandleUpdate)
	r.Post("/describe", h.HandleDescribe)
	return r
}
