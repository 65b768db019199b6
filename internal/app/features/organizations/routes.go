// internal/app/features/organizations/routes.go
package organizations

import (
	"github.com/ecoecho-app/ecoecho/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes builds the organization profile router. Every endpoint needs a
// signed-in user; the handler itself enforces the organization role.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/", h.ServeOrganization)
	r.Put("/", h.HandleUpsert)
	r.Delete("/", h.HandleDelete)
	return r
}
