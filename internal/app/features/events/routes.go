// internal/app/features/events/routes.go
package events

import (
	"github.com/ecoecho-app/ecoecho/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes builds the event router. Browsing is public; creating,
// editing, and joining need a signed-in user.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeEvent)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Post("/", h.HandleCreate)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
		r.Post("/{id}/join", h.HandleJoin)
		r.Post("/{id}/leave", h.HandleLeave)
	})
	return r
}
