// internal/app/features/articles/routes.go
package articles

import (
	"github.com/ecoecho-app/ecoecho/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes builds the article router. Reading is public; writing needs a
// signed-in user.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeArticle)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Post("/", h.HandleCreate)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
	return r
}
