// internal/app/features/chats/routes.go
package chats

import (
	"github.com/ecoecho-app/ecoecho/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes builds the chat router. Every endpoint needs a signed-in user.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Post("/", h.HandleOpen)
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeChat)
	r.Get("/{id}/messages", h.ServeMessages)
	r.Post("/{id}/messages", h.HandleSend)
	return r
}
