package workspacesfeature

import (
	"github.com/go-chi/chi/v5"

	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/members", h.AddMember)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/messages", h.ListMessages)
	r.Post("/{id}/messages", h.PostMessage)

	return r
}
