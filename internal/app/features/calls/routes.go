package callsfeature

import (
	"github.com/go-chi/chi/v5"

	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/{id}/complete", h.Complete)
	r.Delete("/{id}", h.Delete)

	return r
}
