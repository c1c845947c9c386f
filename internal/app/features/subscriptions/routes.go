package subscriptionsfeature

import (
	"github.com/go-chi/chi/v5"

	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.Get("/active", h.Active)
	r.Post("/", h.Create)
	r.Post("/{id}/cancel", h.Cancel)

	return r
}
