package songsfeature

import (
	"github.com/go-chi/chi/v5"

	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.Get("/market", h.Market)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/play", h.Increment("plays"))
	r.Post("/{id}/like", h.Increment("likes"))
	r.Post("/{id}/download", h.Increment("downloads"))
	r.Delete("/{id}", h.Delete)

	return r
}
