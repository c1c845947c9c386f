package propertiesfeature

import (
	"github.com/go-chi/chi/v5"

	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

// Routes mounts the listing endpoints. Reads and writes need sign-in;
// delete needs admin.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Patch("/{id}/status", h.SetStatus)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleAdmin))
		r.Delete("/{id}", h.Delete)
	})

	return r
}
