package adminfeature

import (
	"github.com/go-chi/chi/v5"

	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
)

// Routes requires a session for everything here; the handlers consult
// authz for the finer decisions, so 401 always precedes 403.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.RequireSignedIn)
	r.Get("/users", h.ListUsers)
	r.Get("/stats", h.Stats)

	return r
}
