package authfeature

import (
	"github.com/go-chi/chi/v5"

	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/ratelimit"
)

// Routes mounts the auth endpoints. The credential endpoints sit behind
// the per-IP limiter; token-validated endpoints do not.
func Routes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/external-session", h.ExternalSession)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Get("/me", h.Me)
	})

	// Logout works with or without a live session.
	r.Post("/logout", h.Logout)

	return r
}
