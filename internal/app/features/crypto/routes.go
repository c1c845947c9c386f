package cryptofeature

import (
	"github.com/go-chi/chi/v5"

	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/wallets", h.ListWallets)
	r.Post("/wallets", h.CreateWallet)
	r.Get("/transactions", h.ListTransactions)
	r.Post("/transactions", h.CreateTransaction)

	return r
}
