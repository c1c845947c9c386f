// Package cryptofeature serves wallets and buy/sell/transfer records.
package cryptofeature

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"

	cryptostore "github.com/emeraldorbit/emeraldhub/internal/app/store/crypto"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/apierr"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/httpjson"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

type Handler struct {
	Crypto *cryptostore.Store
	Log    *zap.Logger
}

func NewHandler(crypto *cryptostore.Store, logger *zap.Logger) *Handler {
	return &Handler{Crypto: crypto, Log: logger}
}

// ListWallets handles GET /api/crypto/wallets.
func (h *Handler) ListWallets(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	wallets, err := h.Crypto.ListWallets(r.Context(), u.Email)
	if err != nil {
		h.Log.Error("list wallets", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, wallets)
}

type walletRequest struct {
	Currency      string `json:"currency"`
	WalletAddress string `json:"wallet_address"`
}

// CreateWallet handles POST /api/crypto/wallets.
func (h *Handler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req walletRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		apierr.BadRequest(w, "Currency is required")
		return
	}

	wallet := models.CryptoWallet{
		UserEmail:     u.Email,
		Currency:      currency,
		WalletAddress: req.WalletAddress,
	}
	if err := h.Crypto.CreateWallet(r.Context(), &wallet); err != nil {
		if errors.Is(err, cryptostore.ErrDuplicateWallet) {
			apierr.BadRequest(w, "Wallet for this currency already exists")
			return
		}
		h.Log.Error("create wallet", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, wallet)
}

type transactionRequest struct {
	TransactionType string  `json:"transaction_type"`
	Currency        string  `json:"currency"`
	Amount          float64 `json:"amount"`
	PriceUSD        float64 `json:"price_usd"`
	TransactionHash string  `json:"transaction_hash"`
}

// CreateTransaction handles POST /api/crypto/transactions.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req transactionRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	if req.Amount <= 0 {
		apierr.BadRequest(w, "amount must be positive")
		return
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		apierr.BadRequest(w, "Currency is required")
		return
	}

	tx := models.CryptoTransaction{
		UserEmail:       u.Email,
		TransactionType: req.TransactionType,
		Currency:        currency,
		Amount:          req.Amount,
		PriceUSD:        req.PriceUSD,
		TransactionHash: req.TransactionHash,
	}
	if err := h.Crypto.CreateTransaction(r.Context(), &tx); err != nil {
		// Store-level validation (unknown transaction type) reads as 400.
		apierr.BadRequest(w, err.Error())
		return
	}
	httpjson.OK(w, tx)
}

// ListTransactions handles GET /api/crypto/transactions with optional
// ?limit=.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var limit int64
	if s := query.Get(r, "limit"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			apierr.BadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	txs, err := h.Crypto.ListTransactions(r.Context(), u.Email, limit)
	if err != nil {
		h.Log.Error("list transactions", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, txs)
}
