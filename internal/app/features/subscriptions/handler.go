// Package subscriptionsfeature serves per-user plan management.
package subscriptionsfeature

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	substore "github.com/emeraldorbit/emeraldhub/internal/app/store/subscriptions"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/apierr"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/httpjson"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

type Handler struct {
	Subscriptions *substore.Store
	Log           *zap.Logger
}

func NewHandler(subs *substore.Store, logger *zap.Logger) *Handler {
	return &Handler{Subscriptions: subs, Log: logger}
}

type subscribeRequest struct {
	Tier         string   `json:"tier"`
	MonthlyPrice float64  `json:"monthly_price"`
	Features     []string `json:"features"`
}

// List handles GET /api/subscriptions.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	list, err := h.Subscriptions.ListByOwner(r.Context(), u.Email)
	if err != nil {
		h.Log.Error("list subscriptions", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, list)
}

// Active handles GET /api/subscriptions/active.
func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	sub, found, err := h.Subscriptions.GetActive(r.Context(), u.Email)
	if err != nil {
		h.Log.Error("get active subscription", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if !found {
		apierr.NotFound(w, "No active subscription")
		return
	}
	httpjson.OK(w, sub)
}

// Create handles POST /api/subscriptions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req subscribeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	switch req.Tier {
	case "free", "premium", "enterprise", "elite":
	default:
		apierr.BadRequest(w, `tier must be "free"|"premium"|"enterprise"|"elite"`)
		return
	}
	if req.MonthlyPrice < 0 {
		apierr.BadRequest(w, "monthly_price must be non-negative")
		return
	}

	sub := models.Subscription{
		UserEmail:    u.Email,
		Tier:         req.Tier,
		MonthlyPrice: req.MonthlyPrice,
		Features:     req.Features,
	}
	if err := h.Subscriptions.Create(r.Context(), &sub); err != nil {
		h.Log.Error("create subscription", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, sub)
}

// Cancel handles POST /api/subscriptions/{id}/cancel.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	found, err := h.Subscriptions.Cancel(r.Context(), u.Email, chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("cancel subscription", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if !found {
		apierr.NotFound(w, "Subscription not found")
		return
	}
	httpjson.OK(w, map[string]string{"message": "Subscription cancelled"})
}
