// Package statusfeature records and lists client liveness pings. These
// endpoints are unauthenticated.
package statusfeature

import (
	"net/http"

	"go.uber.org/zap"

	statusstore "github.com/emeraldorbit/emeraldhub/internal/app/store/status"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/apierr"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/httpjson"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/sanitize"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

type Handler struct {
	Status *statusstore.Store
	Log    *zap.Logger
}

func NewHandler(status *statusstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Status: status, Log: logger}
}

type statusRequest struct {
	ClientName string `json:"client_name"`
}

// Create handles POST /api/status.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	name := sanitize.Text(req.ClientName)
	if name == "" {
		apierr.BadRequest(w, "client_name is required")
		return
	}

	check := models.StatusCheck{ClientName: name}
	if err := h.Status.Create(r.Context(), &check); err != nil {
		h.Log.Error("create status check", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, check)
}

// List handles GET /api/status.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	checks, err := h.Status.List(r.Context(), 0)
	if err != nil {
		h.Log.Error("list status checks", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, checks)
}
