// Package callsfeature serves per-user call history.
package callsfeature

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	callstore "github.com/emeraldorbit/emeraldhub/internal/app/store/calls"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/apierr"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/httpjson"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/sanitize"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

type Handler struct {
	Calls *callstore.Store
	Log   *zap.Logger
}

func NewHandler(calls *callstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Calls: calls, Log: logger}
}

type callRequest struct {
	ContactID   string `json:"contact_id"`
	ContactName string `json:"contact_name"`
	CallType    string `json:"call_type"`
	Direction   string `json:"direction"`
	Status      string `json:"status"`
}

// List handles GET /api/calls with an optional ?limit=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.Calls.ListByOwner(r.Context(), u.Email, limit)
	if err != nil {
		h.Log.Error("list calls", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, list)
}

// Create handles POST /api/calls, recording a call that just started.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req callRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	if req.ContactName == "" {
		apierr.BadRequest(w, "contact_name is required")
		return
	}
	switch req.CallType {
	case "voice", "video":
	default:
		apierr.BadRequest(w, `call_type must be "voice" or "video"`)
		return
	}
	switch req.Direction {
	case "incoming", "outgoing":
	default:
		apierr.BadRequest(w, `direction must be "incoming" or "outgoing"`)
		return
	}
	status := req.Status
	if status == "" {
		status = "ongoing"
	}

	call := models.CallHistory{
		ContactID:   req.ContactID,
		ContactName: sanitize.Text(req.ContactName),
		UserEmail:   u.Email,
		CallType:    req.CallType,
		Direction:   req.Direction,
		Status:      status,
	}
	if err := h.Calls.Create(r.Context(), &call); err != nil {
		h.Log.Error("create call", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, call)
}

type completeRequest struct {
	DurationSeconds int `json:"duration_seconds"`
}

// Complete handles POST /api/calls/{id}/complete.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req completeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	if req.DurationSeconds < 0 {
		apierr.BadRequest(w, "duration_seconds must be non-negative")
		return
	}

	found, err := h.Calls.Complete(r.Context(), u.Email, chi.URLParam(r, "id"), time.Now().UTC(), req.DurationSeconds)
	if err != nil {
		h.Log.Error("complete call", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if !found {
		apierr.NotFound(w, "Call not found")
		return
	}
	httpjson.OK(w, map[string]string{"message": "Call completed"})
}

// Delete handles DELETE /api/calls/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	found, err := h.Calls.Delete(r.Context(), u.Email, chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("delete call", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if !found {
		apierr.NotFound(w, "Call not found")
		return
	}
	httpjson.OK(w, map[string]string{"message": "Call deleted"})
}
