// Package notificationsfeature serves the in-app notification feed.
package notificationsfeature

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	notificationstore "github.com/emeraldorbit/emeraldhub/internal/app/store/notifications"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/apierr"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/httpjson"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/sanitize"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

type Handler struct {
	Notifications *notificationstore.Store
	Log           *zap.Logger
}

func NewHandler(notifications *notificationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Notifications: notifications, Log: logger}
}

// List handles GET /api/notifications with optional ?unread=true.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	unreadOnly := query.Get(r, "unread") == "true"
	list, err := h.Notifications.ListByOwner(r.Context(), u.Email, unreadOnly)
	if err != nil {
		h.Log.Error("list notifications", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, list)
}

type notificationRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Create handles POST /api/notifications, posting a notice to the
// caller's own feed.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req notificationRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	title := sanitize.Text(req.Title)
	if title == "" {
		apierr.BadRequest(w, "Title is required")
		return
	}

	n := models.Notification{
		UserEmail: u.Email,
		Title:     title,
		Message:   sanitize.Text(req.Message),
		Type:      sanitize.Text(req.Type),
	}
	if err := h.Notifications.Create(r.Context(), &n); err != nil {
		h.Log.Error("create notification", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, n)
}

// MarkRead handles PUT /api/notifications/{id}/read.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	found, err := h.Notifications.MarkRead(r.Context(), u.Email, chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("mark read", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if !found {
		apierr.NotFound(w, "Notification not found")
		return
	}
	httpjson.OK(w, map[string]string{"message": "Marked read"})
}

// MarkAllRead handles PUT /api/notifications/read-all.
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	n, err := h.Notifications.MarkAllRead(r.Context(), u.Email)
	if err != nil {
		h.Log.Error("mark all read", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, map[string]int64{"marked": n})
}

// Delete handles DELETE /api/notifications/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	found, err := h.Notifications.Delete(r.Context(), u.Email, chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("delete notification", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if !found {
		apierr.NotFound(w, "Notification not found")
		return
	}
	httpjson.OK(w, map[string]string{"message": "Notification deleted"})
}
