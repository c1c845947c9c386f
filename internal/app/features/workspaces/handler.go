// Package workspacesfeature serves shared collaboration spaces and
// their polled message feeds.
package workspacesfeature

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	workspacestore "github.com/emeraldorbit/emeraldhub/internal/app/store/workspaces"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/apierr"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/authz"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/httpjson"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/normalize"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/sanitize"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

type Handler struct {
	Workspaces *workspacestore.Store
	Log        *zap.Logger
}

func NewHandler(workspaces *workspacestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Workspaces: workspaces, Log: logger}
}

type workspaceRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// List handles GET /api/workspaces: owned plus member-of.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	list, err := h.Workspaces.ListForUser(r.Context(), u.Email)
	if err != nil {
		h.Log.Error("list workspaces", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, list)
}

// Create handles POST /api/workspaces.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req workspaceRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	name := sanitize.Text(req.Name)
	if name == "" {
		apierr.BadRequest(w, "Name is required")
		return
	}
	switch req.Type {
	case "code", "legal", "research":
	default:
		apierr.BadRequest(w, `type must be "code"|"legal"|"research"`)
		return
	}

	ws := models.Workspace{
		Name:        name,
		Type:        req.Type,
		Description: sanitize.Text(req.Description),
		OwnerEmail:  u.Email,
	}
	if err := h.Workspaces.Create(r.Context(), &ws); err != nil {
		h.Log.Error("create workspace", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, ws)
}

// load fetches the workspace and enforces access. Outsiders get 403;
// a missing id gets 404.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (models.Workspace, *auth.SessionUser, bool) {
	u, _ := auth.CurrentUser(r)
	ws, found, err := h.Workspaces.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("get workspace", zap.Error(err))
		apierr.Internal(w)
		return models.Workspace{}, nil, false
	}
	if !found {
		apierr.NotFound(w, "Workspace not found")
		return models.Workspace{}, nil, false
	}
	if !workspacestore.CanAccess(ws, u.Email) {
		apierr.Forbidden(w, "Not a member of this workspace")
		return models.Workspace{}, nil, false
	}
	return ws, u, true
}

// Get handles GET /api/workspaces/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ws, _, ok := h.load(w, r)
	if !ok {
		return
	}
	httpjson.OK(w, ws)
}

type memberRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// AddMember handles POST /api/workspaces/{id}/members. Owner only.
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	ws, u, ok := h.load(w, r)
	if !ok {
		return
	}
	if !authz.OwnsRecord(u, ws.OwnerEmail) {
		apierr.Forbidden(w, "Only the owner can add members")
		return
	}

	var req memberRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	email := normalize.Email(req.Email)
	if email == "" {
		apierr.BadRequest(w, "Member email is required")
		return
	}

	member := models.WorkspaceMember{
		Email: email,
		Name:  sanitize.Text(req.Name),
		Role:  sanitize.Text(req.Role),
	}
	if _, err := h.Workspaces.AddMember(r.Context(), ws.ID, member); err != nil {
		h.Log.Error("add member", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, map[string]string{"message": "Member added"})
}

// Delete handles DELETE /api/workspaces/{id}. Owner only.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ws, u, ok := h.load(w, r)
	if !ok {
		return
	}
	if !authz.OwnsRecord(u, ws.OwnerEmail) {
		apierr.Forbidden(w, "Only the owner can delete a workspace")
		return
	}

	if _, err := h.Workspaces.Delete(r.Context(), u.Email, ws.ID); err != nil {
		h.Log.Error("delete workspace", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, map[string]string{"message": "Workspace deleted"})
}

// ListMessages handles GET /api/workspaces/{id}/messages, oldest first.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ws, _, ok := h.load(w, r)
	if !ok {
		return
	}

	var limit int64
	if s := query.Get(r, "limit"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			apierr.BadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	msgs, err := h.Workspaces.ListMessages(r.Context(), ws.ID, limit)
	if err != nil {
		h.Log.Error("list messages", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, msgs)
}

type messageRequest struct {
	Message     string `json:"message"`
	MessageType string `json:"message_type"`
}

// PostMessage handles POST /api/workspaces/{id}/messages.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	ws, u, ok := h.load(w, r)
	if !ok {
		return
	}

	var req messageRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	text := sanitize.Text(req.Message)
	if text == "" {
		apierr.BadRequest(w, "Message is required")
		return
	}
	switch req.MessageType {
	case "", "text", "file", "code":
	default:
		apierr.BadRequest(w, `message_type must be "text"|"file"|"code"`)
		return
	}

	msg := models.WorkspaceMessage{
		WorkspaceID: ws.ID,
		UserEmail:   u.Email,
		UserName:    u.Name,
		Message:     text,
		MessageType: req.MessageType,
	}
	if err := h.Workspaces.CreateMessage(r.Context(), &msg); err != nil {
		h.Log.Error("post message", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, msg)
}
