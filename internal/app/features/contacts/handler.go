// Package contactsfeature serves the owner-scoped contact book.
package contactsfeature

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	contactstore "github.com/emeraldorbit/emeraldhub/internal/app/store/contacts"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/apierr"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/httpjson"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/sanitize"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

type Handler struct {
	Contacts *contactstore.Store
	Log      *zap.Logger
}

func NewHandler(contacts *contactstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Contacts: contacts, Log: logger}
}

type contactRequest struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Email   string   `json:"email"`
	Company string   `json:"company"`
	Role    string   `json:"role"`
	Notes   string   `json:"notes"`
	Tags    []string `json:"tags"`
}

func (req *contactRequest) toModel(ownerEmail string) (models.Contact, string) {
	name := sanitize.Text(req.Name)
	if name == "" {
		return models.Contact{}, "Name is required"
	}
	return models.Contact{
		UserEmail: ownerEmail,
		Name:      name,
		Phone:     sanitize.Text(req.Phone),
		Email:     sanitize.Text(req.Email),
		Company:   sanitize.Text(req.Company),
		Role:      sanitize.Text(req.Role),
		Notes:     sanitize.Text(req.Notes),
		Tags:      sanitize.Slice(req.Tags),
	}, ""
}

// List handles GET /api/contacts with an optional ?q= name filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	list, err := h.Contacts.ListByOwner(r.Context(), u.Email, query.Get(r, "q"))
	if err != nil {
		h.Log.Error("list contacts", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, list)
}

// Create handles POST /api/contacts.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req contactRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	contact, problem := req.toModel(u.Email)
	if problem != "" {
		apierr.BadRequest(w, problem)
		return
	}

	if err := h.Contacts.Create(r.Context(), &contact); err != nil {
		h.Log.Error("create contact", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, contact)
}

// Get handles GET /api/contacts/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	contact, found, err := h.Contacts.GetByID(r.Context(), u.Email, chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("get contact", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if !found {
		apierr.NotFound(w, "Contact not found")
		return
	}
	httpjson.OK(w, contact)
}

// Update handles PUT /api/contacts/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var req contactRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	contact, problem := req.toModel(u.Email)
	if problem != "" {
		apierr.BadRequest(w, problem)
		return
	}

	id := chi.URLParam(r, "id")
	found, err := h.Contacts.Update(r.Context(), u.Email, id, contact)
	if err != nil {
		h.Log.Error("update contact", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if !found {
		apierr.NotFound(w, "Contact not found")
		return
	}

	updated, _, err := h.Contacts.GetByID(r.Context(), u.Email, id)
	if err != nil {
		h.Log.Error("reload contact", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, updated)
}

// Delete handles DELETE /api/contacts/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	found, err := h.Contacts.Delete(r.Context(), u.Email, chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("delete contact", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if !found {
		apierr.NotFound(w, "Contact not found")
		return
	}
	httpjson.OK(w, map[string]string{"message": "Contact deleted"})
}
