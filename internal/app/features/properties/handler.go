// Package propertiesfeature serves the platform-wide real-estate
// listings.
package propertiesfeature

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	propertystore "github.com/emeraldorbit/emeraldhub/internal/app/store/properties"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/apierr"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/httpjson"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/sanitize"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

type Handler struct {
	Properties *propertystore.Store
	Log        *zap.Logger
}

func NewHandler(properties *propertystore.Store, logger *zap.Logger) *Handler {
	return &Handler{Properties: properties, Log: logger}
}

type propertyRequest struct {
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	ZipCode      string   `json:"zip_code"`
	PropertyType string   `json:"property_type"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    float64  `json:"bathrooms"`
	SquareFeet   int      `json:"square_feet"`
	Price        float64  `json:"price"`
	Status       string   `json:"status"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
}

func (req *propertyRequest) toModel() (models.Property, string) {
	address := sanitize.Text(req.Address)
	switch {
	case address == "":
		return models.Property{}, "Address is required"
	case req.Price < 0:
		return models.Property{}, "price must be non-negative"
	}
	return models.Property{
		Address:      address,
		City:         sanitize.Text(req.City),
		State:        sanitize.Text(req.State),
		ZipCode:      sanitize.Text(req.ZipCode),
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		SquareFeet:   req.SquareFeet,
		Price:        req.Price,
		Status:       req.Status,
		Description:  sanitize.Text(req.Description),
		Images:       req.Images,
	}, ""
}

// List handles GET /api/properties with optional ?status= and ?q=
// address filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Properties.List(r.Context(), query.Get(r, "status"), query.Get(r, "q"))
	if err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	httpjson.OK(w, list)
}

// Create handles POST /api/properties.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	property, problem := req.toModel()
	if problem != "" {
		apierr.BadRequest(w, problem)
		return
	}

	if err := h.Properties.Create(r.Context(), &property); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	httpjson.OK(w, property)
}

// Get handles GET /api/properties/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	property, found, err := h.Properties.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("get property", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if !found {
		apierr.NotFound(w, "Property not found")
		return
	}
	httpjson.OK(w, property)
}

// Update handles PUT /api/properties/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	property, problem := req.toModel()
	if problem != "" {
		apierr.BadRequest(w, problem)
		return
	}
	if property.Status == "" {
		property.Status = models.PropertyAvailable
	}

	id := chi.URLParam(r, "id")
	found, err := h.Properties.Update(r.Context(), id, property)
	if err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	if !found {
		apierr.NotFound(w, "Property not found")
		return
	}
	updated, _, err := h.Properties.GetByID(r.Context(), id)
	if err != nil {
		h.Log.Error("reload property", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, updated)
}

type statusRequest struct {
	Status string `json:"status"`
}

// SetStatus handles PATCH /api/properties/{id}/status.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}

	found, err := h.Properties.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	if !found {
		apierr.NotFound(w, "Property not found")
		return
	}
	httpjson.OK(w, map[string]string{"message": "Status updated"})
}

// Delete handles DELETE /api/properties/{id}. Deleting listings is an
// admin operation.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	found, err := h.Properties.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("delete property", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if !found {
		apierr.NotFound(w, "Property not found")
		return
	}
	httpjson.OK(w, map[string]string{"message": "Property deleted"})
}
