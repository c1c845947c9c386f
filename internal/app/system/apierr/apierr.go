// Package apierr converts errors to JSON API responses at the request
// boundary. Every handler error funnels through here so status codes and
// bodies stay uniform across features.
package apierr

import (
	"encoding/json"
	"net/http"
)

// Body is the wire shape for every error response.
type Body struct {
	Detail string `json:"detail"`
}

// Authentication failures share one public message regardless of whether
// the token was missing, unknown, expired, or dangling. The distinction is
// logged server-side only.
const unauthenticatedDetail = "Not authenticated"

// Write sends an error response with the given status and detail.
func Write(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Body{Detail: detail})
}

// BadRequest writes a 400 with the given detail.
func BadRequest(w http.ResponseWriter, detail string) {
	Write(w, http.StatusBadRequest, detail)
}

// Unauthenticated writes the uniform 401 body.
func Unauthenticated(w http.ResponseWriter) {
	Write(w, http.StatusUnauthorized, unauthenticatedDetail)
}

// Forbidden writes a 403.
func Forbidden(w http.ResponseWriter, detail string) {
	Write(w, http.StatusForbidden, detail)
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, detail string) {
	Write(w, http.StatusNotFound, detail)
}

// Internal writes a 500 with a generic detail. The underlying error is
// logged by the caller, never exposed.
func Internal(w http.ResponseWriter) {
	Write(w, http.StatusInternalServerError, "Internal server error")
}

// GatewayTimeout writes a 504 for upstream timeouts.
func GatewayTimeout(w http.ResponseWriter, detail string) {
	Write(w, http.StatusGatewayTimeout, detail)
}
