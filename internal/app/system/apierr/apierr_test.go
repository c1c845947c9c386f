package apierr_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emeraldorbit/emeraldhub/internal/app/system/apierr"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) apierr.Body {
	t.Helper()
	var b apierr.Body
	if err := json.NewDecoder(rec.Body).Decode(&b); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return b
}

func TestUnauthenticated_UniformBody(t *testing.T) {
	rec := httptest.NewRecorder()
	apierr.Unauthenticated(rec)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
	if got := decodeBody(t, rec).Detail; got != "Not authenticated" {
		t.Errorf("detail: got %q, want %q", got, "Not authenticated")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
}

func TestWrite_StatusAndDetail(t *testing.T) {
	cases := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		detail string
	}{
		{"bad request", func(w http.ResponseWriter) { apierr.BadRequest(w, "bad input") }, 400, "bad input"},
		{"forbidden", func(w http.ResponseWriter) { apierr.Forbidden(w, "Admin access required") }, 403, "Admin access required"},
		{"not found", func(w http.ResponseWriter) { apierr.NotFound(w, "Contact not found") }, 404, "Contact not found"},
		{"internal", func(w http.ResponseWriter) { apierr.Internal(w) }, 500, "Internal server error"},
		{"gateway timeout", func(w http.ResponseWriter) { apierr.GatewayTimeout(w, "auth broker timeout") }, 504, "auth broker timeout"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c.write(rec)
			if rec.Code != c.status {
				t.Errorf("status: got %d, want %d", rec.Code, c.status)
			}
			if got := decodeBody(t, rec).Detail; got != c.detail {
				t.Errorf("detail: got %q, want %q", got, c.detail)
			}
		})
	}
}
