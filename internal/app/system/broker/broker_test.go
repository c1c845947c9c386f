package broker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExchangeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Session-ID"); got != "abc123" {
			t.Errorf("X-Session-ID = %q, want abc123", got)
		}
		pic := "https://cdn.example.com/p.png"
		json.NewEncoder(w).Encode(Identity{Email: "ana@example.com", Name: "Ana", Picture: &pic})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	ident, err := c.Exchange(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if ident.Email != "ana@example.com" || ident.Name != "Ana" {
		t.Fatalf("identity = %+v", ident)
	}
	if ident.Picture == nil || *ident.Picture != "https://cdn.example.com/p.png" {
		t.Fatalf("picture = %v", ident.Picture)
	}
}

func TestExchangeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	if _, err := c.Exchange(context.Background(), "bogus"); !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
}

func TestExchangeServerErrorRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	if _, err := c.Exchange(context.Background(), "abc123"); !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
}

func TestExchangeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond)
	if _, err := c.Exchange(context.Background(), "slow"); !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestExchangeEmptyIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	if _, err := c.Exchange(context.Background(), "abc"); err == nil {
		t.Fatal("expected error for empty identity")
	}
}
