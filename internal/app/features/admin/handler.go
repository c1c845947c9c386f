// Package adminfeature serves the account list and platform statistics.
package adminfeature

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	callstore "github.com/emeraldorbit/emeraldhub/internal/app/store/calls"
	contactstore "github.com/emeraldorbit/emeraldhub/internal/app/store/contacts"
	cryptostore "github.com/emeraldorbit/emeraldhub/internal/app/store/crypto"
	notificationstore "github.com/emeraldorbit/emeraldhub/internal/app/store/notifications"
	propertystore "github.com/emeraldorbit/emeraldhub/internal/app/store/properties"
	sessionstore "github.com/emeraldorbit/emeraldhub/internal/app/store/sessions"
	songstore "github.com/emeraldorbit/emeraldhub/internal/app/store/songs"
	substore "github.com/emeraldorbit/emeraldhub/internal/app/store/subscriptions"
	userstore "github.com/emeraldorbit/emeraldhub/internal/app/store/users"
	workspacestore "github.com/emeraldorbit/emeraldhub/internal/app/store/workspaces"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/apierr"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/authz"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/httpjson"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/timeouts"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

type Handler struct {
	Users         *userstore.Store
	Sessions      *sessionstore.Store
	Contacts      *contactstore.Store
	Calls         *callstore.Store
	Songs         *songstore.Store
	Properties    *propertystore.Store
	Subscriptions *substore.Store
	Workspaces    *workspacestore.Store
	Notifications *notificationstore.Store
	Crypto        *cryptostore.Store
	Log           *zap.Logger
}

// ListUsers handles GET /api/admin/users. Admins only; hashes are
// already projected out by the store.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	if !authz.CanManageUsers(u) {
		apierr.Forbidden(w, "Admin access required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		h.Log.Error("list users", zap.Error(err))
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, users)
}

// statsResponse counts every collection. Session counts include expired
// documents the reaper hasn't collected yet; active_sessions applies the
// clock.
type statsResponse struct {
	TotalUsers         int64 `json:"total_users"`
	LocalUsers         int64 `json:"local_users"`
	ExternalUsers      int64 `json:"external_users"`
	TotalSessions      int64 `json:"total_sessions"`
	ActiveSessions     int64 `json:"active_sessions"`
	Contacts           int64 `json:"contacts"`
	Calls              int64 `json:"calls"`
	Songs              int64 `json:"songs"`
	Properties         int64 `json:"properties"`
	Subscriptions      int64 `json:"subscriptions"`
	Workspaces         int64 `json:"workspaces"`
	Notifications      int64 `json:"notifications"`
	CryptoWallets      int64 `json:"crypto_wallets"`
	CryptoTransactions int64 `json:"crypto_transactions"`
}

// Stats handles GET /api/admin/stats. Any signed-in user may read it.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	if !authz.CanViewStats(u) {
		apierr.Unauthenticated(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	var (
		resp statsResponse
		err  error
	)

	count := func(name string, fn func() (int64, error), dst *int64) {
		if err != nil {
			return
		}
		var n int64
		if n, err = fn(); err != nil {
			h.Log.Error("count "+name, zap.Error(err))
			return
		}
		*dst = n
	}

	count("users", func() (int64, error) { return h.Users.Count(ctx) }, &resp.TotalUsers)
	count("local users", func() (int64, error) { return h.Users.CountByAuthType(ctx, models.AuthTypeLocal) }, &resp.LocalUsers)
	count("external users", func() (int64, error) { return h.Users.CountByAuthType(ctx, models.AuthTypeExternal) }, &resp.ExternalUsers)
	count("sessions", func() (int64, error) { return h.Sessions.Count(ctx) }, &resp.TotalSessions)
	count("active sessions", func() (int64, error) { return h.Sessions.CountActive(ctx, time.Now().UTC()) }, &resp.ActiveSessions)
	count("contacts", func() (int64, error) { return h.Contacts.Count(ctx) }, &resp.Contacts)
	count("calls", func() (int64, error) { return h.Calls.Count(ctx) }, &resp.Calls)
	count("songs", func() (int64, error) { return h.Songs.Count(ctx) }, &resp.Songs)
	count("properties", func() (int64, error) { return h.Properties.Count(ctx) }, &resp.Properties)
	count("subscriptions", func() (int64, error) { return h.Subscriptions.Count(ctx) }, &resp.Subscriptions)
	count("workspaces", func() (int64, error) { return h.Workspaces.Count(ctx) }, &resp.Workspaces)
	count("notifications", func() (int64, error) { return h.Notifications.Count(ctx) }, &resp.Notifications)
	count("crypto wallets", func() (int64, error) { return h.Crypto.CountWallets(ctx) }, &resp.CryptoWallets)
	count("crypto transactions", func() (int64, error) { return h.Crypto.CountTransactions(ctx) }, &resp.CryptoTransactions)

	if err != nil {
		apierr.Internal(w)
		return
	}
	httpjson.OK(w, resp)
}
