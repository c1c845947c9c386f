// Package authfeature exposes the credential and session endpoints:
// register, login, external exchange, me, logout.
package authfeature

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	sessionstore "github.com/emeraldorbit/emeraldhub/internal/app/store/sessions"
	userstore "github.com/emeraldorbit/emeraldhub/internal/app/store/users"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/apierr"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/broker"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/httpjson"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/metrics"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/normalize"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/password"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/sanitize"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

// MinPasswordLength is the floor for local-account passwords.
const MinPasswordLength = 6

type Handler struct {
	Users    *userstore.Store
	Sessions *sessionstore.Store
	Hasher   *password.Hasher
	Broker   *broker.Client
	Metrics  *metrics.Collector
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, sessions *sessionstore.Store, hasher *password.Hasher, brokerClient *broker.Client, collector *metrics.Collector, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    users,
		Sessions: sessions,
		Hasher:   hasher,
		Broker:   brokerClient,
		Metrics:  collector,
		Log:      logger,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type externalSessionRequest struct {
	SessionID string `json:"session_id"`
}

// profileResponse is the account shape the auth endpoints return. Local
// accounts carry no picture, so it drops out of the encoding.
type profileResponse struct {
	UserID  string  `json:"user_id"`
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Picture *string `json:"picture,omitempty"`
	Role    string  `json:"role"`
}

func profileOf(u models.User) profileResponse {
	return profileResponse{
		UserID:  u.UserID,
		Email:   u.Email,
		Name:    u.Name,
		Picture: u.Picture,
		Role:    u.Role,
	}
}

// sessionResponse adds the bearer token so non-cookie clients can
// authenticate with the Authorization header.
type sessionResponse struct {
	profileResponse
	SessionToken string `json:"session_token"`
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}

	email := normalize.Email(req.Email)
	name := sanitize.Text(normalize.Name(req.Name))
	switch {
	case email == "" || !strings.Contains(email, "@"):
		apierr.BadRequest(w, "A valid email is required")
		return
	case name == "":
		apierr.BadRequest(w, "Name is required")
		return
	case len(req.Password) < MinPasswordLength:
		apierr.BadRequest(w, "Password must be at least 6 characters")
		return
	}

	hash, err := h.Hasher.Hash(req.Password)
	if err != nil {
		h.Log.Error("hash password", zap.Error(err))
		apierr.Internal(w)
		return
	}

	user := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: &hash,
		AuthType:     models.AuthTypeLocal,
	}
	if err := h.Users.Create(r.Context(), &user); err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			apierr.BadRequest(w, "Email already registered")
			return
		}
		h.Log.Error("create user", zap.Error(err))
		apierr.Internal(w)
		return
	}

	h.issueSession(w, r, user)
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}

	user, found, err := h.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		h.Log.Error("lookup user", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if found && user.AuthType != models.AuthTypeLocal {
		apierr.BadRequest(w, "This account uses external sign-in. Please sign in that way.")
		return
	}
	// Identical rejection for unknown email and wrong password.
	if !found || user.PasswordHash == nil || !h.Hasher.Verify(req.Password, *user.PasswordHash) {
		apierr.Write(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	h.issueSession(w, r, user)
}

// ExternalSession handles POST /api/auth/external-session. The broker
// session ID arrives in the JSON body and is exchanged for a verified
// identity; the account is created or refreshed from that identity.
func (h *Handler) ExternalSession(w http.ResponseWriter, r *http.Request) {
	if h.Broker == nil {
		apierr.Write(w, http.StatusServiceUnavailable, "External sign-in is not configured")
		return
	}
	var req externalSessionRequest
	if err := httpjson.Decode(r, &req); err != nil {
		apierr.BadRequest(w, err.Error())
		return
	}
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		apierr.BadRequest(w, "Session ID is required")
		return
	}

	ident, err := h.Broker.Exchange(r.Context(), sessionID)
	switch {
	case errors.Is(err, broker.ErrRejected):
		apierr.Write(w, http.StatusUnauthorized, "Invalid session ID")
		return
	case errors.Is(err, broker.ErrTimeout):
		apierr.GatewayTimeout(w, "Identity provider timed out")
		return
	case err != nil:
		h.Log.Error("broker exchange", zap.Error(err))
		apierr.Internal(w)
		return
	}

	user, err := h.Users.UpsertExternal(r.Context(), ident.Email, sanitize.Text(normalize.Name(ident.Name)), ident.Picture)
	if err != nil {
		h.Log.Error("upsert external user", zap.Error(err))
		apierr.Internal(w)
		return
	}

	h.issueSession(w, r, user)
}

// Me handles GET /api/auth/me for the signed-in user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Unauthenticated(w)
		return
	}
	user, found, err := h.Users.GetByUserID(r.Context(), u.UserID)
	if err != nil {
		h.Log.Error("lookup user", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if !found {
		apierr.Unauthenticated(w)
		return
	}
	httpjson.OK(w, profileOf(user))
}

// Logout handles POST /api/auth/logout. It revokes whatever token the
// request carries and always clears the cookie; repeating it is harmless.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := auth.TokenFromRequest(r); token != "" {
		if err := h.Sessions.Delete(r.Context(), token); err != nil {
			h.Log.Warn("delete session", zap.Error(err))
		}
	}
	auth.ClearSessionCookie(w)
	httpjson.OK(w, map[string]string{"message": "Logged out"})
}

func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, user models.User) {
	sess, err := h.Sessions.Create(r.Context(), user.UserID)
	if err != nil {
		h.Log.Error("create session", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordSessionIssued()
	}
	auth.SetSessionCookie(w, sess.Token, h.Sessions.TTL())
	httpjson.OK(w, sessionResponse{profileResponse: profileOf(user), SessionToken: sess.Token})
}
