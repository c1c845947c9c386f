// Package auth resolves opaque bearer session tokens into the signed-in
// user and gates handlers on sign-in state and role.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/emeraldorbit/emeraldhub/internal/app/system/apierr"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/metrics"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/timeouts"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

// CookieName is the session cookie the frontend relies on.
const CookieName = "session_token"

// SessionUser is what LoadSessionUser injects into r.Context().
type SessionUser struct {
	UserID  string
	Email   string
	Name    string
	Picture *string
	Role    string
}

// Admin reports whether the user holds the admin role.
func (u *SessionUser) Admin() bool { return u.Role == models.RoleAdmin }

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the resolved user and a "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// SessionSource looks up a session document by its token.
type SessionSource interface {
	GetByToken(ctx context.Context, token string) (models.Session, bool, error)
}

// UserSource re-reads the user a session points at.
type UserSource interface {
	GetByUserID(ctx context.Context, userID string) (models.User, bool, error)
}

// Resolver turns bearer tokens into context users. Every request passes
// through it once; route guards downstream only check the context.
type Resolver struct {
	Sessions SessionSource
	Users    UserSource
	Metrics  *metrics.Collector
	Logger   *zap.Logger

	// Now is swappable in tests; zero value means time.Now.
	Now func() time.Time
}

func (rs *Resolver) now() time.Time {
	if rs.Now != nil {
		return rs.Now()
	}
	return time.Now().UTC()
}

// TokenFromRequest extracts the bearer token. The session cookie wins
// over the Authorization header when both are present.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// LoadSessionUser injects the user into context if the request carries a
// live session token. Requests without a valid token continue anonymous;
// rejection happens at RequireSignedIn / RequireRole.
func (rs *Resolver) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		// Lookups are single-document reads; bound them so a slow
		// database cannot stall every request.
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		sess, found, err := rs.Sessions.GetByToken(ctx, token)
		if err != nil {
			rs.fail("session_lookup_error", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		if !found {
			rs.fail("unknown_token")
			next.ServeHTTP(w, r)
			return
		}
		if sess.Expired(rs.now()) {
			rs.fail("session_expired", zap.String("user_id", sess.UserID))
			next.ServeHTTP(w, r)
			return
		}

		// Fresh read so role or profile changes take effect immediately.
		user, found, err := rs.Users.GetByUserID(ctx, sess.UserID)
		if err != nil {
			rs.fail("user_lookup_error", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		if !found {
			rs.fail("user_missing", zap.String("user_id", sess.UserID))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, withUser(r, &SessionUser{
			UserID:  user.UserID,
			Email:   user.Email,
			Name:    user.Name,
			Picture: user.Picture,
			Role:    user.Role,
		}))
	})
}

func (rs *Resolver) fail(reason string, fields ...zap.Field) {
	if rs.Metrics != nil {
		rs.Metrics.RecordAuthFailure(reason)
	}
	if rs.Logger != nil {
		rs.Logger.Debug("session not resolved", append(fields, zap.String("reason", reason))...)
	}
}

// RequireSignedIn ensures there is a user in context (set by
// LoadSessionUser). The 401 body is identical for every failure mode.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			apierr.Unauthenticated(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the context user holds one of the allowed roles.
// Anonymous callers get the uniform 401; signed-in callers with the
// wrong role get 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				apierr.Unauthenticated(w)
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				apierr.Forbidden(w, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetSessionCookie writes the session cookie the way cross-site frontends
// need it: HttpOnly, Secure, SameSite=None, path-wide, expiring with the
// session itself.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearSessionCookie expires the session cookie with matching attributes.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// WithTestUser returns r with u injected, for handler tests.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}
