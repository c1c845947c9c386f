package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
)

type fakeSessions struct {
	byToken map[string]models.Session
	err     error
}

func (f *fakeSessions) GetByToken(_ context.Context, token string) (models.Session, bool, error) {
	if f.err != nil {
		return models.Session{}, false, f.err
	}
	s, ok := f.byToken[token]
	return s, ok, nil
}

type fakeUsers struct {
	byID map[string]models.User
}

func (f *fakeUsers) GetByUserID(_ context.Context, id string) (models.User, bool, error) {
	u, ok := f.byID[id]
	return u, ok, nil
}

func newResolver(now time.Time) *Resolver {
	return &Resolver{
		Sessions: &fakeSessions{byToken: map[string]models.Session{
			"live-token": {Token: "live-token", UserID: "user_abc", ExpiresAt: now.Add(time.Hour)},
			"dead-token": {Token: "dead-token", UserID: "user_abc", ExpiresAt: now.Add(-time.Minute)},
			"orphaned":   {Token: "orphaned", UserID: "user_gone", ExpiresAt: now.Add(time.Hour)},
		}},
		Users: &fakeUsers{byID: map[string]models.User{
			"user_abc": {UserID: "user_abc", Email: "ana@example.com", Name: "Ana", Role: models.RoleUser},
		}},
		Now: func() time.Time { return now },
	}
}

func resolve(t *testing.T, rs *Resolver, decorate func(*http.Request)) (*SessionUser, bool) {
	t.Helper()
	var (
		got   *SessionUser
		found bool
	)
	h := rs.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = CurrentUser(r)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	decorate(req)
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got, found
}

func TestLoadSessionUserBearerHeader(t *testing.T) {
	rs := newResolver(time.Now().UTC())
	u, ok := resolve(t, rs, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer live-token")
	})
	if !ok {
		t.Fatal("expected user in context")
	}
	if u.Email != "ana@example.com" || u.Role != models.RoleUser {
		t.Fatalf("user = %+v", u)
	}
}

func TestLoadSessionUserCookieWinsOverHeader(t *testing.T) {
	rs := newResolver(time.Now().UTC())
	u, ok := resolve(t, rs, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "live-token"})
		r.Header.Set("Authorization", "Bearer dead-token")
	})
	if !ok || u.UserID != "user_abc" {
		t.Fatalf("cookie token should resolve, got ok=%v u=%+v", ok, u)
	}
}

func TestLoadSessionUserRejections(t *testing.T) {
	now := time.Now().UTC()
	cases := []struct {
		name  string
		token string
	}{
		{"unknown token", "nope"},
		{"expired session", "dead-token"},
		{"user deleted", "orphaned"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rs := newResolver(now)
			if _, ok := resolve(t, rs, func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+tc.token)
			}); ok {
				t.Fatal("expected anonymous context")
			}
		})
	}
}

func TestRequireSignedIn(t *testing.T) {
	h := RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Not authenticated") {
		t.Fatalf("body = %q, want uniform detail", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req := WithTestUser(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil),
		&SessionUser{UserID: "user_abc", Role: models.RoleUser})
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("signed-in status = %d, want 200", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, WithTestUser(httptest.NewRequest(http.MethodGet, "/api/admin/users", nil),
		&SessionUser{UserID: "u", Role: models.RoleUser}))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wrong-role status = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, WithTestUser(httptest.NewRequest(http.MethodGet, "/api/admin/users", nil),
		&SessionUser{UserID: "u", Role: models.RoleAdmin}))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", rec.Code)
	}
}

func TestTokenFromRequestEmpty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := TokenFromRequest(r); got != "" {
		t.Fatalf("token = %q, want empty", got)
	}
	r.Header.Set("Authorization", "Basic abc")
	if got := TokenFromRequest(r); got != "" {
		t.Fatalf("token = %q, want empty for non-bearer scheme", got)
	}
}

func TestSessionCookieAttributes(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok123", 7*24*time.Hour)
	res := rec.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName || c.Value != "tok123" {
		t.Fatalf("cookie = %+v", c)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteNoneMode || c.Path != "/" {
		t.Fatalf("cookie attributes = %+v", c)
	}
	if c.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Fatalf("max age = %d", c.MaxAge)
	}

	rec = httptest.NewRecorder()
	ClearSessionCookie(rec)
	c = rec.Result().Cookies()[0]
	if c.MaxAge != -1 || c.Value != "" {
		t.Fatalf("clear cookie = %+v", c)
	}
}
