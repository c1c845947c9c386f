package authfeature_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	authfeature "github.com/emeraldorbit/emeraldhub/internal/app/features/auth"
	sessionstore "github.com/emeraldorbit/emeraldhub/internal/app/store/sessions"
	userstore "github.com/emeraldorbit/emeraldhub/internal/app/store/users"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/auth"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/broker"
	"github.com/emeraldorbit/emeraldhub/internal/app/system/password"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
	"github.com/emeraldorbit/emeraldhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

func newRig(t *testing.T, db *mongo.Database, brokerURL string) http.Handler {
	t.Helper()

	users := userstore.New(db)
	sessions := sessionstore.New(db, time.Hour)
	var bc *broker.Client
	if brokerURL != "" {
		bc = broker.NewClient(brokerURL, time.Second)
	}
	h := authfeature.NewHandler(users, sessions, password.NewHasher(4), bc, nil, zap.NewNop())

	resolver := &auth.Resolver{Sessions: sessions, Users: users, Logger: zap.NewNop()}
	root := chi.NewRouter()
	root.Use(resolver.LoadSessionUser)
	root.Mount("/api/auth", authfeature.Routes(h, nil))
	return root
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRegisterLoginMeLogout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRig(t, db, "")

	rec := postJSON(t, h, "/api/auth/register",
		`{"email":"Ana@Example.com","name":"  Ana   Lima ","password":"hunter22"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d body=%s", rec.Code, rec.Body.String())
	}

	var reg struct {
		UserID       string `json:"user_id"`
		Email        string `json:"email"`
		Name         string `json:"name"`
		Role         string `json:"role"`
		SessionToken string `json:"session_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &reg); err != nil {
		t.Fatalf("decode register: %v", err)
	}
	if reg.Email != "ana@example.com" || reg.Name != "Ana Lima" {
		t.Fatalf("normalized profile = %+v", reg)
	}
	if reg.UserID == "" || reg.Role != models.RoleUser {
		t.Fatalf("profile = %+v", reg)
	}
	if reg.SessionToken == "" {
		t.Fatal("no session token issued")
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), "session_token=") {
		t.Fatalf("no session cookie: %q", rec.Header().Get("Set-Cookie"))
	}
	if strings.Contains(rec.Body.String(), "password_hash") ||
		strings.Contains(rec.Body.String(), "hunter22") {
		t.Fatal("register leaked credentials")
	}
	// The profile fields sit at the top level of the body.
	if strings.Contains(rec.Body.String(), `"user":`) ||
		strings.Contains(rec.Body.String(), "auth_type") ||
		strings.Contains(rec.Body.String(), "created_at") {
		t.Fatalf("register body = %s", rec.Body.String())
	}

	// Duplicate registration conflicts.
	rec = postJSON(t, h, "/api/auth/register",
		`{"email":"ana@example.com","name":"Other","password":"hunter22"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register status = %d, want 400", rec.Code)
	}

	// Login with wrong then right password.
	rec = postJSON(t, h, "/api/auth/login", `{"email":"ana@example.com","password":"wrong22"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", rec.Code)
	}
	rec = postJSON(t, h, "/api/auth/login", `{"email":"ANA@example.com","password":"hunter22"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d body=%s", rec.Code, rec.Body.String())
	}
	var login struct {
		SessionToken string `json:"session_token"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &login)

	// Me with the bearer header.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.SessionToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d body=%s", rec.Code, rec.Body.String())
	}
	var me struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Role   string `json:"role"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &me)
	if me.Email != "ana@example.com" || me.UserID == "" || me.Role != models.RoleUser {
		t.Fatalf("me = %+v", me)
	}
	if strings.Contains(rec.Body.String(), "auth_type") {
		t.Fatalf("me body = %s", rec.Body.String())
	}

	// Logout revokes the token.
	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+login.SessionToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.SessionToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout = %d, want 401", rec.Code)
	}
	if rec.Body.String() != `{"detail":"Not authenticated"}`+"\n" &&
		!strings.Contains(rec.Body.String(), "Not authenticated") {
		t.Fatalf("401 body = %q", rec.Body.String())
	}
}

func TestRegisterValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRig(t, db, "")

	cases := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"bad email", `{"email":"not-an-email","name":"A","password":"hunter22"}`},
		{"no name", `{"email":"a@example.com","name":"   ","password":"hunter22"}`},
		{"short password", `{"email":"a@example.com","name":"A","password":"abc"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h, "/api/auth/register", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestLoginExternalAccountRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newRig(t, db, "")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if _, err := userstore.New(db).UpsertExternal(ctx, "ext@example.com", "Ext", nil); err != nil {
		t.Fatalf("seed external user: %v", err)
	}

	rec := postJSON(t, h, "/api/auth/login", `{"email":"ext@example.com","password":"whatever1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for external account", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "external sign-in") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestExternalSessionExchange(t *testing.T) {
	db := testutil.SetupTestDB(t)

	idp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("X-Session-ID") {
		case "good-id":
			_ = json.NewEncoder(w).Encode(map[string]string{
				"email": "ext@example.com",
				"name":  "Ext User",
			})
		case "boom-id":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer idp.Close()

	h := newRig(t, db, idp.URL)

	// Missing session id.
	rec := postJSON(t, h, "/api/auth/external-session", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing id status = %d, want 400", rec.Code)
	}

	// Rejected by the broker.
	rec = postJSON(t, h, "/api/auth/external-session", `{"session_id":"bad-id"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("rejected status = %d, want 401", rec.Code)
	}

	// A broker-side failure counts as a rejection, not our error.
	rec = postJSON(t, h, "/api/auth/external-session", `{"session_id":"boom-id"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("broker error status = %d, want 401", rec.Code)
	}

	// Accepted; account is created and a session issued.
	rec = postJSON(t, h, "/api/auth/external-session", `{"session_id":"good-id"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("exchange status = %d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		UserID       string `json:"user_id"`
		Email        string `json:"email"`
		SessionToken string `json:"session_token"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Email != "ext@example.com" || resp.UserID == "" || resp.SessionToken == "" {
		t.Fatalf("resp = %+v", resp)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	stored, found, err := userstore.New(db).GetByEmail(ctx, "ext@example.com")
	if err != nil || !found {
		t.Fatalf("stored user: found=%v err=%v", found, err)
	}
	if stored.AuthType != models.AuthTypeExternal {
		t.Fatalf("auth_type = %q", stored.AuthType)
	}
}
