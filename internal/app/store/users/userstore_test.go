package userstore_test

import (
	"testing"

	userstore "github.com/emeraldorbit/emeraldhub/internal/app/store/users"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
	"github.com/emeraldorbit/emeraldhub/internal/testutil"
)

func TestCreateAndGetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	hash := "$2a$12$abcdefghijklmnopqrstuv"
	u := models.User{
		Email:        "Ana@Example.COM",
		Name:         "Ana",
		PasswordHash: &hash,
		AuthType:     models.AuthTypeLocal,
	}
	if err := store.Create(ctx, &u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.UserID == "" {
		t.Fatal("Create did not stamp UserID")
	}
	if u.Role != models.RoleUser {
		t.Fatalf("default role = %q, want user", u.Role)
	}

	got, found, err := store.GetByEmail(ctx, "ana@example.com")
	if err != nil || !found {
		t.Fatalf("GetByEmail: found=%v err=%v", found, err)
	}
	if got.Email != "ana@example.com" {
		t.Fatalf("stored email = %q, want normalized lowercase", got.Email)
	}
	if got.UserID != u.UserID {
		t.Fatalf("user id mismatch: %q vs %q", got.UserID, u.UserID)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	first := testutil.NewLocalUser("dup@example.com", "First")
	if err := store.Create(ctx, &first); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	second := testutil.NewLocalUser("DUP@example.com", "Second")
	second.UserID = ""
	if err := store.Create(ctx, &second); err != userstore.ErrDuplicateEmail {
		t.Fatalf("Create second err = %v, want ErrDuplicateEmail", err)
	}
}

func TestCreateRejectsBadAuthType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := models.User{Email: "x@example.com", Name: "X", AuthType: "google"}
	if err := store.Create(ctx, &u); err == nil {
		t.Fatal("expected error for unknown auth_type")
	}
}

func TestUpsertExternal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	pic := "https://cdn.example.com/a.png"
	created, err := store.UpsertExternal(ctx, "ext@example.com", "Ext User", &pic)
	if err != nil {
		t.Fatalf("UpsertExternal create: %v", err)
	}
	if created.AuthType != models.AuthTypeExternal || created.UserID == "" {
		t.Fatalf("created = %+v", created)
	}

	// Second exchange refreshes display fields but keeps identity.
	pic2 := "https://cdn.example.com/b.png"
	updated, err := store.UpsertExternal(ctx, "EXT@example.com", "Renamed", &pic2)
	if err != nil {
		t.Fatalf("UpsertExternal update: %v", err)
	}
	if updated.UserID != created.UserID {
		t.Fatalf("user id changed on update: %q vs %q", updated.UserID, created.UserID)
	}
	if updated.Name != "Renamed" || *updated.Picture != pic2 {
		t.Fatalf("display fields not refreshed: %+v", updated)
	}

	if n, _ := store.Count(ctx); n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}

func TestUpsertExternalKeepsLocalPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	local := testutil.NewLocalUser("both@example.com", "Local")
	if err := store.Create(ctx, &local); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.UpsertExternal(ctx, "both@example.com", "Broker Name", nil)
	if err != nil {
		t.Fatalf("UpsertExternal: %v", err)
	}
	if got.AuthType != models.AuthTypeLocal {
		t.Fatalf("auth_type = %q, must stay local", got.AuthType)
	}

	fresh, _, err := store.GetByEmail(ctx, "both@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if fresh.PasswordHash == nil {
		t.Fatal("password hash was dropped by external refresh")
	}
	if fresh.Name != "Broker Name" {
		t.Fatalf("name = %q, want refreshed", fresh.Name)
	}
}

func TestListAllOmitsPasswordHashes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.NewLocalUser("list@example.com", "Lister")
	if err := store.Create(ctx, &u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	users, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("len = %d, want 1", len(users))
	}
	if users[0].PasswordHash != nil {
		t.Fatal("ListAll leaked a password hash")
	}
}

func TestEnsureAdminRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if found, err := store.EnsureAdminRole(ctx, "nobody@example.com"); err != nil || found {
		t.Fatalf("EnsureAdminRole on missing user: found=%v err=%v", found, err)
	}

	u := testutil.NewLocalUser("boss@example.com", "Boss")
	if err := store.Create(ctx, &u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	found, err := store.EnsureAdminRole(ctx, "BOSS@example.com")
	if err != nil || !found {
		t.Fatalf("EnsureAdminRole: found=%v err=%v", found, err)
	}
	got, _, _ := store.GetByEmail(ctx, "boss@example.com")
	if got.Role != models.RoleAdmin {
		t.Fatalf("role = %q, want admin", got.Role)
	}
}
