package workspacestore_test

import (
	"testing"

	workspacestore "github.com/emeraldorbit/emeraldhub/internal/app/store/workspaces"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
	"github.com/emeraldorbit/emeraldhub/internal/testutil"
)

func TestListForUserSeesOwnedAndMemberWorkspaces(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workspacestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owned := models.Workspace{Name: "Deal Room", Type: "legal", OwnerEmail: "ana@example.com"}
	if err := store.Create(ctx, &owned); err != nil {
		t.Fatalf("Create owned: %v", err)
	}

	shared := models.Workspace{
		Name:       "Research",
		Type:       "research",
		OwnerEmail: "bob@example.com",
		Members:    []models.WorkspaceMember{{Email: "ana@example.com", Name: "Ana"}},
	}
	if err := store.Create(ctx, &shared); err != nil {
		t.Fatalf("Create shared: %v", err)
	}

	unrelated := models.Workspace{Name: "Private", Type: "code", OwnerEmail: "carol@example.com"}
	if err := store.Create(ctx, &unrelated); err != nil {
		t.Fatalf("Create unrelated: %v", err)
	}

	list, err := store.ListForUser(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2 (owned + member)", len(list))
	}
	for _, w := range list {
		if w.ID == unrelated.ID {
			t.Fatal("unrelated workspace leaked")
		}
	}
}

func TestAddMemberIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workspacestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	w := models.Workspace{Name: "Team", Type: "code", OwnerEmail: "ana@example.com"}
	if err := store.Create(ctx, &w); err != nil {
		t.Fatalf("Create: %v", err)
	}

	m := models.WorkspaceMember{Email: "bob@example.com", Name: "Bob"}
	for i := 0; i < 2; i++ {
		found, err := store.AddMember(ctx, w.ID, m)
		if err != nil || !found {
			t.Fatalf("AddMember round %d: found=%v err=%v", i, found, err)
		}
	}

	got, _, _ := store.GetByID(ctx, w.ID)
	if len(got.Members) != 1 {
		t.Fatalf("members = %d, want 1", len(got.Members))
	}

	if found, _ := store.AddMember(ctx, "missing-id", m); found {
		t.Fatal("AddMember on missing workspace reported found")
	}
}

func TestMessagesAndOwnerOnlyDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := workspacestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	w := models.Workspace{Name: "Chat", Type: "code", OwnerEmail: "ana@example.com"}
	if err := store.Create(ctx, &w); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, text := range []string{"first", "second"} {
		m := models.WorkspaceMessage{
			WorkspaceID: w.ID,
			UserEmail:   "ana@example.com",
			UserName:    "Ana",
			Message:     text,
		}
		if err := store.CreateMessage(ctx, &m); err != nil {
			t.Fatalf("CreateMessage: %v", err)
		}
	}

	msgs, err := store.ListMessages(ctx, w.ID, 0)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Message != "first" {
		t.Fatalf("messages = %+v, want oldest first", msgs)
	}

	if found, _ := store.Delete(ctx, "bob@example.com", w.ID); found {
		t.Fatal("non-owner delete matched")
	}
	found, err := store.Delete(ctx, "ana@example.com", w.ID)
	if err != nil || !found {
		t.Fatalf("owner delete: found=%v err=%v", found, err)
	}
	msgs, _ = store.ListMessages(ctx, w.ID, 0)
	if len(msgs) != 0 {
		t.Fatal("messages survived workspace delete")
	}
}

func TestCanAccess(t *testing.T) {
	w := models.Workspace{
		OwnerEmail: "ana@example.com",
		Members:    []models.WorkspaceMember{{Email: "bob@example.com"}},
	}
	if !workspacestore.CanAccess(w, "ana@example.com") {
		t.Fatal("owner denied")
	}
	if !workspacestore.CanAccess(w, "bob@example.com") {
		t.Fatal("member denied")
	}
	if workspacestore.CanAccess(w, "eve@example.com") {
		t.Fatal("outsider allowed")
	}
}
