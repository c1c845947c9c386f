package contactstore_test

import (
	"testing"

	contactstore "github.com/emeraldorbit/emeraldhub/internal/app/store/contacts"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
	"github.com/emeraldorbit/emeraldhub/internal/testutil"
)

func TestContactLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := models.Contact{
		UserEmail: "ana@example.com",
		Name:      "José Álvarez",
		Phone:     "+1 555 0100",
		Role:      "client",
	}
	if err := store.Create(ctx, &c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID == "" || c.CreatedDate.IsZero() {
		t.Fatalf("Create did not stamp id/created_date: %+v", c)
	}

	// Folded search matches without diacritics or case.
	list, err := store.ListByOwner(ctx, "ana@example.com", "jose alv")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(list) != 1 || list[0].ID != c.ID {
		t.Fatalf("search result = %+v", list)
	}

	// Other owners see nothing.
	other, err := store.ListByOwner(ctx, "bob@example.com", "")
	if err != nil {
		t.Fatalf("ListByOwner other: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("cross-owner leak: %+v", other)
	}

	c.Name = "José A. Álvarez"
	c.Notes = "prefers email"
	found, err := store.Update(ctx, "ana@example.com", c.ID, c)
	if err != nil || !found {
		t.Fatalf("Update: found=%v err=%v", found, err)
	}
	got, found, _ := store.GetByID(ctx, "ana@example.com", c.ID)
	if !found || got.Notes != "prefers email" {
		t.Fatalf("after update: found=%v got=%+v", found, got)
	}

	if found, _ := store.Update(ctx, "bob@example.com", c.ID, c); found {
		t.Fatal("non-owner update matched")
	}
	if found, _ := store.Delete(ctx, "bob@example.com", c.ID); found {
		t.Fatal("non-owner delete matched")
	}

	found, err = store.Delete(ctx, "ana@example.com", c.ID)
	if err != nil || !found {
		t.Fatalf("Delete: found=%v err=%v", found, err)
	}
	if _, found, _ := store.GetByID(ctx, "ana@example.com", c.ID); found {
		t.Fatal("contact survived delete")
	}
}
