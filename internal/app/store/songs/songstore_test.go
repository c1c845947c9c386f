package songstore_test

import (
	"testing"

	songstore "github.com/emeraldorbit/emeraldhub/internal/app/store/songs"
	"github.com/emeraldorbit/emeraldhub/internal/domain/models"
	"github.com/emeraldorbit/emeraldhub/internal/testutil"
)

func TestCreateListAndSearch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := songstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	song := models.Song{
		UserEmail: "ana@example.com",
		Title:     "Café Nights",
		Artist:    "Ana",
		ForSale:   true,
		PriceUSD:  29.99,
	}
	if err := store.Create(ctx, &song); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := store.ListByOwner(ctx, "ana@example.com", "cafe ni")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("folded search found %d, want 1", len(list))
	}

	forSale, err := store.ListForSale(ctx)
	if err != nil {
		t.Fatalf("ListForSale: %v", err)
	}
	if len(forSale) != 1 {
		t.Fatalf("for-sale list = %d, want 1", len(forSale))
	}
}

func TestIncrementCounters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := songstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	song := models.Song{UserEmail: "ana@example.com", Title: "Track", Artist: "Ana"}
	if err := store.Create(ctx, &song); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < 3; i++ {
		if found, err := store.Increment(ctx, song.ID, "plays"); err != nil || !found {
			t.Fatalf("Increment: found=%v err=%v", found, err)
		}
	}
	if found, err := store.Increment(ctx, song.ID, "likes"); err != nil || !found {
		t.Fatalf("Increment likes: found=%v err=%v", found, err)
	}

	got, _, _ := store.GetByID(ctx, song.ID)
	if got.Plays != 3 || got.Likes != 1 || got.Downloads != 0 {
		t.Fatalf("counters = %d/%d/%d", got.Plays, got.Likes, got.Downloads)
	}

	if _, err := store.Increment(ctx, song.ID, "price_usd"); err == nil {
		t.Fatal("arbitrary field increment must be rejected")
	}
	if found, _ := store.Increment(ctx, "missing", "plays"); found {
		t.Fatal("missing song reported found")
	}
}
