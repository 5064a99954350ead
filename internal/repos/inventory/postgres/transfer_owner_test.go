package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/phonegame/market/internal/infra/pgtestutil"
	"github.com/phonegame/market/internal/repos/inventory"
)

func TestInventory_TransferOwner(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	starterPhone, _ := pgtestutil.CatalogPhones(t, db)
	fromID := pgtestutil.SeedAccount(t, db, 21, 0)
	toID := pgtestutil.SeedAccount(t, db, 22, 0)
	itemID := pgtestutil.SeedItem(t, db, fromID, starterPhone)

	repo := New(db)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	if err := repo.TransferOwner(tx, itemID, toID); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	item, err := repo.Get(tx, itemID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item.OwnerID != toID {
		t.Fatalf("owner: want %d, got %d", toID, item.OwnerID)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestInventory_TransferOwner_MissingItem(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	toID := pgtestutil.SeedAccount(t, db, 23, 0)

	repo := New(db)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = repo.TransferOwner(tx, 999_999, toID)
	if !errors.Is(err, inventory.ErrItemNotFound) {
		t.Fatalf("want ErrItemNotFound, got %v", err)
	}
}

func TestInventory_ListByOwner(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	starterPhone, rarePhone := pgtestutil.CatalogPhones(t, db)
	ownerID := pgtestutil.SeedAccount(t, db, 24, 0)
	otherID := pgtestutil.SeedAccount(t, db, 25, 0)

	pgtestutil.SeedItem(t, db, ownerID, starterPhone)
	pgtestutil.SeedItem(t, db, ownerID, rarePhone)
	pgtestutil.SeedItem(t, db, otherID, starterPhone)

	repo := New(db)

	items, err := repo.ListByOwner(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}

	names := map[string]bool{}
	for _, item := range items {
		names[item.PhoneName] = true
		if item.Rarity == "" {
			t.Fatalf("missing rarity in projection: %+v", item)
		}
	}
	if !names["Samsung Galaxy A01"] || !names["iPhone 15 Pro Max"] {
		t.Fatalf("unexpected names: %v", names)
	}

	empty, err := repo.ListByOwner(context.Background(), 999_999)
	if err != nil {
		t.Fatalf("list for unknown owner: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("want empty inventory, got %d", len(empty))
	}
}
