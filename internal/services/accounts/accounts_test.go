package accounts

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/phonegame/market/internal/infra/pgtestutil"
	repoaccounts "github.com/phonegame/market/internal/repos/accounts"
)

func TestRegister_NewAccountGetsStartingGift(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	// no seeding: a freshly migrated database must already carry the phone
	// catalog, or registration would break outside dev environments
	svc := New(db)

	acc, err := svc.Register(context.Background(), 9000)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if acc.Signals != 50 {
		t.Fatalf("starting signals: want 50, got %d", acc.Signals)
	}

	items, err := svc.GetInventory(context.Background(), acc.ID)
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}
	if len(items) != 1 || items[0].PhoneName != "Samsung Galaxy A01" {
		t.Fatalf("starter item: got %+v", items)
	}
}

func TestRegister_Idempotent(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	svc := New(db)

	first, err := svc.Register(context.Background(), 9001)
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	second, err := svc.Register(context.Background(), 9001)
	if err != nil {
		t.Fatalf("second register: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("register created a second account: %d vs %d", first.ID, second.ID)
	}
	if second.Signals != 50 {
		t.Fatalf("repeat register changed balance: %d", second.Signals)
	}

	items, err := svc.GetInventory(context.Background(), second.ID)
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("repeat register granted extra items: %d", len(items))
	}
}

func TestRegister_ConcurrentSameTelegramID(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	svc := New(db)

	var wg sync.WaitGroup
	ids := make([]int64, 4)
	errs := make([]error, 4)

	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			acc, err := svc.Register(context.Background(), 9002)
			ids[i], errs[i] = acc.ID, err
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
		if ids[i] != ids[0] {
			t.Fatalf("registrations disagree on account id: %v", ids)
		}
	}
}

func TestRegister_FailsWithoutStarterPhone(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	_, err := db.Exec(`DELETE FROM phones WHERE name = 'Samsung Galaxy A01'`)
	if err != nil {
		t.Fatalf("remove starter phone: %v", err)
	}

	svc := New(db)

	_, err = svc.Register(context.Background(), 9003)
	if err == nil {
		t.Fatal("register should fail when the starter phone is missing")
	}

	// the whole registration rolled back; no half-created account
	_, err = svc.accounts.GetByTelegramID(context.Background(), 9003)
	if !errors.Is(err, repoaccounts.ErrAccountNotFound) {
		t.Fatalf("account should not exist after failed register, got %v", err)
	}
}

func TestGetBalance(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	accountID := pgtestutil.SeedAccount(t, db, 9004, 77)

	svc := New(db)

	balance, err := svc.GetBalance(context.Background(), accountID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if balance != 77 {
		t.Fatalf("balance: want 77, got %d", balance)
	}

	_, err = svc.GetBalance(context.Background(), 999_999)
	if !errors.Is(err, repoaccounts.ErrAccountNotFound) {
		t.Fatalf("missing account: want ErrAccountNotFound, got %v", err)
	}
}
