package accounts

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/phonegame/market/internal/infra/pgtestutil"
	"github.com/phonegame/market/internal/repos/accounts"
)

func TestAccounts_DecreaseBalance_Table(t *testing.T) {
	t.Parallel()

	type tc struct {
		name        string
		seedBalance int64
		amount      int64
		wantBalance int64
		wantErr     bool // true -> expect accounts.ErrInsufficientFunds
	}

	tests := []tc{
		{
			name:        "sufficient_funds_decrease_from_positive",
			seedBalance: 1_000,
			amount:      250,
			wantBalance: 750,
		},
		{
			name:        "sufficient_funds_exact_to_zero",
			seedBalance: 300,
			amount:      300,
			wantBalance: 0,
		},
		{
			name:        "insufficient_funds_balance_unchanged",
			seedBalance: 200,
			amount:      300,
			wantBalance: 200,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			accountID := pgtestutil.SeedAccount(t, db, 42, tt.seedBalance)

			repo := New(db)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				t.Fatalf("begin tx: %v", err)
			}
			defer func() { _ = tx.Rollback() }()

			err = repo.DecreaseBalance(tx, accountID, tt.amount)

			if tt.wantErr {
				if !errors.Is(err, accounts.ErrInsufficientFunds) {
					t.Fatalf("expected ErrInsufficientFunds, got: %v", err)
				}
				// no commit on error
			} else {
				if err != nil {
					t.Fatalf("decrease balance: %v", err)
				}
				if err := tx.Commit(); err != nil {
					t.Fatalf("commit: %v", err)
				}
			}

			got, gerr := repo.GetBalance(ctx, accountID)
			if gerr != nil {
				t.Fatalf("get balance after decrease: %v", gerr)
			}
			if got != tt.wantBalance {
				t.Fatalf("final balance mismatch: want %d, got %d", tt.wantBalance, got)
			}
		})
	}
}

func TestAccounts_DecreaseBalance_MissingAccount(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = repo.DecreaseBalance(tx, 999_999, 100)
	if !errors.Is(err, accounts.ErrInsufficientFunds) {
		t.Fatalf("missing account: want ErrInsufficientFunds (0 rows), got %v", err)
	}
}

func TestAccounts_DecreaseBalance_ConcurrentGuard(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	accountID := pgtestutil.SeedAccount(t, db, 1, 1000)

	// 20 workers each try to take 100; only 10 can succeed.
	var wg sync.WaitGroup
	var mu sync.Mutex
	success, insufficient := 0, 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			tx, err := db.Begin()
			if err != nil {
				t.Errorf("begin tx: %v", err)
				return
			}

			err = repo.DecreaseBalance(tx, accountID, 100)
			if err != nil {
				_ = tx.Rollback()

				mu.Lock()
				if errors.Is(err, accounts.ErrInsufficientFunds) {
					insufficient++
				}
				mu.Unlock()
				return
			}

			if err := tx.Commit(); err != nil {
				t.Errorf("commit: %v", err)
				return
			}

			mu.Lock()
			success++
			mu.Unlock()
		}()
	}

	wg.Wait()

	if success != 10 || insufficient != 10 {
		t.Fatalf("want 10 successes and 10 refusals, got %d/%d", success, insufficient)
	}

	var final sql.NullInt64
	if err := db.QueryRow(`SELECT signals FROM accounts WHERE id = $1`, accountID).Scan(&final); err != nil {
		t.Fatalf("final balance: %v", err)
	}
	if final.Int64 != 0 {
		t.Fatalf("final balance: want 0, got %d", final.Int64)
	}
}
