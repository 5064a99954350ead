package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phonegame/market/internal/infra/pgutils"
	"github.com/phonegame/market/internal/repos/accounts"
	pgaccounts "github.com/phonegame/market/internal/repos/accounts/postgres"
	"github.com/phonegame/market/internal/repos/catalog"
	pgcatalog "github.com/phonegame/market/internal/repos/catalog/postgres"
	"github.com/phonegame/market/internal/repos/inventory"
	pginventory "github.com/phonegame/market/internal/repos/inventory/postgres"
)

const (
	starterPhoneName = "Samsung Galaxy A01"
	starterSignals   = 50
)

type AccountService struct {
	db       *sql.DB
	accounts accounts.Accounts
	items    inventory.Inventory
	catalog  catalog.Catalog
}

func New(dbx *sql.DB) *AccountService {
	return &AccountService{
		db:       dbx,
		accounts: pgaccounts.New(dbx),
		items:    pginventory.New(dbx),
		catalog:  pgcatalog.New(dbx),
	}
}

// Register returns the account for the Telegram user, creating it on first
// contact. A new account receives the starter phone and 50 signals in the
// same transaction, so a crash mid-grant never leaves a half-equipped
// account. Safe to call concurrently for the same Telegram id: the loser of
// the insert race re-reads the winner's row.
func (s *AccountService) Register(ctx context.Context, telegramID int64) (accounts.Account, error) {
	acc, err := s.accounts.GetByTelegramID(ctx, telegramID)
	if err == nil {
		return acc, nil
	}

	if !errors.Is(err, accounts.ErrAccountNotFound) {
		return accounts.Account{}, fmt.Errorf("look up account: %w", err)
	}

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		accountID, err := s.accounts.Create(tx, telegramID)
		if err != nil {
			return fmt.Errorf("create account: %w", err)
		}

		phone, err := s.catalog.GetByName(tx, starterPhoneName)
		if err != nil {
			return fmt.Errorf("starter phone: %w", err)
		}

		_, err = s.items.Grant(tx, accountID, phone.ID)
		if err != nil {
			return fmt.Errorf("grant starter item: %w", err)
		}

		err = s.accounts.IncreaseBalance(tx, accountID, starterSignals)
		if err != nil {
			return fmt.Errorf("grant starter signals: %w", err)
		}

		return nil
	})
	if err != nil && !errors.Is(err, accounts.ErrAccountExists) {
		return accounts.Account{}, fmt.Errorf("register: %w", err)
	}

	if err == nil {
		slog.Info("new account registered", "telegram_id", telegramID)
	}

	acc, err = s.accounts.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("read back account: %w", err)
	}

	return acc, nil
}

// GetBalance returns the account's signal balance (no locks; suitable for
// the GET endpoint).
func (s *AccountService) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	balance, err := s.accounts.GetBalance(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// GetInventory returns the phones currently owned by the account.
func (s *AccountService) GetInventory(ctx context.Context, accountID int64) ([]inventory.OwnedItem, error) {
	items, err := s.items.ListByOwner(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}

	return items, nil
}
