package accounts

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrAccountNotFound = errors.New("account not found")
var ErrAccountExists = errors.New("account already exists")

type Account struct {
	ID         int64
	TelegramID int64
	Signals    int64
	CreatedAt  time.Time
}

type Accounts interface {
	GetBalance(ctx context.Context, accountID int64) (int64, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (Account, error)
	Create(tx *sql.Tx, telegramID int64) (int64, error)
	LockAndGetBalance(tx *sql.Tx, accountID int64) (int64, error)
	IncreaseBalance(tx *sql.Tx, accountID int64, amount int64) error
	DecreaseBalance(tx *sql.Tx, accountID int64, amount int64) error
}
