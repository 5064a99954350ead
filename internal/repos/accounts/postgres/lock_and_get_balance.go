package accounts

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/phonegame/market/internal/repos/accounts"
)

func (r *accountsRepo) LockAndGetBalance(tx *sql.Tx, accountID int64) (int64, error) {
	var balance int64

	err := tx.QueryRow(`
		SELECT signals
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`, accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, accounts.ErrAccountNotFound
		}

		return 0, fmt.Errorf("lock/get balance: %w", err)
	}

	return balance, nil
}
