package accounts

import (
	"database/sql"
	"fmt"

	"github.com/phonegame/market/internal/repos/accounts"
)

// DecreaseBalance debits the account with a guarded UPDATE: the row is only
// touched when it still holds enough signals, so a balance can never go
// negative regardless of interleaving.
func (r *accountsRepo) DecreaseBalance(tx *sql.Tx, accountID int64, amount int64) error {
	res, err := tx.Exec(`
		UPDATE accounts
		SET signals = signals - $2
		WHERE id = $1
		  AND signals >= $2
	`, accountID, amount)
	if err != nil {
		return fmt.Errorf("decrease balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return accounts.ErrInsufficientFunds
	}

	return nil
}
