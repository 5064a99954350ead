package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/phonegame/market/internal/repos/accounts"
)

func (r *accountsRepo) GetByTelegramID(ctx context.Context, telegramID int64) (accounts.Account, error) {
	var acc accounts.Account

	err := r.db.QueryRowContext(ctx, `
		SELECT id, telegram_id, signals, created_at
		FROM accounts
		WHERE telegram_id = $1
	`, telegramID).Scan(&acc.ID, &acc.TelegramID, &acc.Signals, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.Account{}, accounts.ErrAccountNotFound
		}

		return accounts.Account{}, fmt.Errorf("get account by telegram id: %w", err)
	}

	return acc, nil
}
