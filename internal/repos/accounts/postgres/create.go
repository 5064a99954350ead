package accounts

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phonegame/market/internal/repos/accounts"
)

func (r *accountsRepo) Create(tx *sql.Tx, telegramID int64) (int64, error) {
	var id int64

	err := tx.QueryRow(`
		INSERT INTO accounts (telegram_id)
		VALUES ($1)
		RETURNING id
	`, telegramID).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return 0, accounts.ErrAccountExists
		}

		return 0, fmt.Errorf("insert account: %w", err)
	}

	return id, nil
}
