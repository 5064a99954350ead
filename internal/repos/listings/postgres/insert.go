package listings

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phonegame/market/internal/repos/listings"
)

func (r *listingsRepo) Insert(tx *sql.Tx, sellerID, itemID, price int64) (int64, error) {
	var id int64

	err := tx.QueryRow(`
		INSERT INTO listings (seller_id, item_id, price)
		VALUES ($1, $2, $3)
		RETURNING id
	`, sellerID, itemID, price).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation on item_id
				return 0, listings.ErrAlreadyListed
			}
		}

		return 0, fmt.Errorf("insert listing: %w", err)
	}

	return id, nil
}
