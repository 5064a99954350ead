package listings

import (
	"database/sql"
	"fmt"

	"github.com/phonegame/market/internal/repos/listings"
)

func (r *listingsRepo) Delete(tx *sql.Tx, listingID int64) error {
	res, err := tx.Exec(`
		DELETE FROM listings
		WHERE id = $1
	`, listingID)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return listings.ErrListingNotFound
	}

	return nil
}
