package listings

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/phonegame/market/internal/repos/listings"
)

func (r *listingsRepo) Get(tx *sql.Tx, listingID int64) (listings.Listing, error) {
	var l listings.Listing

	err := tx.QueryRow(`
		SELECT id, seller_id, item_id, price, listed_at
		FROM listings
		WHERE id = $1
		FOR UPDATE
	`, listingID).Scan(&l.ID, &l.SellerID, &l.ItemID, &l.Price, &l.ListedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return listings.Listing{}, listings.ErrListingNotFound
		}

		return listings.Listing{}, fmt.Errorf("get listing: %w", err)
	}

	return l, nil
}
