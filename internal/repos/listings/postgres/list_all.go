package listings

import (
	"context"
	"fmt"

	"github.com/phonegame/market/internal/repos/listings"
)

func (r *listingsRepo) ListAll(ctx context.Context) ([]listings.ListingView, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.price, l.item_id, p.name, p.rarity, COALESCE(p.image_filename, ''), l.seller_id, l.listed_at
		FROM listings l
		JOIN inventory_items ii ON l.item_id = ii.id
		JOIN phones p ON ii.phone_id = p.id
		ORDER BY l.listed_at DESC, l.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	views := make([]listings.ListingView, 0)

	for rows.Next() {
		var v listings.ListingView

		err = rows.Scan(&v.ID, &v.Price, &v.ItemID, &v.PhoneName, &v.Rarity, &v.ImageFilename, &v.SellerID, &v.ListedAt)
		if err != nil {
			return nil, fmt.Errorf("scan listing row: %w", err)
		}

		views = append(views, v)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate listing rows: %w", err)
	}

	return views, nil
}
