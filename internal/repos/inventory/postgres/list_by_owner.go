package inventory

import (
	"context"
	"fmt"

	"github.com/phonegame/market/internal/repos/inventory"
)

func (r *inventoryRepo) ListByOwner(ctx context.Context, ownerID int64) ([]inventory.OwnedItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ii.id, p.name, p.rarity, COALESCE(p.image_filename, ''), ii.acquired_at
		FROM inventory_items ii
		JOIN phones p ON ii.phone_id = p.id
		WHERE ii.owner_id = $1
		ORDER BY ii.acquired_at DESC, ii.id DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	items := make([]inventory.OwnedItem, 0)

	for rows.Next() {
		var item inventory.OwnedItem

		err = rows.Scan(&item.ID, &item.PhoneName, &item.Rarity, &item.ImageFilename, &item.AcquiredAt)
		if err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}

		items = append(items, item)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate inventory rows: %w", err)
	}

	return items, nil
}
