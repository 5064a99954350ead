package inventory

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/phonegame/market/internal/repos/inventory"
)

func (r *inventoryRepo) Get(tx *sql.Tx, itemID int64) (inventory.Item, error) {
	var item inventory.Item

	err := tx.QueryRow(`
		SELECT id, owner_id, phone_id, acquired_at
		FROM inventory_items
		WHERE id = $1
		FOR UPDATE
	`, itemID).Scan(&item.ID, &item.OwnerID, &item.PhoneID, &item.AcquiredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return inventory.Item{}, inventory.ErrItemNotFound
		}

		return inventory.Item{}, fmt.Errorf("get inventory item: %w", err)
	}

	return item, nil
}
