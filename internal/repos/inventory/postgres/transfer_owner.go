package inventory

import (
	"database/sql"
	"fmt"

	"github.com/phonegame/market/internal/repos/inventory"
)

func (r *inventoryRepo) TransferOwner(tx *sql.Tx, itemID int64, newOwnerID int64) error {
	res, err := tx.Exec(`
		UPDATE inventory_items
		SET owner_id = $2
		WHERE id = $1
	`, itemID, newOwnerID)
	if err != nil {
		return fmt.Errorf("transfer owner: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return inventory.ErrItemNotFound
	}

	return nil
}
