package inventory

import (
	"database/sql"
	"fmt"
)

func (r *inventoryRepo) Grant(tx *sql.Tx, ownerID int64, phoneID int64) (int64, error) {
	var id int64

	err := tx.QueryRow(`
		INSERT INTO inventory_items (owner_id, phone_id)
		VALUES ($1, $2)
		RETURNING id
	`, ownerID, phoneID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("grant item: %w", err)
	}

	return id, nil
}
