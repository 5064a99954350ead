package inventory

import (
	"database/sql"

	"github.com/phonegame/market/internal/repos/inventory"
)

var _ inventory.Inventory = (*inventoryRepo)(nil)

type inventoryRepo struct{ db *sql.DB }

func New(db *sql.DB) *inventoryRepo {
	return &inventoryRepo{db: db}
}
