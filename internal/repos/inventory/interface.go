package inventory

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrItemNotFound = errors.New("inventory item not found")

type Item struct {
	ID         int64
	OwnerID    int64
	PhoneID    int64
	AcquiredAt time.Time
}

// OwnedItem is the inventory-screen projection of an item joined with its
// catalog entry.
type OwnedItem struct {
	ID            int64     `json:"id"`
	PhoneName     string    `json:"name"`
	Rarity        string    `json:"rarity"`
	ImageFilename string    `json:"imageFilename,omitempty"`
	AcquiredAt    time.Time `json:"acquiredAt"`
}

type Inventory interface {
	// Get fetches the item and locks its row for the duration of the
	// enclosing transaction.
	Get(tx *sql.Tx, itemID int64) (Item, error)
	// TransferOwner is a pure mutation primitive; ownership checks belong
	// to the caller.
	TransferOwner(tx *sql.Tx, itemID int64, newOwnerID int64) error
	Grant(tx *sql.Tx, ownerID int64, phoneID int64) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]OwnedItem, error)
}
