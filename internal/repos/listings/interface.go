package listings

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrAlreadyListed = errors.New("item already listed")
var ErrListingNotFound = errors.New("listing not found")

type Listing struct {
	ID       int64
	SellerID int64
	ItemID   int64
	Price    int64
	ListedAt time.Time
}

// ListingView is the market-screen projection of a listing joined with the
// item's catalog entry and the seller account.
type ListingView struct {
	ID            int64     `json:"listingId"`
	Price         int64     `json:"price"`
	ItemID        int64     `json:"inventoryItemId"`
	PhoneName     string    `json:"name"`
	Rarity        string    `json:"rarity"`
	ImageFilename string    `json:"imageFilename,omitempty"`
	SellerID      int64     `json:"sellerId"`
	ListedAt      time.Time `json:"listedAt"`
}

type Listings interface {
	// Insert relies on the unique constraint on listings.item_id to reject
	// a second active listing for the same item.
	Insert(tx *sql.Tx, sellerID, itemID, price int64) (int64, error)
	// Get fetches the listing and locks its row for the duration of the
	// enclosing transaction.
	Get(tx *sql.Tx, listingID int64) (Listing, error)
	Delete(tx *sql.Tx, listingID int64) error
	ListAll(ctx context.Context) ([]ListingView, error)
}
