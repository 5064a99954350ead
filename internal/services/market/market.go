package market

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phonegame/market/internal/cache"
	"github.com/phonegame/market/internal/repos/accounts"
	pgaccounts "github.com/phonegame/market/internal/repos/accounts/postgres"
	"github.com/phonegame/market/internal/repos/inventory"
	pginventory "github.com/phonegame/market/internal/repos/inventory/postgres"
	"github.com/phonegame/market/internal/repos/listings"
	pglistings "github.com/phonegame/market/internal/repos/listings/postgres"
)

const (
	listingsCacheKey   = "market:listings"
	listingsVersionKey = "market:listings:ver"
	listingsCacheTTL   = 10 * time.Second
)

// listingsSnapshot is the cached form of the projection. The version stamps
// which generation of the market the snapshot was computed against; readers
// only accept a snapshot whose version matches the current one, so a slow
// cache fill that lands after a mutation cannot resurrect a sold listing.
type listingsSnapshot struct {
	Version string                 `json:"version"`
	Views   []listings.ListingView `json:"views"`
}

// MarketService orchestrates the account, inventory and listing stores.
// Every mutation runs inside a single database transaction; no other code
// path writes balances, ownership or listings.
type MarketService struct {
	db       *sql.DB
	accounts accounts.Accounts
	items    inventory.Inventory
	listings listings.Listings
	cache    cache.Cache
}

// New wires the service against Postgres-backed stores. The cache may be nil,
// in which case the listings projection always hits the database.
func New(dbx *sql.DB, c cache.Cache) *MarketService {
	return &MarketService{
		db:       dbx,
		accounts: pgaccounts.New(dbx),
		items:    pginventory.New(dbx),
		listings: pglistings.New(dbx),
		cache:    c,
	}
}

// ListItem puts an owned inventory item up for sale at a fixed price.
//
// 1) Validate price.
// 2) Lock the item row; verify the seller owns it.
// 3) Insert the listing; the unique constraint on item_id rejects a
//    concurrent second listing of the same item.
//
// No balance or ownership changes happen at list time.
func (s *MarketService) ListItem(ctx context.Context, sellerID, itemID, price int64) (int64, error) {
	if price <= 0 {
		return 0, ErrInvalidPrice
	}

	var listingID int64

	err := s.withRetry(ctx, func(tx *sql.Tx) error {
		item, err := s.items.Get(tx, itemID)
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}

		if item.OwnerID != sellerID {
			return ErrNotOwner
		}

		listingID, err = s.listings.Insert(tx, sellerID, itemID, price)
		if err != nil {
			return fmt.Errorf("insert listing: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("list item: %w", err)
	}

	s.invalidateListings(ctx)

	return listingID, nil
}

// BuyItem settles a purchase: debit buyer, credit seller, transfer the item,
// remove the listing. All four effects commit together or not at all.
//
// Concurrent buyers of the same listing serialize on the listing row lock;
// the loser finds the row gone and gets listings.ErrListingNotFound, which is
// the expected lost-race outcome rather than a fault.
func (s *MarketService) BuyItem(ctx context.Context, listingID, buyerID int64) (int64, error) {
	var newBalance int64

	err := s.withRetry(ctx, func(tx *sql.Tx) error {
		l, err := s.listings.Get(tx, listingID)
		if err != nil {
			return fmt.Errorf("get listing: %w", err)
		}

		if l.SellerID == buyerID {
			return ErrSelfPurchase
		}

		buyerBalance, err := s.lockParties(tx, buyerID, l.SellerID)
		if err != nil {
			return err
		}

		// pre-check against the locked balance
		if buyerBalance < l.Price {
			return fmt.Errorf("pre-check debit: %w", accounts.ErrInsufficientFunds)
		}

		err = s.accounts.DecreaseBalance(tx, buyerID, l.Price)
		if err != nil {
			return fmt.Errorf("debit buyer: %w", err)
		}

		err = s.accounts.IncreaseBalance(tx, l.SellerID, l.Price)
		if err != nil {
			return fmt.Errorf("credit seller: %w", err)
		}

		err = s.items.TransferOwner(tx, l.ItemID, buyerID)
		if err != nil {
			return fmt.Errorf("transfer item: %w", err)
		}

		err = s.listings.Delete(tx, l.ID)
		if err != nil {
			return fmt.Errorf("delete listing: %w", err)
		}

		newBalance = buyerBalance - l.Price

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("buy item: %w", err)
	}

	s.invalidateListings(ctx)

	return newBalance, nil
}

// UnlistItem removes the seller's own listing without any settlement.
func (s *MarketService) UnlistItem(ctx context.Context, listingID, sellerID int64) error {
	err := s.withRetry(ctx, func(tx *sql.Tx) error {
		l, err := s.listings.Get(tx, listingID)
		if err != nil {
			return fmt.Errorf("get listing: %w", err)
		}

		if l.SellerID != sellerID {
			return ErrNotOwner
		}

		err = s.listings.Delete(tx, l.ID)
		if err != nil {
			return fmt.Errorf("delete listing: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("unlist item: %w", err)
	}

	s.invalidateListings(ctx)

	return nil
}

// GetListings returns the active listings, newest first. The projection is
// served from cache when one is configured.
func (s *MarketService) GetListings(ctx context.Context) ([]listings.ListingView, error) {
	version := s.listingsVersion(ctx)

	if version != "" {
		views, ok := s.cachedListings(ctx, version)
		if ok {
			return views, nil
		}
	}

	views, err := s.listings.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get listings: %w", err)
	}

	if version != "" {
		data, err := json.Marshal(listingsSnapshot{Version: version, Views: views})
		if err == nil {
			err = s.cache.Set(ctx, listingsCacheKey, data, listingsCacheTTL)
			if err != nil {
				slog.Warn("cache listings", "error", err)
			}
		}
	}

	return views, nil
}

// listingsVersion returns the current projection version, minting one on
// first use. Empty means the cache is unavailable and this call bypasses it.
func (s *MarketService) listingsVersion(ctx context.Context) string {
	if s.cache == nil {
		return ""
	}

	data, err := s.cache.Get(ctx, listingsVersionKey)
	if err == nil && len(data) > 0 {
		return string(data)
	}

	version := uuid.NewString()

	err = s.cache.Set(ctx, listingsVersionKey, []byte(version), 0)
	if err != nil {
		slog.Warn("set listings version", "error", err)
		return ""
	}

	return version
}

func (s *MarketService) cachedListings(ctx context.Context, version string) ([]listings.ListingView, bool) {
	data, err := s.cache.Get(ctx, listingsCacheKey)
	if err != nil {
		return nil, false
	}

	var snap listingsSnapshot

	err = json.Unmarshal(data, &snap)
	if err != nil {
		slog.Warn("drop undecodable listings cache entry", "error", err)
		_ = s.cache.Delete(ctx, listingsCacheKey)

		return nil, false
	}

	if snap.Version != version {
		return nil, false
	}

	return snap.Views, true
}

// lockParties takes FOR UPDATE locks on the buyer and seller rows in
// ascending id order so that two settlements sharing parties cannot acquire
// them in opposite orders. Returns the buyer's locked balance.
func (s *MarketService) lockParties(tx *sql.Tx, buyerID, sellerID int64) (int64, error) {
	order := []int64{buyerID, sellerID}
	if sellerID < buyerID {
		order[0], order[1] = sellerID, buyerID
	}

	var buyerBalance int64

	for _, id := range order {
		balance, err := s.accounts.LockAndGetBalance(tx, id)
		if err != nil {
			if id == buyerID && errors.Is(err, accounts.ErrAccountNotFound) {
				return 0, ErrBuyerNotFound
			}

			return 0, fmt.Errorf("lock account %d: %w", id, err)
		}

		if id == buyerID {
			buyerBalance = balance
		}
	}

	return buyerBalance, nil
}

// invalidateListings mints a new projection version after a committed
// mutation. Any snapshot already cached, or still being filled by a
// concurrent reader, carries the old version and will not be served.
func (s *MarketService) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}

	err := s.cache.Set(ctx, listingsVersionKey, []byte(uuid.NewString()), 0)
	if err != nil {
		slog.Warn("invalidate listings cache", "error", err)
		_ = s.cache.Delete(ctx, listingsCacheKey)
	}
}
