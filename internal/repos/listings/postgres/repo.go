package listings

import (
	"database/sql"

	"github.com/phonegame/market/internal/repos/listings"
)

var _ listings.Listings = (*listingsRepo)(nil)

type listingsRepo struct{ db *sql.DB }

func New(db *sql.DB) *listingsRepo {
	return &listingsRepo{db: db}
}
