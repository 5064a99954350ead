package market

import "errors"

var (
	ErrInvalidPrice  = errors.New("invalid price")
	ErrNotOwner      = errors.New("not the owner")
	ErrBuyerNotFound = errors.New("buyer not found")
	ErrSelfPurchase  = errors.New("cannot buy own listing")
)
