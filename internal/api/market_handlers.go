package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	accountssvc "github.com/phonegame/market/internal/services/accounts"
	"github.com/phonegame/market/internal/services/market"
)

// HandlerProvider wraps the services and exposes HTTP handlers.
type HandlerProvider struct {
	market   *market.MarketService
	accounts *accountssvc.AccountService
}

func NewHandler(marketSvc *market.MarketService, accountSvc *accountssvc.AccountService) *HandlerProvider {
	return &HandlerProvider{market: marketSvc, accounts: accountSvc}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}

		return errors.New("invalid JSON")
	}

	return nil
}

// GetMarketHandler handles GET /api/market
func (h *HandlerProvider) GetMarketHandler(w http.ResponseWriter, r *http.Request) {
	views, err := h.market.GetListings(r.Context())
	if err != nil {
		writeMarketError(w, err)
		return
	}

	writeOK(w, map[string]any{"items": views})
}

type sellRequest struct {
	UserID          int64 `json:"userId"`
	InventoryItemID int64 `json:"inventoryItemId"`
	Price           int64 `json:"price"`
}

// SellItemHandler handles POST /api/market/sell
func (h *HandlerProvider) SellItemHandler(w http.ResponseWriter, r *http.Request) {
	var req sellRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.UserID <= 0 || req.InventoryItemID <= 0 {
		writeError(w, http.StatusBadRequest, "userId and inventoryItemId are required")
		return
	}

	listingID, err := h.market.ListItem(r.Context(), req.UserID, req.InventoryItemID, req.Price)
	if err != nil {
		writeMarketError(w, err)
		return
	}

	writeOK(w, map[string]any{"listingId": listingID})
}

type buyRequest struct {
	UserID    int64 `json:"userId"`
	ListingID int64 `json:"listingId"`
}

// BuyItemHandler handles POST /api/market/buy
func (h *HandlerProvider) BuyItemHandler(w http.ResponseWriter, r *http.Request) {
	var req buyRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.UserID <= 0 || req.ListingID <= 0 {
		writeError(w, http.StatusBadRequest, "userId and listingId are required")
		return
	}

	newBalance, err := h.market.BuyItem(r.Context(), req.ListingID, req.UserID)
	if err != nil {
		writeMarketError(w, err)
		return
	}

	writeOK(w, map[string]any{"newBalance": newBalance})
}

// UnlistItemHandler handles POST /api/market/unlist
func (h *HandlerProvider) UnlistItemHandler(w http.ResponseWriter, r *http.Request) {
	var req buyRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.UserID <= 0 || req.ListingID <= 0 {
		writeError(w, http.StatusBadRequest, "userId and listingId are required")
		return
	}

	err := h.market.UnlistItem(r.Context(), req.ListingID, req.UserID)
	if err != nil {
		writeMarketError(w, err)
		return
	}

	writeOK(w, nil)
}
