package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/phonegame/market/internal/repos/accounts"
	"github.com/phonegame/market/internal/repos/inventory"
	"github.com/phonegame/market/internal/repos/listings"
	"github.com/phonegame/market/internal/services/market"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)

		http.Error(w, `{"ok":false,"error":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeOK(w http.ResponseWriter, fields map[string]any) {
	resp := map[string]any{"ok": true}
	for k, v := range fields {
		resp[k] = v
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"ok": false, "error": msg})
}

// writeMarketError maps engine errors onto HTTP statuses. Unrecognized
// errors are storage failures and stay opaque to the caller.
func writeMarketError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, market.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, "price must be positive")
	case errors.Is(err, market.ErrNotOwner):
		writeError(w, http.StatusForbidden, "item does not belong to you")
	case errors.Is(err, market.ErrSelfPurchase):
		writeError(w, http.StatusConflict, "cannot buy your own listing")
	case errors.Is(err, market.ErrBuyerNotFound):
		writeError(w, http.StatusNotFound, "buyer not found")
	case errors.Is(err, listings.ErrAlreadyListed):
		writeError(w, http.StatusConflict, "item is already listed")
	case errors.Is(err, listings.ErrListingNotFound):
		writeError(w, http.StatusNotFound, "listing not found")
	case errors.Is(err, inventory.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, accounts.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, "not enough signals")
	case errors.Is(err, accounts.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "account not found")
	default:
		slog.Error("market operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
