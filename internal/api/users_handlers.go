package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func parseUserIDFromPath(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "userId")
	if idStr == "" {
		return 0, fmt.Errorf("missing userId")
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid userId: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid userId: must be positive")
	}

	return id, nil
}

type registerRequest struct {
	TelegramID int64 `json:"telegramId"`
}

// RegisterHandler handles POST /api/users
func (h *HandlerProvider) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.TelegramID <= 0 {
		writeError(w, http.StatusBadRequest, "telegramId is required")
		return
	}

	acc, err := h.accounts.Register(r.Context(), req.TelegramID)
	if err != nil {
		writeMarketError(w, err)
		return
	}

	writeOK(w, map[string]any{
		"userId":     acc.ID,
		"telegramId": acc.TelegramID,
		"balance":    acc.Signals,
	})
}

// GetBalanceHandler handles GET /api/users/{userId}/balance
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	balance, err := h.accounts.GetBalance(r.Context(), userID)
	if err != nil {
		writeMarketError(w, err)
		return
	}

	writeOK(w, map[string]any{"userId": userID, "balance": balance})
}

// GetInventoryHandler handles GET /api/users/{userId}/inventory
func (h *HandlerProvider) GetInventoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	items, err := h.accounts.GetInventory(r.Context(), userID)
	if err != nil {
		writeMarketError(w, err)
		return
	}

	writeOK(w, map[string]any{"items": items})
}
