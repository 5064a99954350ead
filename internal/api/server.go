package api

import (
	"fmt"
	"net/http"
	"time"

	accountssvc "github.com/phonegame/market/internal/services/accounts"
	"github.com/phonegame/market/internal/services/market"
)

// NewServer creates a configured *http.Server for the market API.
func NewServer(port uint16, marketSvc *market.MarketService, accountSvc *accountssvc.AccountService) *http.Server {
	mux := NewRouter(marketSvc, accountSvc)

	addr := fmt.Sprintf(":%d", port)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
