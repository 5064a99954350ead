package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/phonegame/market/internal/middleware"
	accountssvc "github.com/phonegame/market/internal/services/accounts"
	"github.com/phonegame/market/internal/services/market"
)

// NewRouter registers all API endpoints. The mini-app frontend is served
// from another origin, hence the permissive CORS policy.
func NewRouter(marketSvc *market.MarketService, accountSvc *accountssvc.AccountService) http.Handler {
	h := NewHandler(marketSvc, accountSvc)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Recovery)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/api/market", h.GetMarketHandler)
	r.Post("/api/market/sell", h.SellItemHandler)
	r.Post("/api/market/buy", h.BuyItemHandler)
	r.Post("/api/market/unlist", h.UnlistItemHandler)

	r.Post("/api/users", h.RegisterHandler)
	r.Get("/api/users/{userId}/balance", h.GetBalanceHandler)
	r.Get("/api/users/{userId}/inventory", h.GetInventoryHandler)

	return r
}
