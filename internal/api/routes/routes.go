package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/PxPatel/orderbook-engine/internal/api/handlers"
	"github.com/PxPatel/orderbook-engine/internal/api/middleware"
)

// NewRouter registers the API routes without middleware
func NewRouter(engineHolder *handlers.EngineHolder) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", engineHolder.HealthHandler).Methods(http.MethodGet)

	// Order endpoints
	api.HandleFunc("/orders/limit", engineHolder.SubmitLimitOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}", engineHolder.GetOrderHandler).Methods(http.MethodGet)

	// Market data endpoints
	api.HandleFunc("/{pair}/orderbook", engineHolder.GetOrderBookHandler).Methods(http.MethodGet)
	api.HandleFunc("/{pair}/tradehistory", engineHolder.GetTradeHistoryHandler).Methods(http.MethodGet)

	return router
}

// SetupRoutes configures all API routes with middleware
func SetupRoutes(engineHolder *handlers.EngineHolder, allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	// Apply middleware (order matters: Logging -> CORS -> Recovery -> Handler)
	var handler http.Handler = NewRouter(engineHolder)
	handler = middleware.Recovery(handler)
	handler = c.Handler(handler)
	handler = middleware.Logging(handler)

	return handler
}
