package api

import (
	"net/http"

	"github.com/PxPatel/orderbook-engine/config"
	"github.com/PxPatel/orderbook-engine/internal/api/handlers"
	"github.com/PxPatel/orderbook-engine/internal/api/routes"
	"github.com/PxPatel/orderbook-engine/internal/matching"
)

// NewServer builds the HTTP server for an engine from the server configuration
func NewServer(cfg config.ServerConfig, engine *matching.Engine) *http.Server {
	handler := routes.SetupRoutes(handlers.NewEngineHolder(engine), cfg.AllowedOrigins)

	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
