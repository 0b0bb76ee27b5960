package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/PxPatel/orderbook-engine/config"
	"github.com/PxPatel/orderbook-engine/internal/api"
	"github.com/PxPatel/orderbook-engine/internal/api/handlers"
	"github.com/PxPatel/orderbook-engine/internal/logger"
	"github.com/PxPatel/orderbook-engine/internal/matching"
	"github.com/PxPatel/orderbook-engine/internal/storage"
	"github.com/PxPatel/orderbook-engine/internal/storage/kafka"
	"github.com/PxPatel/orderbook-engine/internal/storage/pebble"
	"github.com/PxPatel/orderbook-engine/internal/storage/postgres"
	"github.com/PxPatel/orderbook-engine/internal/storage/redis"
	"github.com/PxPatel/orderbook-engine/internal/types"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := configureLogger(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting order book engine API server", map[string]interface{}{
		"version": handlers.Version,
		"pair":    cfg.Engine.Pair,
	})

	pair, err := types.ParsePair(cfg.Engine.Pair)
	if err != nil {
		logger.Error("Invalid engine pair", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Build storage layers based on configuration
	tradeStore, bookCache := buildStorageLayers(cfg, pair)

	engine := matching.NewEngineWithStores(matching.EngineConfig{
		Pair:               pair,
		RecentTradesWindow: cfg.Engine.RecentTradesWindow,
		TradeHistorySize:   cfg.Engine.TradeHistorySize,
		SequenceStart:      cfg.Engine.SequenceStart,
		PublishBuffer:      cfg.Engine.PublishBuffer,
		PublishTimeout:     cfg.Engine.PublishTimeout,
	}, tradeStore, bookCache)
	defer func() {
		if err := engine.Close(); err != nil {
			logger.Error("Failed to close engine", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	if cfg.Engine.SeedBook {
		if err := engine.Seed(context.Background(), matching.DemoSeedOrders()); err != nil {
			logger.Error("Failed to seed order book", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	server := api.NewServer(cfg.Server, engine)

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", map[string]interface{}{
			"port":    cfg.Server.Port,
			"address": fmt.Sprintf("http://localhost:%s", cfg.Server.Port),
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("Server shutting down...", map[string]interface{}{
			"signal": sig.String(),
		})
	case err := <-serverErr:
		logger.Error("Server failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server exited", nil)
}

func configureLogger(cfg config.LoggerConfig) error {
	level, err := logger.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	var opts *logger.FileOptions
	if cfg.FilePath != "" {
		opts = &logger.FileOptions{
			Path:       cfg.FilePath,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAgeDays: cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
	}

	return logger.Configure(level, opts)
}

// buildStorageLayers constructs the trade sinks and book cache based on configuration.
// A sink that fails to connect is logged and skipped; the engine runs without it.
func buildStorageLayers(cfg *config.Config, pair types.Pair) (storage.TradeStore, storage.BookCache) {
	var tradeStores []storage.TradeStore
	var bookCache storage.BookCache

	// Redis (recent trades mirror + book snapshot cache) - if enabled
	if cfg.Redis.Enabled {
		redisCfg := redis.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			MaxRetries:   cfg.Redis.MaxRetries,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			TLSEnabled:   cfg.Redis.TLSEnabled,
			BookTTL:      cfg.Redis.BookTTL,
			MaxTrades:    cfg.Redis.MaxTrades,
		}

		redisTradeStore, err := redis.NewRedisTradeStore(redisCfg)
		if err != nil {
			logger.Warn("Failed to connect to Redis, continuing without trade mirror", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			tradeStores = append(tradeStores, redisTradeStore)
		}

		cache, err := redis.NewRedisBookCache(redisCfg)
		if err != nil {
			logger.Warn("Failed to connect to Redis, continuing without book cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			// Nothing is reloaded at start, so a cached book from a previous run is stale
			if err := cache.Invalidate(context.Background(), pair); err != nil {
				logger.Warn("Failed to invalidate cached order book", map[string]interface{}{
					"error": err.Error(),
				})
			}
			bookCache = cache
			logger.Info("Redis connected successfully", map[string]interface{}{
				"host": cfg.Redis.Host,
				"port": cfg.Redis.Port,
			})
		}
	}

	// PostgreSQL (trade audit table) - if enabled
	if cfg.Database.Enabled {
		pgTradeStore, err := postgres.NewPostgresTradeStore(postgres.PostgresConfig{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			Database:        cfg.Database.Name,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			MaxConns:        cfg.Database.MaxConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			SSLMode:         cfg.Database.SSLMode,
		})
		if err != nil {
			logger.Warn("Failed to connect to PostgreSQL, continuing without trade audit table", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			logger.Info("PostgreSQL connected successfully", map[string]interface{}{
				"host":     cfg.Database.Host,
				"database": cfg.Database.Name,
			})
			tradeStores = append(tradeStores, pgTradeStore)
		}
	}

	// Pebble (local trade archive) - if enabled
	if cfg.Pebble.Enabled {
		pebbleStore, err := pebble.NewPebbleTradeStore(cfg.Pebble.Path)
		if err != nil {
			logger.Warn("Failed to open Pebble archive, continuing without it", map[string]interface{}{
				"path":  cfg.Pebble.Path,
				"error": err.Error(),
			})
		} else {
			tradeStores = append(tradeStores, pebbleStore)
			logger.Info("Pebble trade archive enabled", map[string]interface{}{
				"path": cfg.Pebble.Path,
			})
		}
	}

	// Kafka (trade events) - if enabled
	if cfg.Kafka.Enabled {
		tradeStores = append(tradeStores, kafka.NewTradeProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.BatchTimeout))
		logger.Info("Kafka trade producer enabled", map[string]interface{}{
			"brokers": cfg.Kafka.Brokers,
			"topic":   cfg.Kafka.Topic,
		})
	}

	// File storage (audit log) - always enabled
	if fileTradeStore, err := storage.NewFileTradeStore(cfg.Engine.TradeLogPath); err == nil {
		tradeStores = append(tradeStores, fileTradeStore)
		logger.Info("Trade file log enabled", map[string]interface{}{
			"path": cfg.Engine.TradeLogPath,
		})
	} else {
		logger.Warn("Failed to open trade file log", map[string]interface{}{
			"path":  cfg.Engine.TradeLogPath,
			"error": err.Error(),
		})
	}

	logger.Info("Storage layers initialized", map[string]interface{}{
		"trade_layers": len(tradeStores),
		"book_cache":   bookCache != nil,
	})

	switch len(tradeStores) {
	case 0:
		return nil, bookCache
	case 1:
		return tradeStores[0], bookCache
	default:
		return storage.NewCompositeTradeStore(tradeStores...), bookCache
	}
}
