package storage

import (
	"context"
	"errors"

	"github.com/PxPatel/orderbook-engine/internal/types"
)

// TradeStore abstracts where executed trades are written to and read back from.
// Implementations can be in-memory buffer, file log, Redis, PostgreSQL, Pebble or Kafka.
type TradeStore interface {
	// Save persists a single trade
	Save(ctx context.Context, trade types.Trade) error

	// SaveBatch persists trades in sequence order
	SaveBatch(ctx context.Context, trades []types.Trade) error

	// GetRecent retrieves up to limit trades, newest first.
	// Write-only sinks return an empty slice.
	GetRecent(ctx context.Context, limit int) ([]types.Trade, error)

	// Close releases any resources held by the store
	Close() error
}

// BookCache keeps the latest order book snapshot per pair for readers outside the engine
type BookCache interface {
	SetOrderBook(ctx context.Context, pair types.Pair, book types.OrderBook) error
	GetOrderBook(ctx context.Context, pair types.Pair) (types.OrderBook, error)
	Close() error
}

// ErrNotCached is returned by BookCache.GetOrderBook when no snapshot is stored for the pair
var ErrNotCached = errors.New("order book not cached")
