package storage

import (
	"context"

	"github.com/PxPatel/orderbook-engine/internal/types"
)

// CompositeTradeStore combines multiple TradeStore implementations.
// Writes go to ALL stores, reads come from the FIRST store that has data.
// Example: CompositeTradeStore([redisStore, fileStore]) writes to both,
// reads from Redis, and keeps the file as an audit trail.
type CompositeTradeStore struct {
	stores []TradeStore
}

// NewCompositeTradeStore creates a composite store from multiple stores
func NewCompositeTradeStore(stores ...TradeStore) *CompositeTradeStore {
	return &CompositeTradeStore{
		stores: stores,
	}
}

// Len returns the number of layers
func (c *CompositeTradeStore) Len() int {
	return len(c.stores)
}

func (c *CompositeTradeStore) Save(ctx context.Context, trade types.Trade) error {
	// Write to all stores
	var lastErr error
	for _, store := range c.stores {
		if err := store.Save(ctx, trade); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (c *CompositeTradeStore) SaveBatch(ctx context.Context, trades []types.Trade) error {
	// Write to all stores
	var lastErr error
	for _, store := range c.stores {
		if err := store.SaveBatch(ctx, trades); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (c *CompositeTradeStore) GetRecent(ctx context.Context, limit int) ([]types.Trade, error) {
	// Read from first store that returns data
	for _, store := range c.stores {
		trades, err := store.GetRecent(ctx, limit)
		if err != nil {
			continue
		}
		if len(trades) > 0 {
			return trades, nil
		}
	}
	return []types.Trade{}, nil
}

func (c *CompositeTradeStore) Close() error {
	// Close all stores
	var lastErr error
	for _, store := range c.stores {
		if err := store.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
