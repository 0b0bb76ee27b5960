package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/PxPatel/orderbook-engine/internal/types"
)

const (
	tradesKey = "trades:recent"
)

// RedisTradeStore implements TradeStore using a capped Redis list, newest at the head.
// Trades arrive in sequence order from a single writer, so list order is sequence order.
type RedisTradeStore struct {
	client    *redis.Client
	maxTrades int
}

// NewRedisTradeStore creates a new Redis-backed trade store
func NewRedisTradeStore(cfg RedisConfig) (*RedisTradeStore, error) {
	client, err := NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &RedisTradeStore{
		client:    client,
		maxTrades: cfg.MaxTrades,
	}, nil
}

func (s *RedisTradeStore) Save(ctx context.Context, trade types.Trade) error {
	return s.SaveBatch(ctx, []types.Trade{trade})
}

func (s *RedisTradeStore) SaveBatch(ctx context.Context, trades []types.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(trades))
	for _, trade := range trades {
		data, err := json.Marshal(trade)
		if err != nil {
			return fmt.Errorf("failed to encode trade %d: %w", trade.SequenceID, err)
		}
		values = append(values, data)
	}

	pipe := s.client.Pipeline()
	pipe.LPush(ctx, tradesKey, values...)

	// Trim to keep only last N trades
	pipe.LTrim(ctx, tradesKey, 0, int64(s.maxTrades-1))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write trades to redis: %w", err)
	}
	return nil
}

func (s *RedisTradeStore) GetRecent(ctx context.Context, limit int) ([]types.Trade, error) {
	if limit <= 0 {
		limit = 100
	}

	results, err := s.client.LRange(ctx, tradesKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	trades := make([]types.Trade, 0, len(results))
	for _, data := range results {
		var trade types.Trade
		if err := json.Unmarshal([]byte(data), &trade); err != nil {
			continue
		}
		trades = append(trades, trade)
	}

	return trades, nil
}

func (s *RedisTradeStore) Close() error {
	return s.client.Close()
}
