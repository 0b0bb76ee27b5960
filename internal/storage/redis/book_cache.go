package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/PxPatel/orderbook-engine/internal/storage"
	"github.com/PxPatel/orderbook-engine/internal/types"
)

const bookKeyPrefix = "orderbook:"

// RedisBookCache implements BookCache by storing the latest snapshot per pair as JSON
type RedisBookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBookCache creates a new Redis-backed order book cache
func NewRedisBookCache(cfg RedisConfig) (*RedisBookCache, error) {
	client, err := NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &RedisBookCache{client: client, ttl: cfg.BookTTL}, nil
}

func bookKey(pair types.Pair) string { return bookKeyPrefix + pair.String() }

func (c *RedisBookCache) SetOrderBook(ctx context.Context, pair types.Pair, book types.OrderBook) error {
	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("failed to encode order book: %w", err)
	}
	return c.client.Set(ctx, bookKey(pair), data, c.ttl).Err()
}

func (c *RedisBookCache) GetOrderBook(ctx context.Context, pair types.Pair) (types.OrderBook, error) {
	data, err := c.client.Get(ctx, bookKey(pair)).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.OrderBook{}, storage.ErrNotCached
	}
	if err != nil {
		return types.OrderBook{}, err
	}

	var book types.OrderBook
	if err := json.Unmarshal(data, &book); err != nil {
		return types.OrderBook{}, fmt.Errorf("failed to decode order book: %w", err)
	}
	return book, nil
}

// Invalidate drops the cached snapshot for pair
func (c *RedisBookCache) Invalidate(ctx context.Context, pair types.Pair) error {
	return c.client.Del(ctx, bookKey(pair)).Err()
}

func (c *RedisBookCache) Close() error {
	return c.client.Close()
}
