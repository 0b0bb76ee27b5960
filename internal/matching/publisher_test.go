package matching

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PxPatel/orderbook-engine/internal/types"
)

type recordingTradeStore struct {
	mu     sync.Mutex
	trades []types.Trade
	closed bool
	err    error
}

func (s *recordingTradeStore) Save(ctx context.Context, trade types.Trade) error {
	return s.SaveBatch(ctx, []types.Trade{trade})
}

func (s *recordingTradeStore) SaveBatch(_ context.Context, trades []types.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades = append(s.trades, trades...)
	return s.err
}

func (s *recordingTradeStore) GetRecent(_ context.Context, _ int) ([]types.Trade, error) {
	return nil, nil
}

func (s *recordingTradeStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *recordingTradeStore) saved() []types.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Trade(nil), s.trades...)
}

type recordingBookCache struct {
	mu     sync.Mutex
	books  []types.OrderBook
	pairs  []types.Pair
	closed bool
}

func (c *recordingBookCache) SetOrderBook(_ context.Context, pair types.Pair, book types.OrderBook) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pairs = append(c.pairs, pair)
	c.books = append(c.books, book)
	return nil
}

func (c *recordingBookCache) GetOrderBook(_ context.Context, _ types.Pair) (types.OrderBook, error) {
	return types.OrderBook{}, errors.New("not implemented")
}

func (c *recordingBookCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func TestEngine_PublishesTradesAndBookOnClose(t *testing.T) {
	store := &recordingTradeStore{}
	cache := &recordingBookCache{}
	e := NewEngineWithStores(DefaultEngineConfig(), store, cache)

	submit(t, e, Sell, "1", "100")
	submit(t, e, Sell, "1", "101")
	result := submit(t, e, Buy, "1.5", "101")
	require.Len(t, result.Trades, 2)

	require.NoError(t, e.Close())

	saved := store.saved()
	require.Len(t, saved, 2)
	assert.Equal(t, result.Trades[0].SequenceID, saved[0].SequenceID)
	assert.Equal(t, result.Trades[1].SequenceID, saved[1].SequenceID)
	assert.True(t, store.closed)

	cache.mu.Lock()
	defer cache.mu.Unlock()
	assert.Len(t, cache.books, 3, "one snapshot per accepted order")
	assert.Equal(t, types.BTCZAR, cache.pairs[0])
	assert.True(t, cache.closed)

	last := cache.books[len(cache.books)-1]
	assert.Equal(t, result.Trades[1].SequenceID, last.SequenceNumber)
}

func TestEngine_SinkErrorsDoNotFailSubmit(t *testing.T) {
	store := &recordingTradeStore{err: errors.New("disk full")}
	e := NewEngineWithStores(DefaultEngineConfig(), store, nil)

	submit(t, e, Sell, "1", "100")
	result, err := e.Submit(context.Background(), limitRequest(Buy, "1", "100"))
	require.NoError(t, err)
	assert.Len(t, result.Trades, 1)

	require.NoError(t, e.Close())
	assert.Len(t, store.saved(), 1)
}

func TestPublisher_DropsWhenBufferFull(t *testing.T) {
	store := &recordingTradeStore{}
	p := newPublisher(1, time.Second, types.BTCZAR, store, nil, nil)

	trade := types.Trade{ID: "t1", SequenceID: 1}
	assert.True(t, p.enqueue(bookEvent{trades: []Trade{trade}}))
	assert.False(t, p.enqueue(bookEvent{trades: []Trade{trade}}), "second event dropped while nothing drains")

	go p.Start()
	p.close()
	p.close()

	assert.Len(t, store.saved(), 1)
}
