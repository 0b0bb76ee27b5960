package storage

import (
	"context"
	"sync"

	"github.com/PxPatel/orderbook-engine/internal/types"
)

// InMemoryTradeStore implements TradeStore using a bounded buffer.
// Keeps only the N most recent trades in memory.
type InMemoryTradeStore struct {
	trades  []types.Trade
	maxSize int
	mutex   sync.RWMutex
}

// NewInMemoryTradeStore creates a new in-memory trade store with a size limit
func NewInMemoryTradeStore(maxSize int) *InMemoryTradeStore {
	if maxSize < 1 {
		maxSize = 1
	}
	return &InMemoryTradeStore{
		trades:  make([]types.Trade, 0, maxSize),
		maxSize: maxSize,
	}
}

// Append adds trades in the order given, evicting the oldest beyond the size limit
func (s *InMemoryTradeStore) Append(trades ...types.Trade) {
	if len(trades) == 0 {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.trades = append(s.trades, trades...)

	// Trim to max size, copying so the dropped prefix can be collected
	if len(s.trades) > s.maxSize {
		kept := make([]types.Trade, s.maxSize, s.maxSize+len(trades))
		copy(kept, s.trades[len(s.trades)-s.maxSize:])
		s.trades = kept
	}
}

// Recent returns up to limit trades, newest first. limit <= 0 returns everything held.
func (s *InMemoryTradeStore) Recent(limit int) []types.Trade {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	// Clamp limit to actual size
	if limit <= 0 || limit > len(s.trades) {
		limit = len(s.trades)
	}

	result := make([]types.Trade, 0, limit)
	for i := len(s.trades) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, s.trades[i])
	}
	return result
}

// Len returns the number of trades held
func (s *InMemoryTradeStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.trades)
}

func (s *InMemoryTradeStore) Save(_ context.Context, trade types.Trade) error {
	s.Append(trade)
	return nil
}

func (s *InMemoryTradeStore) SaveBatch(_ context.Context, trades []types.Trade) error {
	s.Append(trades...)
	return nil
}

func (s *InMemoryTradeStore) GetRecent(_ context.Context, limit int) ([]types.Trade, error) {
	return s.Recent(limit), nil
}

func (s *InMemoryTradeStore) Close() error {
	// No cleanup needed for in-memory store
	return nil
}
