package pebble

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/PxPatel/orderbook-engine/internal/types"
)

var tradePrefix = []byte("t:")

// PebbleTradeStore implements TradeStore as a local archive keyed by sequence id
type PebbleTradeStore struct {
	db *pebble.DB
}

// NewPebbleTradeStore opens (or creates) the archive at path
func NewPebbleTradeStore(path string) (*PebbleTradeStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble at %s: %w", path, err)
	}
	return &PebbleTradeStore{db: db}, nil
}

// keys: t:<8-byte big-endian sequence id>, so iteration order is sequence order
func tradeKey(seq int64) []byte {
	key := make([]byte, len(tradePrefix)+8)
	copy(key, tradePrefix)
	binary.BigEndian.PutUint64(key[len(tradePrefix):], uint64(seq))
	return key
}

func keyUpperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

func (s *PebbleTradeStore) Save(ctx context.Context, trade types.Trade) error {
	return s.SaveBatch(ctx, []types.Trade{trade})
}

func (s *PebbleTradeStore) SaveBatch(_ context.Context, trades []types.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	for _, trade := range trades {
		data, err := json.Marshal(trade)
		if err != nil {
			return fmt.Errorf("failed to marshal trade: %w", err)
		}
		if err := batch.Set(tradeKey(trade.SequenceID), data, nil); err != nil {
			return fmt.Errorf("failed to stage trade %d: %w", trade.SequenceID, err)
		}
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("failed to commit trades: %w", err)
	}
	return nil
}

// GetRecent returns trades in reverse sequence order (newest first)
func (s *PebbleTradeStore) GetRecent(_ context.Context, limit int) ([]types.Trade, error) {
	if limit <= 0 {
		limit = 100
	}

	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: tradePrefix,
		UpperBound: keyUpperBound(tradePrefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	trades := make([]types.Trade, 0, limit)
	for iter.Last(); iter.Valid() && len(trades) < limit; iter.Prev() {
		var trade types.Trade
		if err := json.Unmarshal(iter.Value(), &trade); err != nil {
			continue // Skip invalid entries
		}
		trades = append(trades, trade)
	}

	return trades, nil
}

func (s *PebbleTradeStore) Close() error {
	return s.db.Close()
}
