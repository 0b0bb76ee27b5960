package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/PxPatel/orderbook-engine/internal/types"
)

// FileTradeStore implements TradeStore as an append-only JSON lines audit log.
// Read operations return empty; pair it with another store in a CompositeTradeStore for reads.
type FileTradeStore struct {
	file    *os.File
	encoder *json.Encoder
	mutex   sync.Mutex
}

// NewFileTradeStore creates a new file-based trade store
func NewFileTradeStore(filePath string) (*FileTradeStore, error) {
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open trade log: %w", err)
	}

	return &FileTradeStore{
		file:    file,
		encoder: json.NewEncoder(file),
	}, nil
}

func (s *FileTradeStore) Save(ctx context.Context, trade types.Trade) error {
	return s.SaveBatch(ctx, []types.Trade{trade})
}

func (s *FileTradeStore) SaveBatch(_ context.Context, trades []types.Trade) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, trade := range trades {
		if err := s.encoder.Encode(trade); err != nil {
			return fmt.Errorf("failed to append trade %d: %w", trade.SequenceID, err)
		}
	}
	return nil
}

func (s *FileTradeStore) GetRecent(_ context.Context, _ int) ([]types.Trade, error) {
	// File store is write-only
	return []types.Trade{}, nil
}

func (s *FileTradeStore) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		return err
	}
	return nil
}
