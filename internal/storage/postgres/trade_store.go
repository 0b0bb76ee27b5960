package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PxPatel/orderbook-engine/internal/types"
)

const insertTradeQuery = `
	INSERT INTO trades (sequence_id, trade_id, pair, price, quantity, quote_volume,
		taker_side, maker_order_id, taker_order_id, traded_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (sequence_id) DO NOTHING
`

// PostgresTradeStore implements TradeStore as a PostgreSQL audit table
type PostgresTradeStore struct {
	pool *pgxpool.Pool
}

// NewPostgresTradeStore creates a new PostgreSQL-backed trade store
func NewPostgresTradeStore(cfg PostgresConfig) (*PostgresTradeStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := NewPostgresPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &PostgresTradeStore{pool: pool}, nil
}

func tradeArgs(trade types.Trade) []any {
	return []any{
		trade.SequenceID, trade.ID, trade.Pair.String(), trade.Price, trade.Quantity, trade.QuoteVolume,
		trade.TakerSide.String(), trade.MakerOrderID, trade.TakerOrderID, trade.TradedAt,
	}
}

func (s *PostgresTradeStore) Save(ctx context.Context, trade types.Trade) error {
	_, err := s.pool.Exec(ctx, insertTradeQuery, tradeArgs(trade)...)
	if err != nil {
		return fmt.Errorf("failed to insert trade %d: %w", trade.SequenceID, err)
	}
	return nil
}

func (s *PostgresTradeStore) SaveBatch(ctx context.Context, trades []types.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	// Use pgx batch for efficient batch inserts
	batch := &pgx.Batch{}
	for _, trade := range trades {
		batch.Queue(insertTradeQuery, tradeArgs(trade)...)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	// Execute all batched queries
	for i := 0; i < len(trades); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert failed at index %d: %w", i, err)
		}
	}

	return nil
}

func (s *PostgresTradeStore) GetRecent(ctx context.Context, limit int) ([]types.Trade, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT sequence_id, trade_id, pair, price, quantity, quote_volume,
			taker_side, maker_order_id, taker_order_id, traded_at
		FROM trades
		ORDER BY sequence_id DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []types.Trade
	for rows.Next() {
		var (
			trade     types.Trade
			pair      string
			takerSide string
		)
		err := rows.Scan(
			&trade.SequenceID, &trade.ID, &pair, &trade.Price, &trade.Quantity, &trade.QuoteVolume,
			&takerSide, &trade.MakerOrderID, &trade.TakerOrderID, &trade.TradedAt,
		)
		if err != nil {
			continue
		}
		if trade.Pair, err = types.ParsePair(pair); err != nil {
			continue
		}
		if trade.TakerSide, err = types.ParseSide(takerSide); err != nil {
			continue
		}
		trades = append(trades, trade)
	}

	return trades, rows.Err()
}

func (s *PostgresTradeStore) Close() error {
	s.pool.Close()
	return nil
}
