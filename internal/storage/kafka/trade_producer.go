package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/PxPatel/orderbook-engine/internal/types"
)

// TradeProducer implements a write-only TradeStore that publishes each trade as a
// Kafka message keyed by pair, so a partition sees one instrument in sequence order
type TradeProducer struct {
	writer *kafka.Writer
}

// NewTradeProducer creates a producer writing to topic
func NewTradeProducer(brokers []string, topic string, batchTimeout time.Duration) *TradeProducer {
	return &TradeProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: batchTimeout,
		},
	}
}

func tradeMessage(trade types.Trade) (kafka.Message, error) {
	value, err := json.Marshal(trade)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to encode trade %d: %w", trade.SequenceID, err)
	}
	return kafka.Message{
		Key:   []byte(trade.Pair.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "sequence-id", Value: []byte(strconv.FormatInt(trade.SequenceID, 10))},
		},
		Time: trade.TradedAt,
	}, nil
}

func (p *TradeProducer) Save(ctx context.Context, trade types.Trade) error {
	return p.SaveBatch(ctx, []types.Trade{trade})
}

func (p *TradeProducer) SaveBatch(ctx context.Context, trades []types.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(trades))
	for _, trade := range trades {
		msg, err := tradeMessage(trade)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to publish trades: %w", err)
	}
	return nil
}

func (p *TradeProducer) GetRecent(_ context.Context, _ int) ([]types.Trade, error) {
	// Producer is write-only
	return []types.Trade{}, nil
}

func (p *TradeProducer) Close() error {
	return p.writer.Close()
}
