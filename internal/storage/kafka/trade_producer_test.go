package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PxPatel/orderbook-engine/internal/types"
)

func TestTradeMessage(t *testing.T) {
	tradedAt := time.Unix(1700000000, 0).UTC()
	trade := types.Trade{
		ID:         "abc",
		Price:      decimal.NewFromInt(100),
		Quantity:   decimal.RequireFromString("0.5"),
		Pair:       types.BTCZAR,
		TradedAt:   tradedAt,
		TakerSide:  types.Buy,
		SequenceID: 1370000000002671001,
	}

	msg, err := tradeMessage(trade)
	require.NoError(t, err)

	assert.Equal(t, "BTCZAR", string(msg.Key))
	assert.Equal(t, tradedAt, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "sequence-id", msg.Headers[0].Key)
	assert.Equal(t, "1370000000002671001", string(msg.Headers[0].Value))

	var decoded types.Trade
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, trade.SequenceID, decoded.SequenceID)
	assert.True(t, decoded.Quantity.Equal(trade.Quantity))
}

func TestTradeProducer_EmptyBatchIsNoop(t *testing.T) {
	p := NewTradeProducer([]string{"localhost:9092"}, "orderbook.trades", 10*time.Millisecond)
	defer p.Close()

	assert.NoError(t, p.SaveBatch(context.Background(), nil))

	recent, err := p.GetRecent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
