package pebble

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PxPatel/orderbook-engine/internal/types"
)

func testTrade(seq int64) types.Trade {
	return types.Trade{
		ID:          "trade",
		Price:       decimal.RequireFromString("1878404"),
		Quantity:    decimal.RequireFromString("0.075"),
		Pair:        types.BTCZAR,
		TradedAt:    time.Unix(1700000000, 0).UTC(),
		TakerSide:   types.Sell,
		SequenceID:  seq,
		QuoteVolume: decimal.RequireFromString("140880.3"),
	}
}

func TestPebbleTradeStore_RecentNewestFirst(t *testing.T) {
	store, err := NewPebbleTradeStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	// Out of order writes still read back in sequence order
	require.NoError(t, store.SaveBatch(ctx, []types.Trade{testTrade(300), testTrade(5)}))
	require.NoError(t, store.Save(ctx, testTrade(1370000000002671001)))

	recent, err := store.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, int64(1370000000002671001), recent[0].SequenceID)
	assert.Equal(t, int64(300), recent[1].SequenceID)

	all, err := store.GetRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(5), all[2].SequenceID)
	assert.True(t, all[2].QuoteVolume.Equal(decimal.RequireFromString("140880.3")))
	assert.Equal(t, types.Sell, all[2].TakerSide)
}

func TestPebbleTradeStore_ReopenKeepsArchive(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewPebbleTradeStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, testTrade(7)))
	require.NoError(t, store.Close())

	reopened, err := NewPebbleTradeStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	recent, err := reopened.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, int64(7), recent[0].SequenceID)
}

func TestTradeKeyOrdering(t *testing.T) {
	assert.Less(t, string(tradeKey(9)), string(tradeKey(10)))
	assert.Less(t, string(tradeKey(255)), string(tradeKey(256)))
	assert.Equal(t, []byte("t;"), keyUpperBound(tradePrefix))
}
