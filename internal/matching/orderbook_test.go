package matching

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PxPatel/orderbook-engine/internal/types"
)

func restingOrder(id string, side SideType, price, qty string) Order {
	return Order{
		ID:         id,
		Side:       side,
		Price:      decimal.RequireFromString(price),
		Quantity:   decimal.RequireFromString(qty),
		Pair:       types.BTCZAR,
		OrderCount: 1,
	}
}

func ids(orders []Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestOrderBook_BidsSortDescendingThenByArrival(t *testing.T) {
	ob := NewOrderBook()
	ob.Insert(restingOrder("b1", Buy, "100", "1"))
	ob.Insert(restingOrder("b2", Buy, "101", "1"))
	ob.Insert(restingOrder("b3", Buy, "100", "1"))
	ob.Insert(restingOrder("b4", Buy, "99.5", "1"))

	assert.Equal(t, []string{"b2", "b1", "b3", "b4"}, ids(ob.Orders(Buy)))

	best, ok := ob.Best(Buy)
	require.True(t, ok)
	assert.Equal(t, "b2", best.ID)
}

func TestOrderBook_AsksSortAscendingThenByArrival(t *testing.T) {
	ob := NewOrderBook()
	ob.Insert(restingOrder("a1", Sell, "102", "1"))
	ob.Insert(restingOrder("a2", Sell, "101", "1"))
	ob.Insert(restingOrder("a3", Sell, "101", "1"))
	ob.Insert(restingOrder("a4", Sell, "101.00", "1"))

	// 101 and 101.00 are the same price, so arrival decides
	assert.Equal(t, []string{"a2", "a3", "a4", "a1"}, ids(ob.Orders(Sell)))
}

func TestOrderBook_EmptySide(t *testing.T) {
	ob := NewOrderBook()

	_, ok := ob.Best(Sell)
	assert.False(t, ok)
	assert.Empty(t, ob.Orders(Buy))
	assert.Equal(t, 0, ob.Len(Buy))
}

func TestOrderBook_GetSearchesBothSides(t *testing.T) {
	ob := NewOrderBook()
	ob.Insert(restingOrder("b1", Buy, "100", "1"))
	ob.Insert(restingOrder("a1", Sell, "101", "2"))

	order, ok := ob.Get("a1")
	require.True(t, ok)
	assert.Equal(t, Sell, order.Side)

	_, ok = ob.Get("missing")
	assert.False(t, ok)
}

func TestOrderBook_UpdateKeepsQueuePosition(t *testing.T) {
	ob := NewOrderBook()
	ob.Insert(restingOrder("a1", Sell, "101", "2"))
	ob.Insert(restingOrder("a2", Sell, "101", "3"))

	require.True(t, ob.update(Sell, "a1", decimal.RequireFromString("0.5")))
	assert.False(t, ob.update(Sell, "missing", decimal.NewFromInt(1)))

	orders := ob.Orders(Sell)
	require.Len(t, orders, 2)
	assert.Equal(t, "a1", orders[0].ID)
	assert.True(t, orders[0].Quantity.Equal(decimal.RequireFromString("0.5")))

	got, _ := ob.Get("a1")
	assert.True(t, got.Quantity.Equal(decimal.RequireFromString("0.5")))
}

func TestOrderBook_RemoveIf(t *testing.T) {
	ob := NewOrderBook()
	ob.Insert(restingOrder("b1", Buy, "100", "0"))
	ob.Insert(restingOrder("b2", Buy, "99", "1"))
	ob.Insert(restingOrder("b3", Buy, "98", "0"))
	ob.Insert(restingOrder("a1", Sell, "101", "0"))

	removed := ob.RemoveIf(Buy, Order.IsFilled)

	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"b2"}, ids(ob.Orders(Buy)))
	assert.Equal(t, 1, ob.Len(Sell), "other side untouched")

	_, ok := ob.Get("b1")
	assert.False(t, ok, "index entry removed")
}

func TestOrderBook_OrdersIsACopy(t *testing.T) {
	ob := NewOrderBook()
	ob.Insert(restingOrder("b1", Buy, "100", "1"))

	orders := ob.Orders(Buy)
	orders[0].Quantity = decimal.NewFromInt(42)

	got, _ := ob.Get("b1")
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(1)))
}
