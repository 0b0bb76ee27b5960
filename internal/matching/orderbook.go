package matching

import (
	"github.com/google/btree"
	"github.com/shopspring/decimal"
)

/*
Each side is a btree of resting orders keyed by (price, arrival).
Bids sort by price descending, asks by price ascending, both by arrival ascending within a price,
so the minimum item of a side is always its best order and inserts never re-sort.
An id index points at the key of every resting order for lookup and removal.
*/

const btreeDegree = 32

type bookEntry struct {
	arrival uint64
	order   Order
}

type bookSide struct {
	side  SideType
	tree  *btree.BTreeG[bookEntry]
	index map[string]bookEntry
}

func newBookSide(side SideType) *bookSide {
	var less btree.LessFunc[bookEntry]
	if side == Buy {
		less = func(a, b bookEntry) bool {
			if c := a.order.Price.Cmp(b.order.Price); c != 0 {
				return c > 0
			}
			return a.arrival < b.arrival
		}
	} else {
		less = func(a, b bookEntry) bool {
			if c := a.order.Price.Cmp(b.order.Price); c != 0 {
				return c < 0
			}
			return a.arrival < b.arrival
		}
	}

	return &bookSide{
		side:  side,
		tree:  btree.NewG(btreeDegree, less),
		index: make(map[string]bookEntry),
	}
}

type OrderBook struct {
	bids    *bookSide
	asks    *bookSide
	arrival uint64
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids: newBookSide(Buy),
		asks: newBookSide(Sell),
	}
}

func (orderBook *OrderBook) sideOf(side SideType) *bookSide {
	if side == Buy {
		return orderBook.bids
	}
	return orderBook.asks
}

// Insert rests an order on its own side behind every order already at its price
func (orderBook *OrderBook) Insert(order Order) {
	orderBook.arrival++
	entry := bookEntry{arrival: orderBook.arrival, order: order}

	bs := orderBook.sideOf(order.Side)
	bs.tree.ReplaceOrInsert(entry)
	bs.index[order.ID] = entry
}

// ascend walks one side in priority order until fn returns false
func (orderBook *OrderBook) ascend(side SideType, fn func(Order) bool) {
	orderBook.sideOf(side).tree.Ascend(func(e bookEntry) bool {
		return fn(e.order)
	})
}

// update replaces the resting quantity of an order, keeping its queue position
func (orderBook *OrderBook) update(side SideType, id string, quantity decimal.Decimal) bool {
	bs := orderBook.sideOf(side)
	entry, ok := bs.index[id]
	if !ok {
		return false
	}

	entry.order.Quantity = quantity
	bs.tree.ReplaceOrInsert(entry)
	bs.index[id] = entry
	return true
}

// RemoveIf deletes every order on a side matching the predicate and returns how many were removed
func (orderBook *OrderBook) RemoveIf(side SideType, pred func(Order) bool) int {
	bs := orderBook.sideOf(side)

	var doomed []bookEntry
	bs.tree.Ascend(func(e bookEntry) bool {
		if pred(e.order) {
			doomed = append(doomed, e)
		}
		return true
	})

	for _, e := range doomed {
		bs.tree.Delete(e)
		delete(bs.index, e.order.ID)
	}
	return len(doomed)
}

// Orders returns a copy of one side in priority order
func (orderBook *OrderBook) Orders(side SideType) []Order {
	bs := orderBook.sideOf(side)
	orders := make([]Order, 0, bs.tree.Len())
	bs.tree.Ascend(func(e bookEntry) bool {
		orders = append(orders, e.order)
		return true
	})
	return orders
}

// Best returns the first order in priority order on a side
func (orderBook *OrderBook) Best(side SideType) (Order, bool) {
	e, ok := orderBook.sideOf(side).tree.Min()
	if !ok {
		return Order{}, false
	}
	return e.order, true
}

// Get looks up a resting order on either side by id
func (orderBook *OrderBook) Get(id string) (Order, bool) {
	if e, ok := orderBook.bids.index[id]; ok {
		return e.order, true
	}
	if e, ok := orderBook.asks.index[id]; ok {
		return e.order, true
	}
	return Order{}, false
}

// Len returns the number of resting orders on a side
func (orderBook *OrderBook) Len(side SideType) int {
	return orderBook.sideOf(side).tree.Len()
}
