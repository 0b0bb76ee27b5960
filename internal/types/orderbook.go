package types

import "time"

// OrderBook is a point-in-time copy of the resting orders.
// Asks are ascending by price, bids descending, both oldest first within a price.
type OrderBook struct {
	Asks           []Order   `json:"Asks"`
	Bids           []Order   `json:"Bids"`
	LastChange     time.Time `json:"LastChange"`
	SequenceNumber int64     `json:"SequenceNumber"`
}

// BestBid returns the highest resting bid, if any
func (ob OrderBook) BestBid() (Order, bool) {
	if len(ob.Bids) == 0 {
		return Order{}, false
	}
	return ob.Bids[0], true
}

// BestAsk returns the lowest resting ask, if any
func (ob OrderBook) BestAsk() (Order, bool) {
	if len(ob.Asks) == 0 {
		return Order{}, false
	}
	return ob.Asks[0], true
}
