package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultOrderCount  = 1
	DefaultTimeInForce = "GTC"
)

// OrderOptions are accepted with every limit order and carried on the resting order.
// The engine does not enforce any of them yet.
type OrderOptions struct {
	PostOnly    bool   `json:"postOnly"`
	TimeInForce string `json:"timeInForce"`
	AllowMargin bool   `json:"allowMargin"`
	ReduceOnly  bool   `json:"reduceOnly"`
}

// DefaultOrderOptions mirrors the defaults clients get when they omit the fields
func DefaultOrderOptions() OrderOptions {
	return OrderOptions{
		PostOnly:    true,
		TimeInForce: DefaultTimeInForce,
	}
}

// IsDefault reports whether no option deviates from DefaultOrderOptions
func (o OrderOptions) IsDefault() bool {
	return o == DefaultOrderOptions()
}

// LimitOrderRequest is what a caller submits to the engine
type LimitOrderRequest struct {
	Side            SideType
	Price           decimal.Decimal
	Quantity        decimal.Decimal
	Pair            string
	CustomerOrderID string
	OrderCount      int
	Options         OrderOptions
}

// Order is a resting or incoming limit order.
// Quantity is the remaining quantity and only shrinks as fills happen.
type Order struct {
	ID              string          `json:"orderId"`
	CustomerOrderID string          `json:"customerOrderId"`
	Side            SideType        `json:"side"`
	Price           decimal.Decimal `json:"price"`
	Quantity        decimal.Decimal `json:"quantity"`
	Pair            Pair            `json:"currencyPair"`
	OrderCount      int             `json:"orderCount"`
	Options         OrderOptions    `json:"-"`
	CreatedAt       time.Time       `json:"-"`
}

// NewOrder builds an order with a fresh id from a validated request
func NewOrder(req LimitOrderRequest, pair Pair, now time.Time) Order {
	count := req.OrderCount
	if count < 1 {
		count = DefaultOrderCount
	}
	return Order{
		ID:              uuid.NewString(),
		CustomerOrderID: req.CustomerOrderID,
		Side:            req.Side,
		Price:           req.Price,
		Quantity:        req.Quantity,
		Pair:            pair,
		OrderCount:      count,
		Options:         req.Options,
		CreatedAt:       now,
	}
}

// IsFilled reports whether nothing is left to trade
func (o Order) IsFilled() bool {
	return !o.Quantity.IsPositive()
}

// SubmitResult is returned for every accepted order
type SubmitResult struct {
	OrderID         string
	CustomerOrderID string
	Trades          []Trade
}
