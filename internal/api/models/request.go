package models

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/PxPatel/orderbook-engine/internal/types"
)

// LimitOrderRequest is the body of POST /api/orders/limit.
// Price and quantity accept JSON numbers or strings.
type LimitOrderRequest struct {
	Side            string          `json:"side"`
	Quantity        decimal.Decimal `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	Pair            string          `json:"pair"`
	CustomerOrderID string          `json:"customerOrderId"`
	OrderCount      int             `json:"orderCount"`
	PostOnly        *bool           `json:"postOnly"`
	TimeInForce     string          `json:"timeInForce"`
	AllowMargin     *bool           `json:"allowMargin"`
	ReduceOnly      *bool           `json:"reduceOnly"`
}

// ToEngineRequest converts the body into an engine request, filling option defaults.
// Only the side is checked here; the engine validates the rest.
func (r *LimitOrderRequest) ToEngineRequest() (types.LimitOrderRequest, *HTTPError) {
	side, err := types.ParseSide(r.Side)
	if err != nil {
		return types.LimitOrderRequest{}, ErrBadRequest("side must be buy or sell")
	}

	options := types.DefaultOrderOptions()
	if r.PostOnly != nil {
		options.PostOnly = *r.PostOnly
	}
	if tif := strings.TrimSpace(r.TimeInForce); tif != "" {
		options.TimeInForce = strings.ToUpper(tif)
	}
	if r.AllowMargin != nil {
		options.AllowMargin = *r.AllowMargin
	}
	if r.ReduceOnly != nil {
		options.ReduceOnly = *r.ReduceOnly
	}

	return types.LimitOrderRequest{
		Side:            side,
		Price:           r.Price,
		Quantity:        r.Quantity,
		Pair:            r.Pair,
		CustomerOrderID: r.CustomerOrderID,
		OrderCount:      r.OrderCount,
		Options:         options,
	}, nil
}
