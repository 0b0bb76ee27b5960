package testutils

import (
	"github.com/PxPatel/orderbook-engine/internal/api/models"
)

// LimitOrder builders for common test cases

// NewLimitBuyOrder creates a BTCZAR limit buy request
func NewLimitBuyOrder(customerOrderID, price, quantity string) models.LimitOrderRequest {
	return newLimitOrder("buy", customerOrderID, price, quantity)
}

// NewLimitSellOrder creates a BTCZAR limit sell request
func NewLimitSellOrder(customerOrderID, price, quantity string) models.LimitOrderRequest {
	return newLimitOrder("sell", customerOrderID, price, quantity)
}

func newLimitOrder(side, customerOrderID, price, quantity string) models.LimitOrderRequest {
	return models.LimitOrderRequest{
		Side:            side,
		Price:           mustDecimal(price),
		Quantity:        mustDecimal(quantity),
		Pair:            "BTCZAR",
		CustomerOrderID: customerOrderID,
	}
}
