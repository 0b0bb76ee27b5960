package matching

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/PxPatel/orderbook-engine/internal/logger"
	"github.com/PxPatel/orderbook-engine/internal/types"
)

// DemoSeedOrders is a small BTCZAR book used for demos and local testing
func DemoSeedOrders() []LimitOrderRequest {
	order := func(side SideType, qty, price string) LimitOrderRequest {
		return LimitOrderRequest{
			Side:       side,
			Price:      decimal.RequireFromString(price),
			Quantity:   decimal.RequireFromString(qty),
			Pair:       types.BTCZAR.String(),
			OrderCount: types.DefaultOrderCount,
			Options:    types.DefaultOrderOptions(),
		}
	}

	return []LimitOrderRequest{
		order(Sell, "0.075", "1878404"),
		order(Sell, "0.14071953", "1878405"),
		order(Buy, "0.196", "1875206"),
		order(Buy, "0.02802465", "1875206"),
	}
}

// Seed submits each request in order, stopping at the first failure
func (e *Engine) Seed(ctx context.Context, reqs []LimitOrderRequest) error {
	for i, req := range reqs {
		if _, err := e.Submit(ctx, req); err != nil {
			return fmt.Errorf("seed order %d: %w", i, err)
		}
	}

	bids, asks := e.Depth()
	logger.Info("Order book seeded", map[string]interface{}{
		"orders": len(reqs),
		"bids":   bids,
		"asks":   asks,
	})
	return nil
}
