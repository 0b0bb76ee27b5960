package matching

import "github.com/PxPatel/orderbook-engine/internal/types"

// Re-export types used throughout the engine
type (
	SideType          = types.SideType
	Order             = types.Order
	Trade             = types.Trade
	LimitOrderRequest = types.LimitOrderRequest
)

// Re-export constants
const (
	Buy  = types.Buy
	Sell = types.Sell
)
