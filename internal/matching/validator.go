package matching

import (
	"github.com/PxPatel/orderbook-engine/internal/types"
)

// Validate checks a limit order request before it reaches the book.
// Rules run in order and the first failure is returned.
func Validate(req LimitOrderRequest) error {
	if !req.Price.IsPositive() {
		return types.NewValidationError("price", "price must be greater than zero")
	}

	if !req.Quantity.IsPositive() {
		return types.NewValidationError("quantity", "quantity must be greater than zero")
	}

	if _, err := types.ParsePair(req.Pair); err != nil {
		return types.NewValidationError("pair", err.Error())
	}

	if req.Side != Buy && req.Side != Sell {
		return types.NewValidationError("side", "side must be buy or sell")
	}

	return nil
}
