package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PxPatel/orderbook-engine/internal/types"
)

func TestBookKey(t *testing.T) {
	assert.Equal(t, "orderbook:BTCZAR", bookKey(types.BTCZAR))
	assert.Equal(t, "orderbook:LTCUSD", bookKey(types.LTCUSD))
}
