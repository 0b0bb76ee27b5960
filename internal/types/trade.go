package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade represents one execution between an incoming (taker) order and a resting (maker) order
type Trade struct {
	ID           string          `json:"id"`
	Price        decimal.Decimal `json:"price"`
	Quantity     decimal.Decimal `json:"quantity"`
	Pair         Pair            `json:"currencyPair"`
	TradedAt     time.Time       `json:"tradedAt"`
	TakerSide    SideType        `json:"takerSide"`
	SequenceID   int64           `json:"sequenceId"`
	QuoteVolume  decimal.Decimal `json:"quoteVolume"`
	MakerOrderID string          `json:"makerOrderId,omitempty"`
	TakerOrderID string          `json:"takerOrderId,omitempty"`
}
