package matching

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/PxPatel/orderbook-engine/internal/logger"
	"github.com/PxPatel/orderbook-engine/internal/storage"
	"github.com/PxPatel/orderbook-engine/internal/types"
)

// ErrEngineClosed is returned by Submit after Close
var ErrEngineClosed = errors.New("matching engine is closed")

// EngineConfig holds matching engine settings
type EngineConfig struct {
	Pair               types.Pair
	RecentTradesWindow int
	TradeHistorySize   int
	SequenceStart      int64
	PublishBuffer      int
	PublishTimeout     time.Duration
}

// DefaultEngineConfig returns the settings used by NewEngine
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Pair:               types.BTCZAR,
		RecentTradesWindow: 5,
		TradeHistorySize:   1000,
		SequenceStart:      1370000000002671000,
		PublishBuffer:      1024,
		PublishTimeout:     3 * time.Second,
	}
}

// Engine matches limit orders for one instrument.
// A single RWMutex guards the book, the trade log and the sequence counter:
// Submit is the only writer, snapshots and trade reads share the read lock.
type Engine struct {
	mu       sync.RWMutex
	config   EngineConfig
	book     *OrderBook
	trades   *storage.InMemoryTradeStore
	sequence int64
	closed   bool

	publisher *publisher
	store     storage.TradeStore
	cache     storage.BookCache

	now func() time.Time
}

// fill is one planned match against a resting order
type fill struct {
	maker    Order
	quantity decimal.Decimal
}

func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultEngineConfig())
}

func NewEngineWithConfig(cfg EngineConfig) *Engine {
	return NewEngineWithStores(cfg, nil, nil)
}

// NewEngineWithStores creates an engine that forwards trades to store and book snapshots
// to cache. Either may be nil.
func NewEngineWithStores(cfg EngineConfig, store storage.TradeStore, cache storage.BookCache) *Engine {
	if cfg.Pair == "" {
		cfg.Pair = types.BTCZAR
	}
	if cfg.RecentTradesWindow < 1 {
		cfg.RecentTradesWindow = DefaultEngineConfig().RecentTradesWindow
	}
	if cfg.TradeHistorySize < cfg.RecentTradesWindow {
		cfg.TradeHistorySize = cfg.RecentTradesWindow
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = DefaultEngineConfig().PublishTimeout
	}

	engine := &Engine{
		config:   cfg,
		book:     NewOrderBook(),
		trades:   storage.NewInMemoryTradeStore(cfg.TradeHistorySize),
		sequence: cfg.SequenceStart,
		store:    store,
		cache:    cache,
		now:      time.Now,
	}

	if store != nil || cache != nil {
		engine.publisher = newPublisher(cfg.PublishBuffer, cfg.PublishTimeout, cfg.Pair, store, cache, engine.OrderBook)
		go engine.publisher.Start()
	}

	return engine
}

// Pair returns the instrument this engine trades
func (e *Engine) Pair() types.Pair {
	return e.config.Pair
}

// Submit validates and matches a limit order, resting any remainder on its own side
func (e *Engine) Submit(ctx context.Context, req LimitOrderRequest) (types.SubmitResult, error) {
	if err := ctx.Err(); err != nil {
		return types.SubmitResult{}, err
	}

	if err := Validate(req); err != nil {
		return types.SubmitResult{}, err
	}

	pair, err := types.ParsePair(req.Pair)
	if err != nil {
		return types.SubmitResult{}, types.NewValidationError("pair", err.Error())
	}

	if !req.Options.IsDefault() {
		logger.Debug("Order options are accepted but not enforced", map[string]interface{}{
			"customer_order_id": req.CustomerOrderID,
			"post_only":         req.Options.PostOnly,
			"time_in_force":     req.Options.TimeInForce,
			"allow_margin":      req.Options.AllowMargin,
			"reduce_only":       req.Options.ReduceOnly,
		})
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return types.SubmitResult{}, ErrEngineClosed
	}

	now := e.now()
	incoming := types.NewOrder(req, pair, now)

	fills, remaining := e.plan(incoming)
	if err := e.check(fills); err != nil {
		logger.Error("Rejected order on internal check", map[string]interface{}{
			"order_id": incoming.ID,
			"error":    err.Error(),
		})
		return types.SubmitResult{}, err
	}

	trades := e.commit(incoming, fills, now)

	if remaining.IsPositive() {
		incoming.Quantity = remaining
		e.book.Insert(incoming)
	}

	e.trades.Append(trades...)

	for _, trade := range trades {
		logger.Info("Trade executed", map[string]interface{}{
			"trade_id":    trade.ID,
			"sequence_id": trade.SequenceID,
			"price":       trade.Price.String(),
			"quantity":    trade.Quantity.String(),
			"taker_side":  trade.TakerSide.String(),
			"pair":        trade.Pair.String(),
		})
	}

	if e.publisher != nil {
		e.publisher.enqueue(bookEvent{trades: trades})
	}

	return types.SubmitResult{
		OrderID:         incoming.ID,
		CustomerOrderID: incoming.CustomerOrderID,
		Trades:          trades,
	}, nil
}

// crosses reports whether an incoming order can trade against a resting order
func crosses(incoming, resting Order) bool {
	if incoming.Side == Buy {
		return incoming.Price.GreaterThanOrEqual(resting.Price) // Buy at or above ask
	}
	return incoming.Price.LessThanOrEqual(resting.Price) // Sell at or below bid
}

// plan walks the opposite side in priority order without touching the book
func (e *Engine) plan(incoming Order) ([]fill, decimal.Decimal) {
	var fills []fill
	remaining := incoming.Quantity

	e.book.ascend(incoming.Side.Opposite(), func(resting Order) bool {
		if !remaining.IsPositive() || !crosses(incoming, resting) {
			return false
		}

		quantity := decimal.Min(remaining, resting.Quantity)
		fills = append(fills, fill{maker: resting, quantity: quantity})
		remaining = remaining.Sub(quantity)
		return true
	})

	return fills, remaining
}

func (e *Engine) check(fills []fill) error {
	if int64(len(fills)) > math.MaxInt64-e.sequence {
		return types.NewInternalError("submit", fmt.Errorf("sequence counter would overflow after %d", e.sequence))
	}

	for _, f := range fills {
		if !f.quantity.IsPositive() {
			return types.NewInternalError("submit", fmt.Errorf("non-positive fill %s against order %s", f.quantity, f.maker.ID))
		}
		if f.quantity.GreaterThan(f.maker.Quantity) {
			return types.NewInternalError("submit", fmt.Errorf("fill %s exceeds resting quantity %s of order %s", f.quantity, f.maker.Quantity, f.maker.ID))
		}
	}

	return nil
}

// commit applies planned fills: trades at the maker price, resting quantities reduced,
// exhausted makers removed
func (e *Engine) commit(incoming Order, fills []fill, now time.Time) []Trade {
	if len(fills) == 0 {
		return nil
	}

	makerSide := incoming.Side.Opposite()
	trades := make([]Trade, 0, len(fills))

	for _, f := range fills {
		e.sequence++
		trades = append(trades, Trade{
			ID:           uuid.NewString(),
			Price:        f.maker.Price, // Always execute at resting order price
			Quantity:     f.quantity,
			Pair:         incoming.Pair,
			TradedAt:     now,
			TakerSide:    incoming.Side,
			SequenceID:   e.sequence,
			QuoteVolume:  f.maker.Price.Mul(f.quantity),
			MakerOrderID: f.maker.ID,
			TakerOrderID: incoming.ID,
		})

		e.book.update(makerSide, f.maker.ID, f.maker.Quantity.Sub(f.quantity))
	}

	e.book.RemoveIf(makerSide, Order.IsFilled)

	return trades
}

// OrderBook returns a copy of the book with a fresh timestamp and the current sequence number
func (e *Engine) OrderBook() types.OrderBook {
	e.mu.RLock()
	defer e.mu.RUnlock()

	book := types.OrderBook{
		Asks:           e.book.Orders(Sell),
		Bids:           e.book.Orders(Buy),
		LastChange:     e.now(),
		SequenceNumber: e.sequence,
	}

	logger.Debug("Order book snapshot", map[string]interface{}{
		"bids":            len(book.Bids),
		"asks":            len(book.Asks),
		"sequence_number": book.SequenceNumber,
	})

	return book
}

// RecentTrades returns the newest trades by execution time, ties broken by sequence id,
// capped at the configured window
func (e *Engine) RecentTrades() []Trade {
	e.mu.RLock()
	trades := e.trades.Recent(0)
	e.mu.RUnlock()

	slices.SortStableFunc(trades, func(a, b Trade) int {
		if c := b.TradedAt.Compare(a.TradedAt); c != 0 {
			return c
		}
		switch {
		case a.SequenceID > b.SequenceID:
			return -1
		case a.SequenceID < b.SequenceID:
			return 1
		}
		return 0
	})

	if len(trades) > e.config.RecentTradesWindow {
		trades = trades[:e.config.RecentTradesWindow]
	}
	return trades
}

// Order returns a resting order by id
func (e *Engine) Order(id string) (Order, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	order, ok := e.book.Get(id)
	if !ok {
		return Order{}, types.ErrOrderNotFound
	}
	return order, nil
}

// SequenceNumber returns the sequence id of the last trade, or the start value before any trade
func (e *Engine) SequenceNumber() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sequence
}

// Depth returns the number of resting bids and asks
func (e *Engine) Depth() (bids, asks int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.book.Len(Buy), e.book.Len(Sell)
}

// Close stops accepting orders, flushes queued events and closes the sinks
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	if e.publisher != nil {
		e.publisher.close()
	}

	var lastErr error
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			lastErr = err
		}
	}
	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
