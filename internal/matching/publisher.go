package matching

import (
	"context"
	"sync"
	"time"

	"github.com/PxPatel/orderbook-engine/internal/logger"
	"github.com/PxPatel/orderbook-engine/internal/storage"
	"github.com/PxPatel/orderbook-engine/internal/types"
)

// bookEvent is queued by the engine after every accepted order
type bookEvent struct {
	trades []Trade
}

// publisher forwards trades and book snapshots to the configured sinks from its own goroutine,
// so slow sinks never hold the book lock
type publisher struct {
	events   chan bookEvent
	store    storage.TradeStore
	cache    storage.BookCache
	pair     types.Pair
	snapshot func() types.OrderBook
	timeout  time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

func newPublisher(buffer int, timeout time.Duration, pair types.Pair, store storage.TradeStore, cache storage.BookCache, snapshot func() types.OrderBook) *publisher {
	if buffer < 1 {
		buffer = 1
	}
	return &publisher{
		events:   make(chan bookEvent, buffer),
		store:    store,
		cache:    cache,
		pair:     pair,
		snapshot: snapshot,
		timeout:  timeout,
		done:     make(chan struct{}),
	}
}

// Start drains the event channel until close is called
func (p *publisher) Start() {
	defer close(p.done)
	for event := range p.events {
		p.handle(event)
	}
}

// enqueue never blocks; a full buffer drops the event
func (p *publisher) enqueue(event bookEvent) bool {
	select {
	case p.events <- event:
		return true
	default:
		logger.Warn("Publish buffer full, dropping book event", map[string]interface{}{
			"trades": len(event.trades),
		})
		return false
	}
}

func (p *publisher) handle(event bookEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if p.store != nil && len(event.trades) > 0 {
		if err := p.store.SaveBatch(ctx, event.trades); err != nil {
			logger.Error("Failed to persist trades", map[string]interface{}{
				"trades": len(event.trades),
				"error":  err.Error(),
			})
		}
	}

	if p.cache != nil {
		book := p.snapshot()
		if err := p.cache.SetOrderBook(ctx, p.pair, book); err != nil {
			logger.Error("Failed to cache order book", map[string]interface{}{
				"pair":  p.pair.String(),
				"error": err.Error(),
			})
		}
	}
}

// close stops accepting events and waits for the queued ones to be handled
func (p *publisher) close() {
	p.closeOnce.Do(func() {
		close(p.events)
	})
	<-p.done
}
