package matching

import (
	"context"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/PxPatel/orderbook-engine/internal/logger"
)

// Benchmark KPIs:
// - Orders/second throughput
// - Average latency per operation
// - Scalability with book depth

func benchRequest(side SideType, price decimal.Decimal, qty int64) LimitOrderRequest {
	return LimitOrderRequest{
		Side:     side,
		Price:    price,
		Quantity: decimal.NewFromInt(qty),
		Pair:     "BTCZAR",
	}
}

// BenchmarkInsertBid benchmarks resting bids across 100 price levels
func BenchmarkInsertBid(b *testing.B) {
	ob := NewOrderBook()
	orders := make([]Order, b.N)
	for i := 0; i < b.N; i++ {
		orders[i] = Order{
			ID:       strconv.Itoa(i),
			Side:     Buy,
			Price:    decimal.New(10000+int64(i%100), -2),
			Quantity: decimal.NewFromInt(10),
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ob.Insert(orders[i])
	}

	b.ReportMetric(float64(b.N)/b.Elapsed().Seconds(), "adds/sec")
}

func BenchmarkOrderBookDepth_10(b *testing.B) {
	benchmarkOrderBookDepth(b, 10)
}

func BenchmarkOrderBookDepth_1000(b *testing.B) {
	benchmarkOrderBookDepth(b, 1000)
}

func BenchmarkOrderBookDepth_10000(b *testing.B) {
	benchmarkOrderBookDepth(b, 10000)
}

// benchmarkOrderBookDepth submits small crossing orders against a book of depth levels per side
func benchmarkOrderBookDepth(b *testing.B, depth int) {
	logger.SetMinLevel(logger.ERROR)
	defer logger.SetMinLevel(logger.INFO)

	engine := NewEngine()
	defer engine.Close()
	ctx := context.Background()

	for i := 0; i < depth; i++ {
		engine.Submit(ctx, benchRequest(Buy, decimal.New(10000-int64(i), -2), 1_000_000))
		engine.Submit(ctx, benchRequest(Sell, decimal.New(10100+int64(i), -2), 1_000_000))
	}

	crossBuy := benchRequest(Buy, decimal.NewFromInt(102), 5)
	crossSell := benchRequest(Sell, decimal.NewFromInt(99), 5)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			engine.Submit(ctx, crossBuy)
		} else {
			engine.Submit(ctx, crossSell)
		}
	}

	b.ReportMetric(float64(b.N)/b.Elapsed().Seconds(), "orders/sec")
}

// BenchmarkSnapshot measures the cost of copying a 1000-order book
func BenchmarkSnapshot(b *testing.B) {
	engine := NewEngine()
	defer engine.Close()

	logger.SetMinLevel(logger.ERROR)
	defer logger.SetMinLevel(logger.INFO)

	for i := 0; i < 500; i++ {
		engine.Submit(context.Background(), benchRequest(Buy, decimal.NewFromInt(int64(100-i%50)), 1))
		engine.Submit(context.Background(), benchRequest(Sell, decimal.NewFromInt(int64(200+i%50)), 1))
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = engine.OrderBook()
	}
}
