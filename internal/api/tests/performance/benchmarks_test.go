package performance

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PxPatel/orderbook-engine/internal/api/tests/testutils"
)

// BenchmarkOrderSubmissionThroughput measures orders per second over HTTP
func BenchmarkOrderSubmissionThroughput(b *testing.B) {
	ts := testutils.NewTestServer(b)
	defer ts.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		price := fmt.Sprintf("%d", 100+i%100)
		order := testutils.NewLimitBuyOrder("user", price, "1")
		if i%2 == 1 {
			order = testutils.NewLimitSellOrder("user", price, "1")
		}
		resp := ts.Post("/api/orders/limit", order)
		require.Equal(b, 200, resp.StatusCode)
		resp.Body.Close()
	}

	ordersPerSec := float64(b.N) / b.Elapsed().Seconds()
	b.ReportMetric(ordersPerSec, "orders/sec")
}

// BenchmarkOrderBookSnapshot measures snapshot reads against a populated book
func BenchmarkOrderBookSnapshot(b *testing.B) {
	ts := testutils.NewTestServer(b)
	defer ts.Close()

	for i := 0; i < 200; i++ {
		resp := ts.Post("/api/orders/limit", testutils.NewLimitBuyOrder("user", fmt.Sprintf("%d", 50+i%50), "1"))
		resp.Body.Close()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resp := ts.Get("/api/BTCZAR/orderbook")
		require.Equal(b, 200, resp.StatusCode)
		resp.Body.Close()
	}
}
