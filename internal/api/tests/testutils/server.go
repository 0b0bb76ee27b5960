package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/PxPatel/orderbook-engine/internal/api/handlers"
	"github.com/PxPatel/orderbook-engine/internal/api/routes"
	"github.com/PxPatel/orderbook-engine/internal/matching"
	"github.com/PxPatel/orderbook-engine/internal/storage"
	"github.com/PxPatel/orderbook-engine/internal/types"
)

// TestServer wraps a test HTTP server with the matching engine
type TestServer struct {
	Server       *httptest.Server
	Engine       *matching.Engine
	TradeLogPath string
	t            testing.TB
}

// NewTestServer creates a new test server with a fresh engine writing trades to a temp file
func NewTestServer(t testing.TB) *TestServer {
	tradeLogPath := filepath.Join(t.TempDir(), "test_trades.log")

	fileStore, err := storage.NewFileTradeStore(tradeLogPath)
	require.NoError(t, err, "Failed to open trade log")

	cfg := matching.DefaultEngineConfig()
	cfg.TradeHistorySize = 100
	engine := matching.NewEngineWithStores(cfg, fileStore, nil)

	handler := routes.SetupRoutes(handlers.NewEngineHolder(engine), []string{"*"})
	server := httptest.NewServer(handler)

	return &TestServer{
		Server:       server,
		Engine:       engine,
		TradeLogPath: tradeLogPath,
		t:            t,
	}
}

// Close shuts down the server and flushes the engine's sinks
func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.Engine.Close()
}

// URL returns the base URL for the test server
func (ts *TestServer) URL() string {
	return ts.Server.URL
}

// Get makes a GET request to the test server
func (ts *TestServer) Get(path string) *http.Response {
	resp, err := http.Get(ts.URL() + path)
	require.NoError(ts.t, err, "GET request failed")
	return resp
}

// Post makes a POST request with JSON body
func (ts *TestServer) Post(path string, body interface{}) *http.Response {
	jsonBody, err := json.Marshal(body)
	require.NoError(ts.t, err, "Failed to marshal request body")

	return ts.PostRaw(path, jsonBody)
}

// PostRaw makes a POST request with a raw body
func (ts *TestServer) PostRaw(path string, body []byte) *http.Response {
	resp, err := http.Post(ts.URL()+path, "application/json", bytes.NewReader(body))
	require.NoError(ts.t, err, "POST request failed")
	return resp
}

// DecodeJSON decodes JSON response into target
func DecodeJSON(t testing.TB, resp *http.Response, target interface{}) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	err = json.Unmarshal(body, target)
	require.NoError(t, err, "Failed to decode JSON response: %s", string(body))
}

// ReadTradeLog reads the trade log file. Call after Close to see every trade.
func (ts *TestServer) ReadTradeLog() []types.Trade {
	data, err := os.ReadFile(ts.TradeLogPath)
	if err != nil {
		return []types.Trade{}
	}

	var trades []types.Trade
	decoder := json.NewDecoder(bytes.NewReader(data))
	for {
		var trade types.Trade
		if err := decoder.Decode(&trade); err == io.EOF {
			break
		} else if err != nil {
			ts.t.Fatalf("Failed to decode trade: %v", err)
		}
		trades = append(trades, trade)
	}
	return trades
}

// GetOrderBookDepth returns the number of resting bids and asks
func (ts *TestServer) GetOrderBookDepth() (bids, asks int) {
	return ts.Engine.Depth()
}

func mustDecimal(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
