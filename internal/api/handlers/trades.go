package handlers

import (
	"net/http"
	"strconv"

	"github.com/PxPatel/orderbook-engine/internal/logger"
)

// GetTradeHistoryHandler handles GET /api/{pair}/tradehistory.
// An optional limit query parameter can shorten, never extend, the recent trades window.
func (eh *EngineHolder) GetTradeHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if _, httpErr := eh.resolvePair(r); httpErr != nil {
		writeErrorResponse(w, httpErr)
		return
	}

	trades := eh.Engine.RecentTrades()

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 0 && limit < len(trades) {
			trades = trades[:limit]
		}
	}

	logger.Debug("Retrieved trades", map[string]interface{}{
		"count": len(trades),
	})

	writeJSON(w, http.StatusOK, trades)
}
