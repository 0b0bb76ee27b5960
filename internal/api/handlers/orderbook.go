package handlers

import (
	"net/http"
)

// GetOrderBookHandler handles GET /api/{pair}/orderbook
func (eh *EngineHolder) GetOrderBookHandler(w http.ResponseWriter, r *http.Request) {
	if _, httpErr := eh.resolvePair(r); httpErr != nil {
		writeErrorResponse(w, httpErr)
		return
	}

	writeJSON(w, http.StatusOK, eh.Engine.OrderBook())
}
