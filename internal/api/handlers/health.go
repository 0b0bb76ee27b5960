package handlers

import (
	"net/http"
	"time"

	"github.com/PxPatel/orderbook-engine/internal/api/models"
)

const Version = "1.0.0"

var startTime = time.Now()

// HealthHandler handles health check requests
func (eh *EngineHolder) HealthHandler(w http.ResponseWriter, r *http.Request) {
	bids, asks := eh.Engine.Depth()

	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:         "healthy",
		Timestamp:      time.Now().UTC(),
		UptimeSeconds:  int64(time.Since(startTime).Seconds()),
		Version:        Version,
		Pair:           eh.Engine.Pair().String(),
		Bids:           bids,
		Asks:           asks,
		SequenceNumber: eh.Engine.SequenceNumber(),
	})
}
