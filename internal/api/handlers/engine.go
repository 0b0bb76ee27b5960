package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/PxPatel/orderbook-engine/internal/api/models"
	"github.com/PxPatel/orderbook-engine/internal/logger"
	"github.com/PxPatel/orderbook-engine/internal/matching"
	"github.com/PxPatel/orderbook-engine/internal/types"
)

// EngineHolder wraps the matching engine for dependency injection
type EngineHolder struct {
	Engine *matching.Engine
}

// NewEngineHolder creates a new engine holder
func NewEngineHolder(engine *matching.Engine) *EngineHolder {
	return &EngineHolder{Engine: engine}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// writeErrorResponse writes an error response
func writeErrorResponse(w http.ResponseWriter, httpErr *models.HTTPError) {
	logger.Warn("Request failed", map[string]interface{}{
		"message": httpErr.Message,
		"status":  httpErr.StatusCode,
	})

	writeJSON(w, httpErr.StatusCode, httpErr.Response())
}

// resolvePair reads the {pair} path variable. Unknown symbols are a bad request,
// known symbols the engine does not trade have no book.
func (eh *EngineHolder) resolvePair(r *http.Request) (types.Pair, *models.HTTPError) {
	pair, err := types.ParsePair(mux.Vars(r)["pair"])
	if err != nil {
		return "", models.ErrBadRequest(err.Error())
	}
	if pair != eh.Engine.Pair() {
		return "", models.ErrNotFound("no order book for " + pair.String())
	}
	return pair, nil
}
