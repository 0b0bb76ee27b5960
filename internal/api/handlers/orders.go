package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/PxPatel/orderbook-engine/internal/api/models"
	"github.com/PxPatel/orderbook-engine/internal/logger"
)

// SubmitLimitOrderHandler handles POST /api/orders/limit
func (eh *EngineHolder) SubmitLimitOrderHandler(w http.ResponseWriter, r *http.Request) {
	var body models.LimitOrderRequest

	// Parse request body
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorResponse(w, models.ErrBadRequest("Invalid JSON format: "+err.Error()))
		return
	}

	req, httpErr := body.ToEngineRequest()
	if httpErr != nil {
		writeErrorResponse(w, httpErr)
		return
	}

	result, err := eh.Engine.Submit(r.Context(), req)
	if err != nil {
		writeErrorResponse(w, models.FromEngineError(err))
		return
	}

	logger.Info("Order submitted successfully", map[string]interface{}{
		"order_id":          result.OrderID,
		"customer_order_id": result.CustomerOrderID,
		"side":              req.Side.String(),
		"pair":              req.Pair,
		"trades":            len(result.Trades),
	})

	writeJSON(w, http.StatusOK, models.LimitOrderResponse{
		ID:              result.OrderID,
		CustomerOrderID: result.CustomerOrderID,
	})
}

// GetOrderHandler handles GET /api/orders/{id} for resting orders
func (eh *EngineHolder) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, err := eh.Engine.Order(mux.Vars(r)["id"])
	if err != nil {
		writeErrorResponse(w, models.FromEngineError(err))
		return
	}

	writeJSON(w, http.StatusOK, order)
}
