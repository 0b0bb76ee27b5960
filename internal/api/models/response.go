package models

import "time"

// LimitOrderResponse is returned for every accepted limit order
type LimitOrderResponse struct {
	ID              string `json:"id"`
	CustomerOrderID string `json:"customerOrderId"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	UptimeSeconds  int64     `json:"uptime_seconds"`
	Version        string    `json:"version"`
	Pair           string    `json:"pair"`
	Bids           int       `json:"bids"`
	Asks           int       `json:"asks"`
	SequenceNumber int64     `json:"sequence_number"`
}
