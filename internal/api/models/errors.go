package models

import (
	"errors"
	"net/http"
	"time"

	"github.com/PxPatel/orderbook-engine/internal/types"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Status    int       `json:"status"`
}

// HTTPError pairs a message with the HTTP status it is reported under
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Response builds the body for this error
func (e *HTTPError) Response() ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now().UTC(),
		Message:   e.Message,
		Status:    e.StatusCode,
	}
}

// NewHTTPError creates a new HTTP error
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// Common error constructors

func ErrBadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

func ErrNotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

func ErrInternal(message string) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message)
}

// FromEngineError maps engine errors: validation to 400, not found to 404, anything else to 500
func FromEngineError(err error) *HTTPError {
	switch {
	case errors.Is(err, types.ErrValidation):
		return ErrBadRequest(err.Error())
	case errors.Is(err, types.ErrOrderNotFound):
		return ErrNotFound(err.Error())
	default:
		return ErrInternal("An unexpected error occurred")
	}
}
