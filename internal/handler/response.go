package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/vyrodovalexey/itemserver/internal/model"
)

// Response messages.
const (
	msgWelcome         = "Welcome to the item API! Navigate to /api/v1/items for data."
	msgItemDeleted     = "Item deleted successfully."
	msgInvalidID       = "Invalid or missing item ID in URI. Expected format: /api/v1/items/{id}"
	msgItemNotFound    = "Item with specified ID not found."
	msgRouteNotFound   = "The requested resource or endpoint was not found on this server."
	msgCapacity        = "Cannot create more items, in-memory storage limit reached."
	msgInternal        = "An unexpected error occurred while processing the request."
	msgEncodeFailure   = "Failed to encode response body."
	msgInvalidValue    = "Item 'value' must be a number within the 64-bit integer range."
	msgInvalidItemName = "Item 'name' must be between 1 and 63 bytes long."
)

// encodeFailureBody is sent when a response body cannot be marshalled.
var encodeFailureBody = []byte(`{"status_code":500,"error":"Internal Server Error","message":"` +
	msgEncodeFailure + `"}`)

// WriteJSON marshals data and writes it with the given status code. Every
// response carries a JSON content type and a permissive CORS origin. If data
// cannot be marshalled a 500 error body is written instead.
func WriteJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		logger.Error("failed to encode response", zap.Int("status", status), zap.Error(err))
		status = http.StatusInternalServerError
		body = encodeFailureBody
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		logger.Debug("failed to write response", zap.Error(err))
	}
}

// WriteError writes the uniform error body for status.
func WriteError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	WriteJSON(w, logger, status, NewErrorResponse(status, message))
}

// NewErrorResponse builds the error body for status, using the standard
// status text as the short error phrase.
func NewErrorResponse(status int, message string) model.ErrorResponse {
	return model.ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	}
}
