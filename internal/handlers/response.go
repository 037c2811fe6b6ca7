package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sgolovanov/finance-tracker/internal/logger"
	"github.com/sgolovanov/finance-tracker/internal/services"
)

// ErrorResponse is the failure envelope carrying raw error text
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Always false
	Success bool `json:"success"`

	// Raw error text
	// default: connection refused
	Error string `json:"error"`
}

// MessageResponse is the failure envelope carrying a user-facing message
// (validation failures and not-found)
// swagger:model MessageResponse
type MessageResponse struct {
	// Always false
	Success bool `json:"success"`

	// User-facing message; validation messages are comma-joined
	// default: Transaction not found
	Message string `json:"message"`
}

// writeJSON writes the given payload with the status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeServiceError maps the service error taxonomy onto the HTTP envelope:
// not-found is a 404 message, validation a 400 message with every field
// listed, everything else (transient failures included) a 400 raw error.
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, services.ErrTransactionNotFound):
		writeJSON(w, http.StatusNotFound, MessageResponse{Message: "Transaction not found"})
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: validationErr.Error()})
	default:
		logger.Log.Errorw("request failed", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
}

// dateLayouts are the accepted request date formats: full RFC 3339 timestamps
// and bare calendar dates as submitted by the form layer.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDate parses a request date string. An empty string returns the zero
// time so required-ness is reported by validation rather than as a parse
// failure.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
