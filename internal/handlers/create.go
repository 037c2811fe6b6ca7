package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sgolovanov/finance-tracker/internal/models"
)

// TransactionCreator defines the interface that the service must implement.
type TransactionCreator interface {
	Create(ctx context.Context, amount float64, date time.Time, description, category string) (*models.TransactionDB, error)
}

// CreateTransactionRequest represents the JSON body for creating a transaction
// swagger:model CreateTransactionRequest
type CreateTransactionRequest struct {
	// Amount
	// required: true
	// default: 20.5
	Amount float64 `json:"amount"`

	// Date as ISO-8601, e.g. 2024-01-15 or 2024-01-15T00:00:00Z
	// required: true
	// default: 2024-01-15
	Date string `json:"date"`

	// Description, at most 200 characters
	// required: true
	// default: Lunch
	Description string `json:"description"`

	// Category: one of the predefined labels, or empty for uncategorized
	// default: Food
	Category string `json:"category"`
}

// CreateTransactionResponse represents a successful create response
// swagger:model CreateTransactionResponse
type CreateTransactionResponse struct {
	// Always true
	Success bool `json:"success"`

	// The stored transaction with assigned id and createdAt
	Data *models.TransactionDB `json:"data"`
}

// NewCreateTransactionHandler returns an HTTP handler creating a transaction.
// @Summary Create a transaction
// @Description Validates all field constraints and inserts a new transaction. The store assigns id and createdAt.
// @Tags transactions
// @Accept json
// @Produce json
// @Param createTransactionRequest body handlers.CreateTransactionRequest true "Transaction fields"
// @Success 201 {object} handlers.CreateTransactionResponse "Transaction created"
// @Failure 400 {object} handlers.MessageResponse "Validation failed, message lists every violated field"
// @Router /transactions [post]
func NewCreateTransactionHandler(svc TransactionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "Date must be a valid date"})
			return
		}

		txn, err := svc.Create(r.Context(), req.Amount, date, req.Description, req.Category)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, CreateTransactionResponse{
			Success: true,
			Data:    txn,
		})
	}
}
