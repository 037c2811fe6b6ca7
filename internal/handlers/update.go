package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sgolovanov/finance-tracker/internal/models"
	"github.com/sgolovanov/finance-tracker/internal/services"
)

// TransactionUpdater defines the interface that the service must implement.
type TransactionUpdater interface {
	Update(ctx context.Context, id string, patch services.TransactionPatch) (*models.TransactionDB, error)
}

// UpdateTransactionRequest represents the JSON body for updating a transaction.
// Omitted fields keep their stored value.
// swagger:model UpdateTransactionRequest
type UpdateTransactionRequest struct {
	// Amount
	// default: 25.0
	Amount *float64 `json:"amount"`

	// Date as ISO-8601
	// default: 2024-01-15
	Date *string `json:"date"`

	// Description, at most 200 characters
	// default: Long lunch
	Description *string `json:"description"`

	// Category: one of the predefined labels, or empty for uncategorized
	// default: Food
	Category *string `json:"category"`
}

// UpdateTransactionResponse represents a successful update response
// swagger:model UpdateTransactionResponse
type UpdateTransactionResponse struct {
	// Always true
	Success bool `json:"success"`

	// The transaction after the update
	Data *models.TransactionDB `json:"data"`
}

// NewUpdateTransactionHandler returns an HTTP handler applying a partial or
// full update to a transaction.
// @Summary Update a transaction
// @Description Applies the given fields to the transaction with the given id. Omitted fields are unchanged; id and createdAt can never change.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction id"
// @Param updateTransactionRequest body handlers.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} handlers.UpdateTransactionResponse "Transaction updated"
// @Failure 404 {object} handlers.MessageResponse "Transaction not found"
// @Failure 400 {object} handlers.MessageResponse "Validation failed"
// @Router /transactions/{id} [put]
func NewUpdateTransactionHandler(svc TransactionUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}

		patch := services.TransactionPatch{
			Amount:      req.Amount,
			Description: req.Description,
			Category:    req.Category,
		}
		if req.Date != nil {
			date, err := parseDate(*req.Date)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "Date must be a valid date"})
				return
			}
			patch.Date = &date
		}

		txn, err := svc.Update(r.Context(), id, patch)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, UpdateTransactionResponse{
			Success: true,
			Data:    txn,
		})
	}
}
