package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// TransactionDeleter defines the interface that the service must implement.
type TransactionDeleter interface {
	Delete(ctx context.Context, id string) error
}

// DeleteTransactionResponse represents a successful delete response
// swagger:model DeleteTransactionResponse
type DeleteTransactionResponse struct {
	// Always true
	Success bool `json:"success"`

	// Always an empty object
	Data struct{} `json:"data"`
}

// NewDeleteTransactionHandler returns an HTTP handler permanently removing a transaction.
// @Summary Delete a transaction
// @Description Removes the transaction with the given id. There is no soft-delete.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction id"
// @Success 200 {object} handlers.DeleteTransactionResponse "Transaction removed"
// @Failure 404 {object} handlers.MessageResponse "Transaction not found"
// @Failure 400 {object} handlers.ErrorResponse "Malformed id or store unavailable"
// @Router /transactions/{id} [delete]
func NewDeleteTransactionHandler(svc TransactionDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, DeleteTransactionResponse{
			Success: true,
		})
	}
}
