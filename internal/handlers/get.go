package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sgolovanov/finance-tracker/internal/models"
)

// TransactionGetter defines the interface that the service must implement.
type TransactionGetter interface {
	Get(ctx context.Context, id string) (*models.TransactionDB, error)
}

// GetTransactionResponse represents a successful single-transaction response
// swagger:model GetTransactionResponse
type GetTransactionResponse struct {
	// Always true
	Success bool `json:"success"`

	// The requested transaction
	Data *models.TransactionDB `json:"data"`
}

// NewGetTransactionHandler returns an HTTP handler fetching one transaction by id.
// @Summary Get a transaction
// @Description Returns the transaction with the given id.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction id"
// @Success 200 {object} handlers.GetTransactionResponse "The transaction"
// @Failure 404 {object} handlers.MessageResponse "Transaction not found"
// @Failure 400 {object} handlers.ErrorResponse "Malformed id or store unavailable"
// @Router /transactions/{id} [get]
func NewGetTransactionHandler(svc TransactionGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		txn, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, GetTransactionResponse{
			Success: true,
			Data:    txn,
		})
	}
}
