package handlers

import (
	"context"
	"net/http"

	"github.com/sgolovanov/finance-tracker/internal/models"
)

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	List(ctx context.Context) ([]models.TransactionDB, error)
}

// ListTransactionsResponse represents a successful list response
// swagger:model ListTransactionsResponse
type ListTransactionsResponse struct {
	// Always true
	Success bool `json:"success"`

	// All transactions, date descending then createdAt descending
	Data []models.TransactionDB `json:"data"`
}

// NewListTransactionsHandler returns an HTTP handler listing all transactions.
// @Summary List transactions
// @Description Returns every transaction ordered by date descending, with creation time as tie-break.
// @Tags transactions
// @Produce json
// @Success 200 {object} handlers.ListTransactionsResponse "All transactions"
// @Failure 400 {object} handlers.ErrorResponse "Store unavailable"
// @Router /transactions [get]
func NewListTransactionsHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txns, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if txns == nil {
			txns = []models.TransactionDB{}
		}
		writeJSON(w, http.StatusOK, ListTransactionsResponse{
			Success: true,
			Data:    txns,
		})
	}
}
