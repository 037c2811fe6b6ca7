package handlers

import (
	"context"
	"net/http"

	"github.com/sgolovanov/finance-tracker/internal/models"
)

// SummaryGetter defines the interface that the service must implement.
type SummaryGetter interface {
	GetSummary(ctx context.Context) (*models.Summary, error)
}

// SummaryResponse represents a successful dashboard summary response
// swagger:model SummaryResponse
type SummaryResponse struct {
	// Always true
	Success bool `json:"success"`

	// Summary cards, recent transactions and both chart series
	Data *models.Summary `json:"data"`
}

// NewGetSummaryHandler returns an HTTP handler for the dashboard summary.
// @Summary Get the dashboard summary
// @Description Returns the total over all transactions, the five most recent entries, per-month totals and per-category totals of positive amounts.
// @Tags summary
// @Produce json
// @Success 200 {object} handlers.SummaryResponse "Dashboard summary"
// @Failure 400 {object} handlers.ErrorResponse "Store unavailable"
// @Router /summary [get]
func NewGetSummaryHandler(svc SummaryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.GetSummary(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, SummaryResponse{
			Success: true,
			Data:    summary,
		})
	}
}
