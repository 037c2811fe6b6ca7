package services

import (
	"context"

	"github.com/sgolovanov/finance-tracker/internal/aggregation"
	"github.com/sgolovanov/finance-tracker/internal/logger"
	"github.com/sgolovanov/finance-tracker/internal/models"
)

// RecentTransactionsCount is how many transactions the dashboard shows in its
// "recent" card.
const RecentTransactionsCount = 5

// SummaryLister reads the full transaction list for aggregation.
type SummaryLister interface {
	List(ctx context.Context) ([]models.TransactionDB, error)
}

// SummaryCacheReader fetches and stores cached summaries. GetSummary returns
// the cache version it read; SetSummary stores under that same version so a
// concurrent invalidate cannot re-key a stale snapshot.
type SummaryCacheReader interface {
	GetSummary(ctx context.Context) (*models.Summary, int64, error)
	SetSummary(ctx context.Context, version int64, summary *models.Summary) error
}

// SummaryService computes the dashboard summary over a full list snapshot,
// consulting the versioned cache first.
type SummaryService struct {
	lister SummaryLister
	cache  SummaryCacheReader
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(lister SummaryLister, cache SummaryCacheReader) *SummaryService {
	return &SummaryService{
		lister: lister,
		cache:  cache,
	}
}

// GetSummary returns the cached summary for the current cache version, or
// recomputes it from the store on a miss.
func (svc *SummaryService) GetSummary(ctx context.Context) (*models.Summary, error) {
	// The version is captured before the store snapshot is taken. Writing the
	// computed summary back under this captured version means an invalidate
	// racing the List leaves the snapshot on an already-stale key.
	var version int64
	if svc.cache != nil {
		summary, v, err := svc.cache.GetSummary(ctx)
		if err == nil {
			return summary, nil
		}
		version = v
	}

	txns, err := svc.lister.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list transactions for summary", "error", err)
		return nil, transient(err)
	}

	summary := &models.Summary{
		TotalExpenses:      aggregation.TotalAmount(txns),
		TransactionCount:   len(txns),
		RecentTransactions: aggregation.Recent(txns, RecentTransactionsCount),
		MonthlyTotals:      aggregation.MonthlyTotals(txns),
		CategoryTotals:     aggregation.CategoryTotals(txns),
	}

	if svc.cache != nil {
		if err := svc.cache.SetSummary(ctx, version, summary); err != nil {
			logger.Log.Errorw("failed to cache summary", "error", err)
		}
	}

	return summary, nil
}
