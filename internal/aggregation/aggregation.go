package aggregation

import (
	"sort"

	"github.com/sgolovanov/finance-tracker/internal/models"
)

// UncategorizedLabel is the display label substituted for the empty category.
const UncategorizedLabel = "Uncategorized"

// monthKeyLayout renders a date as its year-month grouping key, e.g. "2024-01".
const monthKeyLayout = "2006-01"

// MonthlyTotals groups transactions by the calendar month of their nominal
// date and sums amounts per month, negative amounts included unmodified.
// The result is sorted ascending by month key and does not depend on the
// input order.
func MonthlyTotals(txns []models.TransactionDB) []models.MonthTotal {
	totals := make(map[string]float64)
	for _, txn := range txns {
		key := txn.Date.Format(monthKeyLayout)
		totals[key] += txn.Amount
	}

	result := make([]models.MonthTotal, 0, len(totals))
	for month, total := range totals {
		result = append(result, models.MonthTotal{Month: month, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})
	return result
}

// CategoryTotals groups positive-amount transactions by category, substituting
// UncategorizedLabel for the empty category, and sums amounts per group.
// Groups whose total is not positive are dropped; with the positive-only input
// filter that branch cannot fire, it only guards the output contract. The
// result is sorted by category name and does not depend on the input order.
func CategoryTotals(txns []models.TransactionDB) []models.CategoryTotal {
	totals := make(map[string]float64)
	for _, txn := range txns {
		if txn.Amount <= 0 {
			continue
		}
		category := txn.Category
		if category == "" {
			category = UncategorizedLabel
		}
		totals[category] += txn.Amount
	}

	result := make([]models.CategoryTotal, 0, len(totals))
	for category, total := range totals {
		if total <= 0 {
			continue
		}
		result = append(result, models.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})
	return result
}

// TotalAmount returns the unfiltered sum of all amounts. Unlike CategoryTotals
// it keeps negative amounts, which is the figure the summary cards display.
func TotalAmount(txns []models.TransactionDB) float64 {
	var total float64
	for _, txn := range txns {
		total += txn.Amount
	}
	return total
}

// Recent returns the first n transactions of the given list, preserving its
// order. The store's list ordering (date descending, then createdAt
// descending) makes these the most recent entries.
func Recent(txns []models.TransactionDB, n int) []models.TransactionDB {
	if n < 0 {
		n = 0
	}
	if n > len(txns) {
		n = len(txns)
	}
	return txns[:n]
}
