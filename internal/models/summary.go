package models

// MonthTotal is the summed amount for one calendar month.
type MonthTotal struct {
	Month string  `json:"month"` // Year-month key, e.g. "2024-01"
	Total float64 `json:"total"` // Sum of all amounts dated in that month
}

// CategoryTotal is the summed positive amount for one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Summary is the dashboard view over the full transaction list: summary card
// figures, the recent slice, and both chart series.
type Summary struct {
	TotalExpenses      float64         `json:"totalExpenses"` // Unfiltered sum over all transactions, negatives included
	TransactionCount   int             `json:"transactionCount"`
	RecentTransactions []TransactionDB `json:"recentTransactions"` // First entries of the list ordering
	MonthlyTotals      []MonthTotal    `json:"monthlyTotals"`
	CategoryTotals     []CategoryTotal `json:"categoryTotals"`
}
