package models

import (
	"time"
)

// Predefined transaction categories. The empty string is also valid and
// means "uncategorized".
const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryUtilities     = "Utilities"
	CategoryRent          = "Rent"
	CategoryShopping      = "Shopping"
	CategoryEntertainment = "Entertainment"
	CategoryHealth        = "Health"
	CategoryEducation     = "Education"
	CategorySalary        = "Salary"
	CategoryGroceries     = "Groceries"
	CategoryBills         = "Bills"
)

// Categories lists every predefined category label in display order.
var Categories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryRent,
	CategoryShopping,
	CategoryEntertainment,
	CategoryHealth,
	CategoryEducation,
	CategorySalary,
	CategoryGroceries,
	CategoryBills,
}

// DescriptionMaxLength is the maximum allowed description length in characters.
const DescriptionMaxLength = 200

// TransactionDB represents a transaction row in the database
type TransactionDB struct {
	TransactionID string    `json:"id" db:"transaction_id"`       // Unique transaction identifier, assigned at insert
	Amount        float64   `json:"amount" db:"amount"`           // Monetary value of the transaction
	Date          time.Time `json:"date" db:"date"`               // Effective calendar date of the transaction
	Description   string    `json:"description" db:"description"` // Free-text description, at most 200 characters
	Category      string    `json:"category" db:"category"`       // One of Categories, or "" for uncategorized
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`    // Insertion timestamp, tie-break sort key
}

// IsValidCategory reports whether c is the empty string or one of the
// predefined category labels.
func IsValidCategory(c string) bool {
	if c == "" {
		return true
	}
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidateTransaction checks every field constraint and returns one message
// per violated field, in field order. A nil slice means the transaction is
// valid.
func ValidateTransaction(txn *TransactionDB) []string {
	var messages []string

	if txn.Amount == 0 {
		messages = append(messages, "Amount is required")
	}
	if txn.Date.IsZero() {
		messages = append(messages, "Date is required")
	}
	if txn.Description == "" {
		messages = append(messages, "Description is required")
	} else if len([]rune(txn.Description)) > DescriptionMaxLength {
		messages = append(messages, "Description cannot exceed 200 characters")
	}
	if !IsValidCategory(txn.Category) {
		messages = append(messages, "Category must be one of the predefined categories")
	}

	return messages
}
