package models

// Transaction change event types published to Kafka.
const (
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
	EventTransactionDeleted = "transaction.deleted"
)

// TransactionEvent represents a transaction change published to Kafka after a successful write.
type TransactionEvent struct {
	EventID       string  `json:"event_id"`       // EventID is a unique identifier for the event.
	EventType     string  `json:"event_type"`     // EventType is one of the EventTransaction* constants.
	Timestamp     int64   `json:"timestamp"`      // Timestamp is the Unix timestamp (in seconds) when the event was emitted.
	TransactionID string  `json:"transaction_id"` // TransactionID is the identifier of the affected transaction.
	Amount        float64 `json:"amount"`         // Amount is the transaction amount at the time of the event.
	Category      string  `json:"category"`       // Category is the transaction category at the time of the event.
}
