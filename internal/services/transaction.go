package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/sgolovanov/finance-tracker/internal/logger"
	"github.com/sgolovanov/finance-tracker/internal/models"
)

// TransactionReader defines read operations over the transaction store.
type TransactionReader interface {
	List(ctx context.Context) ([]models.TransactionDB, error)                  // Returns all transactions, date desc then createdAt desc
	GetByID(ctx context.Context, id string) (*models.TransactionDB, error)     // Returns one transaction or sql.ErrNoRows
}

// TransactionWriter defines write operations over the transaction store.
type TransactionWriter interface {
	Save(ctx context.Context, amount float64, date time.Time, description, category string) (*models.TransactionDB, error)              // Inserts a transaction
	Update(ctx context.Context, id string, amount float64, date time.Time, description, category string) (*models.TransactionDB, error) // Replaces mutable fields
	Delete(ctx context.Context, id string) error                                                                                        // Removes a transaction
}

// SummaryInvalidator marks cached dashboard summaries stale after a write.
type SummaryInvalidator interface {
	Invalidate(ctx context.Context) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// TransactionPatch carries the fields of a partial update. Nil fields keep
// their stored value; a non-nil empty Category means "uncategorized".
type TransactionPatch struct {
	Amount      *float64
	Date        *time.Time
	Description *string
	Category    *string
}

// TransactionService handles transaction CRUD and Kafka publishing.
type TransactionService struct {
	readRepo    TransactionReader
	writeRepo   TransactionWriter
	cache       SummaryInvalidator
	kafkaWriter KafkaWriter
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	readRepo TransactionReader,
	writeRepo TransactionWriter,
	cache SummaryInvalidator,
	kafkaWriter KafkaWriter,
) *TransactionService {
	return &TransactionService{
		readRepo:    readRepo,
		writeRepo:   writeRepo,
		cache:       cache,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a transaction change event to Kafka.
func (s *TransactionService) publishEvent(ctx context.Context, eventType string, txn *models.TransactionDB) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", txn.TransactionID)
		return
	}

	event := models.TransactionEvent{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		Timestamp:     time.Now().Unix(),
		TransactionID: txn.TransactionID,
		Amount:        txn.Amount,
		Category:      txn.Category,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction event for Kafka", "transaction_id", txn.TransactionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(txn.TransactionID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish transaction event to Kafka", "transaction_id", txn.TransactionID, "error", err)
	} else {
		logger.Log.Infow("Transaction event published to Kafka", "transaction_id", txn.TransactionID, "event_type", eventType)
	}
}

// invalidateSummary bumps the summary cache version. Failures are logged and
// swallowed: the cached summary expires on its TTL anyway.
func (s *TransactionService) invalidateSummary(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Log.Errorw("failed to invalidate summary cache", "error", err)
	}
}

// List returns all transactions ordered by date descending, then createdAt
// descending.
func (svc *TransactionService) List(ctx context.Context) ([]models.TransactionDB, error) {
	txns, err := svc.readRepo.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "error", err)
		return nil, transient(err)
	}
	return txns, nil
}

// Get returns the transaction with the given id.
func (svc *TransactionService) Get(ctx context.Context, id string) (*models.TransactionDB, error) {
	txn, err := svc.readRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		logger.Log.Errorw("failed to get transaction", "id", id, "error", err)
		return nil, transient(err)
	}
	return txn, nil
}

// Create validates the fields and inserts a new transaction. The store
// assigns id and createdAt.
func (svc *TransactionService) Create(ctx context.Context, amount float64, date time.Time, description, category string) (*models.TransactionDB, error) {
	candidate := models.TransactionDB{
		Amount:      amount,
		Date:        date,
		Description: description,
		Category:    category,
	}
	if messages := models.ValidateTransaction(&candidate); messages != nil {
		logger.Log.Errorw("transaction validation failed", "messages", messages)
		return nil, &ValidationError{Messages: messages}
	}

	txn, err := svc.writeRepo.Save(ctx, amount, date, description, category)
	if err != nil {
		logger.Log.Errorw("failed to save transaction", "error", err)
		return nil, transient(err)
	}

	svc.publishEvent(ctx, models.EventTransactionCreated, txn)
	svc.invalidateSummary(ctx)

	return txn, nil
}

// Update applies a partial or full update to the transaction with the given
// id. Unset patch fields keep their stored value; id and createdAt are never
// changed.
func (svc *TransactionService) Update(ctx context.Context, id string, patch TransactionPatch) (*models.TransactionDB, error) {
	existing, err := svc.readRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		logger.Log.Errorw("failed to get transaction for update", "id", id, "error", err)
		return nil, transient(err)
	}

	merged := *existing
	if patch.Amount != nil {
		merged.Amount = *patch.Amount
	}
	if patch.Date != nil {
		merged.Date = *patch.Date
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Category != nil {
		merged.Category = *patch.Category
	}

	if messages := models.ValidateTransaction(&merged); messages != nil {
		logger.Log.Errorw("transaction validation failed", "id", id, "messages", messages)
		return nil, &ValidationError{Messages: messages}
	}

	txn, err := svc.writeRepo.Update(ctx, id, merged.Amount, merged.Date, merged.Description, merged.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Removed between the read and the write: last-write-wins, no lock.
			return nil, ErrTransactionNotFound
		}
		logger.Log.Errorw("failed to update transaction", "id", id, "error", err)
		return nil, transient(err)
	}

	svc.publishEvent(ctx, models.EventTransactionUpdated, txn)
	svc.invalidateSummary(ctx)

	return txn, nil
}

// Delete permanently removes the transaction with the given id.
func (svc *TransactionService) Delete(ctx context.Context, id string) error {
	existing, err := svc.readRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTransactionNotFound
		}
		logger.Log.Errorw("failed to get transaction for delete", "id", id, "error", err)
		return transient(err)
	}

	if err := svc.writeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTransactionNotFound
		}
		logger.Log.Errorw("failed to delete transaction", "id", id, "error", err)
		return transient(err)
	}

	svc.publishEvent(ctx, models.EventTransactionDeleted, existing)
	svc.invalidateSummary(ctx)

	return nil
}
