package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sgolovanov/finance-tracker/internal/logger"
	"github.com/sgolovanov/finance-tracker/internal/models"
)

// ErrInvalidTransactionID is returned when a caller-supplied id is not a
// well-formed identifier. It replaces the driver-level cast failure so the
// service layer sees one tagged condition instead of a pgx error.
var ErrInvalidTransactionID = errors.New("invalid transaction id")

// parseTransactionID validates an opaque id string before it reaches a query.
func parseTransactionID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrInvalidTransactionID
	}
	return parsed, nil
}

// TransactionReadRepository handles transaction read operations
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// List returns every transaction ordered by date descending, with createdAt
// descending as the tie-break.
func (r *TransactionReadRepository) List(ctx context.Context) ([]models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, amount, date, description, category, created_at
		FROM transactions
		ORDER BY date DESC, created_at DESC
	`

	var txns []models.TransactionDB
	err := r.db.SelectContext(ctx, &txns, query)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"result_count", len(txns),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return txns, nil
}

// GetByID returns the transaction with the given id, or sql.ErrNoRows if absent.
func (r *TransactionReadRepository) GetByID(ctx context.Context, id string) (*models.TransactionDB, error) {
	parsedID, err := parseTransactionID(id)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT transaction_id, amount, date, description, category, created_at
		FROM transactions
		WHERE transaction_id = $1
	`

	var txn models.TransactionDB
	err = r.db.GetContext(ctx, &txn, query, parsedID)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{parsedID},
		"result", txn,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// TransactionWriteRepository handles transaction write operations
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

func (r *TransactionWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new transaction, assigning its id and creation timestamp,
// and returns the stored row.
func (r *TransactionWriteRepository) Save(ctx context.Context, amount float64, date time.Time, description, category string) (*models.TransactionDB, error) {
	query := `
		INSERT INTO transactions (transaction_id, amount, date, description, category, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING transaction_id, amount, date, description, category, created_at
	`
	args := []any{uuid.New(), amount, date, description, category}

	var txn models.TransactionDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &txn, query, args...)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", txn,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// Update replaces every mutable field of the transaction with the given id
// and returns the stored row. Returns sql.ErrNoRows if the id is absent.
// transaction_id and created_at are never touched.
func (r *TransactionWriteRepository) Update(ctx context.Context, id string, amount float64, date time.Time, description, category string) (*models.TransactionDB, error) {
	parsedID, err := parseTransactionID(id)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE transactions
		SET amount = $2, date = $3, description = $4, category = $5
		WHERE transaction_id = $1
		RETURNING transaction_id, amount, date, description, category, created_at
	`
	args := []any{parsedID, amount, date, description, category}

	var txn models.TransactionDB
	err = sqlx.GetContext(ctx, r.executor(ctx), &txn, query, args...)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", txn,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// Delete removes the transaction with the given id. Returns sql.ErrNoRows if
// nothing was removed.
func (r *TransactionWriteRepository) Delete(ctx context.Context, id string) error {
	parsedID, err := parseTransactionID(id)
	if err != nil {
		return err
	}

	query := `
		DELETE FROM transactions
		WHERE transaction_id = $1
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, parsedID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{parsedID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
