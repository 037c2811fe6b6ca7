package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func txnColumns() []string {
	return []string{"transaction_id", "amount", "date", "description", "category", "created_at"}
}

func TestTransactionReadRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionReadRepository(db)

	id1, id2 := uuid.NewString(), uuid.NewString()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY date DESC, created_at DESC")).
		WillReturnRows(sqlmock.NewRows(txnColumns()).
			AddRow(id1, 20.0, date, "Lunch", "Food", created).
			AddRow(id2, 5.0, date, "Bus ticket", "Transport", created.Add(-time.Hour)))

	txns, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, txns, 2)
	assert.Equal(t, id1, txns[0].TransactionID)
	assert.Equal(t, "Bus ticket", txns[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionReadRepository_List_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionReadRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions")).
		WillReturnRows(sqlmock.NewRows(txnColumns()))

	txns, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, txns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionReadRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionReadRepository(db)

	id := uuid.New()
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	created := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE transaction_id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(txnColumns()).
			AddRow(id.String(), 30.0, date, "Groceries run", "Groceries", created))

	txn, err := repo.GetByID(context.Background(), id.String())
	assert.NoError(t, err)
	assert.Equal(t, id.String(), txn.TransactionID)
	assert.Equal(t, 30.0, txn.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionReadRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionReadRepository(db)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE transaction_id = $1")).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	txn, err := repo.GetByID(context.Background(), id.String())
	assert.Nil(t, txn)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTransactionReadRepository_GetByID_InvalidID(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewTransactionReadRepository(db)

	txn, err := repo.GetByID(context.Background(), "not-a-uuid")
	assert.Nil(t, txn)
	assert.ErrorIs(t, err, ErrInvalidTransactionID)
}

func TestTransactionWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionWriteRepository(db, nil)

	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	created := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions")).
		WithArgs(sqlmock.AnyArg(), 12.5, date, "Cinema", "Entertainment").
		WillReturnRows(sqlmock.NewRows(txnColumns()).
			AddRow(uuid.NewString(), 12.5, date, "Cinema", "Entertainment", created))

	txn, err := repo.Save(context.Background(), 12.5, date, "Cinema", "Entertainment")
	assert.NoError(t, err)
	assert.NotEmpty(t, txn.TransactionID)
	assert.Equal(t, created, txn.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionWriteRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionWriteRepository(db, nil)

	id := uuid.New()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE transactions")).
		WithArgs(id, 99.0, date, "Cinema and popcorn", "Entertainment").
		WillReturnRows(sqlmock.NewRows(txnColumns()).
			AddRow(id.String(), 99.0, date, "Cinema and popcorn", "Entertainment", created))

	txn, err := repo.Update(context.Background(), id.String(), 99.0, date, "Cinema and popcorn", "Entertainment")
	assert.NoError(t, err)
	assert.Equal(t, "Cinema and popcorn", txn.Description)
	// created_at is never rewritten by an update
	assert.Equal(t, created, txn.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionWriteRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionWriteRepository(db, nil)

	id := uuid.New()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE transactions")).
		WithArgs(id, 1.0, date, "Ghost", "").
		WillReturnError(sql.ErrNoRows)

	txn, err := repo.Update(context.Background(), id.String(), 1.0, date, "Ghost", "")
	assert.Nil(t, txn)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTransactionWriteRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionWriteRepository(db, nil)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM transactions")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), id.String()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionWriteRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionWriteRepository(db, nil)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM transactions")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), id.String())
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTransactionWriteRepository_Delete_InvalidID(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewTransactionWriteRepository(db, nil)

	err := repo.Delete(context.Background(), "42")
	assert.ErrorIs(t, err, ErrInvalidTransactionID)
}

func TestTransactionWriteRepository_UsesTxFromContext(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM transactions")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	assert.NoError(t, err)

	repo := NewTransactionWriteRepository(db, func(ctx context.Context) *sqlx.Tx { return tx })

	assert.NoError(t, repo.Delete(context.Background(), uuid.NewString()))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
