package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Integration tests spin up real Postgres via Docker; opt in with
// INTEGRATION_TESTS=1.
func skipWithoutDocker(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run container-backed tests")
	}
}

func setupTransactionPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		transaction_id UUID PRIMARY KEY,
		amount NUMERIC(20,2) NOT NULL,
		date TIMESTAMP NOT NULL,
		description VARCHAR(200) NOT NULL,
		category VARCHAR(50) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);`
	_, err = db.Exec(schema)
	assert.NoError(t, err)

	return db, func() {
		db.Close()
		container.Terminate(context.Background())
	}
}

func TestTransactionRepository_Roundtrip(t *testing.T) {
	skipWithoutDocker(t)

	db, cleanup := setupTransactionPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	writer := NewTransactionWriteRepository(db, nil)
	reader := NewTransactionReadRepository(db)

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	saved, err := writer.Save(ctx, 20, date, "Lunch", "Food")
	assert.NoError(t, err)
	assert.NotEmpty(t, saved.TransactionID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := reader.GetByID(ctx, saved.TransactionID)
	assert.NoError(t, err)
	assert.Equal(t, saved.TransactionID, got.TransactionID)
	assert.Equal(t, 20.0, got.Amount)
	assert.Equal(t, "Lunch", got.Description)
	assert.Equal(t, "Food", got.Category)

	updated, err := writer.Update(ctx, saved.TransactionID, 25, date, "Long lunch", "Food")
	assert.NoError(t, err)
	assert.Equal(t, 25.0, updated.Amount)
	assert.Equal(t, saved.CreatedAt, updated.CreatedAt)

	assert.NoError(t, writer.Delete(ctx, saved.TransactionID))

	_, err = reader.GetByID(ctx, saved.TransactionID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.ErrorIs(t, writer.Delete(ctx, saved.TransactionID), sql.ErrNoRows)
}

func TestTransactionRepository_ListOrdering(t *testing.T) {
	skipWithoutDocker(t)

	db, cleanup := setupTransactionPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	writer := NewTransactionWriteRepository(db, nil)
	reader := NewTransactionReadRepository(db)

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	first, err := writer.Save(ctx, 1, older, "first", "")
	assert.NoError(t, err)
	second, err := writer.Save(ctx, 2, newer, "second", "")
	assert.NoError(t, err)
	// Same date as first but inserted later: tie-break puts it ahead.
	time.Sleep(10 * time.Millisecond)
	third, err := writer.Save(ctx, 3, older, "third", "")
	assert.NoError(t, err)

	txns, err := reader.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, txns, 3)
	assert.Equal(t, second.TransactionID, txns[0].TransactionID)
	assert.Equal(t, third.TransactionID, txns[1].TransactionID)
	assert.Equal(t, first.TransactionID, txns[2].TransactionID)
}
