package sink

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petstore-sim/petstore-sim/sim"
	"github.com/petstore-sim/petstore-sim/sim/internal/testutil"
)

func simulatedDataset(t *testing.T) Dataset {
	t.Helper()
	s := testutil.RunSimulation(t, sim.NewConfig(3, 20, 2, 30, 42))
	stores, err := s.Stores()
	require.NoError(t, err)
	customers, err := s.Customers()
	require.NoError(t, err)
	txns, err := s.Transactions()
	require.NoError(t, err)
	return Dataset{Stores: stores, Customers: customers, Transactions: txns}
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestWriteSQLiteFile_PersistsDataset(t *testing.T) {
	// GIVEN a simulated dataset
	ctx := context.Background()
	data := simulatedDataset(t)
	require.NotEmpty(t, data.Transactions)

	// WHEN written to a SQLite file
	dir := t.TempDir()
	path, err := WriteSQLiteFile(ctx, dir, data)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SQLiteFile), path)

	// THEN every entity and basket item is stored
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	items := 0
	for _, txn := range data.Transactions {
		items += len(txn.Products)
	}
	assert.Equal(t, len(data.Stores), countRows(t, db, "stores"))
	assert.Equal(t, len(data.Customers), countRows(t, db, "customers"))
	assert.Equal(t, len(data.Transactions), countRows(t, db, "transactions"))
	assert.Equal(t, items, countRows(t, db, "transaction_items"))

	first := data.Transactions[0]
	var timeDays float64
	var storeID, customerID int
	require.NoError(t, db.QueryRow(
		"SELECT time_days, store_id, customer_id FROM transactions WHERE transaction_id = 0",
	).Scan(&timeDays, &storeID, &customerID))
	assert.Equal(t, first.Time, timeDays)
	assert.Equal(t, first.Store.ID, storeID)
	assert.Equal(t, first.Customer.ID, customerID)
}

func TestWriteSQLiteFile_ReplacesExistingFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	data := simulatedDataset(t)

	_, err := WriteSQLiteFile(ctx, dir, data)
	require.NoError(t, err)
	// A second write would hit primary key conflicts if the old file survived.
	_, err = WriteSQLiteFile(ctx, dir, data)
	require.NoError(t, err)
}

func TestInitSchema_NilDB(t *testing.T) {
	assert.Error(t, InitSchema(context.Background(), nil))
	assert.Error(t, NewSQLiteWriter(nil).Write(context.Background(), Dataset{}))
}

func TestInitSchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "schema.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, InitSchema(ctx, db))
	require.NoError(t, InitSchema(ctx, db))
	assert.Equal(t, 0, countRows(t, db, "transactions"))
}
