package sink

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/petstore-sim/petstore-sim/sim"
)

// SQLiteFile is the SQLite output's file name inside the output directory.
const SQLiteFile = "transactions.db"

// Dataset is everything the SQLite sink persists from one run.
type Dataset struct {
	Stores       []*sim.Store
	Customers    []*sim.Customer
	Transactions []*sim.Transaction
}

// InitSchema creates the output tables if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS stores (
			store_id INTEGER PRIMARY KEY,
			zipcode TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id INTEGER PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			zipcode TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			purchasing_model INTEGER NOT NULL,
			visit_rate REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS transactions (
			transaction_id INTEGER PRIMARY KEY,
			time_days REAL NOT NULL,
			store_id INTEGER NOT NULL REFERENCES stores(store_id),
			customer_id INTEGER NOT NULL REFERENCES customers(customer_id)
		);`,
		`CREATE TABLE IF NOT EXISTS transaction_items (
			transaction_id INTEGER NOT NULL REFERENCES transactions(transaction_id),
			position INTEGER NOT NULL,
			product TEXT NOT NULL,
			category TEXT NOT NULL,
			price REAL NOT NULL,
			PRIMARY KEY (transaction_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_customer_time
			ON transactions(customer_id, time_days);`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}
	return nil
}

// SQLiteWriter persists a Dataset in a single transaction.
type SQLiteWriter struct{ DB *sql.DB }

func NewSQLiteWriter(db *sql.DB) *SQLiteWriter {
	return &SQLiteWriter{DB: db}
}

// Write inserts every store, customer, transaction and basket item.
func (w *SQLiteWriter) Write(ctx context.Context, data Dataset) error {
	if w.DB == nil {
		return errors.New("sqlite writer: DB is nil")
	}
	if err := InitSchema(ctx, w.DB); err != nil {
		return err
	}

	tx, err := w.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite writer: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertStore, err := tx.PrepareContext(ctx, `INSERT INTO stores (store_id, zipcode, city, state) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite writer: prepare stores: %w", err)
	}
	defer insertStore.Close()
	for _, s := range data.Stores {
		if _, err := insertStore.ExecContext(ctx, s.ID, s.Location.Zipcode, s.Location.City, s.Location.State); err != nil {
			return fmt.Errorf("sqlite writer: insert store %d: %w", s.ID, err)
		}
	}

	insertCustomer, err := tx.PrepareContext(ctx, `INSERT INTO customers
		(customer_id, first_name, last_name, zipcode, city, state, purchasing_model, visit_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite writer: prepare customers: %w", err)
	}
	defer insertCustomer.Close()
	for _, c := range data.Customers {
		modelID := -1
		if c.Model != nil {
			modelID = c.Model.ID
		}
		if _, err := insertCustomer.ExecContext(ctx, c.ID, c.Name.First, c.Name.Second,
			c.Location.Zipcode, c.Location.City, c.Location.State, modelID, c.VisitRate); err != nil {
			return fmt.Errorf("sqlite writer: insert customer %d: %w", c.ID, err)
		}
	}

	insertTxn, err := tx.PrepareContext(ctx, `INSERT INTO transactions (transaction_id, time_days, store_id, customer_id) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite writer: prepare transactions: %w", err)
	}
	defer insertTxn.Close()
	insertItem, err := tx.PrepareContext(ctx, `INSERT INTO transaction_items (transaction_id, position, product, category, price) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite writer: prepare transaction items: %w", err)
	}
	defer insertItem.Close()
	for _, t := range data.Transactions {
		if _, err := insertTxn.ExecContext(ctx, t.ID, t.Time, t.Store.ID, t.Customer.ID); err != nil {
			return fmt.Errorf("sqlite writer: insert transaction %d: %w", t.ID, err)
		}
		for pos, p := range t.Products {
			if _, err := insertItem.ExecContext(ctx, t.ID, pos, p.Name, p.Category, p.Price); err != nil {
				return fmt.Errorf("sqlite writer: insert item %d of transaction %d: %w", pos, t.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite writer: commit tx: %w", err)
	}
	return nil
}

// WriteSQLiteFile writes data to a fresh dir/transactions.db and returns
// the file path. An existing file is replaced.
func WriteSQLiteFile(ctx context.Context, dir string, data Dataset) (string, error) {
	path := filepath.Join(dir, SQLiteFile)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("removing old %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return "", fmt.Errorf("open sqlite database %q: %w", path, err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return "", fmt.Errorf("verify sqlite connection to %q: %w", path, err)
	}
	if err := NewSQLiteWriter(db).Write(ctx, data); err != nil {
		return "", err
	}
	return path, nil
}
