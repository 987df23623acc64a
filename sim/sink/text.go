// Package sink writes generated transactions to their output formats.
package sink

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/petstore-sim/petstore-sim/sim"
)

// TransactionsFile is the text output's file name inside the output directory.
const TransactionsFile = "transactions.txt"

// TextWriter writes one comma-separated line per product per transaction:
//
//	id,dateTime,storeId,storeZip,storeCity,storeState,customerId,customerName,customerZip,customerCity,customerState,product
type TextWriter struct {
	w *csv.Writer
}

// NewTextWriter wraps w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: csv.NewWriter(w)}
}

// Write writes all transactions in collection order and flushes.
func (tw *TextWriter) Write(txns []*sim.Transaction) error {
	for _, t := range txns {
		store := t.Store.Location
		customer := t.Customer.Location
		prefix := []string{
			strconv.FormatInt(t.ID, 10),
			FormatTime(t.Time),
			strconv.Itoa(t.Store.ID),
			store.Zipcode,
			store.City,
			store.State,
			strconv.Itoa(t.Customer.ID),
			t.Customer.FullName(),
			customer.Zipcode,
			customer.City,
			customer.State,
		}
		for _, p := range t.Products {
			record := append(prefix[:len(prefix):len(prefix)], p.String())
			if err := tw.w.Write(record); err != nil {
				return fmt.Errorf("writing transaction %d: %w", t.ID, err)
			}
		}
	}
	tw.w.Flush()
	return tw.w.Error()
}

// FormatTime renders a simulated time (days) with the shortest decimal
// representation that round-trips.
func FormatTime(days float64) string {
	return strconv.FormatFloat(days, 'f', -1, 64)
}

// WriteTransactionsFile writes txns to dir/transactions.txt and returns
// the file path.
func WriteTransactionsFile(dir string, txns []*sim.Transaction) (string, error) {
	path := filepath.Join(dir, TransactionsFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	buf := bufio.NewWriter(f)
	if err := NewTextWriter(buf).Write(txns); err != nil {
		f.Close()
		return "", err
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		return "", fmt.Errorf("flushing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
