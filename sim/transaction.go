package sim

import "fmt"

// Transaction is one customer visit: a timestamp, the store visited, the
// customer, and a non-empty basket. Transactions are immutable once the
// TransactionSimulator returns them.
type Transaction struct {
	ID       int64
	Time     float64 // simulated days since the start of the run
	Store    *Store
	Customer *Customer
	Products []Product
}

// Total returns the basket's price sum.
func (t *Transaction) Total() float64 {
	total := 0.0
	for _, p := range t.Products {
		total += p.Price
	}
	return total
}

func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction{ID: %d, Time: %.4f, Store: %d, Customer: %d, Items: %d}",
		t.ID, t.Time, t.Store.ID, t.Customer.ID, len(t.Products))
}
