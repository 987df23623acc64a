package sim

import (
	"math"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// TransactionSimulator runs each customer's visit process over
// [0, horizon) and turns every visit into a Transaction.
//
// Each customer draws from its own stream (NewCustomerRNG), in this order:
// visit rate, then per visit the interval, the store, the basket size and
// the basket products. Output therefore does not depend on the order in
// which customers are simulated or on Workers.
type TransactionSimulator struct {
	key       SimulationKey
	stores    []*Store
	customers []*Customer
	selector  StoreSelector
	rates     VisitRateRange
	workers   int
}

// NewTransactionSimulator creates a simulator. workers <= 1 runs customers
// sequentially on the calling goroutine.
func NewTransactionSimulator(key SimulationKey, stores []*Store, customers []*Customer,
	selector StoreSelector, rates VisitRateRange, workers int) *TransactionSimulator {
	if selector == nil {
		selector = UniformStoreSelector{}
	}
	return &TransactionSimulator{
		key:       key,
		stores:    stores,
		customers: customers,
		selector:  selector,
		rates:     rates,
		workers:   workers,
	}
}

// Run simulates until horizon (simulated days) and returns all
// transactions stably sorted by time, with ids 0..n-1 in that order.
// A zero horizon yields no transactions; a negative one is ErrInvalidInput.
func (ts *TransactionSimulator) Run(horizon float64) ([]*Transaction, error) {
	if horizon < 0 || math.IsNaN(horizon) || math.IsInf(horizon, 0) {
		return nil, invalidInputf("simulation time must be a finite value >= 0, got %v", horizon)
	}
	if len(ts.stores) == 0 {
		return nil, invalidInputf("no stores to visit")
	}
	if len(ts.customers) == 0 {
		return nil, invalidInputf("no customers to simulate")
	}
	if err := ts.rates.Validate(); err != nil {
		return nil, err
	}
	for _, c := range ts.customers {
		if c.Model == nil {
			return nil, invalidInputf("customer %d has no purchasing model", c.ID)
		}
	}

	// Rates are drawn up front, sequentially, so Customer is never written
	// from a worker goroutine.
	rngs := make([]*rand.Rand, len(ts.customers))
	for i, c := range ts.customers {
		rngs[i] = NewCustomerRNG(ts.key, c.ID)
		c.VisitRate = ts.rates.Draw(rngs[i])
	}
	if horizon == 0 {
		return []*Transaction{}, nil
	}

	perCustomer := make([][]*Transaction, len(ts.customers))
	if ts.workers <= 1 {
		for i, c := range ts.customers {
			perCustomer[i] = ts.simulateCustomer(c, rngs[i], horizon)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(ts.workers)
		for i, c := range ts.customers {
			i, c := i, c
			g.Go(func() error {
				perCustomer[i] = ts.simulateCustomer(c, rngs[i], horizon)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	total := 0
	for _, txns := range perCustomer {
		total += len(txns)
	}
	all := make([]*Transaction, 0, total)
	for _, txns := range perCustomer {
		all = append(all, txns...)
	}

	// Stable sort keeps customer order for equal times and each customer's
	// own (strictly increasing) order.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Time < all[j].Time
	})
	for i, t := range all {
		t.ID = int64(i)
	}

	logrus.Debugf("simulated %d transactions for %d customers over %.2f days", len(all), len(ts.customers), horizon)
	return all, nil
}

// simulateCustomer runs one customer's renewal process. It stops as soon as
// the running time meets or exceeds horizon; a positive rate makes this
// terminate with probability one.
func (ts *TransactionSimulator) simulateCustomer(c *Customer, rng *rand.Rand, horizon float64) []*Transaction {
	// Rate validity is guaranteed by VisitRateRange.Validate.
	sampler := &ExponentialVisitSampler{rate: c.VisitRate}

	var txns []*Transaction
	now := 0.0
	for {
		now = nextVisitTime(now, sampler, rng)
		if now >= horizon {
			break
		}
		store := ts.selector.SelectStore(c, ts.stores, rng)
		txns = append(txns, &Transaction{
			Time:     now,
			Store:    store,
			Customer: c,
			Products: c.Model.DrawBasket(rng),
		})
	}
	return txns
}
