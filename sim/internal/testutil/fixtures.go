// Package testutil provides shared test infrastructure for the generator.
// It consolidates reference data fixtures and invariant assertions used
// across the sim, sim/sink and sim/refdata test packages.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petstore-sim/petstore-sim/sim"
)

// ReferenceRecords returns a small zip code table. 99999 has zero
// population and zero income, so weighted samplers must never draw it.
func ReferenceRecords() []sim.ZipcodeRecord {
	return []sim.ZipcodeRecord{
		{Zipcode: "02139", City: "Cambridge", State: "MA", Latitude: 42.3647, Longitude: -71.1042, Population: 38839, MedianIncome: 104531},
		{Zipcode: "60614", City: "Chicago", State: "IL", Latitude: 41.9227, Longitude: -87.6533, Population: 71308, MedianIncome: 124398},
		{Zipcode: "78704", City: "Austin", State: "TX", Latitude: 30.2428, Longitude: -97.7658, Population: 50340, MedianIncome: 82426},
		{Zipcode: "99999", City: "Nowhere", State: "AK", Latitude: 64.8378, Longitude: -147.7164, Population: 0, MedianIncome: 0},
		{Zipcode: "98103", City: "Seattle", State: "WA", Latitude: 47.6733, Longitude: -122.3426, Population: 51006, MedianIncome: 111519},
	}
}

// NewReferenceData wraps ReferenceRecords in a ReferenceDataSet.
func NewReferenceData(t *testing.T) *sim.ReferenceDataSet {
	t.Helper()
	data, err := sim.NewReferenceDataSet(ReferenceRecords())
	if err != nil {
		t.Fatalf("building reference data: %v", err)
	}
	return data
}

// RunSimulation runs a simulation over the fixture reference data with the
// default name pools and catalog. Fails the test if Simulate errors.
func RunSimulation(t *testing.T, cfg sim.Config) *sim.Simulation {
	t.Helper()
	s := sim.NewSimulation(sim.NewInputData(NewReferenceData(t)), cfg)
	if err := s.Simulate(); err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	return s
}

// AssertTransactionInvariants checks the properties every transaction
// collection must hold: ids 0..n-1 in order, times in [0, horizon),
// non-empty baskets, and strictly increasing times per customer.
func AssertTransactionInvariants(t *testing.T, txns []*sim.Transaction, horizon float64) {
	t.Helper()
	lastTime := make(map[int]float64)
	for i, txn := range txns {
		if txn.ID != int64(i) {
			t.Errorf("transaction %d: ID = %d, want %d", i, txn.ID, i)
		}
		if txn.Time < 0 || txn.Time >= horizon {
			t.Errorf("transaction %d: time %v outside [0, %v)", txn.ID, txn.Time, horizon)
		}
		if len(txn.Products) == 0 {
			t.Errorf("transaction %d: empty basket", txn.ID)
		}
		if txn.Store == nil || txn.Customer == nil {
			t.Fatalf("transaction %d: missing store or customer", txn.ID)
		}
		if prev, ok := lastTime[txn.Customer.ID]; ok && txn.Time <= prev {
			t.Errorf("customer %d: transaction %d at %v does not follow previous visit at %v",
				txn.Customer.ID, txn.ID, txn.Time, prev)
		}
		lastTime[txn.Customer.ID] = txn.Time
	}
}

// AssertFloat64Equal fails unless got is within relTol of want, relative
// to the larger magnitude. Two zeros are equal.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	scale := math.Max(math.Abs(want), math.Abs(got))
	if scale == 0 {
		return
	}
	assert.LessOrEqualf(t, math.Abs(want-got)/scale, relTol, "%s: got %v, want %v", name, got, want)
}
