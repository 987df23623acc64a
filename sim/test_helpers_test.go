package sim

import (
	"math/rand"
	"testing"
)

// testRecords mirrors testutil.ReferenceRecords for in-package tests,
// which cannot import testutil without a cycle.
func testRecords() []ZipcodeRecord {
	return []ZipcodeRecord{
		{Zipcode: "02139", City: "Cambridge", State: "MA", Latitude: 42.3647, Longitude: -71.1042, Population: 38839, MedianIncome: 104531},
		{Zipcode: "60614", City: "Chicago", State: "IL", Latitude: 41.9227, Longitude: -87.6533, Population: 71308, MedianIncome: 124398},
		{Zipcode: "78704", City: "Austin", State: "TX", Latitude: 30.2428, Longitude: -97.7658, Population: 50340, MedianIncome: 82426},
		{Zipcode: "99999", City: "Nowhere", State: "AK", Latitude: 64.8378, Longitude: -147.7164, Population: 0, MedianIncome: 0},
		{Zipcode: "98103", City: "Seattle", State: "WA", Latitude: 47.6733, Longitude: -122.3426, Population: 51006, MedianIncome: 111519},
	}
}

func mustReferenceData(t *testing.T) *ReferenceDataSet {
	t.Helper()
	data, err := NewReferenceDataSet(testRecords())
	if err != nil {
		t.Fatalf("NewReferenceDataSet: %v", err)
	}
	return data
}

func newTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// testPopulation builds stores and customers with models assigned, all
// derived from seed, so two calls with the same seed return equal but
// independent populations.
func testPopulation(t *testing.T, seed int64, nStores, nCustomers, nModels int) ([]*Store, []*Customer) {
	t.Helper()
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	locations, err := NewLocationSampler(mustReferenceData(t), WeightByPopulation)
	if err != nil {
		t.Fatal(err)
	}
	stores, err := BuildStores(nStores, locations, rng.ForSubsystem(SubsystemStores))
	if err != nil {
		t.Fatal(err)
	}
	first, _ := NewNamePool(DefaultFirstNames())
	last, _ := NewNamePool(DefaultLastNames())
	customers, err := BuildCustomers(nCustomers, locations, first, last, rng.ForSubsystem(SubsystemCustomers))
	if err != nil {
		t.Fatal(err)
	}
	models, err := BuildModels(nModels, DefaultCatalog(), DefaultModelParams(), rng.ForSubsystem(SubsystemPurchasingModels))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := AssignModels(customers, models, rng.ForSubsystem(SubsystemModelAssignment)); err != nil {
		t.Fatal(err)
	}
	return stores, customers
}
