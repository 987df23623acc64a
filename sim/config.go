package sim

import "math"

// Config groups the run parameters of a Simulation.
type Config struct {
	NumStores           int     // must be > 0
	NumCustomers        int     // must be > 0
	NumPurchasingModels int     // must be > 0
	SimulationTime      float64 // simulated days, >= 0
	Seed                int64

	// Workers > 1 simulates customers in parallel. Output is identical
	// for every value.
	Workers int

	LocationWeighting LocationWeighting // "" means population
	StoreSelection    string            // "" means uniform
	VisitRates        VisitRateRange
	Models            ModelParams
}

// NewConfig returns a Config for the given counts, horizon and seed with
// every other field at its default.
func NewConfig(nStores, nCustomers, nPurchasingModels int, simulationTime float64, seed int64) Config {
	return Config{
		NumStores:           nStores,
		NumCustomers:        nCustomers,
		NumPurchasingModels: nPurchasingModels,
		SimulationTime:      simulationTime,
		Seed:                seed,
		Workers:             1,
		LocationWeighting:   WeightByPopulation,
		StoreSelection:      StoreSelectionUniform,
		VisitRates:          DefaultVisitRateRange(),
		Models:              DefaultModelParams(),
	}
}

// Validate checks every field; the first problem found is returned
// wrapped in ErrInvalidInput.
func (c Config) Validate() error {
	if c.NumStores <= 0 {
		return invalidInputf("number of stores must be > 0, got %d", c.NumStores)
	}
	if c.NumCustomers <= 0 {
		return invalidInputf("number of customers must be > 0, got %d", c.NumCustomers)
	}
	if c.NumPurchasingModels <= 0 {
		return invalidInputf("number of purchasing models must be > 0, got %d", c.NumPurchasingModels)
	}
	if c.SimulationTime < 0 || math.IsNaN(c.SimulationTime) || math.IsInf(c.SimulationTime, 0) {
		return invalidInputf("simulation time must be a finite value >= 0, got %v", c.SimulationTime)
	}
	if c.Workers < 0 {
		return invalidInputf("workers must be >= 0, got %d", c.Workers)
	}
	if c.LocationWeighting != "" && !IsValidLocationWeighting(string(c.LocationWeighting)) {
		return invalidInputf("unknown location weighting %q; valid: population, income, uniform", c.LocationWeighting)
	}
	if _, err := NewStoreSelector(c.StoreSelection); err != nil {
		return err
	}
	if err := c.VisitRates.Validate(); err != nil {
		return err
	}
	return c.Models.Validate()
}
