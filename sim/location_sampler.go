package sim

import (
	"fmt"
	"math/rand"
)

// LocationWeighting selects the weight each reference record gets when
// stores and customers are placed.
type LocationWeighting string

const (
	// WeightByPopulation draws zip codes proportionally to population (default).
	WeightByPopulation LocationWeighting = "population"
	// WeightByIncome draws zip codes proportionally to median household income.
	WeightByIncome LocationWeighting = "income"
	// WeightUniform draws every zip code with equal probability.
	WeightUniform LocationWeighting = "uniform"
)

var validLocationWeightings = map[LocationWeighting]bool{
	WeightByPopulation: true, WeightByIncome: true, WeightUniform: true,
}

// IsValidLocationWeighting returns true if name is a known weighting.
func IsValidLocationWeighting(name string) bool {
	return validLocationWeightings[LocationWeighting(name)]
}

// LocationSampler draws weighted-random locations from a ReferenceDataSet,
// with replacement. The cumulative weight table is built once.
type LocationSampler struct {
	locations []Location
	weights   *CategoricalSampler
}

// NewLocationSampler builds a sampler over data. Records whose weight is
// zero are never drawn. Returns ErrInvalidInput if data is empty or every
// weight is zero.
func NewLocationSampler(data *ReferenceDataSet, weighting LocationWeighting) (*LocationSampler, error) {
	if data.Len() == 0 {
		return nil, invalidInputf("reference data set is empty")
	}
	if weighting == "" {
		weighting = WeightByPopulation
	}
	if !validLocationWeightings[weighting] {
		return nil, fmt.Errorf("%w: unknown location weighting %q; valid: population, income, uniform", ErrInvalidInput, weighting)
	}

	locations := make([]Location, data.Len())
	weights := make([]float64, data.Len())
	for i := range locations {
		rec := data.Record(i)
		locations[i] = rec.Location()
		switch weighting {
		case WeightByPopulation:
			weights[i] = float64(rec.Population)
		case WeightByIncome:
			weights[i] = rec.MedianIncome
		case WeightUniform:
			weights[i] = 1
		}
	}

	cat, err := NewCategoricalSampler(weights)
	if err != nil {
		return nil, fmt.Errorf("%s-weighted location table: %w", weighting, err)
	}
	return &LocationSampler{locations: locations, weights: cat}, nil
}

// Sample draws one location using only rng.
func (s *LocationSampler) Sample(rng *rand.Rand) Location {
	return s.locations[s.weights.Sample(rng)]
}

// SampleLocations draws count population-weighted locations from data.
func SampleLocations(data *ReferenceDataSet, count int, rng *rand.Rand) ([]Location, error) {
	if count < 0 {
		return nil, invalidInputf("location count must be >= 0, got %d", count)
	}
	sampler, err := NewLocationSampler(data, WeightByPopulation)
	if err != nil {
		return nil, err
	}
	out := make([]Location, count)
	for i := range out {
		out[i] = sampler.Sample(rng)
	}
	return out, nil
}
