package sim

import (
	"fmt"
	"math/rand"
	"strings"
)

// StoreSelector picks the store a customer visits. It is the single
// decision point for store choice in the TransactionSimulator.
// Implementations must be safe for concurrent use: customers may be
// simulated in parallel, each with its own rng.
type StoreSelector interface {
	// SelectStore returns one of stores (never empty) for customer c.
	SelectStore(c *Customer, stores []*Store, rng *rand.Rand) *Store
}

// UniformStoreSelector picks any store with equal probability.
type UniformStoreSelector struct{}

func (UniformStoreSelector) SelectStore(_ *Customer, stores []*Store, rng *rand.Rand) *Store {
	return stores[rng.Intn(len(stores))]
}

// NearestStoreSelector always picks the store closest to the customer's
// home. Ties go to the lower store id. It consumes no randomness.
type NearestStoreSelector struct{}

func (NearestStoreSelector) SelectStore(c *Customer, stores []*Store, _ *rand.Rand) *Store {
	best := stores[0]
	bestDist := c.Location.DistanceKm(best.Location)
	for _, s := range stores[1:] {
		if d := c.Location.DistanceKm(s.Location); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

// Store selection strategies.
const (
	StoreSelectionUniform = "uniform"
	StoreSelectionNearest = "nearest"
)

// NewStoreSelector creates a StoreSelector by name. Empty means uniform.
func NewStoreSelector(name string) (StoreSelector, error) {
	switch name {
	case "", StoreSelectionUniform:
		return UniformStoreSelector{}, nil
	case StoreSelectionNearest:
		return NearestStoreSelector{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown store selection %q; valid: %s",
			ErrInvalidInput, name, strings.Join(ValidStoreSelectors(), ", "))
	}
}

// ValidStoreSelectors returns the supported store selection strategies.
func ValidStoreSelectors() []string {
	return []string{StoreSelectionUniform, StoreSelectionNearest}
}
