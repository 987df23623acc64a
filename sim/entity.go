package sim

import (
	"fmt"
	"math/rand"
)

// Store is a retail location. Stores are immutable after BuildStores.
type Store struct {
	ID       int
	Location Location
}

// Customer is a shopper with a home location and a purchasing model.
// Model is set once by AssignModels and VisitRate once by the
// TransactionSimulator; everything else is fixed at BuildCustomers.
type Customer struct {
	ID        int
	Name      Pair[string, string] // (first, last)
	Location  Location
	Model     *PurchasingModel
	VisitRate float64 // visits per simulated day
}

// FullName returns "first last".
func (c *Customer) FullName() string {
	return c.Name.First + " " + c.Name.Second
}

func (c *Customer) String() string {
	return fmt.Sprintf("Customer{ID: %d, Name: %s, Zipcode: %s}", c.ID, c.FullName(), c.Location.Zipcode)
}

// BuildStores creates n stores with ids 0..n-1, each on a sampled location.
func BuildStores(n int, locations *LocationSampler, rng *rand.Rand) ([]*Store, error) {
	if n <= 0 {
		return nil, invalidInputf("number of stores must be > 0, got %d", n)
	}
	stores := make([]*Store, n)
	for i := range stores {
		stores[i] = &Store{ID: i, Location: locations.Sample(rng)}
	}
	return stores, nil
}

// BuildCustomers creates n customers with ids 0..n-1. Per customer the rng
// is consumed in a fixed order: location, first name, last name.
func BuildCustomers(n int, locations *LocationSampler, firstNames, lastNames *NamePool, rng *rand.Rand) ([]*Customer, error) {
	if n <= 0 {
		return nil, invalidInputf("number of customers must be > 0, got %d", n)
	}
	customers := make([]*Customer, n)
	for i := range customers {
		loc := locations.Sample(rng)
		first := firstNames.Draw(rng)
		last := lastNames.Draw(rng)
		customers[i] = &Customer{
			ID:       i,
			Name:     NewPair(first, last),
			Location: loc,
		}
	}
	return customers, nil
}
