package sim

import (
	"fmt"
	"math"
	"strings"
)

// Product is one catalog item. ID is the item's index in its catalog.
type Product struct {
	ID       int     `yaml:"-"`
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Price    float64 `yaml:"price"`
}

// String returns the name written to the product column of the output.
func (p Product) String() string {
	return p.Name
}

// NewCatalog validates products and numbers them 0..n-1 in order.
func NewCatalog(products []Product) ([]Product, error) {
	if len(products) == 0 {
		return nil, invalidInputf("product catalog is empty")
	}
	catalog := make([]Product, len(products))
	seen := make(map[string]bool, len(products))
	for i, p := range products {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, invalidInputf("product %d has no name", i)
		}
		if seen[p.Name] {
			return nil, invalidInputf("duplicate product %q", p.Name)
		}
		if p.Price < 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return nil, invalidInputf("product %q: price must be a finite value >= 0, got %v", p.Name, p.Price)
		}
		seen[p.Name] = true
		p.ID = i
		catalog[i] = p
	}
	return catalog, nil
}

// DefaultCatalog returns the built-in pet store catalog. It panics if the
// built-in list fails NewCatalog validation.
func DefaultCatalog() []Product {
	catalog, err := NewCatalog([]Product{
		{Name: "dry dog food", Category: "dog food", Price: 34.99},
		{Name: "wet dog food", Category: "dog food", Price: 2.49},
		{Name: "puppy food", Category: "dog food", Price: 29.99},
		{Name: "dog treats", Category: "dog food", Price: 6.99},
		{Name: "dry cat food", Category: "cat food", Price: 19.99},
		{Name: "wet cat food", Category: "cat food", Price: 1.29},
		{Name: "kitten food", Category: "cat food", Price: 17.99},
		{Name: "cat treats", Category: "cat food", Price: 4.49},
		{Name: "clumping cat litter", Category: "litter", Price: 14.99},
		{Name: "pine pellet litter", Category: "litter", Price: 9.99},
		{Name: "poop bags", Category: "supplies", Price: 7.99},
		{Name: "dog leash", Category: "supplies", Price: 15.99},
		{Name: "dog collar", Category: "supplies", Price: 12.99},
		{Name: "chew toy", Category: "toys", Price: 8.99},
		{Name: "tennis balls", Category: "toys", Price: 5.99},
		{Name: "cat wand toy", Category: "toys", Price: 6.49},
		{Name: "flea and tick treatment", Category: "health", Price: 49.99},
		{Name: "fish flakes", Category: "fish", Price: 5.49},
		{Name: "aquarium filter", Category: "fish", Price: 24.99},
		{Name: "bird seed", Category: "birds", Price: 11.99},
		{Name: "hamster bedding", Category: "small animals", Price: 8.49},
		{Name: "timothy hay", Category: "small animals", Price: 12.49},
	})
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return catalog
}
