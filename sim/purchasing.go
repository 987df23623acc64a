package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// PurchasingModel is a pair of distributions governing what a customer buys
// per visit: a product affinity over the catalog and a basket size.
// Models are shared read-only between customers.
type PurchasingModel struct {
	ID       int
	catalog  []Product
	affinity []float64
	products *CategoricalSampler
	basket   BasketSizeSampler
}

// Affinity returns a copy of the per-product probabilities (sums to 1).
func (m *PurchasingModel) Affinity() []float64 {
	out := make([]float64, len(m.affinity))
	copy(out, m.affinity)
	return out
}

// BasketSize returns the model's basket-size distribution.
func (m *PurchasingModel) BasketSize() BasketSizeSampler {
	return m.basket
}

// DrawBasket draws a non-empty basket. Products are drawn with replacement,
// so a basket may hold the same product more than once.
func (m *PurchasingModel) DrawBasket(rng *rand.Rand) []Product {
	size := m.basket.Sample(rng)
	if size < 1 {
		size = 1
	}
	basket := make([]Product, size)
	for i := range basket {
		basket[i] = m.catalog[m.products.Sample(rng)]
	}
	return basket
}

// ModelParams parameterizes BuildModels.
type ModelParams struct {
	// Concentration is the symmetric Dirichlet alpha for product affinity.
	// Small values give customers a few favourite products; large values
	// spread purchases evenly across the catalog.
	Concentration float64
	// BasketDistribution is "poisson" or "geometric".
	BasketDistribution string
	// Each model's mean basket size is drawn uniformly from
	// [MinBasketMean, MaxBasketMean].
	MinBasketMean float64
	MaxBasketMean float64
}

// DefaultModelParams returns the parameters used when none are configured.
func DefaultModelParams() ModelParams {
	return ModelParams{
		Concentration:      0.5,
		BasketDistribution: BasketPoisson,
		MinBasketMean:      1.5,
		MaxBasketMean:      5.0,
	}
}

// Validate checks that the parameters describe a usable model family.
func (p ModelParams) Validate() error {
	if p.Concentration <= 0 || math.IsNaN(p.Concentration) || math.IsInf(p.Concentration, 0) {
		return invalidInputf("affinity concentration must be a finite value > 0, got %v", p.Concentration)
	}
	if p.BasketDistribution != BasketPoisson && p.BasketDistribution != BasketGeometric {
		return fmt.Errorf("%w: unknown basket distribution %q; valid: %s, %s",
			ErrInvalidInput, p.BasketDistribution, BasketPoisson, BasketGeometric)
	}
	if !(p.MinBasketMean >= 1) || math.IsInf(p.MaxBasketMean, 0) || math.IsNaN(p.MaxBasketMean) {
		return invalidInputf("basket mean range must lie in [1, +Inf), got [%v, %v]", p.MinBasketMean, p.MaxBasketMean)
	}
	if p.MaxBasketMean < p.MinBasketMean {
		return invalidInputf("max basket mean %v is below min basket mean %v", p.MaxBasketMean, p.MinBasketMean)
	}
	return nil
}

// BuildModels constructs k purchasing models over catalog. Per model the
// rng is consumed in a fixed order: one Gamma draw per product (Dirichlet
// affinity), then one uniform draw for the mean basket size.
func BuildModels(k int, catalog []Product, params ModelParams, rng *rand.Rand) ([]*PurchasingModel, error) {
	if k <= 0 {
		return nil, invalidInputf("number of purchasing models must be > 0, got %d", k)
	}
	if len(catalog) == 0 {
		return nil, invalidInputf("product catalog is empty")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	models := make([]*PurchasingModel, k)
	for i := range models {
		affinity := dirichletWeights(rng, len(catalog), params.Concentration)
		products, err := NewCategoricalSampler(affinity)
		if err != nil {
			return nil, fmt.Errorf("purchasing model %d: %w", i, err)
		}
		mean := params.MinBasketMean + rng.Float64()*(params.MaxBasketMean-params.MinBasketMean)
		basket, err := NewBasketSizeSampler(params.BasketDistribution, mean)
		if err != nil {
			return nil, fmt.Errorf("purchasing model %d: %w", i, err)
		}
		models[i] = &PurchasingModel{
			ID:       i,
			catalog:  catalog,
			affinity: affinity,
			products: products,
			basket:   basket,
		}
	}
	return models, nil
}

// AssignModels binds every customer to one model chosen uniformly at random
// and returns the customer id → model mapping. One draw per customer, in
// customer order.
func AssignModels(customers []*Customer, models []*PurchasingModel, rng *rand.Rand) (map[int]*PurchasingModel, error) {
	if len(models) == 0 {
		return nil, invalidInputf("no purchasing models to assign")
	}
	assignment := make(map[int]*PurchasingModel, len(customers))
	for _, c := range customers {
		m := models[rng.Intn(len(models))]
		c.Model = m
		assignment[c.ID] = m
	}
	return assignment, nil
}
