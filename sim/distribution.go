package sim

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// CategoricalSampler draws indexes from a discrete weighted distribution
// using inverse CDF via binary search: O(log n) per draw.
// Indexes with zero weight are never returned.
type CategoricalSampler struct {
	cdf []float64 // cumulative probabilities, last positive entry is exactly 1.0
}

// NewCategoricalSampler creates a sampler over indexes 0..len(weights)-1.
// Weights are normalized; they must be finite, non-negative, and not all zero.
func NewCategoricalSampler(weights []float64) (*CategoricalSampler, error) {
	if len(weights) == 0 {
		return nil, invalidInputf("categorical distribution needs at least one weight")
	}
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, invalidInputf("weight %d must be finite and >= 0, got %v", i, w)
		}
		total += w
	}
	if total <= 0 {
		return nil, invalidInputf("all %d weights are zero", len(weights))
	}

	cdf := make([]float64, len(weights))
	cumulative := 0.0
	lastPositive := 0
	for i, w := range weights {
		cumulative += w / total
		cdf[i] = cumulative
		if w > 0 {
			lastPositive = i
		}
	}
	// Pin the tail to exactly 1.0 so rounding never leaves u uncovered and
	// trailing zero-weight entries never become reachable.
	for i := lastPositive; i < len(cdf); i++ {
		cdf[i] = 1.0
	}
	return &CategoricalSampler{cdf: cdf}, nil
}

// Sample returns an index with probability proportional to its weight.
func (s *CategoricalSampler) Sample(rng *rand.Rand) int {
	if len(s.cdf) == 1 {
		return 0
	}
	u := rng.Float64()
	// First index whose cumulative mass strictly exceeds u: a zero-weight
	// entry repeats its predecessor's value and so is never the first.
	idx := sort.Search(len(s.cdf), func(i int) bool { return s.cdf[i] > u })
	if idx >= len(s.cdf) {
		idx = len(s.cdf) - 1
	}
	return idx
}

// Len returns the number of categories.
func (s *CategoricalSampler) Len() int {
	return len(s.cdf)
}

// gammaRand samples from Gamma(shape, scale) using Marsaglia-Tsang's method.
// For shape >= 1: direct method.
// For shape < 1: Gamma(shape) = Gamma(shape+1) * U^(1/shape).
func gammaRand(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		u := rng.Float64()
		return gammaRand(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)

	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()

		// Squeeze test
		if u < 1.0-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// dirichletWeights draws one sample from a symmetric Dirichlet(alpha) over
// n categories. The result sums to 1.
func dirichletWeights(rng *rand.Rand, n int, alpha float64) []float64 {
	weights := make([]float64, n)
	total := 0.0
	for i := range weights {
		weights[i] = gammaRand(rng, alpha, 1.0)
		total += weights[i]
	}
	if total < 1e-290 || math.IsInf(total, 0) {
		// Very small alpha can underflow the draws into the subnormal range,
		// where normalizing loses precision; put all mass on one category.
		for i := range weights {
			weights[i] = 0
		}
		weights[rng.Intn(n)] = 1.0
		return weights
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// BasketSizeSampler draws the number of items bought on one visit.
type BasketSizeSampler interface {
	// Sample returns a basket size (>= 1).
	Sample(rng *rand.Rand) int
	// Mean returns the expected basket size.
	Mean() float64
}

// PoissonBasketSampler returns 1 + Poisson(lambda).
type PoissonBasketSampler struct {
	lambda float64
}

func (s *PoissonBasketSampler) Sample(rng *rand.Rand) int {
	return 1 + poissonRand(rng, s.lambda)
}

func (s *PoissonBasketSampler) Mean() float64 {
	return 1 + s.lambda
}

// poissonRand uses Knuth's multiplication method for small lambda and a
// rounded normal approximation above 30.
func poissonRand(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	if lambda > 30 {
		k := int(math.Round(lambda + math.Sqrt(lambda)*rng.NormFloat64()))
		if k < 0 {
			return 0
		}
		return k
	}
	limit := math.Exp(-lambda)
	k := 0
	p := rng.Float64()
	for p > limit {
		k++
		p *= rng.Float64()
	}
	return k
}

// GeometricBasketSampler returns the number of trials up to and including
// the first success, with success probability p.
type GeometricBasketSampler struct {
	p float64
}

func (s *GeometricBasketSampler) Sample(rng *rand.Rand) int {
	if s.p >= 1 {
		return 1
	}
	u := rng.Float64()
	if u == 0 {
		u = math.SmallestNonzeroFloat64 // prevent ln(0) = -Inf
	}
	k := 1 + int(math.Floor(math.Log(u)/math.Log1p(-s.p)))
	if k < 1 {
		return 1
	}
	return k
}

func (s *GeometricBasketSampler) Mean() float64 {
	return 1 / s.p
}

// Basket size distributions.
const (
	BasketPoisson   = "poisson"
	BasketGeometric = "geometric"
)

// NewBasketSizeSampler creates a BasketSizeSampler with the given mean
// basket size (must be >= 1).
func NewBasketSizeSampler(dist string, mean float64) (BasketSizeSampler, error) {
	if mean < 1 || math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, invalidInputf("basket mean must be a finite value >= 1, got %v", mean)
	}
	switch dist {
	case BasketPoisson:
		return &PoissonBasketSampler{lambda: mean - 1}, nil
	case BasketGeometric:
		return &GeometricBasketSampler{p: 1 / mean}, nil
	default:
		return nil, fmt.Errorf("%w: unknown basket distribution %q; valid: %s, %s",
			ErrInvalidInput, dist, BasketPoisson, BasketGeometric)
	}
}
