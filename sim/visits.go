package sim

import (
	"math"
	"math/rand"
)

// VisitSampler generates inter-visit intervals for one customer.
type VisitSampler interface {
	// NextInterval returns the time until the next visit, in simulated days.
	// Always returns a strictly positive value.
	NextInterval(rng *rand.Rand) float64
}

// ExponentialVisitSampler generates exponentially-distributed intervals,
// so visits form a Poisson (renewal) process.
type ExponentialVisitSampler struct {
	rate float64 // visits per day
}

// NewExponentialVisitSampler creates a sampler with the given rate.
func NewExponentialVisitSampler(rate float64) (*ExponentialVisitSampler, error) {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return nil, invalidInputf("visit rate must be a finite value > 0, got %v", rate)
	}
	return &ExponentialVisitSampler{rate: rate}, nil
}

func (s *ExponentialVisitSampler) NextInterval(rng *rand.Rand) float64 {
	iv := rng.ExpFloat64() / s.rate
	if iv <= 0 {
		return math.SmallestNonzeroFloat64
	}
	return iv
}

// VisitRateRange bounds the per-customer visit rate, drawn uniformly.
type VisitRateRange struct {
	Min float64 // visits per day, > 0
	Max float64 // visits per day, >= Min
}

// DefaultVisitRateRange spans one visit every 20 days to one every 2 days.
func DefaultVisitRateRange() VisitRateRange {
	return VisitRateRange{Min: 0.05, Max: 0.5}
}

// Validate requires 0 < Min <= Max < +Inf, which keeps every drawn rate
// strictly positive.
func (r VisitRateRange) Validate() error {
	if !(r.Min > 0) || math.IsInf(r.Max, 0) || math.IsNaN(r.Max) {
		return invalidInputf("visit rate range must lie in (0, +Inf), got [%v, %v]", r.Min, r.Max)
	}
	if r.Max < r.Min {
		return invalidInputf("max visit rate %v is below min visit rate %v", r.Max, r.Min)
	}
	return nil
}

// Draw returns a rate uniform in [Min, Max].
func (r VisitRateRange) Draw(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// nextVisitTime advances now by the sampler's next interval. If the
// interval is too small to change now, the next representable time is used
// so visit times stay strictly increasing.
func nextVisitTime(now float64, sampler VisitSampler, rng *rand.Rand) float64 {
	next := now + sampler.NextInterval(rng)
	if next <= now {
		next = math.Nextafter(now, math.Inf(1))
	}
	return next
}
