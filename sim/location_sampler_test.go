package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleZipcodeShares(t *testing.T, weighting LocationWeighting, n int) map[string]float64 {
	t.Helper()
	sampler, err := NewLocationSampler(mustReferenceData(t), weighting)
	require.NoError(t, err)
	rng := newTestRNG(42)
	counts := make(map[string]int)
	for i := 0; i < n; i++ {
		counts[sampler.Sample(rng).Zipcode]++
	}
	shares := make(map[string]float64, len(counts))
	for zip, c := range counts {
		shares[zip] = float64(c) / float64(n)
	}
	return shares
}

func TestLocationSampler_PopulationWeighted(t *testing.T) {
	// GIVEN the fixture table (Chicago holds ≈33.7% of the population)
	// WHEN 40000 locations are drawn
	shares := sampleZipcodeShares(t, WeightByPopulation, 40000)

	// THEN shares follow population and the zero-population zip never appears
	assert.InDelta(t, 0.337, shares["60614"], 0.015)
	assert.Zero(t, shares["99999"])
}

func TestLocationSampler_IncomeWeighted(t *testing.T) {
	shares := sampleZipcodeShares(t, WeightByIncome, 40000)

	assert.InDelta(t, 0.294, shares["60614"], 0.015)
	assert.Zero(t, shares["99999"])
}

func TestLocationSampler_Uniform_IncludesZeroPopulation(t *testing.T) {
	shares := sampleZipcodeShares(t, WeightUniform, 40000)

	assert.Len(t, shares, 5)
	assert.InDelta(t, 0.2, shares["99999"], 0.015)
}

func TestLocationSampler_EmptyDefaultsToPopulation(t *testing.T) {
	a, err := NewLocationSampler(mustReferenceData(t), "")
	require.NoError(t, err)
	b, err := NewLocationSampler(mustReferenceData(t), WeightByPopulation)
	require.NoError(t, err)

	rngA, rngB := newTestRNG(5), newTestRNG(5)
	for i := 0; i < 100; i++ {
		assert.Equal(t, b.Sample(rngB), a.Sample(rngA))
	}
}

func TestNewLocationSampler_InvalidInput(t *testing.T) {
	empty, err := NewReferenceDataSet(nil)
	require.NoError(t, err)
	allZero, err := NewReferenceDataSet([]ZipcodeRecord{{Zipcode: "1"}, {Zipcode: "2"}})
	require.NoError(t, err)

	tests := []struct {
		name      string
		data      *ReferenceDataSet
		weighting LocationWeighting
	}{
		{"nil data", nil, WeightByPopulation},
		{"empty data", empty, WeightByPopulation},
		{"all zero population", allZero, WeightByPopulation},
		{"all zero income", allZero, WeightByIncome},
		{"unknown weighting", mustReferenceData(t), "density"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLocationSampler(tt.data, tt.weighting)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSampleLocations_CountAndDeterminism(t *testing.T) {
	data := mustReferenceData(t)

	a, err := SampleLocations(data, 25, newTestRNG(11))
	require.NoError(t, err)
	b, err := SampleLocations(data, 25, newTestRNG(11))
	require.NoError(t, err)

	assert.Len(t, a, 25)
	assert.Equal(t, a, b)
	for _, loc := range a {
		assert.NotEqual(t, "99999", loc.Zipcode)
	}

	none, err := SampleLocations(data, 0, newTestRNG(11))
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = SampleLocations(data, -1, newTestRNG(11))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIsValidLocationWeighting(t *testing.T) {
	assert.True(t, IsValidLocationWeighting("population"))
	assert.True(t, IsValidLocationWeighting("income"))
	assert.True(t, IsValidLocationWeighting("uniform"))
	assert.False(t, IsValidLocationWeighting(""))
	assert.False(t, IsValidLocationWeighting("density"))
}
