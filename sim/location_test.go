package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReferenceDataSet_RejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name   string
		record ZipcodeRecord
	}{
		{"empty zipcode", ZipcodeRecord{Zipcode: " ", Population: 1}},
		{"negative population", ZipcodeRecord{Zipcode: "12345", Population: -1}},
		{"negative income", ZipcodeRecord{Zipcode: "12345", MedianIncome: -5}},
		{"NaN income", ZipcodeRecord{Zipcode: "12345", MedianIncome: math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReferenceDataSet([]ZipcodeRecord{tt.record})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestReferenceDataSet_CopiesRecords(t *testing.T) {
	// GIVEN a set built from a slice
	records := testRecords()
	data, err := NewReferenceDataSet(records)
	require.NoError(t, err)

	// WHEN the caller mutates its slice and the returned copy
	records[0].City = "Mutated"
	out := data.Records()
	out[1].City = "Mutated too"

	// THEN the set is unchanged
	assert.Equal(t, "Cambridge", data.Record(0).City)
	assert.Equal(t, "Chicago", data.Record(1).City)
	assert.Equal(t, len(records), data.Len())
}

func TestReferenceDataSet_NilIsEmpty(t *testing.T) {
	var data *ReferenceDataSet
	assert.Equal(t, 0, data.Len())
	assert.Nil(t, data.Records())
}

func TestZipcodeRecord_Location_CopiesAllFields(t *testing.T) {
	r := testRecords()[1]
	loc := r.Location()
	assert.Equal(t, Location{
		Zipcode: r.Zipcode, City: r.City, State: r.State,
		Latitude: r.Latitude, Longitude: r.Longitude,
		Population: r.Population, MedianIncome: r.MedianIncome,
	}, loc)
}

func TestLocation_DistanceKm(t *testing.T) {
	cambridge := testRecords()[0].Location()
	chicago := testRecords()[1].Location()

	assert.InDelta(t, 1363.2, cambridge.DistanceKm(chicago), 1.0)
	assert.InDelta(t, cambridge.DistanceKm(chicago), chicago.DistanceKm(cambridge), 1e-9)
	assert.Zero(t, cambridge.DistanceKm(cambridge))

	// One degree of longitude on the equator
	a := Location{Latitude: 0, Longitude: 0}
	b := Location{Latitude: 0, Longitude: 1}
	assert.InDelta(t, 111.19, a.DistanceKm(b), 0.01)
}
