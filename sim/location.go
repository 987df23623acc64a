package sim

import (
	"math"
	"strings"
)

// ZipcodeRecord is one merged row of the reference tables: coordinates,
// median household income and population for a single zip code.
// Records are created once at load time and never modified.
type ZipcodeRecord struct {
	Zipcode      string
	City         string
	State        string
	Latitude     float64
	Longitude    float64
	Population   int64
	MedianIncome float64
}

// Location returns the immutable location view of a record.
func (r ZipcodeRecord) Location() Location {
	return Location{
		Zipcode:      r.Zipcode,
		City:         r.City,
		State:        r.State,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		Population:   r.Population,
		MedianIncome: r.MedianIncome,
	}
}

// Location is where a store or customer lives. Locations are copied by
// value and only ever come from a ReferenceDataSet.
type Location struct {
	Zipcode      string
	City         string
	State        string
	Latitude     float64
	Longitude    float64
	Population   int64
	MedianIncome float64
}

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle (haversine) distance between two locations.
func (l Location) DistanceKm(other Location) float64 {
	lat1 := l.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (other.Longitude - l.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

// ReferenceDataSet is the immutable in-memory zip code table handed to the
// generator by a loader.
type ReferenceDataSet struct {
	records []ZipcodeRecord
}

// NewReferenceDataSet copies records into a ReferenceDataSet.
// Records must have a zip code and non-negative population and income.
// An empty set is allowed here; samplers reject it.
func NewReferenceDataSet(records []ZipcodeRecord) (*ReferenceDataSet, error) {
	for i, r := range records {
		if strings.TrimSpace(r.Zipcode) == "" {
			return nil, invalidInputf("record %d: empty zipcode", i)
		}
		if r.Population < 0 {
			return nil, invalidInputf("record %d (%s): population must be >= 0, got %d", i, r.Zipcode, r.Population)
		}
		if r.MedianIncome < 0 || math.IsNaN(r.MedianIncome) || math.IsInf(r.MedianIncome, 0) {
			return nil, invalidInputf("record %d (%s): median income must be a finite value >= 0, got %v", i, r.Zipcode, r.MedianIncome)
		}
	}
	copied := make([]ZipcodeRecord, len(records))
	copy(copied, records)
	return &ReferenceDataSet{records: copied}, nil
}

// Len returns the number of records. Safe on a nil set.
func (d *ReferenceDataSet) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Record returns the i-th record.
func (d *ReferenceDataSet) Record(i int) ZipcodeRecord {
	return d.records[i]
}

// Records returns a copy of all records in load order.
func (d *ReferenceDataSet) Records() []ZipcodeRecord {
	if d == nil {
		return nil
	}
	out := make([]ZipcodeRecord, len(d.records))
	copy(out, d.records)
	return out
}
