package sim

import (
	"math/rand"
	"strings"
)

// WeightedName is one entry of a name pool. A zero weight means 1, so
// pools written without weights are drawn uniformly.
type WeightedName struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight,omitempty"`
}

// NamePool draws names by frequency.
type NamePool struct {
	names   []string
	sampler *CategoricalSampler
}

// NewNamePool creates a pool from weighted names.
func NewNamePool(entries []WeightedName) (*NamePool, error) {
	if len(entries) == 0 {
		return nil, invalidInputf("name pool is empty")
	}
	names := make([]string, len(entries))
	weights := make([]float64, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, invalidInputf("name pool entry %d is blank", i)
		}
		if e.Weight < 0 {
			return nil, invalidInputf("name %q: weight must be >= 0, got %v", name, e.Weight)
		}
		names[i] = name
		weights[i] = e.Weight
		if weights[i] == 0 {
			weights[i] = 1
		}
	}
	sampler, err := NewCategoricalSampler(weights)
	if err != nil {
		return nil, err
	}
	return &NamePool{names: names, sampler: sampler}, nil
}

// Draw returns one name.
func (p *NamePool) Draw(rng *rand.Rand) string {
	return p.names[p.sampler.Sample(rng)]
}

// Len returns the number of distinct names.
func (p *NamePool) Len() int {
	return len(p.names)
}

// DefaultFirstNames returns common US first names weighted by approximate
// frequency per 10,000 people.
func DefaultFirstNames() []WeightedName {
	return []WeightedName{
		{"James", 331}, {"Mary", 262}, {"John", 327}, {"Patricia", 107},
		{"Robert", 314}, {"Jennifer", 93}, {"Michael", 263}, {"Linda", 103},
		{"William", 243}, {"Elizabeth", 94}, {"David", 237}, {"Barbara", 98},
		{"Richard", 170}, {"Susan", 79}, {"Joseph", 140}, {"Jessica", 56},
		{"Thomas", 142}, {"Sarah", 63}, {"Charles", 152}, {"Karen", 67},
		{"Daniel", 97}, {"Nancy", 63}, {"Matthew", 79}, {"Lisa", 64},
		{"Anthony", 67}, {"Betty", 67}, {"Mark", 66}, {"Margaret", 63},
		{"Donald", 68}, {"Sandra", 62}, {"Steven", 67}, {"Ashley", 45},
		{"Paul", 81}, {"Kimberly", 48}, {"Andrew", 51}, {"Emily", 44},
		{"Joshua", 44}, {"Donna", 58}, {"Kenneth", 69}, {"Michelle", 53},
		{"Kevin", 56}, {"Carol", 58}, {"Brian", 62}, {"Amanda", 44},
		{"George", 93}, {"Melissa", 42}, {"Timothy", 37}, {"Deborah", 56},
	}
}

// DefaultLastNames returns common US surnames weighted by approximate
// frequency per 10,000 people.
func DefaultLastNames() []WeightedName {
	return []WeightedName{
		{"Smith", 83}, {"Johnson", 65}, {"Williams", 55}, {"Brown", 49},
		{"Jones", 48}, {"Garcia", 39}, {"Miller", 38}, {"Davis", 36},
		{"Rodriguez", 35}, {"Martinez", 34}, {"Hernandez", 34}, {"Lopez", 29},
		{"Gonzalez", 28}, {"Wilson", 27}, {"Anderson", 27}, {"Thomas", 26},
		{"Taylor", 26}, {"Moore", 25}, {"Jackson", 24}, {"Martin", 24},
		{"Lee", 23}, {"Perez", 21}, {"Thompson", 21}, {"White", 21},
		{"Harris", 20}, {"Sanchez", 20}, {"Clark", 18}, {"Ramirez", 18},
		{"Lewis", 17}, {"Robinson", 17}, {"Walker", 17}, {"Young", 16},
		{"Allen", 16}, {"King", 16}, {"Wright", 16}, {"Scott", 15},
		{"Torres", 15}, {"Nguyen", 15}, {"Hill", 15}, {"Flores", 15},
	}
}
