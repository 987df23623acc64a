package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GeneratorSpec is the optional YAML file that tunes the generator beyond
// the counts and horizon given on the command line. Every field is
// optional; unset fields keep their defaults.
type GeneratorSpec struct {
	LocationWeighting     string         `yaml:"location_weighting,omitempty"`
	StoreSelection        string         `yaml:"store_selection,omitempty"`
	VisitRate             *RateRangeSpec `yaml:"visit_rate,omitempty"`
	Basket                *BasketSpec    `yaml:"basket,omitempty"`
	AffinityConcentration *float64       `yaml:"affinity_concentration,omitempty"`
	FirstNames            []WeightedName `yaml:"first_names,omitempty"`
	LastNames             []WeightedName `yaml:"last_names,omitempty"`
	Products              []Product      `yaml:"products,omitempty"`
}

// RateRangeSpec bounds per-customer visit rates (visits per day).
// Unset bounds keep their defaults.
type RateRangeSpec struct {
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`
}

// BasketSpec configures the basket-size family of purchasing models.
type BasketSpec struct {
	Distribution string   `yaml:"distribution,omitempty"`
	MinMean      *float64 `yaml:"min_mean,omitempty"`
	MaxMean      *float64 `yaml:"max_mean,omitempty"`
}

// LoadGeneratorSpec reads and parses a YAML generator specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadGeneratorSpec(path string) (*GeneratorSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading generator spec: %w", err)
	}
	return ParseGeneratorSpec(data)
}

// ParseGeneratorSpec parses YAML bytes with the same strictness as
// LoadGeneratorSpec.
func ParseGeneratorSpec(data []byte) (*GeneratorSpec, error) {
	var spec GeneratorSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing generator spec: %w", err)
	}
	return &spec, nil
}

// Apply overlays the spec onto cfg and input. Validation happens later,
// in Simulate.
func (g *GeneratorSpec) Apply(cfg *Config, input *InputData) {
	if g.LocationWeighting != "" {
		cfg.LocationWeighting = LocationWeighting(g.LocationWeighting)
	}
	if g.StoreSelection != "" {
		cfg.StoreSelection = g.StoreSelection
	}
	if g.VisitRate != nil {
		overlayFloat(&cfg.VisitRates.Min, g.VisitRate.Min)
		overlayFloat(&cfg.VisitRates.Max, g.VisitRate.Max)
	}
	if g.Basket != nil {
		if g.Basket.Distribution != "" {
			cfg.Models.BasketDistribution = g.Basket.Distribution
		}
		overlayFloat(&cfg.Models.MinBasketMean, g.Basket.MinMean)
		overlayFloat(&cfg.Models.MaxBasketMean, g.Basket.MaxMean)
	}
	if g.AffinityConcentration != nil {
		cfg.Models.Concentration = *g.AffinityConcentration
	}
	if len(g.FirstNames) > 0 {
		input.FirstNames = g.FirstNames
	}
	if len(g.LastNames) > 0 {
		input.LastNames = g.LastNames
	}
	if len(g.Products) > 0 {
		input.Products = g.Products
	}
}

func overlayFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
