package sim

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every construction-time validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all simulation parameters. The caller owns it; the engine
// keeps a reference and re-reads the rate and period fields at the start of
// every step, so they may be edited live between steps. Population and
// GridSize are structural — they shape the initial agent set — and only
// take effect through a new Simulation.
type Config struct {
	Population int     `yaml:"population"`
	GridSize   float64 `yaml:"grid_size"`

	// Transmission probability scale per contact per day.
	Beta float64 `yaml:"beta"`

	// Sojourn time distributions, in sim-days.
	IncubationMean float64 `yaml:"incubation_mean"`
	IncubationStd  float64 `yaml:"incubation_std"`
	InfectiousMean float64 `yaml:"infectious_mean"`
	InfectiousStd  float64 `yaml:"infectious_std"`

	// Probability of death at the end of the infectious period.
	MortalityRate float64 `yaml:"mortality_rate"`

	// Daily vaccination rate, moving S directly to R.
	VaxRate float64 `yaml:"vax_rate"`

	InteractionRadius float64 `yaml:"interaction_radius"`
	DT                float64 `yaml:"dt"`

	// Mobility coefficients.
	HomeAttraction float64 `yaml:"home_attraction"`
	RandomForce    float64 `yaml:"random_force"`

	// Interventions: detected infectious agents isolate with the given
	// compliance probability.
	DetectionProb       float64 `yaml:"detection_prob"`
	IsolationCompliance float64 `yaml:"isolation_compliance"`

	// Initial home placement: 0 is uniform over the grid, values toward 1
	// pull homes into noise-defined clusters.
	HomeClustering float64 `yaml:"home_clustering"`
}

// DefaultConfig returns the baseline scenario.
func DefaultConfig() Config {
	return Config{
		Population:          200,
		GridSize:            100.0,
		Beta:                1.0,
		IncubationMean:      5.0,
		IncubationStd:       2.0,
		InfectiousMean:      7.0,
		InfectiousStd:       3.0,
		MortalityRate:       0.02,
		VaxRate:             0.0,
		InteractionRadius:   2.0,
		DT:                  0.5,
		HomeAttraction:      0.05,
		RandomForce:         1.0,
		DetectionProb:       0.0,
		IsolationCompliance: 0.8,
		HomeClustering:      0.0,
	}
}

// LoadConfig reads a YAML scenario file over the defaults, so a file only
// needs to name the fields it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the config eagerly, before any agent exists. Probability
// fields must sit in [0, 1]; periods and structural extents must be
// positive. Violations wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Population <= 0 {
		return fmt.Errorf("%w: population must be positive, got %d", ErrInvalidConfig, c.Population)
	}
	if c.GridSize <= 0 {
		return fmt.Errorf("%w: grid_size must be positive, got %g", ErrInvalidConfig, c.GridSize)
	}
	if c.DT <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.DT)
	}
	if c.InteractionRadius <= 0 {
		return fmt.Errorf("%w: interaction_radius must be positive, got %g", ErrInvalidConfig, c.InteractionRadius)
	}
	if c.IncubationMean <= 0 || c.IncubationStd <= 0 {
		return fmt.Errorf("%w: incubation period mean/std must be positive, got %g/%g",
			ErrInvalidConfig, c.IncubationMean, c.IncubationStd)
	}
	if c.InfectiousMean <= 0 || c.InfectiousStd <= 0 {
		return fmt.Errorf("%w: infectious period mean/std must be positive, got %g/%g",
			ErrInvalidConfig, c.InfectiousMean, c.InfectiousStd)
	}
	probs := []struct {
		name string
		v    float64
	}{
		{"mortality_rate", c.MortalityRate},
		{"detection_prob", c.DetectionProb},
		{"isolation_compliance", c.IsolationCompliance},
		{"home_clustering", c.HomeClustering},
	}
	for _, p := range probs {
		if p.v < 0 || p.v > 1 {
			return fmt.Errorf("%w: %s must be in [0, 1], got %g", ErrInvalidConfig, p.name, p.v)
		}
	}
	if c.Beta < 0 {
		return fmt.Errorf("%w: beta must be non-negative, got %g", ErrInvalidConfig, c.Beta)
	}
	if c.VaxRate < 0 {
		return fmt.Errorf("%w: vax_rate must be non-negative, got %g", ErrInvalidConfig, c.VaxRate)
	}
	if c.HomeAttraction < 0 || c.RandomForce < 0 {
		return fmt.Errorf("%w: mobility coefficients must be non-negative, got %g/%g",
			ErrInvalidConfig, c.HomeAttraction, c.RandomForce)
	}
	return nil
}

// stepParams is the frozen copy of the live-tunable fields taken once at
// Step entry. A caller editing the shared Config between steps can never
// tear a single step in half.
type stepParams struct {
	gridSize            float64
	beta                float64
	incubationMean      float64
	incubationStd       float64
	infectiousMean      float64
	infectiousStd       float64
	mortalityRate       float64
	vaxRate             float64
	interactionRadius   float64
	dt                  float64
	homeAttraction      float64
	randomForce         float64
	detectionProb       float64
	isolationCompliance float64
}

func (c *Config) snapshot() stepParams {
	return stepParams{
		gridSize:            c.GridSize,
		beta:                c.Beta,
		incubationMean:      c.IncubationMean,
		incubationStd:       c.IncubationStd,
		infectiousMean:      c.InfectiousMean,
		infectiousStd:       c.InfectiousStd,
		mortalityRate:       c.MortalityRate,
		vaxRate:             c.VaxRate,
		interactionRadius:   c.InteractionRadius,
		dt:                  c.DT,
		homeAttraction:      c.HomeAttraction,
		randomForce:         c.RandomForce,
		detectionProb:       c.DetectionProb,
		isolationCompliance: c.IsolationCompliance,
	}
}
