// Package entropy provides the seedable randomness source behind every
// stochastic draw in the simulation. The engine owns its Source instances
// and never touches the package-level math/rand generator, so a run is
// fully reproducible from its seed.
package entropy

import (
	"math"
	"math/rand"
)

// Source wraps a seeded generator with the draw shapes the engine needs.
// Not safe for concurrent use; each subsystem holds its own Source.
type Source struct {
	rng *rand.Rand
}

// NewSource creates a Source from a seed. Subsystems derive their own
// sources with distinct seed offsets so their streams stay independent.
func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Float returns a uniform float64 in [0, 1).
func (s *Source) Float() float64 {
	return s.rng.Float64()
}

// Uniform returns a uniform float64 in [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Bernoulli returns true with probability p. A draw is consumed even when
// p is 0 or 1, keeping the stream position independent of parameter values.
func (s *Source) Bernoulli(p float64) bool {
	return s.rng.Float64() < p
}

// TruncNormal samples Normal(mean, std) truncated at zero: negative samples
// clamp to 0 rather than being redrawn. With std = 0 it returns
// max(0, mean), which is what makes deterministic sojourn times possible.
func (s *Source) TruncNormal(mean, std float64) float64 {
	v := mean + std*s.rng.NormFloat64()
	if v < 0 {
		return 0
	}
	return v
}

// Gamma samples Gamma(shape, scale) using Marsaglia-Tsang squeeze
// rejection. shape and scale must be positive.
func (s *Source) Gamma(shape, scale float64) float64 {
	if shape < 1 {
		// Boost: Gamma(a) = Gamma(a+1) * U^(1/a).
		u := s.rng.Float64()
		return s.Gamma(shape+1, scale) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / (3.0 * math.Sqrt(d))
	for {
		x := s.rng.NormFloat64()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := s.rng.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}
