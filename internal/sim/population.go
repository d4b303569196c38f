package sim

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/Acteus/Simple-Epidemic/internal/entropy"
)

// Heterogeneity distributions: per-agent infectiousness follows a gamma
// distribution (long right tail, a few superspreaders), susceptibility is
// uniform around 1.
const (
	infectiousnessShape = 2.0
	infectiousnessScale = 0.5
	susceptibilityMin   = 0.5
	susceptibilityMax   = 1.5
)

// Clustered placement: how many noise features span the grid, and how many
// rejection-sampling attempts before accepting a candidate outright.
const (
	placementFrequency   = 4.0
	maxPlacementAttempts = 32
)

// homePlacer draws initial home positions. At zero clustering every home is
// uniform over the grid. Above zero, candidates are accepted against an
// opensimplex density field, so homes gather into town-like clusters; the
// clustering value blends uniform toward fully noise-weighted.
type homePlacer struct {
	gridSize   float64
	clustering float64
	noise      opensimplex.Noise
}

func newHomePlacer(cfg *Config, seed int64) *homePlacer {
	p := &homePlacer{gridSize: cfg.GridSize, clustering: cfg.HomeClustering}
	if cfg.HomeClustering > 0 {
		p.noise = opensimplex.NewNormalized(seed)
	}
	return p
}

func (p *homePlacer) place(rng *entropy.Source) (x, y float64) {
	for attempt := 0; ; attempt++ {
		x = rng.Uniform(0, p.gridSize)
		y = rng.Uniform(0, p.gridSize)
		if p.noise == nil {
			return x, y
		}
		density := p.noise.Eval2(
			x/p.gridSize*placementFrequency,
			y/p.gridSize*placementFrequency,
		)
		accept := (1 - p.clustering) + p.clustering*density
		if rng.Float() < accept || attempt >= maxPlacementAttempts {
			return x, y
		}
	}
}

// buildPopulation creates the N initial agents. Agent 0 is patient zero,
// seeded directly into Infectious with a sampled infectious-period timer;
// everyone else starts Susceptible with a zero timer.
func buildPopulation(cfg *Config, rng *entropy.Source, seed int64) []*Agent {
	placer := newHomePlacer(cfg, seed)

	agents := make([]*Agent, 0, cfg.Population)
	for i := 0; i < cfg.Population; i++ {
		x, y := placer.place(rng)

		a := &Agent{
			ID:             i,
			X:              x,
			Y:              y,
			VX:             rng.Uniform(-1, 1),
			VY:             rng.Uniform(-1, 1),
			HomeX:          x,
			HomeY:          y,
			Infectiousness: rng.Gamma(infectiousnessShape, infectiousnessScale),
			Susceptibility: rng.Uniform(susceptibilityMin, susceptibilityMax),
			State:          Susceptible,
		}
		if i == 0 {
			a.State = Infectious
			a.StateTimer = rng.TruncNormal(cfg.InfectiousMean, cfg.InfectiousStd)
		}
		agents = append(agents, a)
	}
	return agents
}
