package sim

import (
	"github.com/Acteus/Simple-Epidemic/internal/entropy"
)

// Seed offsets keep each subsystem on its own independent stream while the
// whole run stays reproducible from one seed.
const (
	seedOffsetMotion     = 100
	seedOffsetTransition = 200
)

// Simulation owns the agent population, a handle to the caller's Config,
// and the recorded histories. It is single-threaded and step-atomic: Step
// runs to completion before returning, and callers only ever observe
// pre-step or post-step state.
type Simulation struct {
	cfg    *Config
	agents []*Agent

	index  *grid
	motion *motionModel
	trans  *transitionEngine
	stats  *statsCollector

	steps int
	day   float64
}

// New validates cfg, builds the initial population with exactly one seeded
// infectious agent, and records the step-0 snapshot. The same cfg pointer
// is retained: rate and period fields may be edited between steps, while
// structural fields (Population, GridSize) require constructing a fresh
// Simulation.
func New(cfg *Config, seed int64) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:    cfg,
		agents: buildPopulation(cfg, entropy.NewSource(seed), seed),
		index:  newGrid(),
		motion: &motionModel{rng: entropy.NewSource(seed + seedOffsetMotion)},
		trans:  newTransitionEngine(entropy.NewSource(seed + seedOffsetTransition)),
		stats:  &statsCollector{},
	}

	s.stats.record(s.agents, 0, 0, cfg.DT, cfg.InfectiousMean)
	return s, nil
}

// Step advances the simulation by exactly one dt-sized tick: motion, index
// rebuild, Phase A decide, Phase B commit, stats. The live-tunable config
// fields are snapshotted once at entry, so a caller mutation between steps
// is picked up atomically here and never mid-step. Returns the post-step
// census.
func (s *Simulation) Step() Counts {
	p := s.cfg.snapshot()

	for _, a := range s.agents {
		s.motion.update(a, p)
	}

	// The index must reflect post-motion positions before any decision
	// reads it.
	s.index.rebuild(s.agents, p.interactionRadius)

	newInfections, currentlyInfectious := s.trans.decide(s.agents, s.index, p)
	s.trans.commit(s.agents, p.dt)

	s.steps++
	s.day += p.dt
	return s.stats.record(s.agents, newInfections, currentlyInfectious, p.dt, p.infectiousMean)
}

// CurrentStep returns the number of completed steps.
func (s *Simulation) CurrentStep() int {
	return s.steps
}

// Day returns the accumulated simulation time in days. dt edits between
// steps are reflected from the step they take effect.
func (s *Simulation) Day() float64 {
	return s.day
}

// Agents returns the per-agent render snapshot.
func (s *Simulation) Agents() []AgentView {
	views := make([]AgentView, len(s.agents))
	for i, a := range s.agents {
		views[i] = AgentView{
			ID:          a.ID,
			X:           a.X,
			Y:           a.Y,
			State:       a.State.String(),
			DaysInState: a.DaysInState,
			Isolated:    a.Isolated,
		}
	}
	return views
}

// History returns the full per-state count series, one entry per step
// including step 0. The backing arrays are shared with the engine; treat
// the result as read-only.
func (s *Simulation) History() StateHistory {
	return s.stats.history
}

// RtHistory returns the reproduction-number series, parallel to History.
// Shared backing array; read-only.
func (s *Simulation) RtHistory() []float64 {
	return s.stats.rt
}

// Counts returns the census as of the last recorded step.
func (s *Simulation) Counts() Counts {
	n := len(s.stats.history.S)
	if n == 0 {
		return Counts{}
	}
	return Counts{
		S: s.stats.history.S[n-1],
		E: s.stats.history.E[n-1],
		I: s.stats.history.I[n-1],
		R: s.stats.history.R[n-1],
		D: s.stats.history.D[n-1],
	}
}

// Rt returns the most recent reproduction-number estimate.
func (s *Simulation) Rt() float64 {
	if len(s.stats.rt) == 0 {
		return 0
	}
	return s.stats.rt[len(s.stats.rt)-1]
}
