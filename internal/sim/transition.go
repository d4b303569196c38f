package sim

import "github.com/Acteus/Simple-Epidemic/internal/entropy"

// decision is the immutable Phase A output for one agent: the state, timer,
// and isolation flag it will carry after commit, plus whether this agent was
// newly infected through contact this step. Decisions live in a scratch
// slice on the engine, never on the agent, so Phase A only ever reads
// committed pre-step state.
type decision struct {
	state    State
	timer    float64
	isolated bool
	infected bool
}

// transitionEngine runs the SEIRD state machine as two phases per step:
// decide for every agent against the pre-step snapshot, then commit every
// decision. A transition decided for one agent can therefore never cascade
// into another agent's decision within the same step.
type transitionEngine struct {
	rng     *entropy.Source
	pending []decision
}

func newTransitionEngine(rng *entropy.Source) *transitionEngine {
	return &transitionEngine{rng: rng}
}

// decide runs Phase A. It returns the number of new contact infections and
// the number of agents that were infectious during this step, the two
// inputs to the reproduction-number estimate.
func (t *transitionEngine) decide(agents []*Agent, g *grid, p stepParams) (newInfections, currentlyInfectious int) {
	if cap(t.pending) < len(agents) {
		t.pending = make([]decision, len(agents))
	}
	t.pending = t.pending[:len(agents)]

	for i, a := range agents {
		d := decision{state: a.State, timer: a.StateTimer, isolated: a.Isolated}

		switch a.State {
		case Deceased:
			// Absorbing.

		case Susceptible:
			if t.rng.Bernoulli(p.vaxRate * p.dt) {
				// Vaccination bypasses E and I entirely.
				d.state = Recovered
			} else if t.contact(a, g, p) {
				d.state = Exposed
				d.timer = t.rng.TruncNormal(p.incubationMean, p.incubationStd)
				d.infected = true
				newInfections++
			}

		case Exposed:
			d.timer -= p.dt
			if d.timer <= 0 {
				d.state = Infectious
				d.timer = t.rng.TruncNormal(p.infectiousMean, p.infectiousStd)
				// Isolation requires both a detection and a compliance
				// success; undetected or non-compliant cases roam freely.
				if t.rng.Bernoulli(p.detectionProb) && t.rng.Bernoulli(p.isolationCompliance) {
					d.isolated = true
				}
			}

		case Infectious:
			currentlyInfectious++
			d.timer -= p.dt
			if d.timer <= 0 {
				if t.rng.Bernoulli(p.mortalityRate) {
					d.state = Deceased
				} else {
					d.state = Recovered
				}
				d.isolated = false
			}

		case Recovered:
			// Absorbing for disease state; recovered agents keep moving.
		}

		t.pending[i] = d
	}
	return newInfections, currentlyInfectious
}

// contact reports whether a susceptible agent is infected by a neighbor.
// The first qualifying infectious neighbor in Moore scan order that wins
// its Bernoulli draw short-circuits the scan; this order dependence is
// deliberate and kept for compatibility with the reference behavior.
func (t *transitionEngine) contact(a *Agent, g *grid, p stepParams) bool {
	r2 := p.interactionRadius * p.interactionRadius
	infected := false
	g.visitMoore(a.X, a.Y, func(n *Agent) bool {
		if n.State != Infectious || n.Isolated {
			return true
		}
		dx := a.X - n.X
		dy := a.Y - n.Y
		if dx*dx+dy*dy > r2 {
			return true
		}
		if t.rng.Bernoulli(p.beta * n.Infectiousness * a.Susceptibility * p.dt) {
			infected = true
			return false
		}
		return true
	})
	return infected
}

// commit runs Phase B, applying every staged decision. Agents whose state
// changed take the new timer and reset days-in-state; everyone else ages in
// place. A timer that reached exactly 0 this step is only re-evaluated at
// the next step's decide phase.
func (t *transitionEngine) commit(agents []*Agent, dt float64) {
	for i, a := range agents {
		d := t.pending[i]
		if d.state != a.State {
			a.State = d.state
			a.StateTimer = d.timer
			a.DaysInState = 0
		} else {
			a.StateTimer = d.timer
			a.DaysInState += dt
		}
		a.Isolated = d.isolated
	}
}
