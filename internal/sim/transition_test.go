package sim

import (
	"testing"

	"github.com/Acteus/Simple-Epidemic/internal/entropy"
)

// certainParams makes every transmission draw succeed (beta*dt >= 1 against
// unit heterogeneity) so contact outcomes are deterministic.
func certainParams() stepParams {
	return stepParams{
		gridSize:          100,
		beta:              10,
		dt:                1,
		interactionRadius: 2,
		incubationMean:    5,
		incubationStd:     0,
		infectiousMean:    7,
		infectiousStd:     0,
	}
}

func TestContactInfectsWithinRadius(t *testing.T) {
	s := &Agent{ID: 0, X: 10, Y: 10, State: Susceptible, Susceptibility: 1}
	n := &Agent{ID: 1, X: 11, Y: 10, State: Infectious, Infectiousness: 1}
	agents := []*Agent{s, n}

	g := newGrid()
	p := certainParams()
	g.rebuild(agents, p.interactionRadius)

	te := newTransitionEngine(entropy.NewSource(1))
	newInf, curInf := te.decide(agents, g, p)

	if newInf != 1 || curInf != 1 {
		t.Fatalf("newInfections=%d currentlyInfectious=%d, want 1 and 1", newInf, curInf)
	}
	if te.pending[0].state != Exposed {
		t.Fatalf("susceptible agent should be pending Exposed, got %v", te.pending[0].state)
	}
	if te.pending[0].timer != 5 {
		t.Fatalf("pending incubation timer = %v, want 5", te.pending[0].timer)
	}
}

func TestIsolatedNeighborCannotTransmit(t *testing.T) {
	s := &Agent{ID: 0, X: 10, Y: 10, State: Susceptible, Susceptibility: 1}
	n := &Agent{ID: 1, X: 11, Y: 10, State: Infectious, Infectiousness: 1, Isolated: true}
	agents := []*Agent{s, n}

	g := newGrid()
	p := certainParams()
	g.rebuild(agents, p.interactionRadius)

	te := newTransitionEngine(entropy.NewSource(1))
	newInf, _ := te.decide(agents, g, p)

	if newInf != 0 {
		t.Fatalf("isolated neighbor transmitted: %d new infections", newInf)
	}
	if te.pending[0].state != Susceptible {
		t.Fatalf("agent should stay Susceptible, got %v", te.pending[0].state)
	}
}

func TestNeighborOutsideRadiusCannotTransmit(t *testing.T) {
	s := &Agent{ID: 0, X: 10, Y: 10, State: Susceptible, Susceptibility: 1}
	n := &Agent{ID: 1, X: 14, Y: 10, State: Infectious, Infectiousness: 1}
	agents := []*Agent{s, n}

	g := newGrid()
	p := certainParams() // radius 2, neighbor at distance 4
	g.rebuild(agents, p.interactionRadius)

	te := newTransitionEngine(entropy.NewSource(1))
	if newInf, _ := te.decide(agents, g, p); newInf != 0 {
		t.Fatalf("out-of-radius neighbor transmitted: %d new infections", newInf)
	}
}

func TestVaccinationBypassesExposure(t *testing.T) {
	s := &Agent{ID: 0, X: 10, Y: 10, State: Susceptible, Susceptibility: 1}
	agents := []*Agent{s}

	g := newGrid()
	p := certainParams()
	p.vaxRate = 1 // vaxRate*dt = 1: certain vaccination
	g.rebuild(agents, p.interactionRadius)

	te := newTransitionEngine(entropy.NewSource(1))
	te.decide(agents, g, p)

	if te.pending[0].state != Recovered {
		t.Fatalf("vaccinated agent should be pending Recovered, got %v", te.pending[0].state)
	}
}

func TestDecideDoesNotTouchAgents(t *testing.T) {
	s := &Agent{ID: 0, X: 10, Y: 10, State: Susceptible, Susceptibility: 1}
	n := &Agent{ID: 1, X: 11, Y: 10, State: Infectious, Infectiousness: 1, StateTimer: 3}
	agents := []*Agent{s, n}

	g := newGrid()
	p := certainParams()
	g.rebuild(agents, p.interactionRadius)

	te := newTransitionEngine(entropy.NewSource(1))
	te.decide(agents, g, p)

	// Phase A must stage everything in decision records; committed state
	// is untouched until Phase B.
	if s.State != Susceptible || n.State != Infectious || n.StateTimer != 3 {
		t.Fatalf("decide mutated committed agent state: %+v %+v", s, n)
	}

	te.commit(agents, p.dt)
	if s.State != Exposed {
		t.Fatalf("commit did not apply pending state, got %v", s.State)
	}
	if s.DaysInState != 0 {
		t.Fatalf("days-in-state should reset on transition, got %v", s.DaysInState)
	}
	if n.StateTimer != 2 {
		t.Fatalf("infectious timer should decrement to 2, got %v", n.StateTimer)
	}
}

func TestCommitAgesUnchangedAgents(t *testing.T) {
	a := &Agent{ID: 0, X: 10, Y: 10, State: Recovered, DaysInState: 1.5}
	agents := []*Agent{a}

	g := newGrid()
	p := certainParams()
	p.dt = 0.5
	g.rebuild(agents, p.interactionRadius)

	te := newTransitionEngine(entropy.NewSource(1))
	te.decide(agents, g, p)
	te.commit(agents, p.dt)

	if a.State != Recovered {
		t.Fatalf("recovered agent changed state: %v", a.State)
	}
	if a.DaysInState != 2.0 {
		t.Fatalf("days-in-state = %v, want 2.0", a.DaysInState)
	}
}
