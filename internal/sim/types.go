// Package sim implements an agent-based stochastic SEIRD epidemic engine:
// agents move in continuous 2D space, contacts are resolved through a
// uniform spatial grid, and disease progression runs as a two-phase
// decide/commit state machine so that no agent's transition this step can
// influence another's decision in the same step.
package sim

// State is a disease compartment.
type State uint8

const (
	Susceptible State = iota
	Exposed
	Infectious
	Recovered
	Deceased
)

// NumStates is the number of disease compartments.
const NumStates = 5

// String returns the single-letter compartment code.
func (s State) String() string {
	switch s {
	case Susceptible:
		return "S"
	case Exposed:
		return "E"
	case Infectious:
		return "I"
	case Recovered:
		return "R"
	case Deceased:
		return "D"
	}
	return "?"
}

// Agent is one member of the population. The set of agents is fixed at
// construction; agents change state but are never created or destroyed.
type Agent struct {
	ID int

	// Kinematics.
	X, Y   float64
	VX, VY float64

	// Fixed home the agent is attracted back toward.
	HomeX, HomeY float64

	// Heterogeneity scalars, sampled once at creation and immutable.
	Infectiousness float64
	Susceptibility float64

	State       State
	StateTimer  float64 // remaining sojourn time; meaningful only in E and I
	DaysInState float64 // sim-days since the last state change
	Isolated    bool    // set on detected I agents; freezes motion and transmission
}

// AgentView is the read-only per-agent snapshot served to renderers.
type AgentView struct {
	ID          int     `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	State       string  `json:"state"`
	DaysInState float64 `json:"days_in_state"`
	Isolated    bool    `json:"is_isolated"`
}

// Counts is a per-state census taken at a step boundary.
type Counts struct {
	S int `json:"s"`
	E int `json:"e"`
	I int `json:"i"`
	R int `json:"r"`
	D int `json:"d"`
}

// Total returns the population accounted for across all compartments.
func (c Counts) Total() int {
	return c.S + c.E + c.I + c.R + c.D
}
