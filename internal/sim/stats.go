package sim

// StateHistory holds one count series per compartment, with one entry per
// recorded step including the initial step-0 snapshot. Series only grow;
// they are never truncated or rewritten.
type StateHistory struct {
	S []int `json:"s"`
	E []int `json:"e"`
	I []int `json:"i"`
	R []int `json:"r"`
	D []int `json:"d"`
}

// statsCollector counts agents per state after each commit and tracks the
// reproduction-number proxy alongside.
type statsCollector struct {
	history StateHistory
	rt      []float64
}

// record takes the census, appends it and the Rt estimate, and returns the
// counts for the step just finished.
//
// The Rt formula is an explicitly coarse instantaneous proxy:
//
//	Rt = (newInfections / dt) / currentlyInfectious * infectiousMean
//
// with a hard 0 when nobody is infectious. It is sensitive to dt and to
// live edits of the infectious-period mean; downstream consumers depend on
// this exact formula, so it must not be "improved".
func (c *statsCollector) record(agents []*Agent, newInfections, currentlyInfectious int, dt, infectiousMean float64) Counts {
	var counts Counts
	for _, a := range agents {
		switch a.State {
		case Susceptible:
			counts.S++
		case Exposed:
			counts.E++
		case Infectious:
			counts.I++
		case Recovered:
			counts.R++
		case Deceased:
			counts.D++
		}
	}

	c.history.S = append(c.history.S, counts.S)
	c.history.E = append(c.history.E, counts.E)
	c.history.I = append(c.history.I, counts.I)
	c.history.R = append(c.history.R, counts.R)
	c.history.D = append(c.history.D, counts.D)

	rt := 0.0
	if currentlyInfectious > 0 {
		rt = (float64(newInfections) / dt) / float64(currentlyInfectious) * infectiousMean
	}
	c.rt = append(c.rt, rt)

	return counts
}
