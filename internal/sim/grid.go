package sim

import "math"

// cellKey identifies one uniform grid cell by its integer coordinates.
type cellKey struct {
	cx, cy int
}

// grid is the spatial index: live agents bucketed into uniform cells whose
// side is at least the interaction radius, so a Moore-neighborhood scan is
// contact-complete. It is rebuilt from scratch every step; buckets are
// cleared in place and refilled rather than reallocated.
type grid struct {
	side    float64
	buckets map[cellKey][]*Agent
}

func newGrid() *grid {
	return &grid{buckets: make(map[cellKey][]*Agent)}
}

// rebuild re-indexes every non-deceased agent at its current position.
// Deceased agents can neither transmit nor be contacted, so they are
// excluded entirely.
func (g *grid) rebuild(agents []*Agent, interactionRadius float64) {
	// Never let the cell side drop below the interaction radius, or a
	// 3x3 scan would miss qualifying contacts.
	g.side = math.Max(interactionRadius, 1.0)

	for k, b := range g.buckets {
		g.buckets[k] = b[:0]
	}
	for _, a := range agents {
		if a.State == Deceased {
			continue
		}
		k := g.key(a.X, a.Y)
		g.buckets[k] = append(g.buckets[k], a)
	}
}

func (g *grid) key(x, y float64) cellKey {
	return cellKey{
		cx: int(math.Floor(x / g.side)),
		cy: int(math.Floor(y / g.side)),
	}
}

// visitMoore calls fn for every indexed agent in the 3x3 cell block around
// (x, y), stopping early when fn returns false. The scan order is fixed —
// dx outer, dy inner, then bucket insertion order — and transmission
// outcomes depend on it, so it must not be reordered.
func (g *grid) visitMoore(x, y float64, fn func(a *Agent) bool) {
	k := g.key(x, y)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			bucket, ok := g.buckets[cellKey{cx: k.cx + dx, cy: k.cy + dy}]
			if !ok {
				continue
			}
			for _, a := range bucket {
				if !fn(a) {
					return
				}
			}
		}
	}
}
