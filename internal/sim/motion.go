package sim

import "github.com/Acteus/Simple-Epidemic/internal/entropy"

// damping is applied to velocity every step regardless of forces, bounding
// speed growth structurally instead of clamping it.
const damping = 0.95

// motionModel advances agent kinematics: attraction back toward the fixed
// home, an independent per-axis random-walk kick, damping, then a position
// step with reflecting boundaries.
type motionModel struct {
	rng *entropy.Source
}

// update moves one agent. Deceased and isolated agents are frozen at their
// current position and velocity.
func (m *motionModel) update(a *Agent, p stepParams) {
	if a.State == Deceased || a.Isolated {
		return
	}

	a.VX += (a.HomeX - a.X) * p.homeAttraction * p.dt
	a.VY += (a.HomeY - a.Y) * p.homeAttraction * p.dt

	a.VX += m.rng.Uniform(-1, 1) * p.randomForce * p.dt
	a.VY += m.rng.Uniform(-1, 1) * p.randomForce * p.dt

	a.VX *= damping
	a.VY *= damping

	a.X += a.VX * p.dt
	a.Y += a.VY * p.dt

	a.X, a.VX = reflect(a.X, a.VX, p.gridSize)
	a.Y, a.VY = reflect(a.Y, a.VY, p.gridSize)
}

// reflect mirrors a coordinate back inside [0, bound] and flips the
// velocity component when it crossed either edge. Reflection, not clamping:
// an agent at -1 comes back at +1.
func reflect(pos, vel, bound float64) (float64, float64) {
	if pos < 0 {
		return -pos, -vel
	}
	if pos > bound {
		return 2*bound - pos, -vel
	}
	return pos, vel
}
