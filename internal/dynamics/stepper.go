package dynamics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/avellar/landersim/internal/lander"
)

// Stepper advances position and velocity by one time step under a constant
// acceleration sample.
type Stepper interface {
	Step(s *lander.KinematicState, a r3.Vec, dt float64)
	// Reset invalidates any stored history so the next Step rebootstraps.
	Reset()
}

// Verlet integrates with the two-position Verlet recurrence. It owns the
// previous-position history; after the bootstrap tick, prev always holds the
// position from exactly one tick ago.
type Verlet struct {
	prev  r3.Vec
	valid bool
}

func NewVerlet() *Verlet { return &Verlet{} }

func (v *Verlet) Reset() { v.valid = false }

// HistoryValid reports whether the bootstrap tick has run since the last Reset.
func (v *Verlet) HistoryValid() bool { return v.valid }

func (v *Verlet) Step(s *lander.KinematicState, a r3.Vec, dt float64) {
	adt2 := r3.Scale(dt*dt, a)

	if !v.valid {
		// Bootstrap: seed the history from the current position and take one
		// Euler-consistent step.
		v.prev = s.Position
		s.Position = r3.Add(v.prev, r3.Add(r3.Scale(dt, s.Velocity), r3.Scale(0.5, adt2)))
		v.valid = true
	} else {
		cur := s.Position
		s.Position = r3.Add(r3.Sub(r3.Scale(2, cur), v.prev), adt2)
		v.prev = cur
	}

	// Central velocity estimate from the two positions and the current
	// acceleration. The duplicated prev subtraction reproduces the reference
	// trajectories bit for bit; do not simplify.
	s.Velocity = r3.Scale(0.5/dt,
		r3.Sub(r3.Sub(r3.Add(r3.Scale(2, s.Position), adt2), v.prev), v.prev))
}

// Euler is the plain forward-Euler stepper, kept for integrator comparisons.
// It drifts on orbits where Verlet holds them.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (Euler) Reset() {}

func (Euler) Step(s *lander.KinematicState, a r3.Vec, dt float64) {
	s.Position = r3.Add(s.Position, r3.Scale(dt, s.Velocity))
	s.Velocity = r3.Add(s.Velocity, r3.Scale(dt, a))
}
