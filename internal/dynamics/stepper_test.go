package dynamics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/avellar/landersim/internal/lander"
)

// Under constant acceleration both the bootstrap tick and the recurrence are
// exact, so p(t) = p0 + v0*t + a*t^2/2 and v(t) = v0 + a*t hold to rounding.
func TestVerletConstantAcceleration(t *testing.T) {
	const dt = 0.1
	a := r3.Vec{Z: -3.71}

	v := NewVerlet()
	if v.HistoryValid() {
		t.Fatal("fresh Verlet claims valid history")
	}

	s := &lander.KinematicState{Position: r3.Vec{Z: 1000}}
	for n := 1; n <= 10; n++ {
		v.Step(s, a, dt)

		tt := float64(n) * dt
		wantZ := 1000 + 0.5*a.Z*tt*tt
		wantVZ := a.Z * tt
		if math.Abs(s.Position.Z-wantZ) > 1e-9 {
			t.Fatalf("step %d: position.Z = %v, want %v", n, s.Position.Z, wantZ)
		}
		if math.Abs(s.Velocity.Z-wantVZ) > 1e-9 {
			t.Fatalf("step %d: velocity.Z = %v, want %v", n, s.Velocity.Z, wantVZ)
		}
	}

	if !v.HistoryValid() {
		t.Error("history invalid after stepping")
	}
}

func TestVerletBootstrapUsesInitialVelocity(t *testing.T) {
	const dt = 0.5
	v := NewVerlet()
	s := &lander.KinematicState{Velocity: r3.Vec{X: 10}}

	v.Step(s, r3.Vec{}, dt)

	if math.Abs(s.Position.X-10*dt) > 1e-12 {
		t.Errorf("position.X = %v, want %v", s.Position.X, 10*dt)
	}
	if math.Abs(s.Velocity.X-10) > 1e-9 {
		t.Errorf("velocity.X = %v, want 10", s.Velocity.X)
	}
}

func TestVerletResetRebootstraps(t *testing.T) {
	const dt = 0.1
	a := r3.Vec{Y: 2}

	v := NewVerlet()
	s := &lander.KinematicState{}
	v.Step(s, a, dt)
	v.Step(s, a, dt)

	v.Reset()
	if v.HistoryValid() {
		t.Fatal("history still valid after Reset")
	}

	// The next step must take the half-step bootstrap form again.
	before := s.Position
	vel := s.Velocity
	v.Step(s, a, dt)
	want := r3.Add(before, r3.Add(r3.Scale(dt, vel), r3.Scale(0.5*dt*dt, a)))
	if math.Abs(s.Position.Y-want.Y) > 1e-12 {
		t.Errorf("post-reset position.Y = %v, want %v", s.Position.Y, want.Y)
	}
}

func TestEulerStep(t *testing.T) {
	const dt = 0.25
	s := &lander.KinematicState{
		Position: r3.Vec{X: 100},
		Velocity: r3.Vec{X: -4},
	}
	a := r3.Vec{X: -8}

	Euler{}.Step(s, a, dt)

	// Position advances on the old velocity, then velocity updates.
	if math.Abs(s.Position.X-99) > 1e-12 {
		t.Errorf("position.X = %v, want 99", s.Position.X)
	}
	if math.Abs(s.Velocity.X+6) > 1e-12 {
		t.Errorf("velocity.X = %v, want -6", s.Velocity.X)
	}
}
