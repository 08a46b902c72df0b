package dynamics

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/avellar/landersim/internal/autopilot"
	"github.com/avellar/landersim/internal/lander"
)

func TestTickRejectsBadTimeStep(t *testing.T) {
	it := New(lander.MarsEnvironment{}, NewVerlet(), nil)

	for _, dt := range []float64{0, -0.1} {
		c := &lander.Craft{Fuel: 1.0, Dt: dt}
		c.Position = r3.Vec{X: lander.MarsRadius + 1000}
		if _, err := it.Tick(c); !errors.Is(err, lander.ErrBadTimeStep) {
			t.Errorf("dt=%v: err = %v, want ErrBadTimeStep", dt, err)
		}
	}
}

func TestTickRejectsNonPositiveMass(t *testing.T) {
	it := New(lander.MarsEnvironment{}, NewVerlet(), nil)
	c := &lander.Craft{Fuel: -2.0, Dt: 0.1}
	c.Position = r3.Vec{X: lander.MarsRadius + 1000}

	if _, err := it.Tick(c); !errors.Is(err, lander.ErrNonPositiveMass) {
		t.Errorf("err = %v, want ErrNonPositiveMass", err)
	}
}

func TestTickFreeFall(t *testing.T) {
	env := lander.MarsEnvironment{}
	it := New(env, NewEuler(), nil)

	c := &lander.Craft{Fuel: 1.0, Dt: 0.1}
	c.Position = r3.Vec{Z: lander.MarsRadius + 150000}

	f, err := it.Tick(c)
	if err != nil {
		t.Fatal(err)
	}

	g := r3.Norm(f.Gravity) / f.Mass
	if math.Abs(c.Velocity.Z+g*0.1) > 1e-9 {
		t.Errorf("velocity.Z after one tick = %v, want %v", c.Velocity.Z, -g*0.1)
	}
}

func TestTickRunsAutopilotOnlyWhenEnabled(t *testing.T) {
	env := lander.MarsEnvironment{}

	pilot, err := autopilot.New(env, 10000)
	if err != nil {
		t.Fatal(err)
	}
	it := New(env, NewEuler(), pilot)

	// Below the engagement altitude and descending; an enabled autopilot
	// engages and commands the throttle, a disabled one leaves it alone.
	mk := func(enabled bool) *lander.Craft {
		c := &lander.Craft{Fuel: 1.0, Dt: 0.1, Throttle: 0.33}
		c.Position = r3.Vec{X: lander.MarsRadius + 3000}
		c.Velocity = r3.Vec{X: -60}
		c.Flags.AutopilotEnabled = enabled
		return c
	}

	off := mk(false)
	if _, err := it.Tick(off); err != nil {
		t.Fatal(err)
	}
	if off.Throttle != 0.33 {
		t.Errorf("disabled autopilot changed throttle to %v", off.Throttle)
	}

	pilot.Reset(10000)
	on := mk(true)
	if _, err := it.Tick(on); err != nil {
		t.Fatal(err)
	}
	if !pilot.Engaged() {
		t.Error("autopilot did not engage below the engagement altitude")
	}
}

func TestTickStabilizesAttitude(t *testing.T) {
	env := lander.MarsEnvironment{}
	it := New(env, NewEuler(), nil)

	c := &lander.Craft{Fuel: 1.0, Dt: 0.1}
	c.Position = r3.Vec{Y: -(lander.MarsRadius + 10000)}
	c.Orientation = r3.Vec{X: 12, Y: 34, Z: 56}
	c.Flags.StabilizedAttitude = true

	if _, err := it.Tick(c); err != nil {
		t.Fatal(err)
	}

	f := env.ThrustWorld(c.Orientation, 1.0)
	radial := r3.Scale(1/r3.Norm(c.Position), c.Position)
	if r3.Dot(f, radial)/r3.Norm(f) < 1-1e-9 {
		t.Errorf("thrust axis not radial after stabilization: orientation=%v", c.Orientation)
	}
}
