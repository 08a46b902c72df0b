package autopilot

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/avellar/landersim/internal/lander"
)

func craftAt(alt, vradial float64) *lander.Craft {
	c := &lander.Craft{Fuel: 1.0, Dt: 0.1}
	c.Position = r3.Vec{X: lander.MarsRadius + alt}
	c.Velocity = r3.Vec{X: vradial}
	return c
}

func gravityAt(c *lander.Craft) float64 {
	r := r3.Norm(c.Position)
	return lander.GravityConst * lander.MarsMass * c.Mass() / (r * r)
}

func TestNewRejectsBadAltitude(t *testing.T) {
	env := lander.MarsEnvironment{}

	for _, alt := range []float64{0, -500} {
		if _, err := New(env, alt); !errors.Is(err, lander.ErrBadInitialAltitude) {
			t.Errorf("New(%v): err = %v, want ErrBadInitialAltitude", alt, err)
		}
	}
	if _, err := New(env, 10000); err != nil {
		t.Errorf("New(10000): unexpected error %v", err)
	}
}

func TestThresholds(t *testing.T) {
	tests := []struct {
		initial   float64
		wantGate  float64
		wantChute float64
	}{
		// At the 10 km calibration point the two thresholds coincide.
		{10000, 5000, 5000},
		{200000, 100000, 100000 - 190000/1.943},
	}

	for _, tt := range tests {
		a, err := New(lander.MarsEnvironment{}, tt.initial)
		if err != nil {
			t.Fatal(err)
		}
		if got := a.EngagementAltitude(); math.Abs(got-tt.wantGate) > 1e-9 {
			t.Errorf("initial %v: EngagementAltitude() = %v, want %v", tt.initial, got, tt.wantGate)
		}
		if got := a.ChuteAltitude(); math.Abs(got-tt.wantChute) > 1e-6 {
			t.Errorf("initial %v: ChuteAltitude() = %v, want %v", tt.initial, got, tt.wantChute)
		}
	}
}

func TestEngagementLatch(t *testing.T) {
	a, err := New(lander.MarsEnvironment{}, 10000)
	if err != nil {
		t.Fatal(err)
	}

	// Above the gate: stays disengaged, throttle untouched.
	c := craftAt(8000, -150)
	c.Throttle = 0.42
	a.Update(c, gravityAt(c), c.Mass())
	if a.Engaged() || c.Throttle != 0.42 {
		t.Fatalf("engaged above gate, or throttle moved: %v %v", a.Engaged(), c.Throttle)
	}

	// Crossing the gate latches engagement and records the descent rate, but
	// the throttle law waits one more cycle.
	c = craftAt(4800, -190)
	c.Throttle = 0.42
	a.Update(c, gravityAt(c), c.Mass())
	if !a.Engaged() {
		t.Fatal("did not engage below the gate")
	}
	if c.Throttle != 0.42 {
		t.Errorf("throttle commanded on the engagement cycle: %v", c.Throttle)
	}

	// Climbing back above the gate does not disengage.
	c = craftAt(6000, 50)
	a.Update(c, gravityAt(c), c.Mass())
	if !a.Engaged() {
		t.Error("engagement latch released")
	}

	// Reset clears it.
	if err := a.Reset(10000); err != nil {
		t.Fatal(err)
	}
	if a.Engaged() {
		t.Error("still engaged after Reset")
	}
	if err := a.Reset(-1); !errors.Is(err, lander.ErrBadInitialAltitude) {
		t.Errorf("Reset(-1): err = %v, want ErrBadInitialAltitude", err)
	}
}

func TestThrottleLawBounds(t *testing.T) {
	a, err := New(lander.MarsEnvironment{}, 10000)
	if err != nil {
		t.Fatal(err)
	}

	// Engage at the gate with a representative descent rate.
	c := craftAt(4999, -190)
	a.Update(c, gravityAt(c), c.Mass())
	if !a.Engaged() {
		t.Fatal("not engaged")
	}

	// Sweep the state space: the commanded throttle never leaves [0,1].
	for _, alt := range []float64{4500, 3000, 1000, 100, 1} {
		for _, vr := range []float64{-400, -190, -50, -1, 0, 20} {
			c := craftAt(alt, vr)
			a.Update(c, gravityAt(c), c.Mass())
			if c.Throttle < 0 || c.Throttle > 1 {
				t.Fatalf("alt=%v vr=%v: throttle %v out of [0,1]", alt, vr, c.Throttle)
			}
		}
	}
}

func TestThrottleLawSaturation(t *testing.T) {
	a, err := New(lander.MarsEnvironment{}, 10000)
	if err != nil {
		t.Fatal(err)
	}
	c := craftAt(4999, -190)
	a.Update(c, gravityAt(c), c.Mass())

	// Falling far faster than the descent profile allows saturates the engine.
	fast := craftAt(1000, -400)
	a.Update(fast, gravityAt(fast), fast.Mass())
	if fast.Throttle != 1 {
		t.Errorf("throttle while plummeting = %v, want 1", fast.Throttle)
	}

	// Climbing cuts the engine entirely.
	up := craftAt(1000, 100)
	a.Update(up, gravityAt(up), up.Mass())
	if up.Throttle != 0 {
		t.Errorf("throttle while climbing = %v, want 0", up.Throttle)
	}
}

func TestParachuteDeployment(t *testing.T) {
	env := lander.MarsEnvironment{}
	a, err := New(env, 10000)
	if err != nil {
		t.Fatal(err)
	}

	// Above the chute threshold: stays stowed.
	c := craftAt(6000, -100)
	a.Update(c, gravityAt(c), c.Mass())
	if c.Flags.Parachute != lander.NotDeployed {
		t.Fatal("chute deployed above its threshold")
	}

	// Below the threshold and inside the envelope: deploys.
	c = craftAt(4000, -100)
	a.Update(c, gravityAt(c), c.Mass())
	if c.Flags.Parachute != lander.Deployed {
		t.Fatal("chute not deployed inside the envelope")
	}

	// Below the threshold but too fast: stays stowed.
	fast := craftAt(4000, -600)
	if err := a.Reset(10000); err != nil {
		t.Fatal(err)
	}
	a.Update(fast, gravityAt(fast), fast.Mass())
	if fast.Flags.Parachute != lander.NotDeployed {
		t.Error("chute deployed outside the speed envelope")
	}

	// Deployment never reverts, even when the envelope is later violated.
	c.Velocity = r3.Vec{X: -600}
	a.Update(c, gravityAt(c), c.Mass())
	if c.Flags.Parachute != lander.Deployed {
		t.Error("chute status reverted")
	}
}

// Starting below the 10 km calibration altitude puts the chute threshold
// above the engagement gate, so the chute can open before the throttle law
// activates.
func TestChuteThresholdAboveGate(t *testing.T) {
	a, err := New(lander.MarsEnvironment{}, 8000)
	if err != nil {
		t.Fatal(err)
	}

	gate := a.EngagementAltitude()
	chute := a.ChuteAltitude()
	if chute <= gate {
		t.Fatalf("chute threshold %v not above gate %v", chute, gate)
	}

	c := craftAt((gate+chute)/2, -80)
	a.Update(c, gravityAt(c), c.Mass())
	if c.Flags.Parachute != lander.Deployed {
		t.Error("chute not deployed between gate and threshold")
	}
	if a.Engaged() {
		t.Error("engaged above the gate")
	}
}
