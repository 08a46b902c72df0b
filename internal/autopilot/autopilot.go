// Package autopilot implements the descent-rate regulator: a one-way
// disengaged-to-engaged state machine with a proportional throttle law and a
// parachute deployment rule.
package autopilot

import (
	"fmt"

	"github.com/avellar/landersim/internal/lander"
)

// Gains and thresholds of the descent law.
const (
	// Kp is the proportional gain on the descent-rate error.
	Kp = 0.05
	// engageFraction sets the engagement altitude as a fraction of the
	// starting altitude.
	engageFraction = 0.5
	// chuteRefAltitude and chuteSlope map the starting altitude to a chute
	// deployment altitude, calibrated on the 10 km reference descent.
	chuteRefAltitude = 10000.0
	chuteSlope       = 1.943
)

// Autopilot regulates the descent rate once the craft drops below half its
// starting altitude, and fires the parachute when the deployment envelope
// allows. The engagement latch is one-way within a run.
type Autopilot struct {
	env             lander.Environment
	initialAltitude float64
	engaged         bool
	velEngaged      float64 // radial velocity latched at engagement
}

// New builds an autopilot for a run starting at the given altitude. The
// altitude must be strictly positive: both the throttle law and the chute
// threshold divide by quantities derived from it.
func New(env lander.Environment, initialAltitude float64) (*Autopilot, error) {
	if initialAltitude <= 0 {
		return nil, fmt.Errorf("%w: got %g", lander.ErrBadInitialAltitude, initialAltitude)
	}
	return &Autopilot{env: env, initialAltitude: initialAltitude}, nil
}

// Engaged reports whether the descent law is active.
func (a *Autopilot) Engaged() bool { return a.engaged }

// EngagementAltitude is the altitude below which the throttle law activates.
func (a *Autopilot) EngagementAltitude() float64 {
	return a.initialAltitude * engageFraction
}

// ChuteAltitude is the altitude below which parachute deployment is attempted.
func (a *Autopilot) ChuteAltitude() float64 {
	return a.EngagementAltitude() - (a.initialAltitude-chuteRefAltitude)/chuteSlope
}

// Reset clears the engagement latch for a fresh run from the given altitude.
func (a *Autopilot) Reset(initialAltitude float64) error {
	if initialAltitude <= 0 {
		return fmt.Errorf("%w: got %g", lander.ErrBadInitialAltitude, initialAltitude)
	}
	a.initialAltitude = initialAltitude
	a.engaged = false
	a.velEngaged = 0
	return nil
}

// Update runs one control cycle: parachute check, engagement check, then the
// throttle law. gForce is the gravitational force magnitude at the craft's
// position; mass is the instantaneous craft mass. While disengaged the
// throttle is left untouched.
func (a *Autopilot) Update(c *lander.Craft, gForce, mass float64) {
	h := c.Altitude()
	vr := c.RadialVelocity()

	// The chute check runs every cycle regardless of engagement, and becomes
	// a no-op once deployed: the status never reverts.
	if h < a.ChuteAltitude() && c.Flags.Parachute == lander.NotDeployed {
		if a.env.SafeToDeployParachute(c) {
			c.Flags.Parachute = lander.Deployed
		}
	}

	if !a.engaged {
		if h < a.EngagementAltitude() {
			a.engaged = true
			a.velEngaged = vr
		}
		return
	}

	altEngage := a.EngagementAltitude()
	kh := -(0.7/Kp + 0.5 + a.velEngaged) / altEngage
	e := -(0.5 + kh*h + vr)
	power := Kp * e

	// Weight-compensated three-way clamp into [0,1]: thrust cancels weight at
	// power = 0 and saturates at the extremes.
	weight := gForce / lander.MaxThrust
	switch {
	case power <= -weight:
		c.Throttle = 0
	case power < 1-weight:
		c.Throttle = weight + power
	default:
		c.Throttle = 1
	}
}
