package dynamics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/avellar/landersim/internal/autopilot"
	"github.com/avellar/landersim/internal/lander"
)

// Integrator advances a craft one tick at a time: force model, numerical
// step, then the autopilot and attitude-stabilization hooks.
type Integrator struct {
	env     lander.Environment
	stepper Stepper
	pilot   *autopilot.Autopilot
}

// New wires an integrator. pilot may be nil when the scenario flies open-loop.
func New(env lander.Environment, stepper Stepper, pilot *autopilot.Autopilot) *Integrator {
	return &Integrator{env: env, stepper: stepper, pilot: pilot}
}

// Reset invalidates the stepper history so the next tick rebootstraps.
func (it *Integrator) Reset() { it.stepper.Reset() }

// Tick advances the craft by exactly one Dt and returns the force breakdown
// used for the step. A tick either fully completes or returns an error with
// the craft state not to be trusted.
func (it *Integrator) Tick(c *lander.Craft) (Forces, error) {
	if c.Dt <= 0 {
		return Forces{}, lander.ErrBadTimeStep
	}

	f := Compute(it.env, c)
	if f.Mass <= 0 {
		return f, lander.ErrNonPositiveMass
	}

	it.stepper.Step(&c.KinematicState, f.Acceleration(), c.Dt)

	if c.Flags.AutopilotEnabled && it.pilot != nil {
		it.pilot.Update(c, r3.Norm(f.Gravity), f.Mass)
	}
	if c.Flags.StabilizedAttitude {
		it.env.StabilizeAttitude(c)
	}

	return f, nil
}
