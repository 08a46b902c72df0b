package dynamics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/avellar/landersim/internal/lander"
)

// Forces is the per-tick force breakdown at the craft's current state.
type Forces struct {
	Gravity r3.Vec // N, toward the planet centre
	Drag    r3.Vec // N, body plus chute, opposite velocity
	Thrust  r3.Vec // N, world frame
	Density float64
	Mass    float64
}

// Acceleration is the net mass-normalized force.
func (f Forces) Acceleration() r3.Vec {
	return r3.Scale(1/f.Mass, r3.Add(f.Gravity, r3.Add(f.Drag, f.Thrust)))
}

// Compute evaluates the force model in a fixed order: density, mass,
// gravity, body drag, chute drag, thrust.
func Compute(env lander.Environment, c *lander.Craft) Forces {
	var f Forces
	f.Density = env.AtmosphericDensity(c.Position)
	f.Mass = c.Mass()

	r2 := r3.Norm2(c.Position)
	r := math.Sqrt(r2)
	f.Gravity = r3.Scale(-lander.GravityConst*lander.MarsMass*f.Mass/(r2*r), c.Position)

	// Drag direction is the zero vector at rest; never divide by |v| = 0.
	if v2 := r3.Norm2(c.Velocity); v2 > 0 {
		unit := r3.Scale(1/math.Sqrt(v2), c.Velocity)
		coef := lander.DragCoefBody * math.Pi * lander.LanderSize * lander.LanderSize
		if c.Flags.Parachute == lander.Deployed {
			coef += lander.DragCoefChute * lander.ChuteArea
		}
		f.Drag = r3.Scale(-0.5*f.Density*coef*v2, unit)
	}

	// A dry tank produces no thrust regardless of the commanded throttle.
	throttle := c.Throttle
	if c.Fuel <= 0 {
		throttle = 0
	}
	f.Thrust = env.ThrustWorld(c.Orientation, throttle)

	return f
}
