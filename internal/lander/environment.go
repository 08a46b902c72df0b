package lander

import "gonum.org/v1/gonum/spatial/r3"

// Environment supplies the external models the integrator and autopilot
// consume. The simulation only ever calls these; swapping the implementation
// swaps the planet.
type Environment interface {
	// AtmosphericDensity returns the gas density at the given position
	// (kg/m^3). It is non-increasing with altitude and zero above the
	// exosphere boundary.
	AtmosphericDensity(pos r3.Vec) float64

	// ThrustWorld transforms the body-frame engine thrust
	// (throttle x MaxThrust along the thrust axis) into world coordinates.
	ThrustWorld(orientation r3.Vec, throttle float64) r3.Vec

	// SafeToDeployParachute reports whether the craft is inside the chute's
	// speed and drag envelope.
	SafeToDeployParachute(c *Craft) bool

	// StabilizeAttitude overwrites the craft orientation so the thrust axis
	// points radially outward.
	StabilizeAttitude(c *Craft)
}
