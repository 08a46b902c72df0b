package lander

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ParachuteStatus enumerates the parachute state. The transition to
// Deployed is one-way: nothing in the simulation ever stows the chute again.
type ParachuteStatus uint8

const (
	NotDeployed ParachuteStatus = iota
	Deployed
)

func (p ParachuteStatus) String() string {
	if p == Deployed {
		return "deployed"
	}
	return "stowed"
}

// KinematicState is the craft pose advanced by the integrator each tick.
type KinematicState struct {
	Position    r3.Vec // m, planet-centred Cartesian frame
	Velocity    r3.Vec // m/s
	Orientation r3.Vec // xyz Euler angles, degrees, body frame
}

// IsValid reports whether every component is finite.
func (s KinematicState) IsValid() bool {
	return vecValid(s.Position) && vecValid(s.Velocity) && vecValid(s.Orientation)
}

func vecValid(v r3.Vec) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// ControlFlags carries the per-run control configuration. AutopilotEnabled
// and StabilizedAttitude are fixed by the scenario; Parachute is mutated by
// the autopilot.
type ControlFlags struct {
	Parachute          ParachuteStatus
	AutopilotEnabled   bool
	StabilizedAttitude bool
}

// Craft is the full simulation state for one run. It is owned exclusively by
// the simulation loop and mutated in place once per tick.
type Craft struct {
	KinematicState
	Flags    ControlFlags
	Throttle float64 // normalized thrust command, [0,1]
	Fuel     float64 // fraction of capacity remaining, [0,1]
	Dt       float64 // integration time step (s)
}

// Mass is the instantaneous mass: dry mass plus remaining fuel.
func (c *Craft) Mass() float64 {
	return DryMass + c.Fuel*FuelDensity*FuelCapacity
}

// Altitude is the height above the planetary surface.
func (c *Craft) Altitude() float64 {
	return r3.Norm(c.Position) - MarsRadius
}

// RadialVelocity is the velocity component along the outward radial unit
// vector. Negative means descending.
func (c *Craft) RadialVelocity() float64 {
	r := r3.Norm(c.Position)
	if r == 0 {
		return 0
	}
	return r3.Dot(c.Velocity, r3.Scale(1/r, c.Position))
}

// GroundSpeed is the velocity component tangential to the local surface.
func (c *Craft) GroundSpeed() float64 {
	vr := c.RadialVelocity()
	tangential2 := r3.Norm2(c.Velocity) - vr*vr
	if tangential2 <= 0 {
		return 0
	}
	return math.Sqrt(tangential2)
}

// Clone returns an independent copy of the craft.
func (c *Craft) Clone() *Craft {
	cp := *c
	return &cp
}
