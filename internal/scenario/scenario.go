// Package scenario holds the fixed table of initial-condition presets and
// builds fresh craft for them. Initialization is a pure lookup-and-copy; an
// out-of-range identifier is rejected before any simulation starts.
package scenario

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/avellar/landersim/internal/lander"
)

// Scenario identifies one preset. The numeric values are part of the CLI
// surface and must stay stable.
type Scenario int

const (
	CircularOrbit Scenario = iota
	DescentFrom10km
	EllipticalPolarOrbit
	PolarEscapeLaunch
	DecayingOrbit
	DescentFromExosphere

	numScenarios
)

func (s Scenario) String() string {
	if s < 0 || s >= numScenarios {
		return fmt.Sprintf("scenario(%d)", int(s))
	}
	return presets[s].Name
}

// Parameters fully specifies one preset. The table is immutable after
// definition; Get hands out copies.
type Parameters struct {
	Name        string
	Description string
	Position    r3.Vec
	Velocity    r3.Vec
	Orientation r3.Vec
	Dt          float64
	Stabilized  bool
	Autopilot   bool
}

// circularSpeed satisfies the circular-orbit balance v = sqrt(GM/r) at the
// scenario 0 radius.
var circularSpeed = math.Sqrt(lander.GravityConst * lander.MarsMass / (1.2 * lander.MarsRadius))

var presets = [numScenarios]Parameters{
	CircularOrbit: {
		Name:        "orbit",
		Description: "circular equatorial orbit",
		Position:    r3.Vec{X: 1.2 * lander.MarsRadius},
		Velocity:    r3.Vec{Y: -circularSpeed},
		Orientation: r3.Vec{Y: 90},
		Dt:          0.1,
	},
	DescentFrom10km: {
		Name:        "descent-10km",
		Description: "descent from rest at 10 km",
		Position:    r3.Vec{Y: -(lander.MarsRadius + 10000)},
		Orientation: r3.Vec{Z: 90},
		Dt:          0.1,
		Stabilized:  true,
		Autopilot:   true,
	},
	EllipticalPolarOrbit: {
		Name:        "elliptical",
		Description: "elliptical polar orbit, thrust changes orbital plane",
		Position:    r3.Vec{Z: 1.2 * lander.MarsRadius},
		Velocity:    r3.Vec{X: 3500},
		Orientation: r3.Vec{Z: 90},
		Dt:          0.1,
	},
	PolarEscapeLaunch: {
		Name:        "escape",
		Description: "polar launch at escape velocity (but drag prevents escape)",
		Position:    r3.Vec{Z: lander.MarsRadius + lander.LanderSize/2},
		Velocity:    r3.Vec{Z: 5027},
		Dt:          0.1,
	},
	DecayingOrbit: {
		Name:        "decay",
		Description: "elliptical orbit that clips the atmosphere and decays",
		Position:    r3.Vec{Z: lander.MarsRadius + 100000},
		Velocity:    r3.Vec{X: 4000},
		Orientation: r3.Vec{Y: 90},
		Dt:          0.1,
	},
	DescentFromExosphere: {
		Name:        "descent-200km",
		Description: "descent from rest at the edge of the exosphere",
		Position:    r3.Vec{Y: -(lander.MarsRadius + lander.Exosphere)},
		Orientation: r3.Vec{Z: 90},
		Dt:          0.1,
		Stabilized:  true,
		Autopilot:   true,
	},
}

// Get returns the preset for id, or ErrUnknownScenario for anything outside
// the table. There is no default fallthrough.
func Get(id Scenario) (Parameters, error) {
	if id < 0 || id >= numScenarios {
		return Parameters{}, fmt.Errorf("%w: %d", lander.ErrUnknownScenario, int(id))
	}
	return presets[id], nil
}

// List returns the full preset table in id order.
func List() []Parameters {
	out := make([]Parameters, numScenarios)
	copy(out, presets[:])
	return out
}

// Count is the number of recognized scenarios.
func Count() int { return int(numScenarios) }

// New builds a fresh craft for the preset: full tank, throttle zero,
// parachute stowed. Each call returns an independent state, so
// re-initialization atomically discards the engagement latch and parachute
// status along with the kinematics.
func New(id Scenario) (*lander.Craft, error) {
	p, err := Get(id)
	if err != nil {
		return nil, err
	}
	return &lander.Craft{
		KinematicState: lander.KinematicState{
			Position:    p.Position,
			Velocity:    p.Velocity,
			Orientation: p.Orientation,
		},
		Flags: lander.ControlFlags{
			Parachute:          lander.NotDeployed,
			AutopilotEnabled:   p.Autopilot,
			StabilizedAttitude: p.Stabilized,
		},
		Fuel: 1.0,
		Dt:   p.Dt,
	}, nil
}
