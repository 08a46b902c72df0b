// Package analysis derives orbital quantities from recorded trajectories.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/avellar/landersim/internal/lander"
	"github.com/avellar/landersim/internal/sim"
)

// SpecificEnergy is the orbital energy per unit mass, v^2/2 - GM/r.
// Negative for bound orbits, zero at escape velocity.
func SpecificEnergy(s sim.Sample) float64 {
	r := r3.Norm(s.Position)
	if r == 0 {
		return math.Inf(-1)
	}
	return r3.Norm2(s.Velocity)/2 - lander.GravityConst*lander.MarsMass/r
}

// SpecificAngularMomentum is |r x v| per unit mass.
func SpecificAngularMomentum(s sim.Sample) float64 {
	return r3.Norm(r3.Cross(s.Position, s.Velocity))
}

// Apsides are the extreme radii seen over a trajectory, as altitudes.
type Apsides struct {
	Periapsis float64
	Apoapsis  float64
}

// FindApsides scans the trajectory for its lowest and highest altitudes.
func FindApsides(samples []sim.Sample) Apsides {
	if len(samples) == 0 {
		return Apsides{}
	}
	a := Apsides{Periapsis: samples[0].Altitude, Apoapsis: samples[0].Altitude}
	for _, s := range samples[1:] {
		a.Periapsis = math.Min(a.Periapsis, s.Altitude)
		a.Apoapsis = math.Max(a.Apoapsis, s.Altitude)
	}
	return a
}

// RadiusDrift is the largest relative deviation of |position| from its
// initial value. For a circular orbit under a symplectic integrator it
// should stay small over many periods.
func RadiusDrift(samples []sim.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	r0 := r3.Norm(samples[0].Position)
	if r0 == 0 {
		return 0
	}
	drift := 0.0
	for _, s := range samples[1:] {
		drift = math.Max(drift, math.Abs(r3.Norm(s.Position)-r0)/r0)
	}
	return drift
}

// EnergyDrift is the largest relative deviation of specific orbital energy
// from its initial value over the trajectory.
func EnergyDrift(samples []sim.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	e0 := SpecificEnergy(samples[0])
	if e0 == 0 {
		return 0
	}
	drift := 0.0
	for _, s := range samples[1:] {
		drift = math.Max(drift, math.Abs(SpecificEnergy(s)-e0)/math.Abs(e0))
	}
	return drift
}
