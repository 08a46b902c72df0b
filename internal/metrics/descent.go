// Package metrics provides run-level scalar summaries of a descent.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/avellar/landersim/internal/lander"
	"github.com/avellar/landersim/internal/sim"
)

// MinAltitude tracks the lowest altitude reached during a run.
type MinAltitude struct {
	min     float64
	samples int
}

func NewMinAltitude() *MinAltitude { return &MinAltitude{} }

func (m *MinAltitude) Name() string { return "min_altitude" }

func (m *MinAltitude) Observe(s sim.Sample) {
	if m.samples == 0 || s.Altitude < m.min {
		m.min = s.Altitude
	}
	m.samples++
}

func (m *MinAltitude) Value() float64 { return m.min }

func (m *MinAltitude) Reset() {
	m.min = 0
	m.samples = 0
}

// TouchdownSpeed reports the speed at the last observed sample; for runs
// that reach the surface this is the impact speed.
type TouchdownSpeed struct {
	last float64
}

func NewTouchdownSpeed() *TouchdownSpeed { return &TouchdownSpeed{} }

func (t *TouchdownSpeed) Name() string { return "touchdown_speed" }

func (t *TouchdownSpeed) Observe(s sim.Sample) {
	t.last = r3.Norm(s.Velocity)
}

func (t *TouchdownSpeed) Value() float64 { return t.last }

func (t *TouchdownSpeed) Reset() { t.last = 0 }

// FuelUsed reports the fuel mass burned over the run, in kg.
type FuelUsed struct {
	first   float64
	last    float64
	samples int
}

func NewFuelUsed() *FuelUsed { return &FuelUsed{} }

func (f *FuelUsed) Name() string { return "fuel_used" }

func (f *FuelUsed) Observe(s sim.Sample) {
	if f.samples == 0 {
		f.first = s.Fuel
	}
	f.last = s.Fuel
	f.samples++
}

func (f *FuelUsed) Value() float64 {
	return (f.first - f.last) * lander.FuelDensity * lander.FuelCapacity
}

func (f *FuelUsed) Reset() {
	f.first = 0
	f.last = 0
	f.samples = 0
}

// PeakGForce tracks the largest mass-normalized deceleration seen, in
// multiples of standard Earth gravity.
type PeakGForce struct {
	peak float64
}

const standardGravity = 9.80665

func NewPeakGForce() *PeakGForce { return &PeakGForce{} }

func (p *PeakGForce) Name() string { return "peak_gforce" }

func (p *PeakGForce) Observe(s sim.Sample) {
	g := r3.Norm(s.Acceleration) / standardGravity
	p.peak = math.Max(p.peak, g)
}

func (p *PeakGForce) Value() float64 { return p.peak }

func (p *PeakGForce) Reset() { p.peak = 0 }
