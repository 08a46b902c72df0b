package metrics

import "github.com/avellar/landersim/internal/sim"

// ControlEffort reports the mean throttle over the run.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort { return &ControlEffort{} }

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(s sim.Sample) {
	c.sum += s.Throttle
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// Default is the standard metric set attached to CLI runs.
func Default() []sim.Metric {
	return []sim.Metric{
		NewMinAltitude(),
		NewTouchdownSpeed(),
		NewFuelUsed(),
		NewPeakGForce(),
		NewControlEffort(),
	}
}
