package sim

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/avellar/landersim/internal/lander"
)

// Sample is one recorded tick of a run.
type Sample struct {
	Time           float64
	Position       r3.Vec
	Velocity       r3.Vec
	Acceleration   r3.Vec
	Altitude       float64
	RadialVelocity float64
	Throttle       float64
	Fuel           float64
	Parachute      lander.ParachuteStatus
	Engaged        bool
}

// Observer receives every recorded sample as the run progresses.
type Observer interface {
	OnTick(s Sample)
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Outcome classifies how a run ended.
type Outcome int

const (
	// Flying means the configured duration elapsed with the craft airborne.
	Flying Outcome = iota
	Landed
	Crashed
)

func (o Outcome) String() string {
	switch o {
	case Landed:
		return "landed"
	case Crashed:
		return "crashed"
	default:
		return "flying"
	}
}

// Config bounds one run.
type Config struct {
	// Dt overrides the scenario time step when positive.
	Dt float64
	// Duration is the number of simulated seconds to run for.
	Duration float64
	// ValidateState aborts the run if NaN or Inf appears in the state.
	ValidateState bool
}

// DefaultConfig runs five simulated minutes with state validation on.
func DefaultConfig() Config {
	return Config{Duration: 300, ValidateState: true}
}

// Result is the recorded trajectory plus run-level summaries.
type Result struct {
	Samples []Sample
	Metrics map[string]float64
	Outcome Outcome
	// ImpactSpeed is |velocity| at touchdown, zero unless Landed or Crashed.
	ImpactSpeed float64
	Ticks       int
}

// Final returns the last recorded sample.
func (r *Result) Final() Sample {
	if len(r.Samples) == 0 {
		return Sample{}
	}
	return r.Samples[len(r.Samples)-1]
}

// SimError reports where in a run an error occurred.
type SimError struct {
	Time    float64
	Tick    int
	Wrapped error
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %v", e.Tick, e.Time, e.Wrapped)
}

func (e SimError) Unwrap() error { return e.Wrapped }
