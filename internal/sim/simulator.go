package sim

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/avellar/landersim/internal/autopilot"
	"github.com/avellar/landersim/internal/dynamics"
	"github.com/avellar/landersim/internal/lander"
	"github.com/avellar/landersim/internal/scenario"
)

// Simulator owns one craft and drives it tick by tick. Instances are not
// safe for concurrent use; see Ensemble for parallel scenario sweeps.
type Simulator struct {
	env       lander.Environment
	craft     *lander.Craft
	integ     *dynamics.Integrator
	pilot     *autopilot.Autopilot
	observers []Observer
	metrics   []Metric
	t         float64
}

// New assembles a simulator for one scenario preset. The fresh craft, fresh
// stepper history and fresh autopilot latch together form the atomic
// re-initialization the tick loop depends on.
func New(id scenario.Scenario, env lander.Environment, stepper dynamics.Stepper) (*Simulator, error) {
	craft, err := scenario.New(id)
	if err != nil {
		return nil, err
	}

	var pilot *autopilot.Autopilot
	if craft.Flags.AutopilotEnabled {
		pilot, err = autopilot.New(env, craft.Altitude())
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", id, err)
		}
	}

	stepper.Reset()
	return &Simulator{
		env:   env,
		craft: craft,
		integ: dynamics.New(env, stepper, pilot),
		pilot: pilot,
	}, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Craft exposes the live state for views that need more than samples.
func (s *Simulator) Craft() *lander.Craft { return s.craft }

// Step advances the craft by exactly one tick and returns the resulting
// sample. Interactive views drive the simulation through this; Run wraps it
// in a loop.
func (s *Simulator) Step() (Sample, error) {
	forces, err := s.integ.Tick(s.craft)
	if err != nil {
		return Sample{}, err
	}
	s.burnFuel()
	s.t += s.craft.Dt
	return s.sample(forces.Acceleration()), nil
}

// TouchedDown reports whether the craft has reached the surface.
func (s *Simulator) TouchedDown() bool {
	return s.craft.Altitude() <= lander.LanderSize/2
}

// Outcome classifies the current craft state at touchdown.
func (s *Simulator) Outcome() Outcome {
	if !s.TouchedDown() {
		return Flying
	}
	if math.Abs(s.craft.RadialVelocity()) <= lander.MaxDescentRate &&
		s.craft.GroundSpeed() <= lander.MaxGroundSpeed {
		return Landed
	}
	return Crashed
}

// Run advances the craft until the duration elapses, the craft touches down,
// or the context is cancelled. Cancellation is only honoured between ticks:
// a tick always completes in full.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if cfg.Dt > 0 {
		s.craft.Dt = cfg.Dt
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	steps := int(cfg.Duration / s.craft.Dt)
	res := &Result{
		Samples: make([]Sample, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	s.dispatch(res, s.sample(r3.Vec{}))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(res)
			return res, ctx.Err()
		default:
		}

		smp, err := s.Step()
		if err != nil {
			s.finish(res)
			return res, SimError{Time: s.t, Tick: i, Wrapped: err}
		}
		res.Ticks++
		s.dispatch(res, smp)

		if cfg.ValidateState && !s.craft.KinematicState.IsValid() {
			s.finish(res)
			return res, SimError{Time: s.t, Tick: i, Wrapped: lander.ErrInvalidState}
		}

		if s.TouchedDown() {
			res.Outcome = s.Outcome()
			res.ImpactSpeed = r3.Norm(s.craft.Velocity)
			break
		}
	}

	s.finish(res)
	return res, nil
}

// sample snapshots the craft-derived fields at the current time.
func (s *Simulator) sample(accel r3.Vec) Sample {
	c := s.craft
	smp := Sample{
		Time:           s.t,
		Position:       c.Position,
		Velocity:       c.Velocity,
		Acceleration:   accel,
		Altitude:       c.Altitude(),
		RadialVelocity: c.RadialVelocity(),
		Throttle:       c.Throttle,
		Fuel:           c.Fuel,
		Parachute:      c.Flags.Parachute,
	}
	if s.pilot != nil {
		smp.Engaged = s.pilot.Engaged()
	}
	return smp
}

func (s *Simulator) dispatch(res *Result, smp Sample) {
	res.Samples = append(res.Samples, smp)
	for _, m := range s.metrics {
		m.Observe(smp)
	}
	for _, o := range s.observers {
		o.OnTick(smp)
	}
}

// burnFuel charges the tick's throttle against the tank, clamped at empty so
// the mass never drops below the dry floor.
func (s *Simulator) burnFuel() {
	c := s.craft
	c.Fuel -= c.Dt * c.Throttle * lander.FuelRateMax / lander.FuelCapacity
	if c.Fuel < 0 {
		c.Fuel = 0
	}
}

func (s *Simulator) finish(res *Result) {
	for _, m := range s.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
}

func validate(cfg Config) error {
	if cfg.Dt < 0 {
		return fmt.Errorf("%w: dt %g", lander.ErrBadTimeStep, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", cfg.Duration)
	}
	return nil
}
