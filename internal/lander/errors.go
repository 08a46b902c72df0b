package lander

import "errors"

// Domain errors for simulation setup and stepping.
var (
	// ErrUnknownScenario indicates a scenario identifier outside the preset table.
	ErrUnknownScenario = errors.New("lander: unknown scenario")

	// ErrBadInitialAltitude indicates an autopilot run starting at or below
	// the surface; the descent law divides by the starting altitude.
	ErrBadInitialAltitude = errors.New("lander: initial altitude must be positive")

	// ErrNonPositiveMass indicates fuel accounting drove the mass to or below
	// zero; fuel must be clamped upstream of the integrator.
	ErrNonPositiveMass = errors.New("lander: mass must be positive")

	// ErrBadTimeStep indicates a zero or negative integration step.
	ErrBadTimeStep = errors.New("lander: time step must be positive")

	// ErrInvalidState indicates a NaN or Inf crept into the kinematic state.
	ErrInvalidState = errors.New("lander: invalid state (NaN or Inf detected)")
)
