// Package dynamics advances the lander state through time.
//
// [Compute] evaluates the per-tick force model (gravity, body drag, chute
// drag, thrust), a [Stepper] integrates the resulting acceleration, and
// [Integrator.Tick] ties the two together with the autopilot and attitude
// hooks in a fixed, order-sensitive sequence.
//
// The default [Verlet] stepper is symplectic: it keeps two successive
// positions and reproduces the position recurrence
//
//	p(t+dt) = 2 p(t) - p(t-dt) + a dt^2
//
// with an Euler-consistent bootstrap on the first tick after a reset.
package dynamics
