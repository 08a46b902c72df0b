// Package lander defines the core domain types for the Mars lander
// simulation:
//
//   - [Craft]: full per-run simulation state (kinematics, control flags,
//     throttle, fuel, time step)
//   - [KinematicState]: position, velocity and orientation in a
//     planet-centred Cartesian frame
//   - [Environment]: the external models consumed by the integrator and
//     autopilot (atmosphere, thrust frame transform, parachute envelope,
//     attitude hold)
//
// [MarsEnvironment] is the stock implementation of [Environment] with the
// exercise's Mars atmosphere and airframe figures.
//
// # Thread Safety
//
// A Craft is owned by exactly one simulation loop and mutated in place once
// per tick. Nothing in this package is safe for concurrent use.
package lander
