// Package physics advances the sphere swarm by one frame.
//
// [Step] is a pure update over a [dynamo.Store] and [dynamo.SimState]:
//
//   - attraction toward a fixed attractor (a linear spring, weakened while exploding)
//   - uniform friction and a speed clamp that depends on the explosion state
//   - explicit Euler integration, one tick per rendered frame
//   - a soft spherical boundary that nudges bodies back inward
//   - O(n^2) pairwise sphere collision with half-overlap separation
//   - rotation integration with its own, more aggressive damping
//   - geometric decay of the explosion force
//
// All tunables live in [Params]; [DefaultParams] reproduces the landing page.
//
//	p := physics.DefaultParams()
//	for !done {
//	    physics.Step(store, st, p)
//	}
package physics
