// Package dynamo provides the core state records for the sphere swarm.
//
// The package defines the data the rest of the module operates on:
//
//   - [Body]: one movable sphere (position, velocity, rotation, spin, fixed radius)
//   - [Store]: the fixed-size, contiguous set of bodies for one scene
//   - [SimState]: process-wide simulation state (explosion, pointer, pause)
//   - [Skin]: render-facing appearance, a texture slot or a palette colour
//
// # Example
//
//	store, _ := dynamo.NewStore(bodies)
//	st := dynamo.NewSimState()
//	physics.Step(store, st, physics.DefaultParams())
//
// # Thread Safety
//
// Store and SimState are NOT thread-safe. They are owned by the single
// frame/event execution context of whichever surface drives the scene.
package dynamo
