// Package viz renders the sphere swarm in a terminal.
//
// The package implements a [sim.Surface] on top of Bubble Tea:
//
//   - [Model]: the program model, driving the scene from its tick message
//   - [Canvas]: Braille-based pixel canvas with a colour per cell
//   - [Camera]: perspective projection shared with the SVG exporter
//
// # Input
//
//	Mouse motion - push nearby spheres away (first motion sets off the reveal)
//	Left click   - explode
//	Space        - pause/resume
//	E            - explode
//	T            - cycle colour themes
//	P            - toggle the side panel
//	Q            - quit
package viz
