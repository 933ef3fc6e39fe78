// Package viz renders a particle field in the terminal.
//
// The package implements a live TUI using the Bubble Tea framework:
//
//   - [Model]: the interactive application, ticking the field at 60fps
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [CanvasSurface]: adapts the canvas to the render surface contract
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reseed the field
//	Q     - Quit
package viz
