// Package viz renders a running orbit simulation in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view of one scene driven by an [engine.Engine]
//   - [Canvas]: Braille-based pixel canvas with per-cell colour
//   - [Camera]: world-to-canvas projection with zoom, pan and follow
//   - a preset picker started by [RunInteractive]
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	.     - Single tick while paused
//	R     - Reset to initial scene
//	L     - Cycle force law
//	C     - Cycle collision policy
//	P     - Toggle parent interaction mode
//	F     - Follow next body
//	[ ]   - Halve/double time scale
//	+ -   - Zoom, arrows pan, 0 refits
//	T     - Cycle color themes
//	S     - Save an SVG snapshot
//	?     - Show help overlay
package viz
