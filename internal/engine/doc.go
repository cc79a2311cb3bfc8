// Package engine sequences one physics tick over a caller-owned scene:
// spatial grid, collision detection, resolver pre-step, force pass, resolver
// post-step and integration.
//
// The engine keeps no tuning state between ticks. Every parameter arrives in
// the Params passed to Tick; the only state it carries is the spatial grid it
// rebuilds each tick, the compute backend and the random source used for
// degenerate bounce directions.
package engine
