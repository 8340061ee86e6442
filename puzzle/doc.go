// Package puzzle is the game's puzzle state machine.
//
// A Driver owns the State flags and advances them once per tick from an
// immutable Snapshot of entity positions and begin-touch contacts plus the
// speech tokens drained for that tick. Handlers never touch the world: they
// emit Effects (spawn, despawn, set velocity, show or clear text) that the
// ECS layer applies after the tick.
package puzzle
