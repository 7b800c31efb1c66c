// Package recipe defines the value types shared by the ordering engine,
// the store, and the CLI.
//
// A recipe's steps are identified by a dense 1-based integer position,
// unique within the recipe. Positions are mutable: reordering or deleting
// a step renumbers its neighbors. Dependency edges (StepOutputUse rows)
// are keyed by those positions, which is why every position change must
// be mirrored into the edge set by the engine.
//
// Invariants carried by these types (enforced by internal/engine at every
// operation boundary):
//   - positions form exactly 1..N, no gaps, no duplicates
//   - every edge satisfies Output < Input
//   - both edge endpoints name existing positions
package recipe
