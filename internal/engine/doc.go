// Package engine implements the step ordering and dependency consistency
// engine.
//
// Steps hold a dense, mutable 1-based position within their recipe, and
// dependency edges are keyed by those positions. Moving or deleting a step
// therefore forces a coordinated rewrite: every shifted position must be
// mirrored into every edge that references it, and no intermediate state
// may hold a duplicate position or a reversed edge.
//
// ARCHITECTURE:
//
// Pure core, thin orchestrator:
// The validators (validate.go), the renumber planner (plan.go), and the
// edge rewriter (rewrite.go) are pure functions over an in-memory snapshot
// of positions and edges. They perform no I/O and are individually
// property-testable. The Engine type (engine.go) is the only part that
// talks to the store: it reads one snapshot, runs the pure core, and
// applies the resulting plan inside a single transaction.
//
// Sentinel protocol:
// The store enforces UNIQUE(recipe_id, position) on write, so a move is
// executed as: park the moved step on an out-of-range sentinel position,
// shift the intervening steps one slot in the direction that frees the
// target before filling it, then land the moved step on its target. Each
// assignment is paired with a bulk edge rewrite of the vacated position.
// The whole sequence runs in one transaction; no reader observes the
// sentinel.
//
// Failure discipline:
// All validation completes before the first write. A store failure
// mid-sequence rolls back the entire transaction and surfaces as a single
// STORE_FAILURE error; the engine never retries and never leaves a partial
// renumbering behind.
package engine
