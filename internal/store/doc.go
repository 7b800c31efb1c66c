// Package store provides SQLite-backed storage for recipes, steps, and
// step dependency edges.
//
// The store owns the rows; the engine owns the invariants. Three tables:
//   - recipes: id + unique name
//   - steps: stable UUIDv7 id, mutable position, UNIQUE(recipe_id, position)
//   - step_output_uses: (recipe_id, output_position, input_position) rows
//
// The position uniqueness constraint is deliberately checked on write,
// not deferred: it is the guard rail the engine's sentinel protocol is
// built against. Edge rows carry no direction constraint because a
// renumbering transaction legitimately routes endpoints through the
// sentinel position; the engine guarantees every committed state
// satisfies output < input with both endpoints live.
//
// All multi-row engine writes go through Tx, one transaction per engine
// operation, so a reorder, dependency replacement, or deletion is visible
// all-or-nothing.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Reads use deterministic ordering (ORDER BY position, or by both edge
// endpoints) so snapshots and CLI output are reproducible.
package store
