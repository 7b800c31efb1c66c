package engine

import (
	"context"

	"github.com/plateup/stepflow/internal/recipe"
)

// Store is the read side of the external store, scoped to one recipe per
// call. Every engine operation begins by taking a snapshot through these
// reads; the operation's transaction is assumed to serialize against any
// other writer on the same recipe, so the snapshot it reads is the one it
// writes back against.
type Store interface {
	// LoadPositions returns the existing step positions, sorted ascending.
	LoadPositions(ctx context.Context, recipeID string) ([]int, error)

	// LoadEdges returns all dependency edges for the recipe.
	LoadEdges(ctx context.Context, recipeID string) ([]recipe.Edge, error)

	// LoadSteps returns all steps for the recipe, ordered by position.
	// The engine needs the stable step IDs to key position writes.
	LoadSteps(ctx context.Context, recipeID string) ([]recipe.Step, error)

	// Begin opens the transaction an operation's writes run in.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is the write side: one engine operation issues all of its writes
// through a single Tx and commits them as one atomic unit. Rollback after
// Commit is a no-op, so `defer tx.Rollback()` is the standard shape.
type Tx interface {
	// ApplyPositionAssignment moves one step to a new position, keyed by
	// the step's stable ID (its position is mid-rewrite).
	ApplyPositionAssignment(ctx context.Context, recipeID, stepID string, newPosition int) error

	// ApplyEdgeRewrite updates every edge endpoint equal to oldPos to
	// newPos, both output and input sides.
	ApplyEdgeRewrite(ctx context.Context, recipeID string, oldPos, newPos int) error

	// DeleteEdges removes every edge whose input is inputPosition and
	// returns the number removed.
	DeleteEdges(ctx context.Context, recipeID string, inputPosition int) (int64, error)

	// InsertEdges creates one edge per output position for the given
	// input position and returns the number created.
	InsertEdges(ctx context.Context, recipeID string, inputPosition int, outputPositions []int) (int64, error)

	// DeleteStep removes the step row at the given position.
	DeleteStep(ctx context.Context, recipeID string, position int) error

	Commit() error
	Rollback() error
}
