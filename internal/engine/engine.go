package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/plateup/stepflow/internal/recipe"
)

// Engine orchestrates the consistency-maintenance operations: reorder,
// dependency-set replacement, and guarded deletion. It holds no state of
// its own — every operation reads a fresh snapshot and writes back through
// one transaction.
type Engine struct {
	store Store
}

// New creates an Engine over the given store.
func New(store Store) *Engine {
	return &Engine{store: store}
}

// MoveStep moves the step at currentPos to targetPos, shifting the
// intervening steps by one slot and rewriting every affected edge.
//
// Validation runs entirely before the first write: a move blocked by a
// dependent or a dependency returns a VALIDATION_REJECTED OrderError
// carrying the blocking positions and the UI sentence. Moving a step to
// its own position is a no-op and issues no writes.
func (e *Engine) MoveStep(ctx context.Context, recipeID string, currentPos, targetPos int) error {
	positions, edges, err := e.snapshot(ctx, recipeID)
	if err != nil {
		return err
	}

	ps := recipe.NewPositionSet(positions)
	if !ps.Contains(currentPos) {
		return newNotFoundError(recipeID, currentPos)
	}
	if currentPos == targetPos {
		return nil
	}
	if targetPos < 1 || targetPos > ps.Max() {
		return &OrderError{
			Code:     ErrCodeValidationRejected,
			Message:  fmt.Sprintf("Cannot move Step %d to position %d: position out of range", currentPos, targetPos),
			RecipeID: recipeID,
			Position: currentPos,
		}
	}

	if res := ValidateMove(edges, currentPos, targetPos); !res.Valid {
		return newValidationError(recipeID, currentPos, res)
	}

	byPos, err := e.stepIDsByPosition(ctx, recipeID)
	if err != nil {
		return err
	}

	plan := PlanMove(currentPos, targetPos)
	return e.applyPlan(ctx, recipeID, "move step", byPos, plan)
}

// ReplaceDependencies replaces the full outgoing edge set of the step at
// inputPos with one edge per entry of outputs: delete-all-then-insert, in
// one transaction. Duplicate outputs collapse (edge membership is a set)
// and an empty outputs list clears the step's dependencies.
//
// Defensive re-checks, even though the caller's selection UI already
// constrains the input: every output must exist and must precede inputPos.
// Returns the deleted and created edge counts for observability.
func (e *Engine) ReplaceDependencies(ctx context.Context, recipeID string, inputPos int, outputs []int) (deleted, created int64, err error) {
	positions, err := e.store.LoadPositions(ctx, recipeID)
	if err != nil {
		return 0, 0, newStoreFailure(recipeID, "load positions", err)
	}

	ps := recipe.NewPositionSet(positions)
	if !ps.Contains(inputPos) {
		return 0, 0, newNotFoundError(recipeID, inputPos)
	}

	cleaned, oerr := checkOutputs(ps, inputPos, outputs)
	if oerr != nil {
		oerr.RecipeID = recipeID
		return 0, 0, oerr
	}

	tx, err := e.store.Begin(ctx)
	if err != nil {
		return 0, 0, newStoreFailure(recipeID, "replace dependencies", err)
	}
	defer tx.Rollback()

	deleted, err = tx.DeleteEdges(ctx, recipeID, inputPos)
	if err != nil {
		return 0, 0, newStoreFailure(recipeID, "replace dependencies", err)
	}
	created, err = tx.InsertEdges(ctx, recipeID, inputPos, cleaned)
	if err != nil {
		return 0, 0, newStoreFailure(recipeID, "replace dependencies", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, newStoreFailure(recipeID, "replace dependencies", err)
	}

	return deleted, created, nil
}

// DeleteStep removes the step at pos after the deletion guard passes,
// deletes the step's own outgoing edges, closes the position gap, and
// rewrites every edge above it — all in one transaction.
//
// Refused with a VALIDATION_REJECTED OrderError when any other step still
// consumes this step's output; the blocking list names those dependents.
func (e *Engine) DeleteStep(ctx context.Context, recipeID string, pos int) error {
	positions, edges, err := e.snapshot(ctx, recipeID)
	if err != nil {
		return err
	}

	ps := recipe.NewPositionSet(positions)
	if !ps.Contains(pos) {
		return newNotFoundError(recipeID, pos)
	}

	if res := ValidateDeletion(edges, pos); !res.Valid {
		return newValidationError(recipeID, pos, res)
	}

	byPos, err := e.stepIDsByPosition(ctx, recipeID)
	if err != nil {
		return err
	}

	tx, err := e.store.Begin(ctx)
	if err != nil {
		return newStoreFailure(recipeID, "delete step", err)
	}
	defer tx.Rollback()

	// The step's own dependencies are moot once it goes.
	if _, err := tx.DeleteEdges(ctx, recipeID, pos); err != nil {
		return newStoreFailure(recipeID, "delete step", err)
	}
	if err := tx.DeleteStep(ctx, recipeID, pos); err != nil {
		return newStoreFailure(recipeID, "delete step", err)
	}

	for _, a := range PlanGapClose(pos, ps.Max()) {
		if err := applyAssignment(ctx, tx, recipeID, byPos, a); err != nil {
			return newStoreFailure(recipeID, "delete step", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return newStoreFailure(recipeID, "delete step", err)
	}
	return nil
}

// snapshot loads the position and edge state an operation validates against.
func (e *Engine) snapshot(ctx context.Context, recipeID string) ([]int, []recipe.Edge, error) {
	positions, err := e.store.LoadPositions(ctx, recipeID)
	if err != nil {
		return nil, nil, newStoreFailure(recipeID, "load positions", err)
	}
	edges, err := e.store.LoadEdges(ctx, recipeID)
	if err != nil {
		return nil, nil, newStoreFailure(recipeID, "load edges", err)
	}
	return positions, edges, nil
}

// stepIDsByPosition maps current positions to stable step IDs, the key
// material for position writes during a renumbering sequence.
func (e *Engine) stepIDsByPosition(ctx context.Context, recipeID string) (map[int]string, error) {
	steps, err := e.store.LoadSteps(ctx, recipeID)
	if err != nil {
		return nil, newStoreFailure(recipeID, "load steps", err)
	}
	byPos := make(map[int]string, len(steps))
	for _, s := range steps {
		byPos[s.Position] = s.ID
	}
	return byPos, nil
}

// applyPlan executes a renumbering plan inside one transaction.
func (e *Engine) applyPlan(ctx context.Context, recipeID, op string, byPos map[int]string, plan []Assignment) error {
	if len(plan) == 0 {
		return nil
	}

	tx, err := e.store.Begin(ctx)
	if err != nil {
		return newStoreFailure(recipeID, op, err)
	}
	defer tx.Rollback()

	for _, a := range plan {
		if err := applyAssignment(ctx, tx, recipeID, byPos, a); err != nil {
			return newStoreFailure(recipeID, op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return newStoreFailure(recipeID, op, err)
	}
	return nil
}

// applyAssignment performs one position reassignment: the bulk edge
// rewrite of the vacated position first, then the step write keyed by
// stable ID. byPos tracks the in-flight mapping so the sentinel hop
// resolves to the right step.
func applyAssignment(ctx context.Context, tx Tx, recipeID string, byPos map[int]string, a Assignment) error {
	stepID, ok := byPos[a.From]
	if !ok {
		return fmt.Errorf("no step at position %d", a.From)
	}

	if err := tx.ApplyEdgeRewrite(ctx, recipeID, a.From, a.To); err != nil {
		return fmt.Errorf("rewrite edges %d -> %d: %w", a.From, a.To, err)
	}
	if err := tx.ApplyPositionAssignment(ctx, recipeID, stepID, a.To); err != nil {
		return fmt.Errorf("assign step %s to position %d: %w", stepID, a.To, err)
	}

	delete(byPos, a.From)
	byPos[a.To] = stepID
	return nil
}

// checkOutputs validates and canonicalizes a dependency selection:
// deduplicate, sort, and reject missing or wrong-direction outputs.
// Returns the cleaned list, or the rejection to surface.
func checkOutputs(ps recipe.PositionSet, inputPos int, outputs []int) ([]int, *OrderError) {
	seen := make(map[int]bool, len(outputs))
	var cleaned []int
	var wrongDirection []int

	for _, o := range outputs {
		if seen[o] {
			continue
		}
		seen[o] = true

		if !ps.Contains(o) {
			return nil, newNotFoundError("", o)
		}
		if o >= inputPos {
			wrongDirection = append(wrongDirection, o)
			continue
		}
		cleaned = append(cleaned, o)
	}

	if len(wrongDirection) > 0 {
		sort.Ints(wrongDirection)
		return nil, &OrderError{
			Code:     ErrCodeValidationRejected,
			Message:  fmt.Sprintf("Step %d cannot use output from %s", inputPos, StepList(wrongDirection)),
			Position: inputPos,
			Blocking: wrongDirection,
		}
	}

	sort.Ints(cleaned)
	return cleaned, nil
}
