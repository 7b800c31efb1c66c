package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Tx carries one engine operation's writes. Implements engine.Tx.
//
// Every write is keyed so it stays legal mid-renumbering: position
// assignments address steps by stable id, and edge rewrites address edges
// by the position being vacated. The position uniqueness constraint is
// live inside the transaction — an assignment that collides fails
// immediately, which is exactly the behavior the engine's planner is
// built around.
type Tx struct {
	tx *sql.Tx
}

// ApplyPositionAssignment moves one step to a new position, keyed by the
// step's stable id.
func (t *Tx) ApplyPositionAssignment(ctx context.Context, recipeID, stepID string, newPosition int) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE steps SET position = ?
		WHERE recipe_id = ? AND id = ?
	`, newPosition, recipeID, stepID)
	if err != nil {
		return fmt.Errorf("assign position %d to step %s: %w", newPosition, stepID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("assign position: rows affected: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("assign position %d: step %s not found", newPosition, stepID)
	}
	return nil
}

// ApplyEdgeRewrite updates every edge endpoint equal to oldPos to newPos.
// The two endpoint updates are separate statements, but both run inside
// this transaction so no reader sees one without the other.
func (t *Tx) ApplyEdgeRewrite(ctx context.Context, recipeID string, oldPos, newPos int) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE step_output_uses SET output_position = ?
		WHERE recipe_id = ? AND output_position = ?
	`, newPos, recipeID, oldPos)
	if err != nil {
		return fmt.Errorf("rewrite edge outputs %d -> %d: %w", oldPos, newPos, err)
	}

	_, err = t.tx.ExecContext(ctx, `
		UPDATE step_output_uses SET input_position = ?
		WHERE recipe_id = ? AND input_position = ?
	`, newPos, recipeID, oldPos)
	if err != nil {
		return fmt.Errorf("rewrite edge inputs %d -> %d: %w", oldPos, newPos, err)
	}
	return nil
}

// DeleteEdges removes every edge whose input is inputPosition and returns
// the number removed.
func (t *Tx) DeleteEdges(ctx context.Context, recipeID string, inputPosition int) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		DELETE FROM step_output_uses
		WHERE recipe_id = ? AND input_position = ?
	`, recipeID, inputPosition)
	if err != nil {
		return 0, fmt.Errorf("delete edges for input %d: %w", inputPosition, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete edges: rows affected: %w", err)
	}
	return n, nil
}

// InsertEdges creates one edge per output position for the given input
// position. ON CONFLICT DO NOTHING keeps edge membership a set, so
// re-inserting an existing pair is a silent no-op.
func (t *Tx) InsertEdges(ctx context.Context, recipeID string, inputPosition int, outputPositions []int) (int64, error) {
	var created int64
	for _, out := range outputPositions {
		res, err := t.tx.ExecContext(ctx, `
			INSERT INTO step_output_uses (recipe_id, output_position, input_position)
			VALUES (?, ?, ?)
			ON CONFLICT DO NOTHING
		`, recipeID, out, inputPosition)
		if err != nil {
			return created, fmt.Errorf("insert edge %d -> %d: %w", out, inputPosition, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return created, fmt.Errorf("insert edge: rows affected: %w", err)
		}
		created += n
	}
	return created, nil
}

// DeleteStep removes the step row at the given position.
func (t *Tx) DeleteStep(ctx context.Context, recipeID string, position int) error {
	res, err := t.tx.ExecContext(ctx, `
		DELETE FROM steps WHERE recipe_id = ? AND position = ?
	`, recipeID, position)
	if err != nil {
		return fmt.Errorf("delete step at %d: %w", position, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete step: rows affected: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("delete step: no step at position %d", position)
	}
	return nil
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Rollback aborts the transaction. No-op after Commit, so deferring it
// unconditionally is safe.
func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}
