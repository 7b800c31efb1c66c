package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/plateup/stepflow/internal/engine"
	"github.com/plateup/stepflow/internal/store"
)

// Run executes a scenario against a fresh SQLite store and the real
// engine. The recipe is seeded the same way the import command seeds it:
// steps appended in order, then each step's dependency set saved through
// the engine so the direction rule holds from the start.
//
// After every operation the structural invariants are re-checked against
// the stored state; any violation fails the result.
func Run(scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "stepflow-harness-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	st, err := store.Open(filepath.Join(dir, "harness.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	eng := engine.New(st)

	recipeID, err := seedRecipe(ctx, st, eng, scenario.Recipe)
	if err != nil {
		return nil, fmt.Errorf("failed to seed recipe: %w", err)
	}

	result := NewResult()
	checkState(ctx, st, recipeID, "seed", result)

	for i, op := range scenario.Ops {
		event, opErr := execute(ctx, eng, recipeID, op)
		result.Trace = append(result.Trace, event)

		switch {
		case opErr != nil && op.ExpectError == "":
			result.AddError(fmt.Sprintf("ops[%d] %s: unexpected error: %v", i, op.Op, opErr))
		case opErr == nil && op.ExpectError != "":
			result.AddError(fmt.Sprintf("ops[%d] %s: expected rejection %q, got success", i, op.Op, op.ExpectError))
		case opErr != nil && event.Message != op.ExpectError:
			result.AddError(fmt.Sprintf("ops[%d] %s: expected rejection %q, got %q", i, op.Op, op.ExpectError, event.Message))
		}

		checkState(ctx, st, recipeID, fmt.Sprintf("ops[%d] %s", i, op.Op), result)
	}

	final, err := snapshot(ctx, st, recipeID, scenario.Recipe.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot final state: %w", err)
	}
	result.Final = final

	return result, nil
}

// execute runs one operation through the engine and returns its trace
// event plus the engine error, if any.
func execute(ctx context.Context, eng *engine.Engine, recipeID string, op OpStep) (TraceEvent, error) {
	event := TraceEvent{Op: op.Op, From: op.From, To: op.To, Step: op.Step, Uses: op.Uses}

	var err error
	switch op.Op {
	case OpMove:
		err = eng.MoveStep(ctx, recipeID, op.From, op.To)
	case OpDeps:
		event.Deleted, event.Created, err = eng.ReplaceDependencies(ctx, recipeID, op.Step, op.Uses)
	case OpDelete:
		err = eng.DeleteStep(ctx, recipeID, op.Step)
	default:
		err = fmt.Errorf("unknown op %q", op.Op)
	}

	if err == nil {
		event.Outcome = "ok"
		return event, nil
	}

	var oerr *engine.OrderError
	if errors.As(err, &oerr) {
		event.Outcome = "rejected"
		event.Message = oerr.Message
	} else {
		event.Outcome = "error"
		event.Message = err.Error()
	}
	return event, err
}

// checkState verifies the stored invariants and records violations.
func checkState(ctx context.Context, st *store.Store, recipeID, label string, result *Result) {
	violations, err := VerifyStore(ctx, st, recipeID)
	if err != nil {
		result.AddError(fmt.Sprintf("%s: %v", label, err))
		return
	}
	for _, v := range violations {
		result.AddError(fmt.Sprintf("%s: invariant violated: %s", label, v))
	}
}

// seedRecipe writes the scenario's recipe definition and returns its ID.
func seedRecipe(ctx context.Context, st *store.Store, eng *engine.Engine, def RecipeDef) (string, error) {
	r, err := st.CreateRecipe(ctx, def.Name)
	if err != nil {
		return "", err
	}
	for _, step := range def.Steps {
		if _, err := st.AppendStep(ctx, r.ID, step.Text); err != nil {
			return "", err
		}
	}
	for i, step := range def.Steps {
		if len(step.Uses) == 0 {
			continue
		}
		if _, _, err := eng.ReplaceDependencies(ctx, r.ID, i+1, step.Uses); err != nil {
			return "", err
		}
	}
	return r.ID, nil
}

// snapshot reads the recipe's current steps and dependency sets.
func snapshot(ctx context.Context, st *store.Store, recipeID, name string) (Snapshot, error) {
	steps, err := st.LoadSteps(ctx, recipeID)
	if err != nil {
		return Snapshot{}, err
	}
	edges, err := st.LoadEdges(ctx, recipeID)
	if err != nil {
		return Snapshot{}, err
	}

	usesByInput := make(map[int][]int)
	for _, e := range edges {
		usesByInput[e.Input] = append(usesByInput[e.Input], e.Output)
	}

	snap := Snapshot{Recipe: name, Steps: []StepState{}}
	for _, s := range steps {
		snap.Steps = append(snap.Steps, StepState{
			Position: s.Position,
			Text:     s.Text,
			Uses:     usesByInput[s.Position],
		})
	}
	return snap, nil
}
