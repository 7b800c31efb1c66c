package harness

import (
	"context"
	"fmt"

	"github.com/plateup/stepflow/internal/recipe"
	"github.com/plateup/stepflow/internal/store"
)

// CheckInvariants validates the structural promises of a recipe snapshot
// and returns one message per violation:
//
//   - positions are unique and dense (exactly 1..N)
//   - every edge points from an earlier position to a later one
//   - every edge endpoint names an existing step
func CheckInvariants(positions []int, edges []recipe.Edge) []string {
	var violations []string

	set := recipe.NewPositionSet(positions)
	seen := make(map[int]bool, len(positions))
	for _, p := range positions {
		if seen[p] {
			violations = append(violations, fmt.Sprintf("duplicate position %d", p))
		}
		seen[p] = true
	}
	if !set.Dense() {
		violations = append(violations, fmt.Sprintf("positions not dense: %v", set))
	}

	for _, e := range edges {
		if e.Reversed() {
			violations = append(violations,
				fmt.Sprintf("edge (%d,%d) does not point forward", e.Output, e.Input))
		}
		if !set.Contains(e.Output) {
			violations = append(violations,
				fmt.Sprintf("edge (%d,%d): output position %d has no step", e.Output, e.Input, e.Output))
		}
		if !set.Contains(e.Input) {
			violations = append(violations,
				fmt.Sprintf("edge (%d,%d): input position %d has no step", e.Output, e.Input, e.Input))
		}
	}
	return violations
}

// VerifyStore loads a recipe's positions and edges and checks the
// invariants against the stored state.
func VerifyStore(ctx context.Context, st *store.Store, recipeID string) ([]string, error) {
	positions, err := st.LoadPositions(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load positions: %w", err)
	}
	edges, err := st.LoadEdges(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load edges: %w", err)
	}
	return CheckInvariants(positions, edges), nil
}
