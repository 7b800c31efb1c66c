package harness

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateup/stepflow/internal/engine"
	"github.com/plateup/stepflow/internal/recipe"
	"github.com/plateup/stepflow/internal/store"
)

func edge(output, input int) recipe.Edge {
	return recipe.Edge{Output: output, Input: input}
}

func TestCheckInvariants_Clean(t *testing.T) {
	violations := CheckInvariants([]int{3, 1, 2}, []recipe.Edge{edge(1, 3), edge(2, 3)})
	assert.Empty(t, violations)

	assert.Empty(t, CheckInvariants(nil, nil))
}

func TestCheckInvariants_Gap(t *testing.T) {
	violations := CheckInvariants([]int{1, 3}, nil)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "not dense")
}

func TestCheckInvariants_Duplicate(t *testing.T) {
	violations := CheckInvariants([]int{1, 2, 2}, nil)
	require.NotEmpty(t, violations)
	assert.Contains(t, violations[0], "duplicate position 2")
}

func TestCheckInvariants_EdgeDirection(t *testing.T) {
	violations := CheckInvariants([]int{1, 2}, []recipe.Edge{edge(2, 1)})
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "does not point forward")

	// A self-reference is a direction violation too.
	violations = CheckInvariants([]int{1, 2}, []recipe.Edge{edge(2, 2)})
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "does not point forward")
}

func TestCheckInvariants_DanglingEndpoint(t *testing.T) {
	violations := CheckInvariants([]int{1, 2}, []recipe.Edge{edge(1, 5)})
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "input position 5 has no step")

	violations = CheckInvariants([]int{2, 3}, []recipe.Edge{edge(1, 3)})
	// Positions 2,3 are not dense either; the edge violation must still
	// be reported on its own.
	assert.Contains(t, violations, "edge (1,3): output position 1 has no step")
}

func TestVerifyStore(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "verify.db"))
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	r, err := st.CreateRecipe(ctx, "soup")
	require.NoError(t, err)
	_, err = st.AppendStep(ctx, r.ID, "chop vegetables")
	require.NoError(t, err)
	_, err = st.AppendStep(ctx, r.ID, "simmer the stock")
	require.NoError(t, err)

	eng := engine.New(st)
	_, _, err = eng.ReplaceDependencies(ctx, r.ID, 2, []int{1})
	require.NoError(t, err)

	violations, err := VerifyStore(ctx, st, r.ID)
	require.NoError(t, err)
	assert.Empty(t, violations)
}
