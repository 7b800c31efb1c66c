package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReorderFlow(t *testing.T) {
	scenario, err := LoadScenario("testdata/reorder_flow.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	require.Len(t, result.Trace, 5)
	outcomes := make([]string, len(result.Trace))
	for i, ev := range result.Trace {
		outcomes[i] = ev.Outcome
	}
	assert.Equal(t, []string{"rejected", "ok", "ok", "rejected", "ok"}, outcomes)

	require.Len(t, result.Final.Steps, 3)
	assert.Equal(t, "Brown the beef", result.Final.Steps[0].Text)
	assert.Equal(t, "Dice the onions", result.Final.Steps[1].Text)
	assert.Equal(t, "Sauté the onions", result.Final.Steps[2].Text)
	assert.Equal(t, []int{2}, result.Final.Steps[2].Uses)
}

func TestRun_DeleteGuard(t *testing.T) {
	scenario, err := LoadScenario("testdata/delete_guard.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	require.Len(t, result.Final.Steps, 2)
	assert.Equal(t, "Chop the herbs", result.Final.Steps[0].Text)
	assert.Equal(t, []int{1}, result.Final.Steps[1].Uses)
}

func TestRun_UnexpectedRejectionFails(t *testing.T) {
	scenario := &Scenario{
		Name: "unexpected-rejection",
		Recipe: RecipeDef{
			Name: "stock",
			Steps: []StepDef{
				{Text: "roast the bones"},
				{Text: "simmer the bones", Uses: []int{1}},
			},
		},
		Ops: []OpStep{
			{Op: OpMove, From: 1, To: 2},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "unexpected error")
	assert.Equal(t, "rejected", result.Trace[0].Outcome)
}

func TestRun_MissedRejectionFails(t *testing.T) {
	scenario := &Scenario{
		Name: "missed-rejection",
		Recipe: RecipeDef{
			Name: "stock",
			Steps: []StepDef{
				{Text: "roast the bones"},
				{Text: "chop the vegetables"},
			},
		},
		Ops: []OpStep{
			{Op: OpMove, From: 1, To: 2, ExpectError: "Cannot move Step 1 to position 2 because Step 2 uses its output"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "got success")
}

func TestRun_WrongMessageFails(t *testing.T) {
	scenario := &Scenario{
		Name: "wrong-message",
		Recipe: RecipeDef{
			Name: "stock",
			Steps: []StepDef{
				{Text: "roast the bones"},
				{Text: "simmer the bones", Uses: []int{1}},
			},
		},
		Ops: []OpStep{
			{Op: OpMove, From: 1, To: 2, ExpectError: "Cannot move Step 1 to position 2 because Step 3 uses its output"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "expected rejection")
}

func TestRunWithGolden(t *testing.T) {
	for _, file := range []string{"testdata/reorder_flow.yaml", "testdata/delete_guard.yaml"} {
		scenario, err := LoadScenario(file)
		require.NoError(t, err)

		t.Run(scenario.Name, func(t *testing.T) {
			RunWithGolden(t, scenario)
		})
	}
}
