package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the CLI against a fresh root command and returns
// captured stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCommands_EndToEnd(t *testing.T) {
	db := filepath.Join(t.TempDir(), "kitchen.db")

	out, err := runCommand(t, "import", "testdata/bolognese.cue", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "Imported \"bolognese\": 4 steps, 3 dependencies\n", out)

	out, err = runCommand(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "bolognese\n", out)

	out, err = runCommand(t, "show", "bolognese", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "bolognese (4 steps)")
	assert.Contains(t, out, "  3. Sauté the onions  (uses output of Step 1)")
	assert.Contains(t, out, "  4. Combine and simmer  (uses output of Steps 2 and 3)")

	// Step 3 uses Step 1's output, so Step 1 cannot move past it.
	out, err = runCommand(t, "move", "bolognese", "1", "4", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t,
		"Error [VALIDATION_REJECTED]: Cannot move Step 1 to position 4 because Step 3 uses its output\n",
		out)

	// Moving one slot forward stays on the safe side of Step 3.
	out, err = runCommand(t, "move", "bolognese", "1", "2", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "Moved Step 1 to position 2\n", out)

	out, err = runCommand(t, "show", "bolognese", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "  1. Brown the beef")
	assert.Contains(t, out, "  2. Dice the onions")
	assert.Contains(t, out, "  3. Sauté the onions  (uses output of Step 2)")
	assert.Contains(t, out, "  4. Combine and simmer  (uses output of Steps 1 and 3)")

	out, err = runCommand(t, "deps", "bolognese", "4", "--uses", "3", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "Saved dependencies for Step 4: 2 removed, 1 added\n", out)

	out, err = runCommand(t, "delete", "bolognese", "2", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t,
		"Error [VALIDATION_REJECTED]: Cannot delete Step 2 because Step 3 uses its output\n",
		out)

	out, err = runCommand(t, "delete", "bolognese", "4", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "Deleted Step 4\n", out)

	out, err = runCommand(t, "export", "bolognese", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "name: bolognese")
	assert.Contains(t, out, "- text: Brown the beef")
	assert.Contains(t, out, "- text: Sauté the onions")
	assert.Contains(t, out, "uses:")
	assert.NotContains(t, out, "Combine and simmer")
}

func TestCommands_JSONErrors(t *testing.T) {
	db := filepath.Join(t.TempDir(), "kitchen.db")

	_, err := runCommand(t, "import", "testdata/bolognese.cue", "--db", db)
	require.NoError(t, err)

	out, err := runCommand(t, "move", "bolognese", "1", "4", "--db", db, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_REJECTED", resp.Error.Code)
	assert.Equal(t, []int{3}, resp.Error.Blocking)
	assert.Equal(t,
		"Cannot move Step 1 to position 4 because Step 3 uses its output",
		resp.Error.Message)
}

func TestCommands_JSONMove(t *testing.T) {
	db := filepath.Join(t.TempDir(), "kitchen.db")

	_, err := runCommand(t, "import", "testdata/bolognese.cue", "--db", db)
	require.NoError(t, err)

	out, err := runCommand(t, "move", "bolognese", "2", "1", "--db", db, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "bolognese", data["recipe"])
	assert.Equal(t, float64(2), data["moved"])
	assert.Equal(t, float64(1), data["to"])
}

func TestCommands_MissingRecipe(t *testing.T) {
	db := filepath.Join(t.TempDir(), "kitchen.db")

	_, err := runCommand(t, "show", "carbonara", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCommands_ImportBadPath(t *testing.T) {
	db := filepath.Join(t.TempDir(), "kitchen.db")

	out, err := runCommand(t, "import", "testdata/nope.cue", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}
