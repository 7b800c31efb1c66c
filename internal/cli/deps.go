package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plateup/stepflow/internal/engine"
)

// DepsOptions holds flags for the deps command.
type DepsOptions struct {
	*RootOptions
	Uses string
}

// NewDepsCommand creates the deps command.
func NewDepsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DepsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "deps <recipe> <step>",
		Short: "Replace a step's dependency set",
		Long: `Replace the full set of steps whose output the given step uses.

The existing set is deleted and the new set inserted as one atomic
operation. Every listed step must come before the edited step. An
empty --uses clears the step's dependencies.

Examples:
  stepflow deps bolognese 4 --uses 1,3 --db kitchen.db
  stepflow deps bolognese 4 --uses "" --db kitchen.db`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeps(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Uses, "uses", "", "comma-separated positions of steps whose output this step uses")

	return cmd
}

func runDeps(opts *DepsOptions, args []string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	inputPos, err := parsePosition(args[1])
	if err != nil {
		return err
	}
	outputs, err := parseUses(opts.Uses)
	if err != nil {
		return err
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	r, err := resolveRecipe(ctx, st, args[0])
	if err != nil {
		return err
	}

	opts.Log().Debug("replacing dependencies", "recipe", r.Name, "step", inputPos, "uses", outputs)

	eng := engine.New(st)
	deleted, created, err := eng.ReplaceDependencies(ctx, r.ID, inputPos, outputs)
	if err != nil {
		return reportEngineError(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]interface{}{
			"recipe":  r.Name,
			"step":    inputPos,
			"deleted": deleted,
			"created": created,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved dependencies for Step %d: %d removed, %d added\n",
		inputPos, deleted, created)
	return nil
}

// parseUses parses the --uses flag: a comma-separated position list, or
// empty for "no dependencies".
func parseUses(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var outputs []int
	for _, field := range strings.Split(raw, ",") {
		pos, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || pos < 1 {
			return nil, NewExitError(ExitCommandError,
				"--uses entries must be positive integers, got "+strconv.Quote(field))
		}
		outputs = append(outputs, pos)
	}
	return outputs, nil
}
