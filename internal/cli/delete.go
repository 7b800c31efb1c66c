package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plateup/stepflow/internal/engine"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <recipe> <step>",
		Short: "Delete a step",
		Long: `Delete the step at the given position.

Refused while any other step still uses the step's output. On success
the steps after it shift down by one and every edge referencing a
shifted position is rewritten; the deleted step's own dependencies are
removed with it.

Example:
  stepflow delete bolognese 3 --db kitchen.db`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runDelete(opts *RootOptions, args []string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	pos, err := parsePosition(args[1])
	if err != nil {
		return err
	}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	r, err := resolveRecipe(ctx, st, args[0])
	if err != nil {
		return err
	}

	opts.Log().Debug("deleting step", "recipe", r.Name, "position", pos)

	eng := engine.New(st)
	if err := eng.DeleteStep(ctx, r.ID, pos); err != nil {
		return reportEngineError(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]interface{}{
			"recipe":  r.Name,
			"deleted": pos,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted Step %d\n", pos)
	return nil
}
