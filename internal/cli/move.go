package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plateup/stepflow/internal/engine"
)

// NewMoveCommand creates the move command.
func NewMoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <recipe> <current> <target>",
		Short: "Move a step to a new position",
		Long: `Move a step from its current position to a target position.

The steps in between shift by one slot and every dependency edge that
references a shifted position is rewritten to match. A move that would
place a step at or past one of its dependents, or at or before one of
its dependencies, is refused with the blocking steps named.

Examples:
  stepflow move bolognese 4 2 --db kitchen.db
  stepflow move bolognese 1 3 --db kitchen.db --format json`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runMove(opts *RootOptions, args []string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	currentPos, err := parsePosition(args[1])
	if err != nil {
		return err
	}
	targetPos, err := parsePosition(args[2])
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

	opts.Log().Debug("moving step", "recipe", r.Name, "from", currentPos, "to", targetPos)

	eng := engine.New(st)
	if err := eng.MoveStep(ctx, r.ID, currentPos, targetPos); err != nil {
		return reportEngineError(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]interface{}{
			"recipe": r.Name,
			"moved":  currentPos,
			"to":     targetPos,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved Step %d to position %d\n", currentPos, targetPos)
	return nil
}
