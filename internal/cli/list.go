package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		Long: `List all recipes in the database, ordered by name.

Example:
  stepflow list --db kitchen.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	recipes, err := st.ListRecipes(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list recipes", err)
	}

	if opts.Format == "json" {
		return formatter.Success(recipes)
	}

	if len(recipes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recipes")
		return nil
	}
	for _, r := range recipes {
		fmt.Fprintln(cmd.OutOrStdout(), r.Name)
	}
	return nil
}
