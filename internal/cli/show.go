package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plateup/stepflow/internal/engine"
	"github.com/plateup/stepflow/internal/store"
)

// RecipeView is the render model for a recipe: steps in position order,
// each with the positions whose output it uses.
type RecipeView struct {
	Name  string     `json:"name"`
	Steps []StepView `json:"steps"`
}

// StepView is one rendered step.
type StepView struct {
	Position int    `json:"position"`
	Text     string `json:"text"`
	Uses     []int  `json:"uses,omitempty"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <recipe>",
		Short: "Show a recipe's steps and dependencies",
		Long: `Show a recipe's steps in order, with each step's dependencies.

Examples:
  stepflow show bolognese --db kitchen.db
  stepflow show bolognese --db kitchen.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, name string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	view, err := buildRecipeView(ctx, st, name)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		return formatter.Success(view)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d steps)\n", view.Name, len(view.Steps))
	for _, sv := range view.Steps {
		if len(sv.Uses) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s  (uses output of %s)\n",
				sv.Position, sv.Text, engine.StepList(sv.Uses))
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", sv.Position, sv.Text)
		}
	}
	return nil
}

// buildRecipeView assembles the render model from one store snapshot.
func buildRecipeView(ctx context.Context, st *store.Store, name string) (RecipeView, error) {
	r, err := resolveRecipe(ctx, st, name)
	if err != nil {
		return RecipeView{}, err
	}

	steps, err := st.LoadSteps(ctx, r.ID)
	if err != nil {
		return RecipeView{}, WrapExitError(ExitCommandError, "failed to load steps", err)
	}
	edges, err := st.LoadEdges(ctx, r.ID)
	if err != nil {
		return RecipeView{}, WrapExitError(ExitCommandError, "failed to load edges", err)
	}

	usesByInput := make(map[int][]int)
	for _, e := range edges {
		usesByInput[e.Input] = append(usesByInput[e.Input], e.Output)
	}

	view := RecipeView{Name: r.Name}
	for _, s := range steps {
		view.Steps = append(view.Steps, StepView{
			Position: s.Position,
			Text:     s.Text,
			Uses:     usesByInput[s.Position],
		})
	}
	return view, nil
}
