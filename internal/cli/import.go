package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plateup/stepflow/internal/engine"
	"github.com/plateup/stepflow/internal/recipe"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
}

// ImportResult summarizes one imported recipe for output.
type ImportResult struct {
	Recipe string `json:"recipe"`
	Steps  int    `json:"steps"`
	Edges  int    `json:"edges"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import recipe definitions from CUE files",
		Long: `Import recipe definitions from a .cue file or a directory of .cue files.

Each definition declares a recipe name and an ordered list of steps;
a step's "uses" list names the earlier steps whose output it consumes.

Example definition:

  recipe: {
      name: "bolognese"
      steps: [
          {text: "Dice the onions"},
          {text: "Sauté the onions", uses: [1]},
      ]
  }

Example:
  stepflow import ./recipes --db kitchen.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	return cmd
}

func runImport(opts *ImportOptions, path string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	specs, err := LoadRecipes(path)
	if err != nil {
		_ = formatter.Error(loadErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load recipe definitions", err)
	}
	opts.Log().Debug("loaded recipe definitions", "count", len(specs), "path", path)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	eng := engine.New(st)
	var results []ImportResult
	for _, spec := range specs {
		res, err := importRecipe(ctx, st, eng, spec)
		if err != nil {
			return reportEngineError(formatter, err)
		}
		opts.Log().Debug("imported recipe", "name", res.Recipe, "steps", res.Steps, "edges", res.Edges)
		results = append(results, res)
	}

	if opts.Format == "json" {
		return formatter.Success(results)
	}
	for _, res := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %q: %d steps, %d dependencies\n",
			res.Recipe, res.Steps, res.Edges)
	}
	return nil
}

// importRecipe writes one definition: create the recipe, append its steps
// in order, then save each step's dependency set through the engine so
// the direction rule is enforced by the same code path the editor uses.
func importRecipe(ctx context.Context, st storeWriter, eng *engine.Engine, spec RecipeSpec) (ImportResult, error) {
	r, err := st.CreateRecipe(ctx, spec.Name)
	if err != nil {
		return ImportResult{}, err
	}

	for _, stepSpec := range spec.Steps {
		if _, err := st.AppendStep(ctx, r.ID, stepSpec.Text); err != nil {
			return ImportResult{}, err
		}
	}

	var edges int64
	for i, stepSpec := range spec.Steps {
		if len(stepSpec.Uses) == 0 {
			continue
		}
		_, created, err := eng.ReplaceDependencies(ctx, r.ID, i+1, stepSpec.Uses)
		if err != nil {
			return ImportResult{}, err
		}
		edges += created
	}

	return ImportResult{Recipe: spec.Name, Steps: len(spec.Steps), Edges: int(edges)}, nil
}

// storeWriter is the slice of the store importRecipe needs; narrowed for
// testability.
type storeWriter interface {
	CreateRecipe(ctx context.Context, name string) (recipe.Recipe, error)
	AppendStep(ctx context.Context, recipeID, text string) (recipe.Step, error)
}

// loadErrorCode extracts the code from a LoadError, defaulting to generic.
func loadErrorCode(err error) string {
	if le, ok := err.(*LoadError); ok {
		return le.Code
	}
	return ErrCodeGeneric
}
