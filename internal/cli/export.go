package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// exportedRecipe is the YAML document shape produced by export. It
// mirrors the CUE definition shape: implicit positions, explicit uses.
type exportedRecipe struct {
	Recipe exportedBody `yaml:"recipe"`
}

type exportedBody struct {
	Name  string         `yaml:"name"`
	Steps []exportedStep `yaml:"steps"`
}

type exportedStep struct {
	Text string `yaml:"text"`
	Uses []int  `yaml:"uses,omitempty"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <recipe>",
		Short: "Export a recipe as YAML",
		Long: `Export a recipe as a YAML document in the same shape as the CUE
definition format: steps in order, dependencies as "uses" lists.

Example:
  stepflow export bolognese --db kitchen.db > bolognese.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runExport(opts *RootOptions, name string, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	view, err := buildRecipeView(ctx, st, name)
	if err != nil {
		return err
	}

	doc := exportedRecipe{Recipe: exportedBody{Name: view.Name}}
	for _, sv := range view.Steps {
		doc.Recipe.Steps = append(doc.Recipe.Steps, exportedStep{Text: sv.Text, Uses: sv.Uses})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to marshal recipe", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}
