package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string

	// Logger receives diagnostic output on stderr; debug level under
	// --verbose so json output on stdout stays parseable.
	Logger *log.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Log returns the configured logger, defaulting to warn-level on stderr
// when the command is run outside the root (tests construct subcommands
// directly).
func (o *RootOptions) Log() *log.Logger {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: false,
			Prefix:          "stepflow",
			Level:           log.WarnLevel,
		})
	}
	return o.Logger
}

// NewRootCommand creates the root command for the stepflow CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "stepflow",
		Short: "stepflow - recipe step ordering with dependency tracking",
		Long: `stepflow maintains recipes whose steps can consume the output of
earlier steps. Reordering and deleting steps keeps every dependency
edge consistent: positions stay dense and an edge always points from
an earlier step to a later one.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			opts.Logger = log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: false,
				Prefix:          "stepflow",
			})
			if opts.Verbose {
				opts.Logger.SetLevel(log.DebugLevel)
			} else {
				opts.Logger.SetLevel(log.WarnLevel)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "stepflow.db", "path to SQLite database")

	// Add subcommands
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewMoveCommand(opts))
	cmd.AddCommand(NewDepsCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
