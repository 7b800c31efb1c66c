package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/plateup/stepflow/internal/engine"
	"github.com/plateup/stepflow/internal/recipe"
	"github.com/plateup/stepflow/internal/store"
)

// openStore opens the database from the global --db flag.
func openStore(opts *RootOptions) (*store.Store, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// resolveRecipe looks up a recipe by name.
func resolveRecipe(ctx context.Context, st *store.Store, name string) (recipe.Recipe, error) {
	r, err := st.FindRecipeByName(ctx, name)
	if err != nil {
		return recipe.Recipe{}, WrapExitError(ExitCommandError, "failed to resolve recipe", err)
	}
	return r, nil
}

// reportEngineError renders an engine rejection through the formatter and
// converts it to the right exit code: rejected operations are failures
// (exit 1), anything else is a command error.
func reportEngineError(formatter *OutputFormatter, err error) error {
	var oerr *engine.OrderError
	if errors.As(err, &oerr) {
		_ = formatter.Error(string(oerr.Code), oerr.Message, oerr.Blocking)
		code := ExitFailure
		if oerr.Code == engine.ErrCodeStoreFailure {
			code = ExitCommandError
		}
		return NewExitError(code, oerr.Message)
	}
	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitCommandError, "operation failed", err)
}

// parsePosition parses a 1-based step position argument.
func parsePosition(arg string) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil || pos < 1 {
		return 0, NewExitError(ExitCommandError, "step position must be a positive integer, got "+strconv.Quote(arg))
	}
	return pos, nil
}
