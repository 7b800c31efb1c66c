package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/plateup/stepflow/internal/recipe"
)

// CreateRecipe inserts a new recipe with a generated UUIDv7 id.
// The name must be unique.
func (s *Store) CreateRecipe(ctx context.Context, name string) (recipe.Recipe, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("create recipe: generate id: %w", err)
	}

	r := recipe.Recipe{ID: id.String(), Name: name}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO recipes (id, name) VALUES (?, ?)
	`, r.ID, r.Name)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("create recipe: %w", err)
	}
	return r, nil
}

// AppendStep inserts a step at the end of the recipe (position N+1) with
// a generated UUIDv7 id. Text is NFC-normalized before storage.
//
// Appending never disturbs existing positions or edges, so it needs no
// engine involvement; only moves and deletions do.
func (s *Store) AppendStep(ctx context.Context, recipeID, text string) (recipe.Step, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return recipe.Step{}, fmt.Errorf("append step: generate id: %w", err)
	}

	st := recipe.Step{
		ID:       id.String(),
		RecipeID: recipeID,
		Text:     recipe.NormalizeText(text),
	}

	// MAX(position)+1 and the insert must be one statement: the store's
	// connection pool is single-writer, but appends from two goroutines
	// would otherwise race between the read and the write.
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO steps (id, recipe_id, position, text)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM steps WHERE recipe_id = ?), ?)
		RETURNING position
	`, st.ID, recipeID, recipeID, st.Text).Scan(&st.Position)
	if err != nil {
		return recipe.Step{}, fmt.Errorf("append step: %w", err)
	}

	return st, nil
}
