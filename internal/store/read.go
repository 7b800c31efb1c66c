package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/plateup/stepflow/internal/recipe"
)

// ErrRecipeNotFound is returned by lookups for a recipe that doesn't exist.
var ErrRecipeNotFound = errors.New("recipe not found")

// FindRecipeByName returns the recipe with the given name.
func (s *Store) FindRecipeByName(ctx context.Context, name string) (recipe.Recipe, error) {
	var r recipe.Recipe
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name FROM recipes WHERE name = ?
	`, name).Scan(&r.ID, &r.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return recipe.Recipe{}, fmt.Errorf("%w: %s", ErrRecipeNotFound, name)
	}
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("find recipe: %w", err)
	}
	return r, nil
}

// ListRecipes returns all recipes ordered by name.
func (s *Store) ListRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name FROM recipes ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []recipe.Recipe
	for rows.Next() {
		var r recipe.Recipe
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return recipes, nil
}

// LoadPositions returns the existing step positions for a recipe, sorted
// ascending. Implements engine.Store.
//
// Returns an empty slice (not nil) if the recipe has no steps.
func (s *Store) LoadPositions(ctx context.Context, recipeID string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position FROM steps
		WHERE recipe_id = ?
		ORDER BY position ASC
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query positions: %w", err)
	}
	defer rows.Close()

	positions := []int{}
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate positions: %w", err)
	}
	return positions, nil
}

// LoadEdges returns all dependency edges for a recipe with deterministic
// ordering (input, then output). Implements engine.Store.
func (s *Store) LoadEdges(ctx context.Context, recipeID string) ([]recipe.Edge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT output_position, input_position FROM step_output_uses
		WHERE recipe_id = ?
		ORDER BY input_position ASC, output_position ASC
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer rows.Close()

	edges := []recipe.Edge{}
	for rows.Next() {
		var e recipe.Edge
		if err := rows.Scan(&e.Output, &e.Input); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edges: %w", err)
	}
	return edges, nil
}

// LoadSteps returns all steps for a recipe ordered by position.
// Implements engine.Store.
func (s *Store) LoadSteps(ctx context.Context, recipeID string) ([]recipe.Step, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recipe_id, position, text FROM steps
		WHERE recipe_id = ?
		ORDER BY position ASC
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	steps := []recipe.Step{}
	for rows.Next() {
		var st recipe.Step
		if err := rows.Scan(&st.ID, &st.RecipeID, &st.Position, &st.Text); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		steps = append(steps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}

// DependenciesOf returns the output positions the step at inputPos uses,
// sorted ascending. Convenience read for the CLI and tests.
func (s *Store) DependenciesOf(ctx context.Context, recipeID string, inputPos int) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT output_position FROM step_output_uses
		WHERE recipe_id = ? AND input_position = ?
		ORDER BY output_position ASC
	`, recipeID, inputPos)
	if err != nil {
		return nil, fmt.Errorf("query dependencies: %w", err)
	}
	defer rows.Close()

	outputs := []int{}
	for rows.Next() {
		var o int
		if err := rows.Scan(&o); err != nil {
			return nil, fmt.Errorf("scan dependency: %w", err)
		}
		outputs = append(outputs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dependencies: %w", err)
	}
	return outputs, nil
}
