package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plateup/stepflow/internal/recipe"
)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedRecipe creates a recipe with n appended steps and the given edges.
func seedRecipe(t *testing.T, s *Store, name string, n int, edges []recipe.Edge) recipe.Recipe {
	t.Helper()
	ctx := context.Background()

	r, err := s.CreateRecipe(ctx, name)
	require.NoError(t, err)

	for i := 1; i <= n; i++ {
		_, err := s.AppendStep(ctx, r.ID, fmt.Sprintf("step %d", i))
		require.NoError(t, err)
	}

	if len(edges) > 0 {
		tx, err := s.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback()
		for _, e := range edges {
			_, err := tx.InsertEdges(ctx, r.ID, e.Input, []int{e.Output})
			require.NoError(t, err)
		}
		require.NoError(t, tx.Commit())
	}

	return r
}
