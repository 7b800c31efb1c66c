package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRecipes_SingleFile(t *testing.T) {
	specs, err := LoadRecipes(filepath.Join("testdata", "bolognese.cue"))
	require.NoError(t, err)
	require.Len(t, specs, 1)

	spec := specs[0]
	assert.Equal(t, "bolognese", spec.Name)
	require.Len(t, spec.Steps, 4)
	assert.Equal(t, "Dice the onions", spec.Steps[0].Text)
	assert.Empty(t, spec.Steps[0].Uses)
	assert.Equal(t, []int{1}, spec.Steps[2].Uses)
	assert.Equal(t, []int{2, 3}, spec.Steps[3].Uses)
}

func TestLoadRecipes_Directory(t *testing.T) {
	specs, err := LoadRecipes("testdata")
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "bolognese", specs[0].Name)
}

func TestLoadRecipes_PathNotFound(t *testing.T) {
	_, err := LoadRecipes(filepath.Join("testdata", "missing.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}

func TestLoadRecipes_EmptyDirectory(t *testing.T) {
	_, err := LoadRecipes(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNoFiles)
}

func TestLoadRecipes_ForwardUseRejected(t *testing.T) {
	_, err := LoadRecipes(filepath.Join("testdata", "invalid", "forward_use.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeInvalidUses)
	assert.Contains(t, err.Error(), "not an earlier step")
}

func TestValidateRecipeSpec(t *testing.T) {
	tests := []struct {
		name     string
		spec     RecipeSpec
		wantCode string
	}{
		{
			name:     "missing name",
			spec:     RecipeSpec{Steps: []StepSpec{{Text: "stir"}}},
			wantCode: ErrCodeRecipeName,
		},
		{
			name:     "no steps",
			spec:     RecipeSpec{Name: "empty"},
			wantCode: ErrCodeRecipeSteps,
		},
		{
			name:     "empty step text",
			spec:     RecipeSpec{Name: "r", Steps: []StepSpec{{Text: ""}}},
			wantCode: ErrCodeStepText,
		},
		{
			name:     "self use",
			spec:     RecipeSpec{Name: "r", Steps: []StepSpec{{Text: "a"}, {Text: "b", Uses: []int{2}}}},
			wantCode: ErrCodeInvalidUses,
		},
		{
			name:     "zero use",
			spec:     RecipeSpec{Name: "r", Steps: []StepSpec{{Text: "a", Uses: []int{0}}}},
			wantCode: ErrCodeInvalidUses,
		},
		{
			name: "valid",
			spec: RecipeSpec{Name: "r", Steps: []StepSpec{{Text: "a"}, {Text: "b", Uses: []int{1}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRecipeSpec(tt.spec)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantCode)
		})
	}
}

func TestFindCUEFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.cue"), []byte("recipe: {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("not cue"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "c.cue"), []byte("recipe: {}"), 0o644))

	files, err := FindCUEFiles(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
