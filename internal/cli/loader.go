package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// RecipeSpec is a recipe definition as authored in CUE:
//
//	recipe: {
//		name: "bolognese"
//		steps: [
//			{text: "Dice the onions"},
//			{text: "Sauté the onions", uses: [1]},
//		]
//	}
//
// Step positions are implicit: the first entry is Step 1. The uses list
// names the positions whose output the step consumes; each must precede
// the step itself.
type RecipeSpec struct {
	Name  string     `json:"name"`
	Steps []StepSpec `json:"steps"`
}

// StepSpec is a single step declaration within a RecipeSpec.
type StepSpec struct {
	Text string `json:"text"`
	Uses []int  `json:"uses,omitempty"`
}

// LoadError represents an error that occurred during definition loading.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed

	// Recipe validation errors
	ErrCodeRecipeName  = "E101" // Missing recipe name
	ErrCodeRecipeSteps = "E102" // No steps defined
	ErrCodeStepText    = "E103" // Step with empty text
	ErrCodeInvalidUses = "E104" // uses entry out of range or not earlier
)

// LoadRecipes loads recipe definitions from a .cue file or a directory of
// .cue files. Each definition is validated before it is returned: name
// and step text present, and every uses entry naming an earlier step.
func LoadRecipes(path string) ([]RecipeSpec, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing path: %v", err)}
	}

	dir := path
	args := []string{"."}
	if !info.IsDir() {
		dir = filepath.Dir(path)
		args = []string{filepath.Base(path)}
	} else {
		cueFiles, err := FindCUEFiles(dir)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
		}
		if len(cueFiles) == 0 {
			return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
		}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances(args, cfg)
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	var specs []RecipeSpec

	// A file may define a single `recipe` or a list `recipes`.
	if single := value.LookupPath(cue.ParsePath("recipe")); single.Exists() {
		spec, err := decodeRecipe(single)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	if many := value.LookupPath(cue.ParsePath("recipes")); many.Exists() {
		iter, err := many.List()
		if err != nil {
			return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("recipes must be a list: %v", err)}
		}
		for iter.Next() {
			spec, err := decodeRecipe(iter.Value())
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		}
	}

	if len(specs) == 0 {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: "no recipe definitions found"}
	}

	return specs, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// decodeRecipe decodes and validates one recipe definition.
func decodeRecipe(v cue.Value) (RecipeSpec, error) {
	var spec RecipeSpec
	if err := v.Decode(&spec); err != nil {
		return RecipeSpec{}, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("decoding recipe: %v", err)}
	}
	if err := validateRecipeSpec(spec); err != nil {
		return RecipeSpec{}, err
	}
	return spec, nil
}

// validateRecipeSpec enforces the definition-level rules. The direction
// rule (uses name earlier steps only) is re-checked by the engine on
// write; catching it here gives the author a file-level error instead of
// a store-level one.
func validateRecipeSpec(spec RecipeSpec) error {
	if spec.Name == "" {
		return &LoadError{Code: ErrCodeRecipeName, Message: "recipe has no name"}
	}
	if len(spec.Steps) == 0 {
		return &LoadError{Code: ErrCodeRecipeSteps, Message: fmt.Sprintf("recipe %q has no steps", spec.Name)}
	}

	for i, st := range spec.Steps {
		pos := i + 1
		if st.Text == "" {
			return &LoadError{
				Code:    ErrCodeStepText,
				Message: fmt.Sprintf("recipe %q: step %d has empty text", spec.Name, pos),
			}
		}
		for _, use := range st.Uses {
			if use < 1 || use >= pos {
				return &LoadError{
					Code: ErrCodeInvalidUses,
					Message: fmt.Sprintf("recipe %q: step %d uses step %d, which is not an earlier step",
						spec.Name, pos, use),
				}
			}
		}
	}

	return nil
}
