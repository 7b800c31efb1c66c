package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one editing scenario: a recipe to seed and a sequence
// of operations to run against it.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description"`

	// Recipe is the recipe seeded before the operations run.
	Recipe RecipeDef `yaml:"recipe"`

	// Ops is the operation sequence, executed in order.
	Ops []OpStep `yaml:"ops"`
}

// RecipeDef declares the seeded recipe: steps in order, positions implicit.
type RecipeDef struct {
	Name  string    `yaml:"name"`
	Steps []StepDef `yaml:"steps"`
}

// StepDef is one seeded step. Uses lists the 1-based positions of earlier
// steps whose output this step consumes.
type StepDef struct {
	Text string `yaml:"text"`
	Uses []int  `yaml:"uses,omitempty"`
}

// Operation names accepted in OpStep.Op.
const (
	OpMove   = "move"
	OpDeps   = "deps"
	OpDelete = "delete"
)

// OpStep is one editing operation.
type OpStep struct {
	// Op is one of "move", "deps", "delete".
	Op string `yaml:"op"`

	// From and To are the move positions (move only).
	From int `yaml:"from,omitempty"`
	To   int `yaml:"to,omitempty"`

	// Step is the edited position (deps and delete).
	Step int `yaml:"step,omitempty"`

	// Uses is the replacement dependency set (deps only); empty clears.
	Uses []int `yaml:"uses,omitempty"`

	// ExpectError, when set, is the exact rejection message this
	// operation must produce. An operation without it must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so a typo like "expect_errors:" fails loudly instead of
// silently passing.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks required fields and per-op argument shapes.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Recipe.Name == "" {
		return fmt.Errorf("recipe.name is required")
	}
	if len(s.Recipe.Steps) == 0 {
		return fmt.Errorf("recipe.steps is required and must be non-empty")
	}
	for i, step := range s.Recipe.Steps {
		if step.Text == "" {
			return fmt.Errorf("recipe.steps[%d]: text is required", i)
		}
		for _, use := range step.Uses {
			if use < 1 || use > i {
				return fmt.Errorf("recipe.steps[%d]: uses entry %d must name an earlier step", i, use)
			}
		}
	}
	if len(s.Ops) == 0 {
		return fmt.Errorf("ops list is required and must be non-empty")
	}

	for i, op := range s.Ops {
		switch op.Op {
		case OpMove:
			if op.From < 1 || op.To < 1 {
				return fmt.Errorf("ops[%d]: move requires from and to positions", i)
			}
		case OpDeps:
			if op.Step < 1 {
				return fmt.Errorf("ops[%d]: deps requires a step position", i)
			}
		case OpDelete:
			if op.Step < 1 {
				return fmt.Errorf("ops[%d]: delete requires a step position", i)
			}
		case "":
			return fmt.Errorf("ops[%d]: op is required", i)
		default:
			return fmt.Errorf("ops[%d]: unknown op %q", i, op.Op)
		}
	}
	return nil
}
