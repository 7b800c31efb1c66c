package recipe

// Recipe is the scoping unit for all engine operations. Steps and edges
// never cross recipe boundaries.
type Recipe struct {
	ID   string `json:"id"`   // UUIDv7
	Name string `json:"name"` // unique, human-facing
}

// Step is a single instruction within a recipe.
//
// ID is the stable identity; Position is the mutable 1-based slot that the
// engine renumbers on reorder and deletion. Engine writes are keyed by ID
// precisely because Position changes under foot.
type Step struct {
	ID       string `json:"id"`        // UUIDv7, stable across renumbering
	RecipeID string `json:"recipe_id"`
	Position int    `json:"position"`  // 1..N, unique per recipe
	Text     string `json:"text"`      // NFC-normalized instruction text
}

// Edge is a single StepOutputUse row: the step at Input consumes the
// output of the step at Output. Must satisfy Output < Input — a step can
// only use output produced by an earlier step.
type Edge struct {
	Output int `json:"output"`
	Input  int `json:"input"`
}

// Reversed reports whether the edge violates the direction invariant.
// Self-references count as reversed.
func (e Edge) Reversed() bool {
	return e.Output >= e.Input
}
