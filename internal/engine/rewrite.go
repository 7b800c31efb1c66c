package engine

import "github.com/plateup/stepflow/internal/recipe"

// RewriteEdges returns a copy of edges with every endpoint equal to
// oldPos replaced by newPos. Pure: the input slice is never mutated.
//
// This is the in-memory twin of the store's bulk edge rewrite; the
// orchestrator issues the store form, while tests use this one to model
// what the store did.
func RewriteEdges(edges []recipe.Edge, oldPos, newPos int) []recipe.Edge {
	out := make([]recipe.Edge, len(edges))
	for i, e := range edges {
		if e.Output == oldPos {
			e.Output = newPos
		}
		if e.Input == oldPos {
			e.Input = newPos
		}
		out[i] = e
	}
	return out
}

// ApplyAssignments folds a plan over an edge set, rewriting the vacated
// position at each assignment exactly as the transactional sequence does.
// Used by tests to verify that a full plan restores the edge invariants.
func ApplyAssignments(edges []recipe.Edge, plan []Assignment) []recipe.Edge {
	for _, a := range plan {
		edges = RewriteEdges(edges, a.From, a.To)
	}
	return edges
}

// ApplyToPositions folds a plan over a position set the same way. The
// result is unsorted; callers needing set semantics wrap it in
// recipe.NewPositionSet.
func ApplyToPositions(positions []int, plan []Assignment) []int {
	out := make([]int, len(positions))
	copy(out, positions)
	for _, a := range plan {
		for i, p := range out {
			if p == a.From {
				out[i] = a.To
				break
			}
		}
	}
	return out
}
