package engine

import (
	"sort"

	"github.com/plateup/stepflow/internal/recipe"
)

// ValidateIncoming checks whether moving the step at currentPos to
// targetPos would strand a dependent behind its dependency.
//
// A dependent is any step whose input edge names currentPos as its output
// (the dependent consumes the moved step's output). Dependents sit at
// larger positions than currentPos, so only a forward move can overtake
// one: a dependent at position p blocks when p lies in (currentPos,
// targetPos]. Backward moves and no-op moves are always valid here.
//
// The check reasons purely from edges. A currentPos that no edge names —
// including one that doesn't exist at all — validates as movable; step
// existence is the orchestrator's concern.
func ValidateIncoming(edges []recipe.Edge, currentPos, targetPos int) Result {
	if targetPos <= currentPos {
		return valid
	}

	var blocking []int
	for _, e := range edges {
		if e.Output != currentPos {
			continue
		}
		if e.Input > currentPos && e.Input <= targetPos {
			blocking = append(blocking, e.Input)
		}
	}
	if len(blocking) == 0 {
		return valid
	}

	sort.Ints(blocking)
	return invalidIncoming(currentPos, targetPos, blocking)
}

// ValidateOutgoing is the mirror check: whether moving the step at
// currentPos to targetPos would place it before something it depends on.
//
// The step's dependencies sit at smaller positions, so only a backward
// move can undercut one: a dependency at position p blocks when p lies in
// [targetPos, currentPos). Forward moves and no-op moves are always valid
// here.
func ValidateOutgoing(edges []recipe.Edge, currentPos, targetPos int) Result {
	if targetPos >= currentPos {
		return valid
	}

	var blocking []int
	for _, e := range edges {
		if e.Input != currentPos {
			continue
		}
		if e.Output >= targetPos && e.Output < currentPos {
			blocking = append(blocking, e.Output)
		}
	}
	if len(blocking) == 0 {
		return valid
	}

	sort.Ints(blocking)
	return invalidOutgoing(currentPos, targetPos, blocking)
}

// ValidateMove runs both direction checks for a move. At most one can
// fail for any given move (a forward move only trips the incoming check,
// a backward move only the outgoing one), so the first invalid result is
// the result.
func ValidateMove(edges []recipe.Edge, currentPos, targetPos int) Result {
	if res := ValidateIncoming(edges, currentPos, targetPos); !res.Valid {
		return res
	}
	return ValidateOutgoing(edges, currentPos, targetPos)
}

// ValidateDeletion checks whether the step at pos may be removed: legal
// iff no edge names pos as its output. Blocking positions are the
// dependents that still consume the step's output.
func ValidateDeletion(edges []recipe.Edge, pos int) Result {
	var blocking []int
	for _, e := range edges {
		if e.Output == pos {
			blocking = append(blocking, e.Input)
		}
	}
	if len(blocking) == 0 {
		return valid
	}

	sort.Ints(blocking)
	return invalidDelete(pos, blocking)
}
