package engine

import (
	"fmt"
	"strings"
)

// Result is the outcome of a reorder or deletion validation.
//
// Validation outcomes are values, not errors: callers need the structured
// blocking list to render UI state, so a failed check is still a normal
// return. The orchestrator converts an invalid Result into an OrderError
// only when it aborts an operation on it.
type Result struct {
	// Valid reports whether the checked operation may proceed.
	Valid bool

	// Blocking lists the step positions that prevent the operation,
	// sorted ascending. Empty when Valid.
	Blocking []int

	// Message is the caller-facing sentence explaining the rejection.
	// Empty when Valid.
	Message string
}

// valid is the singleton success result.
var valid = Result{Valid: true}

// StepList renders positions as a human-readable list:
//
//	[2]       -> "Step 2"
//	[2 3]     -> "Steps 2 and 3"
//	[2 3 4]   -> "Steps 2, 3, and 4"
//
// Three or more positions take an Oxford comma. Positions are assumed
// sorted; callers sort before rendering.
func StepList(positions []int) string {
	switch len(positions) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("Step %d", positions[0])
	case 2:
		return fmt.Sprintf("Steps %d and %d", positions[0], positions[1])
	default:
		var b strings.Builder
		b.WriteString("Steps ")
		for _, p := range positions[:len(positions)-1] {
			fmt.Fprintf(&b, "%d, ", p)
		}
		fmt.Fprintf(&b, "and %d", positions[len(positions)-1])
		return b.String()
	}
}

// verb returns the agreeing form of "use" for the blocking list.
func verb(count int) string {
	if count == 1 {
		return "uses"
	}
	return "use"
}

// invalidIncoming builds the rejection for a move blocked by dependents.
func invalidIncoming(currentPos, targetPos int, blocking []int) Result {
	return Result{
		Blocking: blocking,
		Message: fmt.Sprintf("Cannot move Step %d to position %d because %s %s its output",
			currentPos, targetPos, StepList(blocking), verb(len(blocking))),
	}
}

// invalidOutgoing builds the rejection for a move blocked by dependencies.
func invalidOutgoing(currentPos, targetPos int, blocking []int) Result {
	return Result{
		Blocking: blocking,
		Message: fmt.Sprintf("Cannot move Step %d to position %d because it uses output from %s",
			currentPos, targetPos, StepList(blocking)),
	}
}

// invalidDelete builds the rejection for a deletion blocked by dependents.
func invalidDelete(pos int, blocking []int) Result {
	return Result{
		Blocking: blocking,
		Message: fmt.Sprintf("Cannot delete Step %d because %s %s its output",
			pos, StepList(blocking), verb(len(blocking))),
	}
}
