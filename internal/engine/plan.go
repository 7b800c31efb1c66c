package engine

// SentinelPosition is the transient parking slot used while a step is in
// flight during a move. Any value outside 1..N would do; negative reads
// unambiguously as "in transit" if it ever surfaces in a trace.
const SentinelPosition = -1

// Assignment is a single-position reassignment: the step currently at
// From moves to To. Applied in order, each assignment targets a position
// that no other step holds at that moment, so the store's uniqueness
// constraint is never tripped.
type Assignment struct {
	From int
	To   int
}

// PlanMove computes the assignment sequence that moves the step at
// currentPos to targetPos within a dense 1..N range.
//
// The sequence always starts by parking the moved step on the sentinel,
// then shifts every intervening step one slot toward the vacated
// position, then lands the moved step. Shifts run in the direction that
// frees each slot before it is filled:
//
//	forward  (2 -> 5): [2→S, 3→2, 4→3, 5→4, S→5]
//	backward (5 -> 2): [5→S, 4→5, 3→4, 2→3, S→2]
//
// A no-op move (currentPos == targetPos) yields an empty plan.
func PlanMove(currentPos, targetPos int) []Assignment {
	if currentPos == targetPos {
		return nil
	}

	plan := []Assignment{{From: currentPos, To: SentinelPosition}}

	if targetPos > currentPos {
		// Forward: steps in (currentPos, targetPos] shift down by one,
		// lowest first so each write lands on the slot just vacated.
		for p := currentPos + 1; p <= targetPos; p++ {
			plan = append(plan, Assignment{From: p, To: p - 1})
		}
	} else {
		// Backward: steps in [targetPos, currentPos) shift up by one,
		// highest first.
		for p := currentPos - 1; p >= targetPos; p-- {
			plan = append(plan, Assignment{From: p, To: p + 1})
		}
	}

	return append(plan, Assignment{From: SentinelPosition, To: targetPos})
}

// PlanGapClose computes the assignment sequence that closes the gap left
// at removedPos after a deletion, in a range that previously ran 1..maxPos.
// Every step above the gap shifts down by one, lowest first. No sentinel
// is needed: the gap itself is the free slot.
func PlanGapClose(removedPos, maxPos int) []Assignment {
	var plan []Assignment
	for p := removedPos + 1; p <= maxPos; p++ {
		plan = append(plan, Assignment{From: p, To: p - 1})
	}
	return plan
}
