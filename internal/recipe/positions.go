package recipe

import "sort"

// PositionSet is the set of step positions that exist for one recipe,
// sorted ascending. It is a snapshot value: the engine reads one at the
// start of an operation and reasons against it without re-reading.
type PositionSet []int

// NewPositionSet copies and sorts positions into a PositionSet.
func NewPositionSet(positions []int) PositionSet {
	ps := make(PositionSet, len(positions))
	copy(ps, positions)
	sort.Ints(ps)
	return ps
}

// Contains reports whether pos exists in the set.
func (ps PositionSet) Contains(pos int) bool {
	i := sort.SearchInts(ps, pos)
	return i < len(ps) && ps[i] == pos
}

// Dense reports whether the set is exactly 1..N with no gaps or
// duplicates. An empty set is dense (N = 0).
func (ps PositionSet) Dense() bool {
	for i, p := range ps {
		if p != i+1 {
			return false
		}
	}
	return true
}

// Max returns the largest position, or 0 for an empty set.
func (ps PositionSet) Max() int {
	if len(ps) == 0 {
		return 0
	}
	return ps[len(ps)-1]
}

// Next returns the position an appended step would take (Max + 1).
func (ps PositionSet) Next() int {
	return ps.Max() + 1
}
