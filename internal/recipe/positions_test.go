package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPositionSet_SortsInput(t *testing.T) {
	ps := NewPositionSet([]int{3, 1, 2})
	assert.Equal(t, PositionSet{1, 2, 3}, ps)
}

func TestPositionSet_Contains(t *testing.T) {
	ps := NewPositionSet([]int{1, 2, 3, 4})

	assert.True(t, ps.Contains(1))
	assert.True(t, ps.Contains(4))
	assert.False(t, ps.Contains(0))
	assert.False(t, ps.Contains(5))
	assert.False(t, PositionSet{}.Contains(1))
}

func TestPositionSet_Dense(t *testing.T) {
	tests := []struct {
		name      string
		positions []int
		want      bool
	}{
		{"empty", nil, true},
		{"single", []int{1}, true},
		{"contiguous", []int{1, 2, 3, 4}, true},
		{"gap", []int{1, 2, 4}, false},
		{"duplicate", []int{1, 2, 2, 3}, false},
		{"zero based", []int{0, 1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPositionSet(tt.positions).Dense())
		})
	}
}

func TestPositionSet_Next(t *testing.T) {
	assert.Equal(t, 1, PositionSet{}.Next())
	assert.Equal(t, 4, NewPositionSet([]int{1, 2, 3}).Next())
}

func TestEdge_Reversed(t *testing.T) {
	assert.False(t, Edge{Output: 1, Input: 2}.Reversed())
	assert.True(t, Edge{Output: 2, Input: 2}.Reversed(), "self reference")
	assert.True(t, Edge{Output: 3, Input: 1}.Reversed())
}
