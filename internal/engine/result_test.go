package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepList(t *testing.T) {
	tests := []struct {
		name      string
		positions []int
		want      string
	}{
		{"empty", nil, ""},
		{"one", []int{2}, "Step 2"},
		{"two", []int{2, 3}, "Steps 2 and 3"},
		{"three oxford comma", []int{2, 3, 4}, "Steps 2, 3, and 4"},
		{"four", []int{2, 3, 4, 7}, "Steps 2, 3, 4, and 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StepList(tt.positions))
		})
	}
}

func TestInvalidIncoming_Message(t *testing.T) {
	res := invalidIncoming(1, 4, []int{2, 3})

	assert.False(t, res.Valid)
	assert.Equal(t, []int{2, 3}, res.Blocking)
	assert.Equal(t, "Cannot move Step 1 to position 4 because Steps 2 and 3 use its output", res.Message)
}

func TestInvalidIncoming_SingularVerb(t *testing.T) {
	res := invalidIncoming(1, 2, []int{2})
	assert.Equal(t, "Cannot move Step 1 to position 2 because Step 2 uses its output", res.Message)
}

func TestInvalidOutgoing_Message(t *testing.T) {
	res := invalidOutgoing(3, 1, []int{2})
	assert.Equal(t, "Cannot move Step 3 to position 1 because it uses output from Step 2", res.Message)
}

func TestInvalidDelete_Message(t *testing.T) {
	assert.Equal(t,
		"Cannot delete Step 2 because Steps 3, 4, and 5 use its output",
		invalidDelete(2, []int{3, 4, 5}).Message)
	assert.Equal(t,
		"Cannot delete Step 2 because Step 4 uses its output",
		invalidDelete(2, []int{4}).Message)
}
