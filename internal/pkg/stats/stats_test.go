package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 85.0, Mean([]int{70, 80, 90, 100}))
	assert.Equal(t, 75.0, Mean([]int{50, 100}))
	assert.Equal(t, 0.0, Mean(nil))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 85.0, Median([]int{70, 80, 90, 100}))
	assert.Equal(t, 70.0, Median([]int{60, 70, 90}))
	assert.Equal(t, 70.0, Median([]int{90, 60, 70}))
	assert.Equal(t, 42.0, Median([]int{42}))
	assert.Equal(t, 0.0, Median(nil))
}

func TestMedianDoesNotReorderInput(t *testing.T) {
	values := []int{90, 60, 70}
	Median(values)
	assert.Equal(t, []int{90, 60, 70}, values)
}

func TestMode(t *testing.T) {
	grade, ok := Mode([]string{"C", "A", "A", "B"})
	assert.True(t, ok)
	assert.Equal(t, "A", grade)

	// Ties go to the first value seen.
	grade, ok = Mode([]string{"C", "A", "A", "C"})
	assert.True(t, ok)
	assert.Equal(t, "C", grade)

	grade, ok = Mode([]string{"B", "A", "C"})
	assert.True(t, ok)
	assert.Equal(t, "B", grade)

	_, ok = Mode([]string{})
	assert.False(t, ok)
}
