package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_Empty(t *testing.T) {
	// GIVEN
	history := NewHistory(3)

	// THEN
	assert.Equal(t, 0, history.Len())
	assert.Empty(t, history.Values())
	_, ok := history.Last()
	assert.False(t, ok)
}

func TestHistory_PartiallyFilled(t *testing.T) {
	// GIVEN
	history := NewHistory(3)

	// WHEN
	history.Append(1)
	history.Append(2)

	// THEN
	assert.Equal(t, 2, history.Len())
	assert.Equal(t, []float64{1, 2}, history.Values())
}

func TestHistory_Wraps(t *testing.T) {
	// GIVEN
	history := NewHistory(3)

	// WHEN
	for _, v := range []float64{1, 2, 3, 4, 5} {
		history.Append(v)
	}

	// THEN
	assert.Equal(t, 3, history.Len())
	assert.Equal(t, 3, history.Size())
	assert.Equal(t, []float64{3, 4, 5}, history.Values())
	last, ok := history.Last()
	assert.True(t, ok)
	assert.Equal(t, 5.0, last)
	assert.Equal(t, 4.0, Avg(history.Values()))
	assert.Equal(t, 5.0, Max(history.Values()))
	assert.Equal(t, 3.0, Min(history.Values()))
}
