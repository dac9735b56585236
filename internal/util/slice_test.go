package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMax(t *testing.T) {
	// GIVEN
	values := []float64{3, -2, 7, 0}

	// THEN
	assert.Equal(t, -2.0, Min(values))
	assert.Equal(t, 7.0, Max(values))
	assert.Equal(t, 0.0, Min(nil))
	assert.Equal(t, 0.0, Max(nil))
}

func TestSortedKeys(t *testing.T) {
	// GIVEN
	input := map[string]int{
		"oven":   1,
		"fan":    2,
		"heater": 3,
	}

	// WHEN
	result := SortedKeys(input)

	// THEN
	assert.Equal(t, []string{"fan", "heater", "oven"}, result)
}
