package clamping

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text     string
		expected Range[float64]
	}{
		{"[0, 255]", Closed(0.0, 255.0)},
		{"[0,1)", HalfOpen(0.0, 1.0)},
		{"  [-2.5 , 2.5]  ", Closed(-2.5, 2.5)},
		{"[10, 0]", Closed(10.0, 0.0)},
	}

	for _, tt := range tests {
		// WHEN
		result, err := Parse[float64](tt.text)

		// THEN
		assert.NoError(t, err, tt.text)
		assert.Equal(t, tt.expected, result, tt.text)
	}
}

func TestParse_Integer(t *testing.T) {
	// WHEN
	r, err := Parse[uint8]("[0, 255)")

	// THEN
	require.NoError(t, err)
	assert.Equal(t, HalfOpen(uint8(0), uint8(255)), r)
}

func TestParse_Invalid(t *testing.T) {
	for _, text := range []string{
		"",
		"0, 1",
		"(0, 1]",
		"[0, 1",
		"[0]",
		"[0, 1, 2]",
		"[a, 1]",
		"[0, b)",
	} {
		// WHEN
		_, err := Parse[float64](text)

		// THEN
		assert.ErrorIs(t, err, ErrInvalidNotation, text)
	}
}

func TestParse_OutOfRangeInteger(t *testing.T) {
	// WHEN
	_, err := Parse[uint8]("[0, 256]")

	// THEN
	assert.ErrorIs(t, err, ErrInvalidNotation)
}

func TestRange_TextRoundTrip(t *testing.T) {
	// GIVEN
	type wrapper struct {
		Limit Range[float64] `json:"limit"`
	}
	w := wrapper{Limit: HalfOpen(-1.0, 1.0)}

	// WHEN
	data, err := json.Marshal(w)
	require.NoError(t, err)

	var decoded wrapper
	err = json.Unmarshal(data, &decoded)

	// THEN
	require.NoError(t, err)
	assert.JSONEq(t, `{"limit": "[-1, 1)"}`, string(data))
	assert.Equal(t, w, decoded)
}
