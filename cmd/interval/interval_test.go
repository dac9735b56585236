package interval

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/markusressel/pid2go/clamping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout returns everything written to stdout while f runs
func captureStdout(t *testing.T, f func() error) (string, error) {
	t.Helper()
	original := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := f()

	_ = w.Close()
	os.Stdout = original
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String(), runErr
}

func TestClampCommand(t *testing.T) {
	// GIVEN
	rangeNotation = "[0, 255]"

	// WHEN
	out, err := captureStdout(t, func() error {
		return clampCmd.RunE(clampCmd, []string{"-20", "128", "300.5"})
	})

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "0\n128\n255\n", out)
}

func TestContainsCommand_HalfOpen(t *testing.T) {
	// GIVEN
	rangeNotation = "[0, 1)"

	// WHEN
	out, err := captureStdout(t, func() error {
		return containsCmd.RunE(containsCmd, []string{"-0.5", "0.5", "1", "1.5"})
	})

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "false\ntrue\ntrue\nfalse\n", out)
}

func TestCommands_InvalidInput(t *testing.T) {
	// GIVEN
	rangeNotation = "(0, 1]"

	// WHEN
	_, err := captureStdout(t, func() error {
		return clampCmd.RunE(clampCmd, []string{"1"})
	})

	// THEN
	assert.ErrorIs(t, err, clamping.ErrInvalidNotation)

	// GIVEN
	rangeNotation = "[0, 1]"

	// WHEN
	_, err = captureStdout(t, func() error {
		return containsCmd.RunE(containsCmd, []string{"one"})
	})

	// THEN
	assert.EqualError(t, err, "not a number: one")
}

func executeRange(t *testing.T, args ...string) (string, error) {
	t.Helper()
	Command.SetArgs(args)
	Command.SetOut(io.Discard)
	Command.SetErr(io.Discard)
	t.Cleanup(func() {
		Command.SetArgs(nil)
		Command.SetOut(nil)
		Command.SetErr(nil)
	})
	return captureStdout(t, Command.Execute)
}

func TestClampCommand_NegativeValuesAfterDash(t *testing.T) {
	// WHEN
	out, err := executeRange(t, "clamp", "-r", "[-10, 10]", "--", "-25", "-5", "12")

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "-10\n-5\n10\n", out)
}

func TestClampCommand_NegativeValueWithoutDash(t *testing.T) {
	// WHEN
	_, err := executeRange(t, "clamp", "-r", "[-10, 10]", "-5")

	// THEN
	assert.ErrorContains(t, err, `pass negative values after "--"`)
}
