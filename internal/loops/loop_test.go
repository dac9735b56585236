package loops

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/plant"
	"github.com/markusressel/pid2go/pid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSource struct {
	Value float64
	Err   error
}

func (s *MockSource) Read() (float64, error) {
	return s.Value, s.Err
}

type MockSink struct {
	Values []float64
	Err    error
}

func (s *MockSink) Write(value float64) error {
	if s.Err != nil {
		return s.Err
	}
	s.Values = append(s.Values, value)
	return nil
}

func createLoopConfig(id string, p, i, d float64) configuration.LoopConfig {
	return configuration.LoopConfig{
		ID:       id,
		SetPoint: 10,
		Gains: configuration.GainsConfig{
			P: p,
			I: i,
			D: d,
		},
		Input: configuration.InputConfig{
			File: &configuration.FileInputConfig{
				Path: "/does/not/exist",
			},
		},
	}
}

// createLoop creates a loop whose binding is replaced with the given mocks
func createLoop(t *testing.T, config configuration.LoopConfig, source Source, sinks ...Sink) *Loop {
	t.Helper()
	loop, err := NewLoop(config, 5)
	require.NoError(t, err)
	loop.controller.Context.Source = source
	loop.controller.Context.Sinks = sinks
	return loop
}

func TestNewLoop_SimulatedInput(t *testing.T) {
	// GIVEN
	config := createLoopConfig("oven", 1, 0, 0)
	config.Input = configuration.InputConfig{
		Simulated: &configuration.SimulatedInputConfig{
			Gain:         1,
			TimeConstant: time.Second,
			Initial:      20,
		},
	}
	config.Output = &configuration.OutputConfig{
		File: &configuration.FileOutputConfig{Path: "/tmp/heater"},
	}

	// WHEN
	loop, err := NewLoop(config, 10)

	// THEN
	require.NoError(t, err)
	binding := loop.controller.Context
	assert.Equal(t, "oven", binding.LoopId)
	assert.IsType(t, &plant.FirstOrder{}, binding.Source)
	assert.NotNil(t, binding.Process)
	require.Len(t, binding.Sinks, 2)
	assert.Equal(t, FileSink{Path: "/tmp/heater"}, binding.Sinks[1])

	input, err := loop.Input()
	assert.NoError(t, err)
	assert.Equal(t, 20.0, input)
}

func TestNewLoop_FileInput(t *testing.T) {
	// GIVEN
	config := createLoopConfig("oven", 1, 0, 0)
	config.Input.File.Scale = 0.001

	// WHEN
	loop, err := NewLoop(config, 10)

	// THEN
	require.NoError(t, err)
	binding := loop.controller.Context
	assert.Equal(t, FileSource{Path: "/does/not/exist", Scale: 0.001}, binding.Source)
	assert.Nil(t, binding.Process)
	assert.Empty(t, binding.Sinks)
}

func TestNewLoop_NegativeGain(t *testing.T) {
	// GIVEN
	config := createLoopConfig("oven", 1, -1, 0)

	// WHEN
	loop, err := NewLoop(config, 10)

	// THEN
	assert.Nil(t, loop)
	assert.ErrorIs(t, err, pid.ErrInvalidArgument)
	assert.ErrorContains(t, err, "loop oven")
}

func TestNewLoop_NoInput(t *testing.T) {
	// GIVEN
	config := createLoopConfig("oven", 1, 0, 0)
	config.Input = configuration.InputConfig{}

	// WHEN
	_, err := NewLoop(config, 10)

	// THEN
	assert.EqualError(t, err, "loop oven: no input configured")
}

func TestNewLoop_Seeds(t *testing.T) {
	// GIVEN
	config := createLoopConfig("oven", 1, 0, 0)
	config.Seeds = &configuration.TermsConfig{P: 1, I: 2, D: 3}

	// WHEN
	loop, err := NewLoop(config, 10)

	// THEN
	require.NoError(t, err)
	snapshot := loop.Snapshot()
	assert.Equal(t, 2.0, snapshot.State.I)
	assert.Equal(t, 6.0, snapshot.Output)
	assert.Equal(t, 6.0, snapshot.Applied)
}

func TestLoop_Cycle(t *testing.T) {
	// GIVEN
	source := &MockSource{Value: 4}
	sink := &MockSink{}
	loop := createLoop(t, createLoopConfig("oven", 2, 0, 0), source, sink)

	// WHEN
	output, err := loop.Cycle(time.Second)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 12.0, output)
	assert.Equal(t, []float64{12}, sink.Values)

	snapshot := loop.Snapshot()
	assert.Equal(t, uint64(1), snapshot.Updates)
	assert.Equal(t, uint64(0), snapshot.Saturations)
	assert.Equal(t, 6.0, snapshot.State.Error)
	assert.Equal(t, 4.0, snapshot.State.Input)
	assert.Equal(t, 10.0, snapshot.State.Target)
	assert.False(t, snapshot.LastUpdate.IsZero())
	assert.Equal(t, []float64{12}, loop.History())
}

func TestLoop_Cycle_ClampsOutput(t *testing.T) {
	// GIVEN
	config := createLoopConfig("oven", 2, 0, 0)
	config.Limit = &configuration.LimitConfig{Min: 0, Max: 10}

	source := &MockSource{Value: 4}
	sink := &MockSink{}
	loop := createLoop(t, config, source, sink)

	// WHEN
	output, err := loop.Cycle(time.Second)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 10.0, output)
	assert.Equal(t, []float64{10}, sink.Values)

	snapshot := loop.Snapshot()
	assert.Equal(t, 12.0, snapshot.Output)
	assert.Equal(t, 10.0, snapshot.Applied)
	assert.Equal(t, uint64(1), snapshot.Saturations)
	assert.Equal(t, "[0, 10]", snapshot.Limit)
	assert.True(t, snapshot.ClampOutput)
}

func TestLoop_Cycle_ClampingDisabled(t *testing.T) {
	// GIVEN
	config := createLoopConfig("oven", 2, 0, 0)
	config.Limit = &configuration.LimitConfig{Min: 0, Max: 10}
	config.ClampOutput = configuration.DefaultTrueBool{
		Optional: configuration.Optional[bool]{Value: false, Present: true},
	}

	source := &MockSource{Value: 4}
	loop := createLoop(t, config, source)

	// WHEN
	output, err := loop.Cycle(time.Second)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 12.0, output)
	assert.Equal(t, uint64(0), loop.Snapshot().Saturations)
}

func TestLoop_Cycle_InputError(t *testing.T) {
	// GIVEN
	source := &MockSource{Err: errors.New("sensor unplugged")}
	sink := &MockSink{}
	loop := createLoop(t, createLoopConfig("oven", 2, 0, 0), source, sink)

	// WHEN
	_, err := loop.Cycle(time.Second)

	// THEN
	assert.EqualError(t, err, "loop oven: unable to read input: sensor unplugged")
	assert.Empty(t, sink.Values)
	assert.Equal(t, uint64(0), loop.Snapshot().Updates)
}

func TestLoop_Cycle_OutputError(t *testing.T) {
	// GIVEN
	source := &MockSource{Value: 4}
	sink := &MockSink{Err: os.ErrPermission}
	loop := createLoop(t, createLoopConfig("oven", 2, 0, 0), source, sink)

	// WHEN
	output, err := loop.Cycle(time.Second)

	// THEN
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, 12.0, output)
	assert.Equal(t, uint64(1), loop.Snapshot().Updates)
}

func TestLoop_Cycle_InvalidTimeDelta(t *testing.T) {
	// GIVEN
	source := &MockSource{Value: 4}
	sink := &MockSink{}
	loop := createLoop(t, createLoopConfig("oven", 2, 0, 0), source, sink)

	// WHEN
	_, err := loop.Cycle(0)

	// THEN
	assert.ErrorIs(t, err, pid.ErrInvalidArgument)
	assert.Empty(t, sink.Values)
	assert.Equal(t, uint64(0), loop.Snapshot().Updates)
}

func TestLoop_SetSetPoint(t *testing.T) {
	// GIVEN
	source := &MockSource{Value: 4}
	loop := createLoop(t, createLoopConfig("oven", 1, 0, 0), source)

	// WHEN
	loop.SetSetPoint(20)
	output, err := loop.Cycle(time.Second)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 20.0, loop.GetSetPoint())
	assert.Equal(t, 16.0, output)
}

func TestLoop_History(t *testing.T) {
	// GIVEN
	source := &MockSource{}
	loop := createLoop(t, createLoopConfig("oven", 1, 0, 0), source)

	// WHEN
	for _, input := range []float64{9, 8, 7, 6, 5, 4, 3} {
		source.Value = input
		_, err := loop.Cycle(time.Second)
		require.NoError(t, err)
	}

	// THEN
	assert.Equal(t, []float64{3, 4, 5, 6, 7}, loop.History())
	// errors 1..7 equal the outputs with Kp = 1, averaged over the last 5 updates at most
	assert.InDelta(t, 4.28, loop.Snapshot().AvgAbsError, 1e-9)
}

func TestLoop_Reset(t *testing.T) {
	// GIVEN
	source := &MockSource{Value: 4}
	loop := createLoop(t, createLoopConfig("oven", 1, 1, 1), source)
	_, err := loop.Cycle(time.Second)
	require.NoError(t, err)

	// WHEN
	loop.Reset()

	// THEN
	snapshot := loop.Snapshot()
	assert.Equal(t, pid.State[float64]{}, snapshot.State)
	assert.Equal(t, 0.0, snapshot.Applied)
	assert.Equal(t, uint64(1), snapshot.Updates)
	assert.Equal(t, 10.0, snapshot.SetPoint)
	assert.Empty(t, loop.History())
}

func TestLoop_Restore(t *testing.T) {
	// GIVEN
	source := &MockSource{Value: 4}
	loop := createLoop(t, createLoopConfig("oven", 1, 1, 1), source)
	state := pid.State[float64]{P: 1, I: 2, D: 3, Error: 1, Target: 10, Input: 9}

	// WHEN
	loop.Restore(state)

	// THEN
	assert.Equal(t, state, loop.ControllerState())
	assert.Equal(t, 6.0, loop.Snapshot().Output)
}

func TestLoop_ConvergesOnSimulatedProcess(t *testing.T) {
	// GIVEN
	config := createLoopConfig("oven", 4, 0, 0)
	config.SetPoint = 50
	config.Input = configuration.InputConfig{
		Simulated: &configuration.SimulatedInputConfig{
			Gain:         1,
			TimeConstant: time.Second,
			Initial:      20,
		},
	}
	loop, err := NewLoop(config, 10)
	require.NoError(t, err)

	// WHEN
	for i := 0; i < 200; i++ {
		_, err := loop.Cycle(50 * time.Millisecond)
		require.NoError(t, err)
	}

	// THEN
	// proportional only control settles at Kp*K/(1+Kp*K) of the setpoint
	input, err := loop.Input()
	require.NoError(t, err)
	assert.InDelta(t, 40.0, input, 0.01)
}

func TestFileSourceAndSink(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	path := filepath.Join(dir, "value")
	sink := FileSink{Path: path}
	source := FileSource{Path: path, Scale: 0.5}

	// WHEN
	err := sink.Write(42.5)
	require.NoError(t, err)
	value, err := source.Read()

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 21.25, value)

	// WHEN
	value, err = FileSource{Path: path}.Read()

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 42.5, value)
}

func TestFileSource_Missing(t *testing.T) {
	// GIVEN
	source := FileSource{Path: filepath.Join(t.TempDir(), "missing")}

	// WHEN
	_, err := source.Read()

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
}
