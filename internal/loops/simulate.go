package loops

import (
	"fmt"
	"time"

	"github.com/markusressel/pid2go/internal/configuration"
)

// SimulationResult holds the course of an offline run of a loop.
type SimulationResult struct {
	Id string
	Dt time.Duration
	// Process variable after every step
	Inputs []float64
	// Applied output of every step
	Outputs []float64
	// Setpoint of every step
	SetPoints []float64
	Final     Snapshot
}

// Simulate runs a loop with a simulated input for the given number of steps of length dt.
// Configured outputs are ignored, nothing is written.
func Simulate(config configuration.LoopConfig, steps int, dt time.Duration) (SimulationResult, error) {
	if config.Input.Simulated == nil {
		return SimulationResult{}, fmt.Errorf("loop %s: simulation requires a simulated input", config.ID)
	}
	if steps <= 0 {
		return SimulationResult{}, fmt.Errorf("loop %s: number of steps must be positive, got %d", config.ID, steps)
	}

	config.Output = nil
	loop, err := NewLoop(config, steps)
	if err != nil {
		return SimulationResult{}, err
	}

	result := SimulationResult{
		Id:        config.ID,
		Dt:        dt,
		Inputs:    make([]float64, 0, steps),
		Outputs:   make([]float64, 0, steps),
		SetPoints: make([]float64, 0, steps),
	}
	for i := 0; i < steps; i++ {
		output, err := loop.Cycle(dt)
		if err != nil {
			return result, err
		}
		input, err := loop.Input()
		if err != nil {
			return result, err
		}
		result.Inputs = append(result.Inputs, input)
		result.Outputs = append(result.Outputs, output)
		result.SetPoints = append(result.SetPoints, loop.GetSetPoint())
	}
	result.Final = loop.Snapshot()

	return result, nil
}
