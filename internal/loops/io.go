package loops

import (
	"fmt"
	"time"

	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/plant"
	"github.com/markusressel/pid2go/internal/util"
)

// Source provides the process variable of a loop.
type Source interface {
	Read() (float64, error)
}

// Sink receives the output of a loop.
type Sink interface {
	Write(value float64) error
}

// Process is a simulated source that evolves over time under the drive it is written.
type Process interface {
	Source
	Sink
	Advance(dt time.Duration)
}

// FileSource reads the process variable from a file containing a single number.
type FileSource struct {
	Path string
	// Factor applied to the raw value, 0 is treated as 1
	Scale float64
}

func (s FileSource) Read() (float64, error) {
	value, err := util.ReadFloatFromFile(s.Path)
	if err != nil {
		return 0, err
	}
	if s.Scale != 0 {
		value *= s.Scale
	}
	return value, nil
}

// FileSink writes the output to a file, replacing its content atomically.
type FileSink struct {
	Path string
}

func (s FileSink) Write(value float64) error {
	return util.WriteFloatToFileAtomic(value, s.Path)
}

// Binding connects a controller to the process it controls.
// It is carried as the context of the controller of a Loop.
type Binding struct {
	LoopId string

	Source Source
	Sinks  []Sink
	// Process is advanced before every read, nil for real inputs
	Process Process
}

func NewBinding(config configuration.LoopConfig) (*Binding, error) {
	binding := &Binding{
		LoopId: config.ID,
	}

	switch {
	case config.Input.Simulated != nil:
		process := plant.NewFirstOrder(*config.Input.Simulated)
		binding.Source = process
		binding.Process = process
		binding.Sinks = append(binding.Sinks, process)
	case config.Input.File != nil:
		binding.Source = FileSource{
			Path:  config.Input.File.Path,
			Scale: config.Input.File.Scale,
		}
	default:
		return nil, fmt.Errorf("loop %s: no input configured", config.ID)
	}

	if config.Output != nil && config.Output.File != nil {
		binding.Sinks = append(binding.Sinks, FileSink{Path: config.Output.File.Path})
	}

	return binding, nil
}
