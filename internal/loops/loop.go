package loops

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/util"
	"github.com/markusressel/pid2go/pid"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// LoopMap holds all running loops by id.
var LoopMap = cmap.New[*Loop]()

// Loop drives a single process towards its setpoint with a PID controller.
// All methods are safe for concurrent use.
type Loop struct {
	mu sync.Mutex

	config     configuration.LoopConfig
	controller *pid.Controller[float64, *Binding]

	setPoint    float64
	clampOutput bool

	// last value written to the sinks
	applied     float64
	history     *util.History
	updates     uint64
	saturations uint64
	lastUpdate  time.Time
	// moving average of the absolute error over the history size
	avgAbsError float64
}

// Snapshot is a point in time copy of the observable values of a Loop.
type Snapshot struct {
	Id          string                    `json:"id"`
	SetPoint    float64                   `json:"setPoint"`
	Gains       configuration.GainsConfig `json:"gains"`
	Limit       string                    `json:"limit"`
	ClampOutput bool                      `json:"clampOutput"`

	State pid.State[float64] `json:"state"`
	// Unclamped controller output
	Output float64 `json:"output"`
	// Output after clamping, as written to the sinks
	Applied float64 `json:"applied"`

	AvgAbsError float64   `json:"avgAbsError"`
	Updates     uint64    `json:"updates"`
	Saturations uint64    `json:"saturations"`
	LastUpdate  time.Time `json:"lastUpdate"`
}

func NewLoop(config configuration.LoopConfig, historySize int) (*Loop, error) {
	binding, err := NewBinding(config)
	if err != nil {
		return nil, err
	}

	opts := []pid.Option[float64]{
		pid.WithLimit(config.LimitRange()),
	}
	if seeds := config.Seeds; seeds != nil {
		opts = append(opts,
			pid.WithProportional(seeds.P),
			pid.WithIntegral(seeds.I),
			pid.WithDerivative(seeds.D),
		)
	}

	gains := config.Gains
	controller, err := pid.New(gains.P, gains.I, gains.D, binding, opts...)
	if err != nil {
		return nil, fmt.Errorf("loop %s: %w", config.ID, err)
	}

	if historySize <= 0 {
		historySize = 1
	}

	return &Loop{
		config:      config,
		controller:  controller,
		setPoint:    config.SetPoint,
		clampOutput: config.ShouldClampOutput(),
		applied:     controller.Output(),
		history:     util.NewHistory(historySize),
	}, nil
}

func (l *Loop) GetId() string {
	return l.config.ID
}

func (l *Loop) GetConfig() configuration.LoopConfig {
	return l.config
}

func (l *Loop) GetSetPoint() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.setPoint
}

// SetSetPoint changes the target value used from the next cycle on.
func (l *Loop) SetSetPoint(value float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setPoint = value
}

// Cycle advances the loop by dt: the process variable is read, the controller
// updated and its (optionally clamped) output written to all sinks.
func (l *Loop) Cycle(dt time.Duration) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	binding := l.controller.Context
	if binding.Process != nil {
		binding.Process.Advance(dt)
	}

	input, err := binding.Source.Read()
	if err != nil {
		return l.applied, fmt.Errorf("loop %s: unable to read input: %w", binding.LoopId, err)
	}

	output, err := l.controller.UpdateDuration(input, l.setPoint, dt)
	if err != nil {
		return l.applied, fmt.Errorf("loop %s: %w", binding.LoopId, err)
	}

	applied := output
	if l.clampOutput {
		applied = l.controller.Limit().Clamp(output)
		if applied != output {
			l.saturations++
		}
	}

	l.applied = applied
	l.updates++
	l.lastUpdate = time.Now()
	l.history.Append(applied)

	n := l.history.Len()
	l.avgAbsError = util.UpdateSimpleMovingAvg(l.avgAbsError, n, math.Abs(l.controller.Error()))

	for _, sink := range binding.Sinks {
		if err := sink.Write(applied); err != nil {
			return applied, fmt.Errorf("loop %s: unable to write output: %w", binding.LoopId, err)
		}
	}

	return applied, nil
}

func (l *Loop) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Snapshot{
		Id:          l.config.ID,
		SetPoint:    l.setPoint,
		Gains:       l.config.Gains,
		Limit:       l.controller.Limit().String(),
		ClampOutput: l.clampOutput,
		State:       l.controller.Snapshot(),
		Output:      l.controller.Output(),
		Applied:     l.applied,
		AvgAbsError: l.avgAbsError,
		Updates:     l.updates,
		Saturations: l.saturations,
		LastUpdate:  l.lastUpdate,
	}
}

// ControllerState returns the state of the controller, as it is persisted.
func (l *Loop) ControllerState() pid.State[float64] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.controller.Snapshot()
}

// Restore continues the loop from a previously saved controller state.
func (l *Loop) Restore(state pid.State[float64]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.controller.Restore(state)
}

// History returns the last applied outputs, oldest first.
func (l *Loop) History() []float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.history.Values()
}

// Reset clears the controller state and the output history.
// Gains, setpoint and counters are kept.
func (l *Loop) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.controller.Reset()
	l.applied = 0
	l.avgAbsError = 0
	l.history = util.NewHistory(l.history.Size())
}

// Input returns the current process variable without advancing the loop.
func (l *Loop) Input() (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return pid.Project(l.controller, func(b *Binding) Source { return b.Source }).Read()
}
