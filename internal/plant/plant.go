// Package plant provides a simulated process the loops can be driven against
// when no real process variable is available.
package plant

import (
	"math"
	"time"

	"github.com/markusressel/pid2go/internal/configuration"
)

// maximum Euler step relative to the time constant, larger steps are split up
const maxStepRatio = 0.1

// FirstOrder is a first order lag process:
//
//	dy/dt = (K*u - y + disturbance) / tau
//
// where u is the drive applied via Write and y the value returned by Read.
type FirstOrder struct {
	Gain         float64
	TimeConstant time.Duration
	Disturbance  float64

	value float64
	drive float64
}

func NewFirstOrder(config configuration.SimulatedInputConfig) *FirstOrder {
	return &FirstOrder{
		Gain:         config.Gain,
		TimeConstant: config.TimeConstant,
		Disturbance:  config.Disturbance,
		value:        config.Initial,
	}
}

// Read returns the current value of the process.
func (p *FirstOrder) Read() (float64, error) {
	return p.value, nil
}

// Write sets the drive applied to the process from now on.
func (p *FirstOrder) Write(u float64) error {
	p.drive = u
	return nil
}

// Drive returns the currently applied drive.
func (p *FirstOrder) Drive() float64 {
	return p.drive
}

// Derivative returns dy/dt for the given value and drive.
func (p *FirstOrder) Derivative(y, u float64) float64 {
	return (p.Gain*u - y + p.Disturbance) / p.TimeConstant.Seconds()
}

// Advance integrates the process over dt with explicit Euler steps.
func (p *FirstOrder) Advance(dt time.Duration) {
	if dt <= 0 || p.TimeConstant <= 0 {
		return
	}
	seconds := dt.Seconds()
	maxStep := p.TimeConstant.Seconds() * maxStepRatio
	steps := int(math.Ceil(seconds / maxStep))
	h := seconds / float64(steps)
	for i := 0; i < steps; i++ {
		p.value += h * p.Derivative(p.value, p.drive)
	}
}

// SteadyState returns the value the process settles at for a constant drive u.
func (p *FirstOrder) SteadyState(u float64) float64 {
	return p.Gain*u + p.Disturbance
}
