package configuration

import (
	"time"

	"github.com/markusressel/pid2go/clamping"
)

type LoopConfig struct {
	ID string `json:"id"`
	// Target value of the process variable
	SetPoint float64 `json:"setPoint"`

	Gains GainsConfig `json:"gains"`
	// Initial values of the output terms
	Seeds *TermsConfig `json:"seeds,omitempty"`

	// Range of valid output values, defaults to the widest range
	Limit *LimitConfig `json:"limit,omitempty"`
	// Whether the limit is applied to the value written to the output.
	// Defaults to true when a limit is configured.
	ClampOutput DefaultTrueBool `json:"clampOutput"`

	// Interval between two updates, defaults to controllerTickRate
	TickRate time.Duration `json:"tickRate,omitempty"`

	Input  InputConfig   `json:"input"`
	Output *OutputConfig `json:"output,omitempty"`
}

type GainsConfig struct {
	P float64 `json:"p"`
	I float64 `json:"i"`
	D float64 `json:"d"`
}

type TermsConfig struct {
	P float64 `json:"p"`
	I float64 `json:"i"`
	D float64 `json:"d"`
}

// LimitConfig can be written as a map or in interval notation, e.g. "[0, 255]" or "[0, 1)".
type LimitConfig struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	HalfOpen bool    `json:"halfOpen"`
}

func (l LimitConfig) Range() clamping.Range[float64] {
	if l.HalfOpen {
		return clamping.HalfOpen(l.Min, l.Max)
	}
	return clamping.Closed(l.Min, l.Max)
}

// LimitRange returns the configured limit, or the widest range if there is none.
func (c LoopConfig) LimitRange() clamping.Range[float64] {
	if c.Limit == nil {
		return clamping.Widest[float64]()
	}
	return c.Limit.Range()
}

// ShouldClampOutput reports whether the output of the loop is limited before it is applied.
func (c LoopConfig) ShouldClampOutput() bool {
	return c.Limit != nil && c.ClampOutput.Get()
}

// EffectiveTickRate returns the tick rate of this loop, falling back to the given default.
func (c LoopConfig) EffectiveTickRate(defaultRate time.Duration) time.Duration {
	if c.TickRate > 0 {
		return c.TickRate
	}
	return defaultRate
}

type InputConfig struct {
	Simulated *SimulatedInputConfig `json:"simulated,omitempty"`
	File      *FileInputConfig      `json:"file,omitempty"`
}

// SimulatedInputConfig describes a first order process driven by the loop output.
type SimulatedInputConfig struct {
	// Steady state gain of the process
	Gain float64 `json:"gain"`
	// Time it takes the process to reach ~63% of a step change
	TimeConstant time.Duration `json:"timeConstant"`
	// Value of the process variable at startup
	Initial float64 `json:"initial"`
	// Constant value added to the process, e.g. ambient heat loss
	Disturbance float64 `json:"disturbance"`
}

type FileInputConfig struct {
	Path string `json:"path"`
	// Factor applied to the raw value read from the file, defaults to 1
	Scale float64 `json:"scale,omitempty"`
}

type OutputConfig struct {
	File *FileOutputConfig `json:"file,omitempty"`
}

type FileOutputConfig struct {
	Path string `json:"path"`
}
