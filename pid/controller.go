// Package pid implements a generic proportional-integral-derivative controller.
//
// A Controller is advanced once per control cycle with Update, which takes the
// measured process variable, the setpoint and the time elapsed since the previous
// cycle:
//
//	c, err := pid.NewWithoutContext(1.0, 0.1, 0.01, pid.WithLimit(clamping.Closed(0.0, 255.0)))
//	...
//	out, err := c.Update(measured, target, dt)
//
// The returned output is never clamped, the configured Limit is exposed for the
// caller to apply. A Controller is not safe for concurrent use.
package pid

import (
	"fmt"
	"time"

	"github.com/markusressel/pid2go/clamping"
	"golang.org/x/exp/constraints"
)

// Signal is the scalar type a Controller operates on.
type Signal interface {
	constraints.Float
}

// Controller holds the gains, the output terms and the last observed signals
// of a PID loop, plus an opaque Context value for the caller's bookkeeping.
type Controller[S Signal, C any] struct {
	// Proportional gain
	Kp S
	// Integral gain
	Ki S
	// Derivative gain
	Kd S

	// Context is carried along with the controller and never used by it.
	Context C

	limit clamping.Range[S]

	// last used error e(t)
	err S
	// last used setpoint SP(t)
	target S
	// last used process variable PV(t)
	input S

	p S
	i S
	d S
}

// New creates a Controller with the given gains and context.
// It fails with ErrInvalidArgument if any gain is negative or NaN.
func New[S Signal, C any](kp, ki, kd S, context C, opts ...Option[S]) (*Controller[S, C], error) {
	if !(kp >= 0) {
		return nil, fmt.Errorf("%w: proportional gain must be non-negative, got %v", ErrInvalidArgument, kp)
	}
	if !(ki >= 0) {
		return nil, fmt.Errorf("%w: integral gain must be non-negative, got %v", ErrInvalidArgument, ki)
	}
	if !(kd >= 0) {
		return nil, fmt.Errorf("%w: derivative gain must be non-negative, got %v", ErrInvalidArgument, kd)
	}

	o := options[S]{
		limit: clamping.Widest[S](),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Controller[S, C]{
		Kp:      kp,
		Ki:      ki,
		Kd:      kd,
		Context: context,
		limit:   o.limit,
		p:       o.p,
		i:       o.i,
		d:       o.d,
	}, nil
}

// NewWithoutContext creates a Controller that carries no context value.
func NewWithoutContext[S Signal](kp, ki, kd S, opts ...Option[S]) (*Controller[S, struct{}], error) {
	return New[S, struct{}](kp, ki, kd, struct{}{}, opts...)
}

// Update advances the controller by one time step of length dt and returns the new output.
//
// The integral term compounds its previous value: I = Ki * dt * (e + I_prev).
// The derivative term is computed against the previous input, which is zero
// before the first call.
func (c *Controller[S, C]) Update(input, target, dt S) (S, error) {
	if !(dt > 0) {
		return c.Output(), fmt.Errorf("%w: time delta must be positive, got %v", ErrInvalidArgument, dt)
	}

	c.err = target - input
	c.target = target

	c.p = c.Kp * c.err
	c.i = c.Ki * dt * (c.err + c.i)
	c.d = c.Kd / dt * (input - c.input)

	c.input = input

	return c.Output(), nil
}

// UpdateDuration is Update with a wall clock time delta, converted to seconds.
func (c *Controller[S, C]) UpdateDuration(input, target S, dt time.Duration) (S, error) {
	return c.Update(input, target, S(dt.Seconds()))
}

// Step calls Update with a time delta of a different floating point precision.
func Step[S Signal, C any, T constraints.Float](c *Controller[S, C], input, target S, dt T) (S, error) {
	return c.Update(input, target, S(dt))
}

// Proportional returns the current proportional output term.
func (c *Controller[S, C]) Proportional() S {
	return c.p
}

// Integral returns the current integral output term.
func (c *Controller[S, C]) Integral() S {
	return c.i
}

// Derivative returns the current derivative output term.
func (c *Controller[S, C]) Derivative() S {
	return c.d
}

// Output returns the sum of all output terms, without advancing the controller.
func (c *Controller[S, C]) Output() S {
	return c.p + c.i + c.d
}

// Error returns the error of the last update.
func (c *Controller[S, C]) Error() S {
	return c.err
}

// Target returns the setpoint of the last update.
func (c *Controller[S, C]) Target() S {
	return c.target
}

// Input returns the process variable of the last update.
func (c *Controller[S, C]) Input() S {
	return c.input
}

// Limit returns the range configured for this controller.
func (c *Controller[S, C]) Limit() clamping.Range[S] {
	return c.limit
}

// Reset clears the output terms and the last observed signals.
// Gains, limit and context are kept.
func (c *Controller[S, C]) Reset() {
	var zero S
	c.p, c.i, c.d = zero, zero, zero
	c.err, c.target, c.input = zero, zero, zero
}
