package pid

// State is the mutable part of a Controller: its output terms and last observed signals.
type State[S Signal] struct {
	P S `json:"p"`
	I S `json:"i"`
	D S `json:"d"`

	Error  S `json:"error"`
	Target S `json:"target"`
	Input  S `json:"input"`
}

// Output returns the sum of the output terms of this state.
func (s State[S]) Output() S {
	return s.P + s.I + s.D
}

// Snapshot returns a copy of the current state.
func (c *Controller[S, C]) Snapshot() State[S] {
	return State[S]{
		P:      c.p,
		I:      c.i,
		D:      c.d,
		Error:  c.err,
		Target: c.target,
		Input:  c.input,
	}
}

// Restore replaces the current state, e.g. with one loaded from persistence.
// The next Update continues from the restored integral term and input.
func (c *Controller[S, C]) Restore(state State[S]) {
	c.p = state.P
	c.i = state.I
	c.d = state.D
	c.err = state.Error
	c.target = state.Target
	c.input = state.Input
}
