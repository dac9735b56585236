package pid

import "github.com/markusressel/pid2go/clamping"

type options[S Signal] struct {
	p, i, d S
	limit   clamping.Range[S]
}

// Option configures optional values of a Controller at construction.
type Option[S Signal] func(o *options[S])

// WithProportional seeds the proportional output term.
func WithProportional[S Signal](p S) Option[S] {
	return func(o *options[S]) {
		o.p = p
	}
}

// WithIntegral seeds the integral output term.
func WithIntegral[S Signal](i S) Option[S] {
	return func(o *options[S]) {
		o.i = i
	}
}

// WithDerivative seeds the derivative output term.
func WithDerivative[S Signal](d S) Option[S] {
	return func(o *options[S]) {
		o.d = d
	}
}

// WithLimit sets the range exposed by Controller.Limit. Defaults to clamping.Widest.
func WithLimit[S Signal](limit clamping.Range[S]) Option[S] {
	return func(o *options[S]) {
		o.limit = limit
	}
}
