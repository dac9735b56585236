// Package clamping provides a one-dimensional interval over an ordered scalar type,
// used to bound controller outputs and parameters.
package clamping

import (
	"fmt"
	"math"
	"reflect"

	"golang.org/x/exp/constraints"
)

// Bound is satisfied by every scalar type a Range can be built over.
type Bound interface {
	constraints.Integer | constraints.Float
}

// Kind distinguishes the two range variants.
type Kind int

const (
	// KindClosed includes both bounds: [lower, upper]
	KindClosed Kind = iota
	// KindHalfOpen includes the lower and excludes the upper bound: [lower, upper)
	KindHalfOpen
)

func (k Kind) String() string {
	switch k {
	case KindClosed:
		return "closed"
	case KindHalfOpen:
		return "halfOpen"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Range is an interval over B. The zero value is the closed range [0, 0].
//
// Bounds are not validated: a range whose lower bound exceeds its upper bound
// can be built, Contains then reports false for every value and Clamp returns
// the lower bound for values below it.
type Range[B Bound] struct {
	kind  Kind
	lower B
	upper B
}

// Closed returns the range [lower, upper].
func Closed[B Bound](lower, upper B) Range[B] {
	return Range[B]{kind: KindClosed, lower: lower, upper: upper}
}

// HalfOpen returns the range [lower, upTo).
func HalfOpen[B Bound](lower, upTo B) Range[B] {
	return Range[B]{kind: KindHalfOpen, lower: lower, upper: upTo}
}

// Widest returns the closed range spanning LowestRepresentable to GreatestRepresentable.
func Widest[B Bound]() Range[B] {
	return Closed(LowestRepresentable[B](), GreatestRepresentable[B]())
}

// Kind reports the variant this range was built as.
func (r Range[B]) Kind() Kind {
	return r.kind
}

// IsHalfOpen reports whether the range was built with HalfOpen.
func (r Range[B]) IsHalfOpen() bool {
	return r.kind == KindHalfOpen
}

// LowerBound returns the stored lower bound.
func (r Range[B]) LowerBound() B {
	return r.lower
}

// UpperBound returns the stored upper bound, regardless of the variant.
func (r Range[B]) UpperBound() B {
	return r.upper
}

// Contains reports whether lower <= value <= upper.
//
// The upper bound is compared inclusively for half-open ranges as well.
func (r Range[B]) Contains(value B) bool {
	if value < r.lower {
		return false
	}
	if value > r.upper {
		return false
	}
	return true
}

// Clamp returns value limited to the bounds of the range.
func (r Range[B]) Clamp(value B) B {
	if value < r.lower {
		return r.lower
	}
	if value > r.upper {
		return r.upper
	}
	return value
}

// String formats the range in interval notation, e.g. "[0, 255]" or "[0, 1)".
func (r Range[B]) String() string {
	closing := "]"
	if r.kind == KindHalfOpen {
		closing = ")"
	}
	return "[" + formatBound(r.lower) + ", " + formatBound(r.upper) + closing
}

// LowestRepresentable returns the most negative finite value of a floating point type.
// For integer types it returns the type's maximum value, same as GreatestRepresentable.
func LowestRepresentable[B Bound]() B {
	var zero B
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Float32:
		v := -math.MaxFloat32
		return B(v)
	case reflect.Float64:
		v := -math.MaxFloat64
		return B(v)
	default:
		return maxInteger[B]()
	}
}

// GreatestRepresentable returns the largest finite value of B.
func GreatestRepresentable[B Bound]() B {
	var zero B
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Float32:
		v := math.MaxFloat32
		return B(v)
	case reflect.Float64:
		v := math.MaxFloat64
		return B(v)
	default:
		return maxInteger[B]()
	}
}

// NextDown returns the next representable value below v.
// For integers this is v-1, except for LowestRepresentable which is returned unchanged.
func NextDown[B Bound](v B) B {
	switch reflect.TypeOf(v).Kind() {
	case reflect.Float32:
		next := math.Nextafter32(float32(v), float32(math.Inf(-1)))
		return B(next)
	case reflect.Float64:
		next := math.Nextafter(float64(v), math.Inf(-1))
		return B(next)
	default:
		if v == LowestRepresentable[B]() {
			return v
		}
		return v - 1
	}
}

func maxInteger[B Bound]() B {
	var zero B
	t := reflect.TypeOf(zero)
	bits := t.Bits()
	switch t.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v := uint64(math.MaxUint64) >> (64 - bits)
		return B(v)
	default:
		v := int64(math.MaxInt64) >> (64 - bits)
		return B(v)
	}
}
