package clamping

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ErrInvalidNotation is returned when a range string is not valid interval notation.
var ErrInvalidNotation = errors.New("invalid range notation")

// Parse reads a range in interval notation.
// "[lo, hi]" yields a closed range, "[lo, hi)" a half-open one.
func Parse[B Bound](s string) (Range[B], error) {
	text := strings.TrimSpace(s)
	if len(text) < 2 || !strings.HasPrefix(text, "[") {
		return Range[B]{}, fmt.Errorf("%w: %q must start with '['", ErrInvalidNotation, s)
	}

	var kind Kind
	switch text[len(text)-1] {
	case ']':
		kind = KindClosed
	case ')':
		kind = KindHalfOpen
	default:
		return Range[B]{}, fmt.Errorf("%w: %q must end with ']' or ')'", ErrInvalidNotation, s)
	}

	parts := strings.Split(text[1:len(text)-1], ",")
	if len(parts) != 2 {
		return Range[B]{}, fmt.Errorf("%w: %q must contain exactly two bounds", ErrInvalidNotation, s)
	}

	lower, err := parseBound[B](parts[0])
	if err != nil {
		return Range[B]{}, fmt.Errorf("%w: lower bound of %q: %v", ErrInvalidNotation, s, err)
	}
	upper, err := parseBound[B](parts[1])
	if err != nil {
		return Range[B]{}, fmt.Errorf("%w: upper bound of %q: %v", ErrInvalidNotation, s, err)
	}

	return Range[B]{kind: kind, lower: lower, upper: upper}, nil
}

// MarshalText implements encoding.TextMarshaler using interval notation.
func (r Range[B]) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using interval notation.
func (r *Range[B]) UnmarshalText(text []byte) error {
	parsed, err := Parse[B](string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func parseBound[B Bound](s string) (B, error) {
	var zero B
	text := strings.TrimSpace(s)
	t := reflect.TypeOf(zero)
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(text, t.Bits())
		if err != nil {
			return zero, err
		}
		return B(v), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v, err := strconv.ParseUint(text, 10, t.Bits())
		if err != nil {
			return zero, err
		}
		return B(v), nil
	default:
		v, err := strconv.ParseInt(text, 10, t.Bits())
		if err != nil {
			return zero, err
		}
		return B(v), nil
	}
}

func formatBound[B Bound](v B) string {
	t := reflect.TypeOf(v)
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(float64(v), 'g', -1, t.Bits())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(uint64(v), 10)
	default:
		return strconv.FormatInt(int64(v), 10)
	}
}
