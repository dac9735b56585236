package configuration

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/markusressel/pid2go/clamping"
	"github.com/mitchellh/mapstructure"
)

// Optional is a generic container for optional configuration values.
type Optional[T any] struct {
	// Value holds the actual as unmarshalled.
	Value T
	// Present indicates if the value was present in the configuration.
	Present bool
}

func (o Optional[T]) Get() T {
	return o.Value
}

// DefaultTrueBool is a boolean that defaults to true if it is not present in the configuration.
type DefaultTrueBool struct {
	Optional[bool]
}

func (b DefaultTrueBool) Get() bool {
	if !b.Present {
		return true
	}
	return b.Value
}

func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		limitHookFunc(),
		defaultTrueBoolHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// limitHookFunc allows a LimitConfig to be written in interval notation.
func limitHookFunc() mapstructure.DecodeHookFuncType {
	limitType := reflect.TypeOf(LimitConfig{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != limitType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			r, err := clamping.Parse[float64](v)
			if err != nil {
				return nil, fmt.Errorf("limit: %w", err)
			}
			return LimitConfig{
				Min:      r.LowerBound(),
				Max:      r.UpperBound(),
				HalfOpen: r.IsHalfOpen(),
			}, nil
		case []interface{}:
			// an unquoted [lo, hi] is parsed as a yaml sequence
			if len(v) != 2 {
				return nil, fmt.Errorf("limit: expected exactly two bounds, got %d", len(v))
			}
			lower, err := anyToFloat(v[0])
			if err != nil {
				return nil, fmt.Errorf("limit: lower bound: %w", err)
			}
			upper, err := anyToFloat(v[1])
			if err != nil {
				return nil, fmt.Errorf("limit: upper bound: %w", err)
			}
			return LimitConfig{Min: lower, Max: upper}, nil
		}
		return data, nil
	}
}

func anyToFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case float64:
		return val, nil
	case string:
		return strconv.ParseFloat(val, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v)
	}
}

func defaultTrueBoolHookFunc() mapstructure.DecodeHookFuncType {
	boolType := reflect.TypeOf(DefaultTrueBool{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != boolType {
			return data, nil
		}

		var val bool
		switch v := data.(type) {
		case bool:
			val = v
		case string:
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("invalid boolean value %q: %w", v, err)
			}
			val = parsed
		default:
			return data, nil
		}

		return DefaultTrueBool{
			Optional: Optional[bool]{
				Value:   val,
				Present: true,
			},
		}, nil
	}
}
