package conv

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOverflow is returned when a value does not fit the target type.
	ErrOverflow = errors.New("integer overflow")
	// ErrNotIntegral is returned when a float with a fractional part (or a
	// non-finite float) is converted into an integer type.
	ErrNotIntegral = errors.New("value is not integral")
	// ErrNotNumber is returned when the source value is not a Go numeric type.
	ErrNotNumber = errors.New("value is not a number")
)

// Number is the set of fixed-width element types a numeric column may hold.
type Number interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint32 (negative)", ErrOverflow, v)
	}
	// On 64-bit systems, int can exceed uint32 max; on 32-bit, this is always false
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint32 (too large)", ErrOverflow, v)
	}
	return uint32(v), nil
}

// Uint32ToInt converts uint32 to int safely.
func Uint32ToInt(v uint32) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %d cannot be converted to int (too large)", ErrOverflow, v)
	}
	return int(v), nil
}

// To converts an arbitrary Go numeric value into T.
//
// Integers are accepted when they are in range for T. Floats are accepted for
// integer targets only when they are finite and integral. Any numeric value is
// accepted for float targets, except finite float64 values that overflow
// float32.
func To[T Number](v any) (T, error) {
	switch x := v.(type) {
	case T:
		return x, nil
	case int:
		return fromInt64[T](int64(x))
	case int8:
		return fromInt64[T](int64(x))
	case int16:
		return fromInt64[T](int64(x))
	case int32:
		return fromInt64[T](int64(x))
	case int64:
		return fromInt64[T](x)
	case uint:
		return fromUint64[T](uint64(x))
	case uint8:
		return fromUint64[T](uint64(x))
	case uint16:
		return fromUint64[T](uint64(x))
	case uint32:
		return fromUint64[T](uint64(x))
	case uint64:
		return fromUint64[T](x)
	case float32:
		return fromFloat64[T](float64(x))
	case float64:
		return fromFloat64[T](x)
	}
	return 0, fmt.Errorf("%w: %T", ErrNotNumber, v)
}

type limits struct {
	min   int64
	max   uint64
	float bool
	name  string
}

func limitsOf[T Number]() limits {
	var zero T
	switch any(zero).(type) {
	case int8:
		return limits{min: math.MinInt8, max: math.MaxInt8, name: "int8"}
	case uint8:
		return limits{max: math.MaxUint8, name: "uint8"}
	case int16:
		return limits{min: math.MinInt16, max: math.MaxInt16, name: "int16"}
	case uint16:
		return limits{max: math.MaxUint16, name: "uint16"}
	case int32:
		return limits{min: math.MinInt32, max: math.MaxInt32, name: "int32"}
	case uint32:
		return limits{max: math.MaxUint32, name: "uint32"}
	case int64:
		return limits{min: math.MinInt64, max: math.MaxInt64, name: "int64"}
	case uint64:
		return limits{max: math.MaxUint64, name: "uint64"}
	case float32:
		return limits{float: true, name: "float32"}
	default:
		return limits{float: true, name: "float64"}
	}
}

func fromInt64[T Number](x int64) (T, error) {
	l := limitsOf[T]()
	if l.float {
		return T(x), nil
	}
	if x < l.min || (x > 0 && uint64(x) > l.max) {
		return 0, fmt.Errorf("%w: %d cannot be converted to %s", ErrOverflow, x, l.name)
	}
	return T(x), nil
}

func fromUint64[T Number](x uint64) (T, error) {
	l := limitsOf[T]()
	if l.float {
		return T(x), nil
	}
	if x > l.max {
		return 0, fmt.Errorf("%w: %d cannot be converted to %s", ErrOverflow, x, l.name)
	}
	return T(x), nil
}

func fromFloat64[T Number](f float64) (T, error) {
	l := limitsOf[T]()
	if l.float {
		if l.name == "float32" && !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
			return 0, fmt.Errorf("%w: %g cannot be converted to float32", ErrOverflow, f)
		}
		return T(f), nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %g cannot be converted to %s", ErrNotIntegral, f, l.name)
	}
	// float64(l.max) rounds up for 64-bit limits, so the upper bound is exclusive there.
	if f < float64(l.min) || f > float64(l.max) || (l.max > 1<<53 && f >= float64(l.max)) {
		return 0, fmt.Errorf("%w: %g cannot be converted to %s", ErrOverflow, f, l.name)
	}
	return T(f), nil
}
