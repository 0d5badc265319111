package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AsInt returns v as an int when v is of a Go integer type.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	}
	return 0, false
}

// AsFloat returns v as a float64 when v is of any Go numeric type.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if i, ok := AsInt(v); ok {
		return float64(i), true
	}
	return 0, false
}

// IsNumber reports whether v is an integer or floating-point value.
func IsNumber(v any) bool {
	_, ok := AsFloat(v)
	return ok
}

// ParseInt converts v to an int. Strings are parsed as base-10 integers
// after trimming surrounding whitespace; floats are truncated toward zero.
func ParseInt(v any) (int, error) {
	if i, ok := AsInt(v); ok {
		return i, nil
	}
	switch x := v.(type) {
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(x), 10, 0)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid integer %s", ErrConversion, quote(x))
		}
		return int(i), nil
	case float32, float64:
		f, _ := AsFloat(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: cannot truncate %s", ErrConversion, formatFloat(f))
		}
		return int(f), nil
	}
	return 0, fmt.Errorf("%w: cannot convert %s to int", ErrType, KindOf(v))
}

// ParseFloat converts v to a float64. Strings are parsed after trimming
// surrounding whitespace.
func ParseFloat(v any) (float64, error) {
	if f, ok := AsFloat(v); ok {
		return f, nil
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid float %s", ErrConversion, quote(s))
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: cannot convert %s to float", ErrType, KindOf(v))
}

// Add sums two numbers. Two integers give an int; any float operand
// promotes the result to float64.
func Add(a, b any) (any, error) {
	ai, aInt := AsInt(a)
	bi, bInt := AsInt(b)
	if aInt && bInt {
		return ai + bi, nil
	}
	af, aNum := AsFloat(a)
	bf, bNum := AsFloat(b)
	if !aNum || !bNum {
		bad := a
		if aNum {
			bad = b
		}
		return nil, fmt.Errorf("%w: cannot add %s", ErrType, KindOf(bad))
	}
	return af + bf, nil
}
