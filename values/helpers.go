// Package values implements the value algebra: NoOp, Set and Math, the
// atomic operations over scalar documents (numbers, booleans, and — for
// Set alone — any document value).
package values

import (
	"math"

	"github.com/texere-ot/otcore/algebra"
)

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// numberLike picks the number type for result: float64 when orig is a
// float64, otherwise int64 when result is integral and float64 when not.
func numberLike(orig any, result float64) any {
	if _, isFloat := orig.(float64); isFloat {
		return result
	}
	if result == math.Trunc(result) {
		return int64(result)
	}
	return result
}

func asIntOrBool(v any) (asInt int64, asBool bool, isBool bool, ok bool) {
	switch n := v.(type) {
	case bool:
		return 0, n, true, true
	case int:
		return int64(n), false, false, true
	case int64:
		return n, false, false, true
	default:
		return 0, false, false, false
	}
}

func isZero(v any) bool {
	n, ok := asNumber(v)
	return ok && n == 0
}

func isOne(v any) bool {
	n, ok := asNumber(v)
	return ok && n == 1
}

func isZeroOrFalse(v any) bool {
	if b, ok := v.(bool); ok {
		return !b
	}
	return isZero(v)
}

func zeroLike(v any) any {
	if _, ok := v.(bool); ok {
		return false
	}
	return int64(0)
}

func normMod(v, m int64) int64 {
	if m <= 0 {
		return v
	}
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}

func equalOperand(a, b any) bool {
	return algebra.Equal(a, b)
}

// operandValue converts an operand (possibly a RotOperand) into something
// algebra.Compare can order.
func operandValue(v any) any {
	if r, ok := v.(RotOperand); ok {
		return []any{r.Increment, r.Modulus}
	}
	return v
}
