package values

import (
	"fmt"

	"github.com/texere-ot/otcore/algebra"
)

// RotOperand is Math's operand for the "rot" operator: add Increment, then
// wrap modulo Modulus. Both fields are expected non-negative (rot operates
// over non-negative integers).
type RotOperand struct {
	Increment int64
	Modulus   int64
}

// Math applies a commutative arithmetic or bitwise function to the
// document. Operator is one of "add", "mult", "rot", "and", "or", "xor",
// "not".
type Math struct {
	Operator string
	Operand  any
}

// Tag identifies Math for dispatch and serialization.
func (Math) Tag() string { return "values.Math" }

// Category reports Math as a value-algebra operation.
func (Math) Category() string { return "value" }

// Apply runs m's operator against doc, preserving doc's primitive type.
func (m Math) Apply(doc any) (any, error) {
	switch m.Operator {
	case "add":
		d, ok := asNumber(doc)
		k, okK := asNumber(m.Operand)
		if !ok || !okK {
			return nil, algebra.ErrTypeMismatch
		}
		return numberLike(doc, d+k), nil

	case "mult":
		d, ok := asNumber(doc)
		k, okK := asNumber(m.Operand)
		if !ok || !okK {
			return nil, algebra.ErrTypeMismatch
		}
		return numberLike(doc, d*k), nil

	case "rot":
		ro, ok := m.Operand.(RotOperand)
		if !ok || ro.Modulus <= 0 {
			return nil, algebra.ErrInvalidOperand
		}
		d, ok := asNumber(doc)
		if !ok || d < 0 {
			return nil, algebra.ErrTypeMismatch
		}
		return normMod(int64(d)+ro.Increment, ro.Modulus), nil

	case "and", "or", "xor":
		return m.applyBitwise(doc)

	case "not":
		return m.applyNot(doc)

	default:
		return nil, fmt.Errorf("%w: unknown math operator %q", algebra.ErrInvalidOperand, m.Operator)
	}
}

func (m Math) applyBitwise(doc any) (any, error) {
	dInt, dBool, dIsBool, dOK := asIntOrBool(doc)
	kInt, kBool, kIsBool, kOK := asIntOrBool(m.Operand)
	if !dOK || !kOK || dIsBool != kIsBool {
		return nil, algebra.ErrTypeMismatch
	}
	if dIsBool {
		switch m.Operator {
		case "and":
			return dBool && kBool, nil
		case "or":
			return dBool || kBool, nil
		default: // xor
			return dBool != kBool, nil
		}
	}
	switch m.Operator {
	case "and":
		return dInt & kInt, nil
	case "or":
		return dInt | kInt, nil
	default: // xor
		return dInt ^ kInt, nil
	}
}

func (m Math) applyNot(doc any) (any, error) {
	dInt, dBool, dIsBool, dOK := asIntOrBool(doc)
	if !dOK {
		return nil, algebra.ErrTypeMismatch
	}
	if dIsBool {
		return !dBool, nil
	}
	return ^dInt, nil
}

// Simplify collapses Math's degenerate forms (identity operand for the
// commutative operators, and the and-with-zero/false absorbing case) down
// to NoOp or Set.
func (m Math) Simplify() algebra.Operation {
	switch m.Operator {
	case "add":
		if isZero(m.Operand) {
			return NoOp{}
		}
	case "mult":
		if isOne(m.Operand) {
			return NoOp{}
		}
	case "rot":
		if ro, ok := m.Operand.(RotOperand); ok && ro.Modulus > 0 {
			canon := normMod(ro.Increment, ro.Modulus)
			if canon == 0 {
				return NoOp{}
			}
			if canon != ro.Increment {
				return Math{Operator: "rot", Operand: RotOperand{Increment: canon, Modulus: ro.Modulus}}
			}
		}
	case "or":
		if isZeroOrFalse(m.Operand) {
			return NoOp{}
		}
	case "xor":
		if isZero(m.Operand) {
			return NoOp{}
		}
	case "and":
		if isZeroOrFalse(m.Operand) {
			return Set{Value: zeroLike(m.Operand)}
		}
	}
	return m
}

// Inverse produces the Math (or Set) that undoes m given the pre-state doc.
func (m Math) Inverse(doc any) (algebra.Operation, error) {
	switch m.Operator {
	case "add":
		k, ok := asNumber(m.Operand)
		if !ok {
			return nil, algebra.ErrInvalidOperand
		}
		return Math{Operator: "add", Operand: numberLike(m.Operand, -k)}, nil

	case "mult":
		k, ok := asNumber(m.Operand)
		if !ok || k == 0 {
			return nil, algebra.ErrInvalidOperand
		}
		return Math{Operator: "mult", Operand: 1 / k}, nil

	case "rot":
		ro, ok := m.Operand.(RotOperand)
		if !ok || ro.Modulus <= 0 {
			return nil, algebra.ErrInvalidOperand
		}
		return Math{Operator: "rot", Operand: RotOperand{Increment: normMod(-ro.Increment, ro.Modulus), Modulus: ro.Modulus}}, nil

	case "xor", "not":
		return m, nil

	case "and":
		dInt, dBool, dIsBool, ok := asIntOrBool(doc)
		kInt, kBool, _, okK := asIntOrBool(m.Operand)
		if !ok || !okK {
			return nil, algebra.ErrTypeMismatch
		}
		if dIsBool {
			return Math{Operator: "or", Operand: dBool && !kBool}, nil
		}
		return Math{Operator: "or", Operand: dInt &^ kInt}, nil

	case "or":
		dInt, dBool, dIsBool, ok := asIntOrBool(doc)
		kInt, kBool, _, okK := asIntOrBool(m.Operand)
		if !ok || !okK {
			return nil, algebra.ErrTypeMismatch
		}
		if dIsBool {
			return Math{Operator: "xor", Operand: !dBool && kBool}, nil
		}
		return Math{Operator: "xor", Operand: (^dInt) & kInt}, nil

	default:
		return nil, fmt.Errorf("%w: unknown math operator %q", algebra.ErrInvalidOperand, m.Operator)
	}
}

// Inspect renders the diagnostic form.
func (m Math) Inspect() string {
	return fmt.Sprintf("<values.MATH %s:%v>", m.Operator, m.Operand)
}

// Encode renders Math's wire form.
func (m Math) Encode() algebra.Encoded {
	var operand any = m.Operand
	if ro, ok := m.Operand.(RotOperand); ok {
		operand = []any{ro.Increment, ro.Modulus}
	}
	return algebra.Encoded{Module: "values", Op: "Math", Fields: []any{m.Operator, operand}}
}

func init() {
	algebra.Register("values", "Math", func(fields []any) (algebra.Operation, error) {
		if len(fields) != 2 {
			return nil, fmt.Errorf("values: Math expects 2 fields, got %d", len(fields))
		}
		operator, ok := fields[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: Math operator must be a string", algebra.ErrInvalidOperand)
		}
		operand := fields[1]
		if operator == "rot" {
			pair, ok := operand.([]any)
			if !ok || len(pair) != 2 {
				return nil, fmt.Errorf("%w: rot operand must be [increment, modulus]", algebra.ErrInvalidOperand)
			}
			inc, okI := asNumber(pair[0])
			mod, okM := asNumber(pair[1])
			if !okI || !okM {
				return nil, algebra.ErrInvalidOperand
			}
			operand = RotOperand{Increment: int64(inc), Modulus: int64(mod)}
		}
		return Math{Operator: operator, Operand: operand}, nil
	})
	algebra.RegisterTransform("values.Math", "values.Math", mathVsMath)
	algebra.RegisterCompose("values.Math", "values.Math", composeMathMath)
}

// composeMathMath fuses two Math operations sharing an operator by
// combining their operands through that operator's monoid, and handles
// the two documented mixed-operator fusions.
func composeMathMath(a, b algebra.Operation) (algebra.Operation, bool) {
	ma, mb := a.(Math), b.(Math)

	if ma.Operator == mb.Operator {
		switch ma.Operator {
		case "add":
			ka, _ := asNumber(ma.Operand)
			kb, _ := asNumber(mb.Operand)
			return Math{Operator: "add", Operand: ka + kb}.Simplify(), true
		case "mult":
			ka, _ := asNumber(ma.Operand)
			kb, _ := asNumber(mb.Operand)
			return Math{Operator: "mult", Operand: ka * kb}.Simplify(), true
		case "rot":
			ra, okA := ma.Operand.(RotOperand)
			rb, okB := mb.Operand.(RotOperand)
			if !okA || !okB || ra.Modulus != rb.Modulus {
				return nil, false
			}
			sum := normMod(ra.Increment+rb.Increment, ra.Modulus)
			return Math{Operator: "rot", Operand: RotOperand{Increment: sum, Modulus: ra.Modulus}}.Simplify(), true
		case "and", "or", "xor":
			aInt, aBool, aIsBool, _ := asIntOrBool(ma.Operand)
			bInt, bBool, _, _ := asIntOrBool(mb.Operand)
			if aIsBool {
				switch ma.Operator {
				case "and":
					return Math{Operator: "and", Operand: aBool && bBool}.Simplify(), true
				case "or":
					return Math{Operator: "or", Operand: aBool || bBool}.Simplify(), true
				default:
					return Math{Operator: "xor", Operand: aBool != bBool}.Simplify(), true
				}
			}
			switch ma.Operator {
			case "and":
				return Math{Operator: "and", Operand: aInt & bInt}.Simplify(), true
			case "or":
				return Math{Operator: "or", Operand: aInt | bInt}.Simplify(), true
			default:
				return Math{Operator: "xor", Operand: aInt ^ bInt}.Simplify(), true
			}
		case "not":
			return NoOp{}, true
		}
	}

	if ma.Operator == "and" && mb.Operator == "or" && equalOperand(ma.Operand, mb.Operand) {
		return Set{Value: mb.Operand}, true
	}
	if ma.Operator == "or" && mb.Operator == "xor" && equalOperand(ma.Operand, mb.Operand) {
		return Math{Operator: "and", Operand: bitwiseNot(ma.Operand)}, true
	}

	return nil, false
}

func bitwiseNot(v any) any {
	if b, ok := v.(bool); ok {
		return !b
	}
	n, _ := asNumber(v)
	return ^int64(n)
}

var operatorRank = map[string]int{
	"add": 0, "mult": 1, "rot": 2, "and": 3, "or": 4, "xor": 5, "not": 6,
}

func mathLess(a, b Math) bool {
	ra, rb := operatorRank[a.Operator], operatorRank[b.Operator]
	if ra != rb {
		return ra < rb
	}
	return algebra.Compare(operandValue(a.Operand), operandValue(b.Operand)) < 0
}

// mathVsMath implements the Math-vs-Math rebase rule: operations sharing
// an operator (and, for rot, modulus) commute and are both left unchanged;
// otherwise, conflictless mode with a supplied pre-state lifts the
// lower-ranked side to a Set of the value both sites converge on, computed
// by applying both operations in sequence to that pre-state.
func mathVsMath(a, b algebra.Operation, ctx *algebra.Context) (algebra.Operation, algebra.Operation, bool) {
	ma, mb := a.(Math), b.(Math)

	if ma.Operator == mb.Operator {
		if ma.Operator == "rot" {
			ra, okA := ma.Operand.(RotOperand)
			rb, okB := mb.Operand.(RotOperand)
			if okA && okB && ra.Modulus == rb.Modulus {
				return ma, mb, true
			}
		} else {
			return ma, mb, true
		}
	}

	doc, hasDoc := algebra.PreState(ctx)
	if !algebra.Conflictless(ctx) || !hasDoc {
		return nil, nil, false
	}

	// The lower-ranked side yields, but both sites still need to land on
	// the same value: apply self then other, directly, to the shared
	// pre-state, and lift the loser to Set of that result.
	if mathLess(ma, mb) {
		mid, err := ma.Apply(doc)
		if err != nil {
			return nil, nil, false
		}
		post, err := mb.Apply(mid)
		if err != nil {
			return nil, nil, false
		}
		return Set{Value: post}, mb, true
	}
	mid, err := mb.Apply(doc)
	if err != nil {
		return nil, nil, false
	}
	post, err := ma.Apply(mid)
	if err != nil {
		return nil, nil, false
	}
	return ma, Set{Value: post}, true
}
