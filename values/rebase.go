package values

import "github.com/texere-ot/otcore/algebra"

func init() {
	algebra.RegisterTransform("values.Set", "values.Set", setVsSet)
	algebra.RegisterTransform("values.Set", "values.Math", setVsMath)
	algebra.RegisterCategoryTransform("values.Set", "sequence", setVsOther)
}

// setVsSet implements the Set-vs-Set rebase rule: equal values converge to
// NoOp on both sides; differing values conflict unless conflictless mode
// is active, in which case the total order breaks the tie (the lower
// value yields to NoOp, the higher survives).
func setVsSet(a, b algebra.Operation, ctx *algebra.Context) (algebra.Operation, algebra.Operation, bool) {
	sa, sb := a.(Set), b.(Set)
	if algebra.Equal(sa.Value, sb.Value) {
		return NoOp{}, NoOp{}, true
	}
	if !algebra.Conflictless(ctx) {
		return nil, nil, false
	}
	if algebra.Compare(sa.Value, sb.Value) < 0 {
		return NoOp{}, sb, true
	}
	return sa, NoOp{}, true
}

// setVsMath implements the Set-vs-Math rebase rule: Set is declared to
// apply "second" regardless of mode — if Math already landed, Set
// overwrites it unchanged; if Set already landed, Math has nothing left to
// act on and becomes NoOp. This ordering is an explicit, not derived,
// choice.
func setVsMath(a, b algebra.Operation, ctx *algebra.Context) (algebra.Operation, algebra.Operation, bool) {
	return a.(Set), NoOp{}, true
}

// setVsOther is the fallback rule for Set against any operation kind with
// no more specific pairing registered (in practice, every sequence
// operation): by default conflict; in conflictless mode the non-Set side
// is forced to converge by becoming Set of the same value, since applying
// Set already fixes the document regardless of what the other operation
// intended.
func setVsOther(a, b algebra.Operation, ctx *algebra.Context) (algebra.Operation, algebra.Operation, bool) {
	setOp := a.(Set)
	if !algebra.Conflictless(ctx) {
		return nil, nil, false
	}
	return setOp, Set{Value: setOp.Value}, true
}
