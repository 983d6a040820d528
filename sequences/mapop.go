package sequences

import (
	"fmt"
	"strings"

	"github.com/texere-ot/otcore/algebra"
	"github.com/texere-ot/otcore/values"
)

// MapOp broadcasts Op to every element of the document. It is kept as its
// own operation kind rather than normalized to a Patch because its
// rebase against a Splice depends on Map's structural uniformity — a
// Patch's per-hunk view would lose that.
type MapOp struct {
	Op algebra.Operation
}

// Tag identifies MapOp for dispatch and serialization.
func (MapOp) Tag() string { return "sequences.Map" }

// Category reports MapOp as a sequence-algebra operation.
func (MapOp) Category() string { return "sequence" }

// Apply runs Op against every element (array) or rune (string) of doc.
func (m MapOp) Apply(doc any) (any, error) {
	switch d := doc.(type) {
	case []any:
		out := make([]any, len(d))
		for i, el := range d {
			r, err := m.Op.Apply(el)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case string:
		var b strings.Builder
		for _, r := range d {
			out, err := m.Op.Apply(string(r))
			if err != nil {
				return nil, err
			}
			s, ok := out.(string)
			if !ok {
				return nil, algebra.ErrTypeMismatch
			}
			b.WriteString(s)
		}
		return b.String(), nil
	default:
		return nil, algebra.ErrTypeMismatch
	}
}

// Simplify collapses Map(NoOp) to NoOp.
func (m MapOp) Simplify() algebra.Operation {
	sub := m.Op.Simplify()
	if algebra.IsIdentity(sub) {
		return values.NoOp{}
	}
	return MapOp{Op: sub}
}

// Inverse produces a Patch with one hunk per element, since each element's
// inverse generally depends on that element's own pre-state value (Map
// broadcasts one sub_op, but its inverse is rarely itself uniform).
func (m MapOp) Inverse(doc any) (algebra.Operation, error) {
	switch d := doc.(type) {
	case []any:
		hunks := make([]Hunk, len(d))
		for i, el := range d {
			inv, err := m.Op.Inverse(el)
			if err != nil {
				return nil, err
			}
			hunks[i] = Hunk{Gap: 0, Length: 1, Op: inv}
		}
		return Patch{Hunks: hunks}, nil
	case string:
		runes := []rune(d)
		hunks := make([]Hunk, len(runes))
		for i, r := range runes {
			inv, err := m.Op.Inverse(string(r))
			if err != nil {
				return nil, err
			}
			hunks[i] = Hunk{Gap: 0, Length: algebra.UTF16Length(string(r)), Op: inv}
		}
		return Patch{Hunks: hunks}, nil
	default:
		return nil, algebra.ErrTypeMismatch
	}
}

// Inspect renders the diagnostic form.
func (m MapOp) Inspect() string {
	return fmt.Sprintf("<sequences.MAP %s>", m.Op.Inspect())
}

// Encode renders MapOp's wire form.
func (m MapOp) Encode() algebra.Encoded {
	return algebra.Encoded{Module: "sequences", Op: "Map", Fields: []any{m.Op.Encode()}}
}

func init() {
	algebra.Register("sequences", "Map", func(fields []any) (algebra.Operation, error) {
		if len(fields) != 1 {
			return nil, fmt.Errorf("sequences: Map expects 1 field, got %d", len(fields))
		}
		enc, ok := fields[0].(algebra.Encoded)
		if !ok {
			return nil, algebra.ErrInvalidOperand
		}
		op, err := algebra.Decode(enc)
		if err != nil {
			return nil, err
		}
		return MapOp{Op: op}, nil
	})

	algebra.RegisterCompose("sequences.Map", "sequences.Map", composeMapMap)
	algebra.RegisterCategoryTransform("sequences.Map", "sequence", mapVsStructural)
	algebra.RegisterTransform("sequences.Map", "sequences.Patch", mapVsPatch)
}

// composeMapMap fuses two broadcasts into one whenever their shared
// sub-operations atomic_compose.
func composeMapMap(a, b algebra.Operation) (algebra.Operation, bool) {
	ma, mb := a.(MapOp), b.(MapOp)
	composed, ok := algebra.AtomicCompose(ma.Op, mb.Op)
	if !ok {
		return nil, false
	}
	return MapOp{Op: composed}.Simplify(), true
}

// mapVsStructural implements the rule that Map rebased against any
// sequence structural change returns Map unchanged: Map never adds or
// removes elements, so a concurrent Splice/Move/Patch never needs Map to
// move.
func mapVsStructural(a, b algebra.Operation, ctx *algebra.Context) (algebra.Operation, algebra.Operation, bool) {
	return a, b, true
}

// mapVsPatch refines mapVsStructural for the element-wise case: when the
// Patch is Apply-shaped (every hunk touches exactly one element), each
// touched element's value was also reached by Map, so the two sub-
// operations must themselves rebase against each other.
func mapVsPatch(a, b algebra.Operation, ctx *algebra.Context) (algebra.Operation, algebra.Operation, bool) {
	m := a.(MapOp)
	patch := b.(Patch)
	if !isApplyShaped(patch) {
		return m, patch, true
	}
	newHunks := make([]Hunk, len(patch.Hunks))
	mapPrime := m.Op
	for i, h := range patch.Hunks {
		subAPrime, ok := algebra.Rebase(m.Op, h.Op, ctx)
		if !ok {
			return nil, nil, false
		}
		subBPrime, ok := algebra.Rebase(h.Op, m.Op, ctx)
		if !ok {
			return nil, nil, false
		}
		newHunks[i] = Hunk{Gap: h.Gap, Length: h.Length, Op: subBPrime}
		mapPrime = subAPrime
	}
	return MapOp{Op: mapPrime}, Patch{Hunks: newHunks}, true
}
