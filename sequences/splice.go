package sequences

import (
	"fmt"

	"github.com/texere-ot/otcore/algebra"
	"github.com/texere-ot/otcore/values"
)

// Splice replaces the slice [Offset, Offset+Length) with NewValue. It
// covers insertion (Length == 0), deletion (NewValue empty), and
// replacement in one shape.
type Splice struct {
	Offset, Length int
	NewValue       any
}

// Tag identifies Splice for dispatch and serialization.
func (Splice) Tag() string { return "sequences.Splice" }

// Category reports Splice as a sequence-algebra operation.
func (Splice) Category() string { return "sequence" }

// Apply replaces doc[Offset:Offset+Length] with NewValue.
func (s Splice) Apply(doc any) (any, error) {
	n, err := length(doc)
	if err != nil {
		return nil, err
	}
	if s.Offset < 0 || s.Length < 0 || s.Offset+s.Length > n {
		return nil, algebra.ErrOutOfRange
	}
	if !sameKind(doc, s.NewValue) {
		return nil, algebra.ErrTypeMismatch
	}
	head, err := slice(doc, 0, s.Offset)
	if err != nil {
		return nil, err
	}
	tail, err := slice(doc, s.Offset+s.Length, n)
	if err != nil {
		return nil, err
	}
	return concat(head, s.NewValue, tail)
}

// Simplify collapses a zero-length, zero-insertion splice to NoOp.
func (s Splice) Simplify() algebra.Operation {
	if s.Length == 0 && isEmpty(s.NewValue) {
		return values.NoOp{}
	}
	return s
}

// Inverse produces the Splice that restores doc's removed slice.
func (s Splice) Inverse(doc any) (algebra.Operation, error) {
	removed, err := slice(doc, s.Offset, s.Offset+s.Length)
	if err != nil {
		return nil, err
	}
	newLen, err := length(s.NewValue)
	if err != nil {
		return nil, err
	}
	return Splice{Offset: s.Offset, Length: newLen, NewValue: removed}, nil
}

// Inspect renders Splice as the single-hunk Patch form it's equivalent to,
// since both share the same underlying hunk representation.
func (s Splice) Inspect() string {
	return fmt.Sprintf("<sequences.PATCH +%dx%d %s>", s.Offset, s.Length, previewValue(s.NewValue))
}

func previewValue(v any) string {
	if str, ok := v.(string); ok {
		return graphemePreview(str)
	}
	return fmt.Sprintf("%v", v)
}

// Encode renders Splice's wire form.
func (s Splice) Encode() algebra.Encoded {
	return algebra.Encoded{Module: "sequences", Op: "Splice", Fields: []any{s.Offset, s.Length, s.NewValue}}
}

// asPatch re-expresses s as the single-hunk Patch it's a special case of.
func (s Splice) asPatch() Patch {
	return Patch{Hunks: []Hunk{{Gap: s.Offset, Length: s.Length, Op: values.Set{Value: s.NewValue}}}}
}

func spliceEqual(a, b Splice) bool {
	return a.Offset == b.Offset && a.Length == b.Length && algebra.Equal(a.NewValue, b.NewValue)
}

func init() {
	algebra.Register("sequences", "Splice", func(fields []any) (algebra.Operation, error) {
		if len(fields) != 3 {
			return nil, fmt.Errorf("sequences: Splice expects 3 fields, got %d", len(fields))
		}
		offset, okO := fields[0].(int)
		ln, okL := fields[1].(int)
		if !okO || !okL {
			return nil, algebra.ErrInvalidOperand
		}
		return Splice{Offset: offset, Length: ln, NewValue: fields[2]}, nil
	})
}
