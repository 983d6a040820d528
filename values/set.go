package values

import (
	"fmt"

	"github.com/texere-ot/otcore/algebra"
)

// Set replaces the entire document with Value.
type Set struct {
	Value any
}

// Tag identifies Set for dispatch and serialization.
func (Set) Tag() string { return "values.Set" }

// Category reports Set as a value-algebra operation.
func (Set) Category() string { return "value" }

// Apply replaces doc with s.Value unconditionally.
func (s Set) Apply(any) (any, error) { return s.Value, nil }

// Simplify returns self. A Set whose operand equals the old document is
// only collapsed to NoOp during rebase, never eagerly here.
func (s Set) Simplify() algebra.Operation { return s }

// Inverse produces the Set that restores doc.
func (s Set) Inverse(doc any) (algebra.Operation, error) { return Set{Value: doc}, nil }

// Inspect renders the diagnostic form.
func (s Set) Inspect() string { return fmt.Sprintf("<values.SET %v>", s.Value) }

// Encode renders Set's wire form.
func (s Set) Encode() algebra.Encoded {
	return algebra.Encoded{Module: "values", Op: "Set", Fields: []any{s.Value}}
}

// composeAbsorb implements algebra's absorbing-compose hook: Set clobbers
// whatever state `other` assumes, so "self then other" is always a single
// Set of whatever other produces from self's value.
func (s Set) composeAbsorb(other algebra.Operation) (algebra.Operation, bool) {
	result, err := other.Apply(s.Value)
	if err != nil {
		return nil, false
	}
	return Set{Value: result}.Simplify(), true
}

func init() {
	algebra.Register("values", "Set", func(fields []any) (algebra.Operation, error) {
		if len(fields) != 1 {
			return nil, fmt.Errorf("values: Set expects 1 field, got %d", len(fields))
		}
		return Set{Value: fields[0]}, nil
	})
}
