package values

import "github.com/texere-ot/otcore/algebra"

// NoOp is the empty operation. It is the identity under both composition
// and rebase, and it never produces a conflict.
type NoOp struct{}

// Tag identifies NoOp for dispatch and serialization.
func (NoOp) Tag() string { return "values.NoOp" }

// Category reports NoOp as a value-algebra operation.
func (NoOp) Category() string { return "value" }

// isIdentity lets algebra.AtomicCompose/Rebase short-circuit on NoOp
// without needing to know about the values package at all.
func (NoOp) isIdentity() bool { return true }

// Apply is the identity function.
func (NoOp) Apply(doc any) (any, error) { return doc, nil }

// Simplify returns self; NoOp is already canonical.
func (NoOp) Simplify() algebra.Operation { return NoOp{} }

// Inverse is self: undoing nothing is nothing.
func (NoOp) Inverse(any) (algebra.Operation, error) { return NoOp{}, nil }

// Inspect renders the diagnostic form.
func (NoOp) Inspect() string { return "<values.NOOP>" }

// Encode renders NoOp's (fieldless) wire form.
func (NoOp) Encode() algebra.Encoded {
	return algebra.Encoded{Module: "values", Op: "NoOp"}
}

func init() {
	algebra.Register("values", "NoOp", func([]any) (algebra.Operation, error) {
		return NoOp{}, nil
	})
}
