// Package algebra is the operational-transform harness: the shared
// Operation trait, the conflictless total order, and the type-pair dispatch
// tables that let the values and sequences packages cooperate without
// importing each other.
//
// Nothing in this package knows about any concrete operation kind. values
// and sequences register their pairings in their own init() functions
// (see RegisterTransform / RegisterCompose), the same way a plugin
// registers itself with a host.
package algebra

// Operation is the trait every operation kind (value or sequence) must
// implement. It corresponds to the "BaseOperation" trait the core consumes
// from external collaborators, generalized to a single shared interface
// used internally too.
type Operation interface {
	// Tag identifies the concrete kind for dispatch and serialization,
	// e.g. "values.Set" or "sequences.Splice".
	Tag() string

	// Category groups operations for the harness's category-level
	// fallback rules ("value" or "sequence").
	Category() string

	// Apply runs the operation against a document value.
	Apply(doc any) (any, error)

	// Simplify canonicalizes the operation into an equivalent, often
	// smaller, form. Never fails.
	Simplify() Operation

	// Inverse produces the operation that undoes self, given the
	// pre-state document.
	Inverse(doc any) (Operation, error)

	// Inspect renders a short, stable, human-readable diagnostic form.
	// Not meant to be parsed.
	Inspect() string

	// Encode renders the operation's wire-neutral form.
	Encode() Encoded
}

// identityOp is implemented only by the value algebra's NoOp. The harness
// short-circuits on it so every other operation kind gets NoOp's identity
// behavior under composition and rebase for free.
type identityOp interface {
	isIdentity() bool
}

func isNoOp(op Operation) bool {
	io, ok := op.(identityOp)
	return ok && io.isIdentity()
}

// IsIdentity reports whether op is the value algebra's NoOp (or behaves as
// one). Exported for sequence-algebra callers that fold identity sub-ops
// out of a Patch's hunk list without importing the values package.
func IsIdentity(op Operation) bool {
	return isNoOp(op)
}

// absorbingCompose is implemented only by the value algebra's Set: since
// Set clobbers whatever state any other operation assumes, "self then
// other" is always defined without needing a registered per-pair handler.
type absorbingCompose interface {
	composeAbsorb(other Operation) (Operation, bool)
}

// AtomicCompose produces a single operation equivalent to "a then b", or
// reports that no such fusion exists (ok == false) — never an error; the
// caller is expected to fall back to a list concatenation.
func AtomicCompose(a, b Operation) (composed Operation, ok bool) {
	if isNoOp(a) {
		return b, true
	}
	if isNoOp(b) {
		return a.Simplify(), true
	}
	if absorb, ok := a.(absorbingCompose); ok {
		return absorb.composeAbsorb(b)
	}
	if fn, found := composeTable[pairKey{a.Tag(), b.Tag()}]; found {
		return fn(a, b)
	}
	return nil, false
}

// Rebase produces the variant of a that applies after b was applied
// concurrently, or reports conflict (ok == false).
func Rebase(a, b Operation, ctx *Context) (rebased Operation, ok bool) {
	if isNoOp(a) {
		return a, true
	}
	if isNoOp(b) {
		return a, true
	}
	if fn, found := transformTable[pairKey{a.Tag(), b.Tag()}]; found {
		aPrime, _, ok := fn(a, b, ctx)
		return aPrime, ok
	}
	if fn, found := transformTable[pairKey{b.Tag(), a.Tag()}]; found {
		_, aPrime, ok := fn(b, a, ctx)
		return aPrime, ok
	}
	if fn, found := categoryTransformTable[pairKey{a.Tag(), b.Category()}]; found {
		aPrime, _, ok := fn(a, b, ctx)
		return aPrime, ok
	}
	if fn, found := categoryTransformTable[pairKey{b.Tag(), a.Category()}]; found {
		_, aPrime, ok := fn(b, a, ctx)
		return aPrime, ok
	}
	return nil, false
}
