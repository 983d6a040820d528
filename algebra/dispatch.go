package algebra

// TransformFunc computes both halves of a rebase in one pass: given that a
// (of the tag it was registered under) and b were applied concurrently, it
// returns (a', b'). Registering a single TransformFunc for the pair
// (TagX, TagY) is enough for the harness to answer Rebase for operands in
// either order — see Rebase's swap-and-reuse fallback in algebra.go.
type TransformFunc func(a, b Operation, ctx *Context) (aPrime, bPrime Operation, ok bool)

// ComposeFunc fuses a (applied first) and b (applied second) into one
// operation, or reports no fusion exists. Unlike TransformFunc, order
// matters and is never swapped by the harness.
type ComposeFunc func(a, b Operation) (Operation, bool)

type pairKey struct {
	left, right string
}

var transformTable = map[pairKey]TransformFunc{}
var composeTable = map[pairKey]ComposeFunc{}

// categoryTransformTable answers Rebase when only one side's concrete tag
// is known and the other is matched by Category() — e.g. values.Set vs any
// "sequence"-category operation.
var categoryTransformTable = map[pairKey]TransformFunc{}

// RegisterTransform registers how a tagA-kind operation rebases against a
// tagB-kind operation (and, by the harness's swap rule, vice versa).
// Intended to be called from package init().
func RegisterTransform(tagA, tagB string, fn TransformFunc) {
	transformTable[pairKey{tagA, tagB}] = fn
}

// RegisterCategoryTransform registers a fallback rebase rule for a
// specific tag against an entire operation category (e.g. "sequence").
// Checked only when no exact tag-pair handler exists.
func RegisterCategoryTransform(tag, category string, fn TransformFunc) {
	categoryTransformTable[pairKey{tag, category}] = fn
}

// RegisterCompose registers how a tagA-kind operation composes when
// applied before a tagB-kind operation. Intended to be called from
// package init().
func RegisterCompose(tagA, tagB string, fn ComposeFunc) {
	composeTable[pairKey{tagA, tagB}] = fn
}
