package algebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeOp is a minimal Operation used to exercise the harness without
// importing values/sequences (which themselves depend on algebra).
type fakeOp struct {
	tag      string
	category string
}

func (f fakeOp) Tag() string                          { return f.tag }
func (f fakeOp) Category() string                     { return f.category }
func (f fakeOp) Apply(doc any) (any, error)            { return doc, nil }
func (f fakeOp) Simplify() Operation                   { return f }
func (f fakeOp) Inverse(any) (Operation, error)        { return f, nil }
func (f fakeOp) Inspect() string                       { return "<fake>" }
func (f fakeOp) Encode() Encoded                       { return Encoded{Module: "test", Op: f.tag} }

type identityFakeOp struct{ fakeOp }

func (identityFakeOp) isIdentity() bool { return true }

func TestAtomicCompose_NoOpIdentity(t *testing.T) {
	id := identityFakeOp{fakeOp{tag: "id", category: "test"}}
	other := fakeOp{tag: "x", category: "test"}

	composed, ok := AtomicCompose(id, other)
	assert.True(t, ok)
	assert.Equal(t, other, composed)

	composed, ok = AtomicCompose(other, id)
	assert.True(t, ok)
	assert.Equal(t, other, composed)
}

func TestAtomicCompose_NoRegisteredPairFails(t *testing.T) {
	a := fakeOp{tag: "a", category: "test"}
	b := fakeOp{tag: "b", category: "test"}
	_, ok := AtomicCompose(a, b)
	assert.False(t, ok)
}

func TestRebase_RegisteredPairAndSwap(t *testing.T) {
	a := fakeOp{tag: "rebase-a", category: "test"}
	b := fakeOp{tag: "rebase-b", category: "test"}

	RegisterTransform("rebase-a", "rebase-b", func(x, y Operation, ctx *Context) (Operation, Operation, bool) {
		return fakeOp{tag: "a-prime", category: "test"}, fakeOp{tag: "b-prime", category: "test"}, true
	})

	aPrime, ok := Rebase(a, b, nil)
	assert.True(t, ok)
	assert.Equal(t, "a-prime", aPrime.Tag())

	bPrime, ok := Rebase(b, a, nil)
	assert.True(t, ok)
	assert.Equal(t, "b-prime", bPrime.Tag())
}

func TestRebase_CategoryFallback(t *testing.T) {
	RegisterCategoryTransform("cat-a", "cat-group", func(x, y Operation, ctx *Context) (Operation, Operation, bool) {
		return fakeOp{tag: "cat-a-prime", category: "cat-group"}, fakeOp{tag: "cat-b-prime", category: "cat-group"}, true
	})
	a := fakeOp{tag: "cat-a", category: "cat-group"}
	b := fakeOp{tag: "cat-b", category: "cat-group"}

	aPrime, ok := Rebase(a, b, nil)
	assert.True(t, ok)
	assert.Equal(t, "cat-a-prime", aPrime.Tag())
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	Register("test", "roundtrip", func(fields []any) (Operation, error) {
		return fakeOp{tag: "roundtrip", category: "test"}, nil
	})
	op, err := Decode(Encoded{Module: "test", Op: "roundtrip"})
	assert.NoError(t, err)
	assert.Equal(t, "roundtrip", op.Tag())
}

func TestMissing(t *testing.T) {
	assert.True(t, IsMissing(Missing))
	assert.False(t, IsMissing(nil))
	assert.False(t, IsMissing(0))
}
