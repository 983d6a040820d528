package sequences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texere-ot/otcore/algebra"
	"github.com/texere-ot/otcore/values"
)

func TestPatch_ApplyElementWise(t *testing.T) {
	patch, err := NewApplyMap(map[int]algebra.Operation{
		0: values.Set{Value: "d"},
		1: values.Set{Value: "e"},
	})
	require.NoError(t, err)

	out, err := patch.Apply([]any{"a", "b", "c"})
	assert.NoError(t, err)
	assert.Equal(t, []any{"d", "e", "c"}, out)
}

func TestPatch_SimplifyDropsIdentityHunks(t *testing.T) {
	p := Patch{Hunks: []Hunk{
		{Gap: 0, Length: 1, Op: values.NoOp{}},
		{Gap: 0, Length: 1, Op: values.Set{Value: "x"}},
	}}
	simplified := p.Simplify()
	patch, ok := simplified.(Patch)
	require.True(t, ok)
	assert.Len(t, patch.Hunks, 1)
	assert.Equal(t, 1, patch.Hunks[0].Gap) // the dropped hunk's span folds into the gap
}

func TestPatch_SimplifyAllIdentityIsNoOp(t *testing.T) {
	p := Patch{Hunks: []Hunk{{Gap: 0, Length: 1, Op: values.NoOp{}}}}
	assert.Equal(t, values.NoOp{}, p.Simplify())
}

func TestPatch_InverseRoundTrips(t *testing.T) {
	patch := NewApply(1, values.Math{Operator: "add", Operand: int64(3)})
	doc := []any{int64(10), int64(20), int64(30)}

	out, err := patch.Apply(doc)
	require.NoError(t, err)

	inv, err := patch.Inverse(doc)
	require.NoError(t, err)

	restored, err := inv.Apply(out)
	require.NoError(t, err)
	assert.Equal(t, doc, restored)
}

func TestPatch_ComposeSameIndexSubComposes(t *testing.T) {
	a := NewApply(5, values.Set{Value: int64(1)})
	b := NewApply(5, values.Math{Operator: "add", Operand: int64(1)})
	composed, ok := algebra.AtomicCompose(a, b)
	assert.True(t, ok)
	assert.Equal(t, NewApply(5, values.Set{Value: int64(2)}), composed)
}

func TestPatch_ComposeDisjointIndicesMerge(t *testing.T) {
	a := NewApply(1, values.Set{Value: "x"})
	b := NewApply(3, values.Set{Value: "y"})
	composed, ok := algebra.AtomicCompose(a, b)
	assert.True(t, ok)
	expected, err := NewApplyMap(map[int]algebra.Operation{1: values.Set{Value: "x"}, 3: values.Set{Value: "y"}})
	require.NoError(t, err)
	assert.Equal(t, expected, composed)
}

func TestPatch_RebaseSameIndexConflictlessTieBreak(t *testing.T) {
	ctx := &algebra.Context{Conflictless: true}
	a := NewApply(555, values.Set{Value: "y"})
	b := NewApply(555, values.Set{Value: "z"})

	aPrime, ok := algebra.Rebase(a, b, ctx)
	assert.True(t, ok)
	assert.Equal(t, values.NoOp{}, aPrime)
}

func TestPatch_RebaseDisjointIndicesPassThroughUnaffected(t *testing.T) {
	a := NewApply(1, values.Set{Value: "x"})
	b := NewApply(3, values.Set{Value: "y"})

	aPrime, ok := algebra.Rebase(a, b, nil)
	assert.True(t, ok)
	assert.Equal(t, a, aPrime)

	bPrime, ok := algebra.Rebase(b, a, nil)
	assert.True(t, ok)
	assert.Equal(t, b, bPrime)
}
