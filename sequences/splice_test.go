package sequences

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/texere-ot/otcore/algebra"
	"github.com/texere-ot/otcore/values"
)

func TestSplice_ApplyReplace(t *testing.T) {
	out, err := Splice{Offset: 0, Length: 1, NewValue: "4"}.Apply("123")
	assert.NoError(t, err)
	assert.Equal(t, "423", out)
}

func TestSplice_ApplyOutOfRange(t *testing.T) {
	_, err := Splice{Offset: 2, Length: 5, NewValue: ""}.Apply("123")
	assert.ErrorIs(t, err, algebra.ErrOutOfRange)
}

func TestSplice_SimplifyDegenerateIsNoOp(t *testing.T) {
	assert.Equal(t, values.NoOp{}, Splice{Offset: 3, Length: 0, NewValue: ""}.Simplify())
}

func TestSplice_Inverse(t *testing.T) {
	inv, err := Splice{Offset: 0, Length: 1, NewValue: "4"}.Inverse("123")
	assert.NoError(t, err)
	assert.Equal(t, Splice{Offset: 0, Length: 1, NewValue: "1"}, inv)
}

func TestSplice_Inspect(t *testing.T) {
	assert.Equal(t, `<sequences.PATCH +0x1 "4">`, Splice{Offset: 0, Length: 1, NewValue: "4"}.Inspect())
}

func TestSplice_RebaseIdentical(t *testing.T) {
	a := Splice{Offset: 0, Length: 3, NewValue: "456"}
	b := Splice{Offset: 0, Length: 3, NewValue: "456"}
	aPrime, ok := algebra.Rebase(a, b, nil)
	assert.True(t, ok)
	assert.Equal(t, values.NoOp{}, aPrime)
}

func TestSplice_RebaseDisjointShiftsByDelta(t *testing.T) {
	a := Splice{Offset: 3, Length: 3, NewValue: "456"}
	b := Splice{Offset: 0, Length: 3, NewValue: "AC"}
	aPrime, ok := algebra.Rebase(a, b, nil)
	assert.True(t, ok)
	assert.Equal(t, Splice{Offset: 2, Length: 3, NewValue: "456"}, aPrime)
}

func TestSplice_RebasePureInsertSameOffsetConflictless(t *testing.T) {
	ctx := &algebra.Context{Conflictless: true}
	a := Splice{Offset: 0, Length: 0, NewValue: "123"} // lower ("1" < "4")
	b := Splice{Offset: 0, Length: 0, NewValue: "456"}

	aPrime, ok := algebra.Rebase(a, b, ctx)
	assert.True(t, ok)
	assert.Equal(t, Splice{Offset: 0, Length: 0, NewValue: "123"}, aPrime)

	bPrime, ok := algebra.Rebase(b, a, ctx)
	assert.True(t, ok)
	assert.Equal(t, Splice{Offset: 3, Length: 0, NewValue: "456"}, bPrime)
}

func TestSplice_RebasePureInsertSameOffsetStrictConflicts(t *testing.T) {
	a := Splice{Offset: 0, Length: 0, NewValue: "123"}
	b := Splice{Offset: 0, Length: 0, NewValue: "456"}
	_, ok := algebra.Rebase(a, b, nil)
	assert.False(t, ok)
}

func TestSplice_ComposePartialOverlapNoFusion(t *testing.T) {
	a := Splice{Offset: 0, Length: 4, NewValue: "1234"}
	b := Splice{Offset: 2, Length: 4, NewValue: "CDEF"}
	_, ok := algebra.AtomicCompose(a, b)
	assert.False(t, ok)
}

func TestSplice_ComposeAbuttingAfterMerges(t *testing.T) {
	a := Splice{Offset: 0, Length: 4, NewValue: "1234"}
	b := Splice{Offset: 4, Length: 4, NewValue: "EFGH"}
	composed, ok := algebra.AtomicCompose(a, b)
	assert.True(t, ok)
	assert.Equal(t, Splice{Offset: 0, Length: 8, NewValue: "1234EFGH"}, composed)
}

func TestSplice_ComposeContainedFusesLocally(t *testing.T) {
	a := Splice{Offset: 0, Length: 1, NewValue: "1234"}
	b := Splice{Offset: 1, Length: 1, NewValue: "X"}
	composed, ok := algebra.AtomicCompose(a, b)
	assert.True(t, ok)
	assert.Equal(t, Splice{Offset: 0, Length: 1, NewValue: "1X34"}, composed)
}

func TestSplice_ComposeApplyImmediatelyAfterExtendsSplice(t *testing.T) {
	a := Splice{Offset: 0, Length: 0, NewValue: "12"}
	b := NewApply(2, values.Set{Value: "X"})
	composed, ok := algebra.AtomicCompose(a, b)
	assert.True(t, ok)
	assert.Equal(t, Splice{Offset: 0, Length: 1, NewValue: "12X"}, composed)

	out, err := composed.Apply("abc")
	assert.NoError(t, err)
	assert.Equal(t, "12Xbc", out)
}
