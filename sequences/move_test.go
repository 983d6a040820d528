package sequences

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/texere-ot/otcore/algebra"
	"github.com/texere-ot/otcore/values"
)

func mathAdd3() algebra.Operation {
	return values.Math{Operator: "add", Operand: int64(3)}
}

func TestMove_ApplyForward(t *testing.T) {
	out, err := Move{Offset: 0, Count: 1, NewOffset: 3}.Apply("123")
	assert.NoError(t, err)
	assert.Equal(t, "231", out)
}

func TestMove_ApplyBackward(t *testing.T) {
	out, err := Move{Offset: 2, Count: 1, NewOffset: 0}.Apply("123")
	assert.NoError(t, err)
	assert.Equal(t, "312", out)
}

func TestMove_SimplifyNoOpWhenStationary(t *testing.T) {
	assert.Equal(t, values.NoOp{}, Move{Offset: 1, Count: 2, NewOffset: 1}.Simplify())
	assert.Equal(t, values.NoOp{}, Move{Offset: 1, Count: 2, NewOffset: 3}.Simplify())
}

func TestMove_InverseRoundTrips(t *testing.T) {
	doc := "123"
	mv := Move{Offset: 0, Count: 1, NewOffset: 3}
	out, err := mv.Apply(doc)
	assert.NoError(t, err)

	inv, err := mv.Inverse(doc)
	assert.NoError(t, err)
	restored, err := inv.Apply(out)
	assert.NoError(t, err)
	assert.Equal(t, doc, restored)
}

func TestApply_RebaseAgainstInsertShiftsIndex(t *testing.T) {
	// Apply(555, Math add 3) rebased against a pure insertion at 555
	// shifts forward by the inserted length.
	applyPatch := NewApply(555, mathAdd3())
	splice := Splice{Offset: 555, Length: 0, NewValue: []any{5}}

	patchPrime, ok := algebra.Rebase(applyPatch, splice, nil)
	assert.True(t, ok)
	assert.Equal(t, NewApply(556, mathAdd3()), patchPrime)
}

func TestMove_RebaseAgainstSplice(t *testing.T) {
	mv := Move{Offset: 10, Count: 2, NewOffset: 20}
	spl := Splice{Offset: 0, Length: 0, NewValue: "AB"}

	mvPrime, ok := algebra.Rebase(mv, spl, nil)
	assert.True(t, ok)
	assert.Equal(t, Move{Offset: 12, Count: 2, NewOffset: 22}, mvPrime)
}
