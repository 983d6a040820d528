package values

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/texere-ot/otcore/algebra"
)

func TestMath_ApplyAdd(t *testing.T) {
	out, err := Math{Operator: "add", Operand: int64(3)}.Apply(int64(5))
	assert.NoError(t, err)
	assert.Equal(t, int64(8), out)
}

func TestMath_ApplyRot(t *testing.T) {
	out, err := Math{Operator: "rot", Operand: RotOperand{Increment: 5, Modulus: 7}}.Apply(int64(4))
	assert.NoError(t, err)
	assert.Equal(t, int64(2), out) // (4+5) mod 7 == 2
}

func TestMath_ApplyBitwiseAnd(t *testing.T) {
	out, err := Math{Operator: "and", Operand: int64(0b110)}.Apply(int64(0b101))
	assert.NoError(t, err)
	assert.Equal(t, int64(0b100), out)
}

func TestMath_SimplifyDegenerateForms(t *testing.T) {
	assert.Equal(t, NoOp{}, Math{Operator: "add", Operand: int64(0)}.Simplify())
	assert.Equal(t, NoOp{}, Math{Operator: "mult", Operand: int64(1)}.Simplify())
	assert.Equal(t, Set{Value: int64(0)}, Math{Operator: "and", Operand: int64(0)}.Simplify())
}

func TestMath_InverseAdd(t *testing.T) {
	inv, err := Math{Operator: "add", Operand: int64(3)}.Inverse(int64(5))
	assert.NoError(t, err)
	assert.Equal(t, Math{Operator: "add", Operand: int64(-3)}, inv)
}

func TestMath_InverseAndOr(t *testing.T) {
	m := Math{Operator: "and", Operand: int64(0b110)}
	inv, err := m.Inverse(int64(0b101))
	assert.NoError(t, err)
	assert.Equal(t, Math{Operator: "or", Operand: int64(0b001)}, inv)

	post, err := m.Apply(int64(0b101))
	assert.NoError(t, err)
	restored, err := inv.Apply(post)
	assert.NoError(t, err)
	assert.Equal(t, int64(0b101), restored)
}

func TestMath_ComposeSameOperatorFuses(t *testing.T) {
	composed, ok := algebra.AtomicCompose(
		Math{Operator: "add", Operand: int64(3)},
		Math{Operator: "add", Operand: int64(4)},
	)
	assert.True(t, ok)
	assert.Equal(t, Math{Operator: "add", Operand: float64(7)}, composed)
}

func TestMath_ComposeAndThenOrBecomesSet(t *testing.T) {
	composed, ok := algebra.AtomicCompose(
		Math{Operator: "and", Operand: int64(5)},
		Math{Operator: "or", Operand: int64(5)},
	)
	assert.True(t, ok)
	assert.Equal(t, Set{Value: int64(5)}, composed)
}

func TestMath_RebaseSameOperatorCommutes(t *testing.T) {
	a := Math{Operator: "add", Operand: int64(3)}
	b := Math{Operator: "add", Operand: int64(4)}
	aPrime, ok := algebra.Rebase(a, b, nil)
	assert.True(t, ok)
	assert.Equal(t, a, aPrime)
}

func TestMath_RebaseDifferentOperatorConflictlessLiftsLowerRanked(t *testing.T) {
	ctx := &algebra.Context{Document: int64(2), Conflictless: true}
	add := Math{Operator: "add", Operand: int64(3)} // rank 0, lower
	mult := Math{Operator: "mult", Operand: int64(2)} // rank 1, higher

	addPrime, ok := algebra.Rebase(add, mult, ctx)
	assert.True(t, ok)
	assert.Equal(t, Set{Value: int64(10)}, addPrime) // (2+3)*2

	multPrime, ok := algebra.Rebase(mult, add, ctx)
	assert.True(t, ok)
	assert.Equal(t, mult, multPrime)
}

func TestMath_RebaseStrictModeConflictsAcrossOperators(t *testing.T) {
	add := Math{Operator: "add", Operand: int64(3)}
	mult := Math{Operator: "mult", Operand: int64(2)}
	_, ok := algebra.Rebase(add, mult, nil)
	assert.False(t, ok)
}
