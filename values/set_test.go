package values

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/texere-ot/otcore/algebra"
)

func TestSet_Apply(t *testing.T) {
	out, err := Set{Value: 5}.Apply("irrelevant")
	assert.NoError(t, err)
	assert.Equal(t, 5, out)
}

func TestSet_Inverse(t *testing.T) {
	inv, err := Set{Value: 5}.Inverse("old")
	assert.NoError(t, err)
	assert.Equal(t, Set{Value: "old"}, inv)
}

func TestSet_RebaseSameValueConverges(t *testing.T) {
	a, b := Set{Value: 5}, Set{Value: 5}
	aPrime, ok := algebra.Rebase(a, b, nil)
	assert.True(t, ok)
	assert.Equal(t, NoOp{}, aPrime)
}

func TestSet_RebaseStrictConflict(t *testing.T) {
	a, b := Set{Value: 5}, Set{Value: 6}
	_, ok := algebra.Rebase(a, b, nil)
	assert.False(t, ok)
}

func TestSet_RebaseConflictlessTieBreak(t *testing.T) {
	ctx := &algebra.Context{Conflictless: true}
	lower, higher := Set{Value: 5}, Set{Value: 6}

	lowerPrime, ok := algebra.Rebase(lower, higher, ctx)
	assert.True(t, ok)
	assert.Equal(t, NoOp{}, lowerPrime)

	higherPrime, ok := algebra.Rebase(higher, lower, ctx)
	assert.True(t, ok)
	assert.Equal(t, higher, higherPrime)
}

func TestSet_ComposeAbsorbsAnyFollowingOp(t *testing.T) {
	composed, ok := algebra.AtomicCompose(Set{Value: 5}, Math{Operator: "add", Operand: int64(3)})
	assert.True(t, ok)
	assert.Equal(t, Set{Value: int64(8)}, composed)
}
