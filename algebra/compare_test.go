package algebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare_TypeLattice(t *testing.T) {
	assert.True(t, Compare(nil, false) < 0)
	assert.True(t, Compare(false, true) < 0)
	assert.True(t, Compare(true, 1.0) < 0)
	assert.True(t, Compare(1.0, "a") < 0)
	assert.True(t, Compare("z", []any{}) < 0)
}

func TestCompare_Numbers(t *testing.T) {
	assert.True(t, Compare(1, 2) < 0)
	assert.Equal(t, 0, Compare(2, 2.0))
	assert.True(t, Compare(3.5, 2) > 0)
}

func TestCompare_StringsUTF16(t *testing.T) {
	assert.True(t, Compare("123", "456") < 0)
	assert.Equal(t, 0, Compare("abc", "abc"))
	assert.True(t, Compare("ab", "abc") < 0)
}

func TestCompare_Arrays(t *testing.T) {
	assert.True(t, Compare([]any{1, 2}, []any{1, 3}) < 0)
	assert.True(t, Compare([]any{1}, []any{1, 2}) < 0)
	assert.Equal(t, 0, Compare([]any{1, "a"}, []any{1, "a"}))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(1, 1.0))
	assert.False(t, Equal(1, "1"))
	assert.True(t, Equal("abc", "abc"))
}

func TestUTF16_SliceAndLength(t *testing.T) {
	assert.Equal(t, 3, UTF16Length("abc"))
	assert.Equal(t, "bc", UTF16Slice("abc", 1, 3))
	assert.Equal(t, "", UTF16Slice("abc", 3, 3))
}
