package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListIsUnmodifiable(t *testing.T) {
	l := NewList([]int32{1, 2, 3})
	require.Equal(t, 3, l.Len())
	require.Equal(t, int32(2), l.At(1))
	require.Panics(t, func() { l.Append(4) })
}

func TestListSliceIsDefensiveCopy(t *testing.T) {
	backing := []int32{1, 2}
	l := NewList(backing)
	got := l.Slice()
	got[0] = 99
	require.Equal(t, int32(1), l.At(0))
}

func TestSetIsUnmodifiable(t *testing.T) {
	s := NewSet(map[string]struct{}{"a": {}})
	require.True(t, s.Contains("a"))
	require.False(t, s.Contains("b"))
	require.Panics(t, func() { s.Add("b") })
}

func TestMapIsUnmodifiable(t *testing.T) {
	m := NewMap(map[string]int32{"a": 1})
	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, int32(1), v)
	require.Panics(t, func() { m.Set("b", 2) })
}

func TestCombineHashDeterministic(t *testing.T) {
	h1 := CombineHash(NewHash(), StringHash("x"))
	h2 := CombineHash(NewHash(), StringHash("x"))
	require.Equal(t, h1, h2)

	h3 := CombineHash(NewHash(), StringHash("y"))
	require.NotEqual(t, h1, h3)
}

func TestListHashWith(t *testing.T) {
	l := NewList([]int32{1, 2, 3})
	h := l.HashWith(func(v int32) int32 { return v })
	require.NotZero(t, h)
}

func TestListAbsentVsEmpty(t *testing.T) {
	var absent List[int32]
	require.True(t, absent.IsAbsent())
	require.Equal(t, "null", absent.String())

	empty := NewList([]int32{})
	require.False(t, empty.IsAbsent())
	require.Equal(t, "[]", empty.String())

	require.False(t, absent.Equal(empty))
	require.True(t, absent.Equal(List[int32]{}))
}
