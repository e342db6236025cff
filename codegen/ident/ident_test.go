package ident

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExported(t *testing.T) {
	require.Equal(t, "UserId", Exported("user_id"))
	require.Equal(t, "UserId", Exported("userId"))
	require.Equal(t, "Name", Exported("Name"))
	require.Equal(t, "ABTest", Exported("a_b_test"))
}

func TestAllocatorDeduplicates(t *testing.T) {
	a := NewAllocator()
	require.Equal(t, "item", a.Alloc("item"))
	require.Equal(t, "item1", a.Alloc("item"))
	require.Equal(t, "item2", a.Alloc("item"))
}

func TestAllocatorEscapesReservedWords(t *testing.T) {
	a := NewAllocator()
	require.Equal(t, "map_", a.Alloc("map"))
}

func TestAllocatorKeepsSeparateHintsIndependent(t *testing.T) {
	a := NewAllocator()
	require.Equal(t, "k", a.Alloc("k"))
	require.Equal(t, "v", a.Alloc("v"))
	require.Equal(t, "k1", a.Alloc("k"))
}
