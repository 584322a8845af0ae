package sparsemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_SetGet(t *testing.T) {
	m := NewTyped[int8](0)

	_, ok := m.Get(0)
	assert.False(t, ok)

	m.Set(10, 1)
	m.Set(3, 2)
	m.Set(10, 5) // overwrite in place

	assert.Equal(t, 2, m.Len())
	v, ok := m.Get(10)
	require.True(t, ok)
	assert.Equal(t, int8(5), v)

	assert.Equal(t, []uint32{10, 3}, m.Keys())
	assert.Equal(t, []int8{5, 2}, m.Values())
}

func TestMap_DeleteSwapsLast(t *testing.T) {
	m := New[string]()
	m.Set(0, "a")
	m.Set(1, "b")
	m.Set(2, "c")

	require.True(t, m.Delete(0))
	assert.False(t, m.Delete(0))

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []uint32{2, 1}, m.Keys())
	assert.Equal(t, []string{"c", "b"}, m.Values())

	pos, ok := m.InternalIndex(2)
	require.True(t, ok)
	assert.Equal(t, 0, pos)

	_, ok = m.InternalIndex(0)
	assert.False(t, ok)
	assert.False(t, m.Has(0))
}

func TestMap_DeleteLast(t *testing.T) {
	m := New[string]()
	m.Set(7, "x")
	raw := m.Values()

	require.True(t, m.Delete(7))
	assert.Equal(t, 0, m.Len())
	// The freed slot no longer references the old string.
	assert.Equal(t, "", raw[0])
}

func TestMap_InternalIndexAfterReuse(t *testing.T) {
	m := NewTyped[int8](0)
	m.Set(0, 0)
	m.Set(1, 1)
	m.Delete(0)
	m.Set(0, 2)
	m.Set(2, 3)

	tests := []struct {
		key     uint32
		wantPos int
		wantVal int8
	}{
		{0, 1, 2},
		{1, 0, 1},
		{2, 2, 3},
	}
	for _, tt := range tests {
		pos, ok := m.InternalIndex(tt.key)
		require.True(t, ok)
		assert.Equal(t, tt.wantPos, pos)
		assert.Equal(t, tt.wantVal, m.Values()[pos])
	}
}

func TestMap_Clear(t *testing.T) {
	m := New[bool]()
	m.Set(1, true)
	m.Set(1000000, true)

	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Has(1))
	assert.False(t, m.Has(1000000))

	m.Set(1, false)
	v, ok := m.Get(1)
	require.True(t, ok)
	assert.False(t, v)
}

func TestMap_WritesThroughValues(t *testing.T) {
	m := NewTyped[float32](4)
	m.Set(42, 1.5)

	m.Values()[0] = 2.5

	v, _ := m.Get(42)
	assert.Equal(t, float32(2.5), v)
}
