package typedarray

import (
	"testing"
	"unsafe"

	"github.com/hupe1980/soa/internal/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray_PushGetPop(t *testing.T) {
	a := New[int8](0)
	assert.Equal(t, 0, a.Len())

	a.Push(1, 2, 3)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, []int8{1, 2, 3}, a.Raw())

	v, ok := a.Get(1)
	require.True(t, ok)
	assert.Equal(t, int8(2), v)

	_, ok = a.Get(3)
	assert.False(t, ok)
	_, ok = a.Get(-1)
	assert.False(t, ok)

	v, ok = a.Pop()
	require.True(t, ok)
	assert.Equal(t, int8(3), v)
	assert.Equal(t, 2, a.Len())

	a.Pop()
	a.Pop()
	_, ok = a.Pop()
	assert.False(t, ok)
}

func TestArray_SetGrows(t *testing.T) {
	a := New[uint32](0)
	a.Set(4, 7)

	assert.Equal(t, 5, a.Len())
	assert.Equal(t, []uint32{0, 0, 0, 0, 7}, a.Raw())

	a.Set(-1, 9)
	assert.Equal(t, 5, a.Len())
}

func TestArray_ResizeZeroesReusedCapacity(t *testing.T) {
	a := New[float32](8)
	a.Push(1, 2, 3, 4)
	a.Resize(1)
	a.Resize(4)

	assert.Equal(t, []float32{1, 0, 0, 0}, a.Raw())

	a.Resize(-3)
	assert.Equal(t, 0, a.Len())
}

func TestArray_RawAliasesStorage(t *testing.T) {
	a := New[int16](4)
	a.Push(10, 20)

	raw := a.Raw()
	raw[0] = 99

	v, _ := a.Get(0)
	assert.Equal(t, int16(99), v)
}

func TestArray_GrowthKeepsAlignment(t *testing.T) {
	a := New[float64](0)
	for i := 0; i < 1000; i++ {
		a.Push(float64(i))
	}

	assert.Equal(t, 1000, a.Len())
	assert.GreaterOrEqual(t, a.Cap(), 1000)
	addr := uintptr(unsafe.Pointer(&a.Raw()[0]))
	assert.Equal(t, uintptr(0), addr%mem.Alignment)

	v, ok := a.Get(999)
	require.True(t, ok)
	assert.Equal(t, float64(999), v)
}

func TestArray_Clear(t *testing.T) {
	a := New[uint8](0)
	a.Push(1, 2, 3)
	c := a.Cap()

	a.Clear()
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, c, a.Cap())
}

func BenchmarkArray_Push(b *testing.B) {
	for i := 0; i < b.N; i++ {
		a := New[uint32](0)
		for j := uint32(0); j < 1024; j++ {
			a.Push(j)
		}
	}
}
