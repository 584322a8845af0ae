package sparsemap

import (
	"github.com/hupe1980/soa/internal/container"
	"github.com/hupe1980/soa/internal/mem"
	"github.com/hupe1980/soa/internal/typedarray"
)

// Map is a sparse map from uint32 keys to T. It is not safe for concurrent use.
type Map[T any] struct {
	keys   []uint32
	values Store[T]
	// index stores position+1 for every live key; 0 means absent.
	index *container.SegmentedArray[uint32]
}

// New creates a Map backed by a plain slice.
func New[T any]() *Map[T] {
	return NewWithStore[T](&sliceStore[T]{})
}

// NewTyped creates a Map backed by an aligned typed array.
func NewTyped[T mem.Scalar](capacity int) *Map[T] {
	return NewWithStore[T](typedarray.New[T](capacity))
}

// NewWithStore creates a Map on top of an empty store.
func NewWithStore[T any](store Store[T]) *Map[T] {
	return &Map[T]{
		values: store,
		index:  container.NewSegmentedArray[uint32](),
	}
}

// Len returns the number of keys.
func (m *Map[T]) Len() int { return len(m.keys) }

// Has reports whether key is present.
func (m *Map[T]) Has(key uint32) bool {
	_, ok := m.InternalIndex(key)
	return ok
}

// InternalIndex returns the position of key inside the backing store.
func (m *Map[T]) InternalIndex(key uint32) (int, bool) {
	pos, _ := m.index.Get(key)
	if pos == 0 {
		return 0, false
	}
	return int(pos - 1), true
}

// Get returns the value stored for key.
func (m *Map[T]) Get(key uint32) (v T, ok bool) {
	pos, ok := m.InternalIndex(key)
	if !ok {
		return v, false
	}
	return m.values.Get(pos)
}

// Set stores v for key, appending a new slot when key is absent.
func (m *Map[T]) Set(key uint32, v T) {
	if pos, ok := m.InternalIndex(key); ok {
		m.values.Set(pos, v)
		return
	}
	m.keys = append(m.keys, key)
	m.values.Push(v)
	m.index.Set(key, uint32(len(m.keys)))
}

// Delete removes key in O(1) by moving the last entry into its slot.
// It returns false when key was absent.
func (m *Map[T]) Delete(key uint32) bool {
	pos, ok := m.InternalIndex(key)
	if !ok {
		return false
	}

	last := len(m.keys) - 1
	if pos != last {
		movedKey := m.keys[last]
		movedValue, _ := m.values.Get(last)
		m.keys[pos] = movedKey
		m.values.Set(pos, movedValue)
		m.index.Set(movedKey, uint32(pos+1))
	}

	m.keys = m.keys[:last]
	m.values.Pop()
	m.index.Unset(key)
	return true
}

// Keys returns the live keys in backing-store order. The slice must not be
// modified and is only valid until the next mutation.
func (m *Map[T]) Keys() []uint32 { return m.keys }

// Values returns the live backing slice of values. Element i belongs to
// Keys()[i]. Writes through it are visible to Get; the slice is only valid
// until the next call that adds or removes a key.
func (m *Map[T]) Values() []T { return m.values.Raw() }

// Clear removes every key.
func (m *Map[T]) Clear() {
	m.keys = m.keys[:0]
	m.values.Clear()
	m.index.Reset()
}
