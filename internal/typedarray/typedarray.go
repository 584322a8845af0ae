package typedarray

import (
	"github.com/hupe1980/soa/internal/mem"
)

// minCapacity is the capacity allocated on the first growth of an empty array.
const minCapacity = 16

// Array is a growable buffer of T. It is not safe for concurrent use.
type Array[T mem.Scalar] struct {
	data []T
}

// New creates an empty Array with room for capacity elements.
func New[T mem.Scalar](capacity int) *Array[T] {
	return &Array[T]{data: mem.Alloc[T](0, capacity)}
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return len(a.data) }

// Cap returns the number of elements the array can hold before reallocating.
func (a *Array[T]) Cap() int { return cap(a.data) }

// Get returns the element at i. ok is false when i is out of bounds.
func (a *Array[T]) Get(i int) (v T, ok bool) {
	if i < 0 || i >= len(a.data) {
		return v, false
	}
	return a.data[i], true
}

// Set writes v at i, growing the array to i+1 elements if needed.
// Negative indexes are ignored.
func (a *Array[T]) Set(i int, v T) {
	if i < 0 {
		return
	}
	if i >= len(a.data) {
		a.Resize(i + 1)
	}
	a.data[i] = v
}

// Push appends values to the end of the array with at most one reallocation.
func (a *Array[T]) Push(values ...T) {
	a.reserve(len(a.data) + len(values))
	a.data = append(a.data, values...)
}

// Pop removes and returns the last element. ok is false when the array is empty.
func (a *Array[T]) Pop() (v T, ok bool) {
	n := len(a.data)
	if n == 0 {
		return v, false
	}
	v = a.data[n-1]
	a.data = a.data[:n-1]
	return v, true
}

// Resize sets the length to n. New elements are zeroed.
func (a *Array[T]) Resize(n int) {
	if n < 0 {
		n = 0
	}
	old := len(a.data)
	if n <= old {
		a.data = a.data[:n]
		return
	}
	a.reserve(n)
	a.data = a.data[:n]
	clear(a.data[old:n])
}

// Raw returns the live backing slice. Writes through it are visible to Get.
// The slice is only valid until the next call that grows the array.
func (a *Array[T]) Raw() []T { return a.data }

// Clear removes all elements but keeps the allocation.
func (a *Array[T]) Clear() {
	a.data = a.data[:0]
}

func (a *Array[T]) reserve(n int) {
	if n <= cap(a.data) {
		return
	}
	newCap := max(n, 2*cap(a.data), minCapacity)
	grown := mem.Alloc[T](len(a.data), newCap)
	copy(grown, a.data)
	a.data = grown
}
