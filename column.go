package soa

import (
	"github.com/hupe1980/soa/internal/bitset"
	"github.com/hupe1980/soa/internal/conv"
	"github.com/hupe1980/soa/internal/typedarray"
)

// denseColumn is the storage of one field in a StructureOfArrays.
//
// Writes are two-phase: stage converts and buffers values in the column's
// element type, and a commit writes the buffered values. This lets a record
// be validated against every column before any column is modified, and lets
// a batch of records reach each column as a single push.
type denseColumn interface {
	// stage converts v and appends it to the pending buffer.
	stage(v any) error
	// truncate drops pending values beyond the first n.
	truncate(n int)
	// commitPush appends all pending values to the end of the column.
	commitPush()
	// commitSet writes the single pending value at i, growing the column to
	// i+1 elements if needed.
	commitSet(i int)

	get(i int) (any, bool)
	pop()
	// release drops the value at i after the slot was freed.
	release(i int)
	len() int
	raw() any
	clear()
}

// numericColumn stores fixed-width values in an aligned typed array. Freed
// slots keep their stale value.
type numericColumn[T Numeric] struct {
	data    *typedarray.Array[T]
	pending []T
}

func newNumericColumn[T Numeric](capacity int) denseColumn {
	return &numericColumn[T]{data: typedarray.New[T](capacity)}
}

func (c *numericColumn[T]) stage(v any) error {
	x, err := conv.To[T](v)
	if err != nil {
		return err
	}
	c.pending = append(c.pending, x)
	return nil
}

func (c *numericColumn[T]) truncate(n int) {
	if n < len(c.pending) {
		c.pending = c.pending[:n]
	}
}

func (c *numericColumn[T]) commitPush() {
	c.data.Push(c.pending...)
	c.pending = c.pending[:0]
}

func (c *numericColumn[T]) commitSet(i int) {
	c.data.Set(i, c.pending[0])
	c.pending = c.pending[:0]
}

func (c *numericColumn[T]) get(i int) (any, bool) {
	v, ok := c.data.Get(i)
	if !ok {
		return nil, false
	}
	return v, true
}

func (c *numericColumn[T]) pop() { c.data.Pop() }
func (c *numericColumn[T]) release(int) {}
func (c *numericColumn[T]) len() int { return c.data.Len() }
func (c *numericColumn[T]) raw() any { return c.data.Raw() }

func (c *numericColumn[T]) clear() {
	c.data.Clear()
	c.pending = c.pending[:0]
}

// referenceColumn stores bool or string values in a plain slice. A presence
// bitset distinguishes written slots from holes; freed slots are zeroed so the
// old value can be collected.
type referenceColumn[T Reference] struct {
	data    []T
	present *bitset.BitSet
	pending []T
}

func newReferenceColumn[T Reference](capacity int) denseColumn {
	return &referenceColumn[T]{
		data:    make([]T, 0, capacity),
		present: bitset.New(uint64(capacity)),
	}
}

func (c *referenceColumn[T]) stage(v any) error {
	x, err := assertType[T](v)
	if err != nil {
		return err
	}
	c.pending = append(c.pending, x)
	return nil
}

func (c *referenceColumn[T]) truncate(n int) {
	if n < len(c.pending) {
		clear(c.pending[n:])
		c.pending = c.pending[:n]
	}
}

func (c *referenceColumn[T]) commitPush() {
	for k := range c.pending {
		c.present.Set(uint64(len(c.data) + k))
	}
	c.data = append(c.data, c.pending...)
	c.truncate(0)
}

func (c *referenceColumn[T]) commitSet(i int) {
	if i >= len(c.data) {
		c.data = append(c.data, make([]T, i+1-len(c.data))...)
	}
	c.data[i] = c.pending[0]
	c.present.Set(uint64(i))
	c.truncate(0)
}

func (c *referenceColumn[T]) get(i int) (any, bool) {
	if i < 0 || i >= len(c.data) || !c.present.Test(uint64(i)) {
		return nil, false
	}
	return c.data[i], true
}

func (c *referenceColumn[T]) pop() {
	n := len(c.data)
	if n == 0 {
		return
	}
	c.release(n - 1)
	c.data = c.data[:n-1]
}

func (c *referenceColumn[T]) release(i int) {
	var zero T
	c.data[i] = zero
	c.present.Unset(uint64(i))
}

func (c *referenceColumn[T]) len() int { return len(c.data) }
func (c *referenceColumn[T]) raw() any { return c.data }

func (c *referenceColumn[T]) clear() {
	clear(c.data)
	c.data = c.data[:0]
	c.present.ClearAll()
	c.truncate(0)
}
