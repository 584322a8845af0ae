package soa

import (
	"github.com/hupe1980/soa/internal/conv"
	"github.com/hupe1980/soa/internal/sparsemap"
)

// sparseColumn is the storage of one field in a StructureOfSparseMaps.
// It follows the same stage/commit protocol as denseColumn for single values.
type sparseColumn interface {
	stage(v any) error
	discard()
	commitSet(key uint32)

	get(key uint32) (any, bool)
	remove(key uint32)
	internalIndex(key uint32) (int, bool)
	keys() []uint32
	raw() any
	clear()
}

type mapColumn[T Scalar] struct {
	m       *sparsemap.Map[T]
	convert func(any) (T, error)
	pending T
}

func newSparseNumericColumn[T Numeric](capacity int) sparseColumn {
	return &mapColumn[T]{
		m:       sparsemap.NewTyped[T](capacity),
		convert: conv.To[T],
	}
}

func newSparseReferenceColumn[T Reference](int) sparseColumn {
	return &mapColumn[T]{
		m:       sparsemap.New[T](),
		convert: assertType[T],
	}
}

func (c *mapColumn[T]) stage(v any) error {
	x, err := c.convert(v)
	if err != nil {
		return err
	}
	c.pending = x
	return nil
}

func (c *mapColumn[T]) discard() {
	var zero T
	c.pending = zero
}

func (c *mapColumn[T]) commitSet(key uint32) {
	c.m.Set(key, c.pending)
	c.discard()
}

func (c *mapColumn[T]) get(key uint32) (any, bool) {
	v, ok := c.m.Get(key)
	if !ok {
		return nil, false
	}
	return v, true
}

func (c *mapColumn[T]) remove(key uint32) { c.m.Delete(key) }

func (c *mapColumn[T]) internalIndex(key uint32) (int, bool) { return c.m.InternalIndex(key) }

func (c *mapColumn[T]) keys() []uint32 { return c.m.Keys() }

func (c *mapColumn[T]) raw() any { return c.m.Values() }

func (c *mapColumn[T]) clear() {
	c.m.Clear()
	c.discard()
}
