package soa

import (
	"fmt"

	"github.com/hupe1980/soa/internal/conv"
)

// Type identifies the scalar element type of a schema field.
type Type uint8

const (
	// Invalid is the zero Type and is rejected by every constructor.
	Invalid Type = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64
	Bool
	String
)

// Numeric is the set of Go types backing fixed-width numeric columns.
type Numeric interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | float32 | float64
}

// Reference is the set of Go types backing reference columns.
type Reference interface {
	bool | string
}

// Scalar is the set of Go types a column can hold.
type Scalar interface {
	Numeric | Reference
}

// typeInfo is the registry entry of a Type.
type typeInfo struct {
	name      string
	zero      any
	numeric   bool
	convert   func(v any) (any, error)
	newDense  func(capacity int) denseColumn
	newSparse func(capacity int) sparseColumn
}

var registry = [...]typeInfo{
	Int8:    numericType[int8]("int8"),
	Uint8:   numericType[uint8]("uint8"),
	Int16:   numericType[int16]("int16"),
	Uint16:  numericType[uint16]("uint16"),
	Int32:   numericType[int32]("int32"),
	Uint32:  numericType[uint32]("uint32"),
	Float32: numericType[float32]("float32"),
	Float64: numericType[float64]("float64"),
	Bool:    referenceType[bool]("bool"),
	String:  referenceType[string]("string"),
}

func numericType[T Numeric](name string) typeInfo {
	return typeInfo{
		name:    name,
		zero:    T(0),
		numeric: true,
		convert: func(v any) (any, error) {
			x, err := conv.To[T](v)
			return x, err
		},
		newDense:  newNumericColumn[T],
		newSparse: newSparseNumericColumn[T],
	}
}

func referenceType[T Reference](name string) typeInfo {
	var zero T
	return typeInfo{
		name: name,
		zero: zero,
		convert: func(v any) (any, error) {
			x, err := assertType[T](v)
			return x, err
		},
		newDense:  newReferenceColumn[T],
		newSparse: newSparseReferenceColumn[T],
	}
}

func (t Type) info() (*typeInfo, bool) {
	if t == Invalid || int(t) >= len(registry) {
		return nil, false
	}
	return &registry[t], true
}

// Valid reports whether t is a supported type tag.
func (t Type) Valid() bool {
	_, ok := t.info()
	return ok
}

// IsNumeric reports whether t is stored in a fixed-width numeric column.
func (t Type) IsNumeric() bool {
	info, ok := t.info()
	return ok && info.numeric
}

// DefaultValue returns the zero value of t: 0 of the matching Go type for
// numerics, false for Bool and "" for String.
func (t Type) DefaultValue() (any, bool) {
	info, ok := t.info()
	if !ok {
		return nil, false
	}
	return info.zero, true
}

// String returns the Go name of the type.
func (t Type) String() string {
	if info, ok := t.info(); ok {
		return info.name
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// assertType converts v to T without coercion.
func assertType[T Reference](v any) (T, error) {
	x, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("expected %T, got %T", zero, v)
	}
	return x, nil
}
