package soa

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySchema is returned when a container is built from a schema
	// without fields.
	ErrEmptySchema = errors.New("schema should have at least one field")

	// ErrIndexNotUsed is matched by every RangeError.
	ErrIndexNotUsed = errors.New("index is not used")

	// ErrIndexOutOfRange is returned when an index cannot be addressed at all
	// (negative, or beyond the uint32 index space).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrColumnType is returned by Column when the requested element type does
	// not match the field's column.
	ErrColumnType = errors.New("column element type mismatch")
)

// RangeError reports access to an index that holds no live record.
//
// It matches ErrIndexNotUsed via errors.Is.
type RangeError struct {
	Index int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("index %d is not used", e.Index)
}

func (e *RangeError) Unwrap() error { return ErrIndexNotUsed }

// ErrUnknownField indicates a field name that is not part of the schema.
type ErrUnknownField struct {
	Field string
}

func (e *ErrUnknownField) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// ErrDuplicateField indicates a schema that declares the same field twice.
type ErrDuplicateField struct {
	Field string
}

func (e *ErrDuplicateField) Error() string {
	return fmt.Sprintf("duplicate field %q", e.Field)
}

// ErrUnknownType indicates a schema field with an unsupported type tag.
type ErrUnknownType struct {
	Field string
	Type  Type
}

func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("field %q has unknown type %d", e.Field, uint8(e.Type))
}

// ErrTypeMismatch indicates a value that cannot be stored in a field.
//
// The conversion error (if any) can be accessed via errors.Unwrap.
type ErrTypeMismatch struct {
	Field string
	Type  Type
	Value any
	cause error
}

func (e *ErrTypeMismatch) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("field %q (%s): cannot store %T(%v): %v", e.Field, e.Type, e.Value, e.Value, e.cause)
	}
	return fmt.Sprintf("field %q (%s): cannot store %T(%v)", e.Field, e.Type, e.Value, e.Value)
}

func (e *ErrTypeMismatch) Unwrap() error { return e.cause }

// ErrInvalidDefault indicates a default value override that does not fit the
// schema.
//
// The underlying error can be accessed via errors.Unwrap.
type ErrInvalidDefault struct {
	Field string
	cause error
}

func (e *ErrInvalidDefault) Error() string {
	return fmt.Sprintf("invalid default for field %q: %v", e.Field, e.cause)
}

func (e *ErrInvalidDefault) Unwrap() error { return e.cause }

// isRangeError reports whether err is the "index is not used" kind that the
// Try* variants convert into an absent result.
func isRangeError(err error) bool {
	return errors.Is(err, ErrIndexNotUsed)
}
