package soa

import "fmt"

// ArrayProvider is implemented by StructureOfArrays and StructureOfSparseMaps.
type ArrayProvider interface {
	Array(field string) (any, error)
}

// Column returns the live backing slice of field typed as []T.
//
// It fails with *ErrUnknownField for an unknown field and with ErrColumnType
// when T is not the element type of the field's column. The slice has the
// same aliasing and lifetime rules as Array.
func Column[T Scalar](c ArrayProvider, field string) ([]T, error) {
	raw, err := c.Array(field)
	if err != nil {
		return nil, err
	}
	col, ok := raw.([]T)
	if !ok {
		return nil, fmt.Errorf("%w: field %q holds %T, not %T", ErrColumnType, field, raw, col)
	}
	return col, nil
}
