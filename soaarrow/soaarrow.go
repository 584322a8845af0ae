package soaarrow

import (
	"errors"
	"fmt"
	"iter"
	"runtime"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/hupe1980/soa"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnsupportedType is returned for a field type without an Arrow mapping.
	ErrUnsupportedType = errors.New("soaarrow: unsupported field type")

	// ErrDuplicateColumn is returned when the index column name collides with
	// a schema field.
	ErrDuplicateColumn = errors.New("soaarrow: duplicate column name")
)

// Source is implemented by soa.StructureOfArrays and soa.StructureOfSparseMaps.
//
// Snapshot calls Get from several goroutines; the container must not be
// mutated until Snapshot returns.
type Source interface {
	Schema() soa.Schema
	Size() int
	Indexes() iter.Seq[int]
	Get(index int, field string) (any, error)
}

// DataType returns the Arrow type of a soa field type.
func DataType(t soa.Type) (arrow.DataType, error) {
	switch t {
	case soa.Int8:
		return arrow.PrimitiveTypes.Int8, nil
	case soa.Uint8:
		return arrow.PrimitiveTypes.Uint8, nil
	case soa.Int16:
		return arrow.PrimitiveTypes.Int16, nil
	case soa.Uint16:
		return arrow.PrimitiveTypes.Uint16, nil
	case soa.Int32:
		return arrow.PrimitiveTypes.Int32, nil
	case soa.Uint32:
		return arrow.PrimitiveTypes.Uint32, nil
	case soa.Float32:
		return arrow.PrimitiveTypes.Float32, nil
	case soa.Float64:
		return arrow.PrimitiveTypes.Float64, nil
	case soa.Bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case soa.String:
		return arrow.BinaryTypes.String, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, t)
	}
}

// Schema converts a soa schema into an Arrow schema with the same field
// order. Fields are not nullable.
func Schema(s soa.Schema) (*arrow.Schema, error) {
	return schemaWithIndex(s, "")
}

func schemaWithIndex(s soa.Schema, indexName string) (*arrow.Schema, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	fields := make([]arrow.Field, 0, len(s)+1)
	if indexName != "" {
		fields = append(fields, arrow.Field{Name: indexName, Type: arrow.PrimitiveTypes.Uint32})
	}
	for _, f := range s {
		if f.Name == indexName {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, f.Name)
		}
		dt, err := DataType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		fields = append(fields, arrow.Field{Name: f.Name, Type: dt})
	}
	return arrow.NewSchema(fields, nil), nil
}

// Snapshot copies every live record of src into a new Arrow record.
// The caller must Release the record.
func Snapshot(mem memory.Allocator, src Source) (arrow.Record, error) {
	return snapshot(mem, src, "")
}

// SnapshotWithIndex is like Snapshot but prepends a uint32 column named
// indexName holding each record's index.
func SnapshotWithIndex(mem memory.Allocator, src Source, indexName string) (arrow.Record, error) {
	if indexName == "" {
		return nil, fmt.Errorf("%w: empty index column name", ErrDuplicateColumn)
	}
	return snapshot(mem, src, indexName)
}

func snapshot(mem memory.Allocator, src Source, indexName string) (arrow.Record, error) {
	fields := src.Schema()
	schema, err := schemaWithIndex(fields, indexName)
	if err != nil {
		return nil, err
	}

	indexes := make([]int, 0, src.Size())
	for index := range src.Indexes() {
		indexes = append(indexes, index)
	}

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Reserve(len(indexes))

	offset := 0
	if indexName != "" {
		ib := b.Field(0).(*array.Uint32Builder)
		for _, index := range indexes {
			ib.Append(uint32(index))
		}
		offset = 1
	}

	// Get only reads container state, so columns are filled concurrently.
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range fields {
		builder := b.Field(offset + i)
		g.Go(func() error {
			for _, index := range indexes {
				v, err := src.Get(index, f.Name)
				if err != nil {
					return fmt.Errorf("index %d: %w", index, err)
				}
				if err := appendValue(builder, v); err != nil {
					return fmt.Errorf("index %d field %q: %w", index, f.Name, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return b.NewRecord(), nil
}

func appendValue(builder array.Builder, v any) error {
	switch b := builder.(type) {
	case *array.Int8Builder:
		return appendAs(b.Append, v)
	case *array.Uint8Builder:
		return appendAs(b.Append, v)
	case *array.Int16Builder:
		return appendAs(b.Append, v)
	case *array.Uint16Builder:
		return appendAs(b.Append, v)
	case *array.Int32Builder:
		return appendAs(b.Append, v)
	case *array.Uint32Builder:
		return appendAs(b.Append, v)
	case *array.Float32Builder:
		return appendAs(b.Append, v)
	case *array.Float64Builder:
		return appendAs(b.Append, v)
	case *array.BooleanBuilder:
		return appendAs(b.Append, v)
	case *array.StringBuilder:
		return appendAs(b.Append, v)
	default:
		return fmt.Errorf("%w: builder %T", ErrUnsupportedType, builder)
	}
}

func appendAs[T any](appendFn func(T), v any) error {
	x, ok := v.(T)
	if !ok {
		var zero T
		return fmt.Errorf("unexpected value %T, want %T", v, zero)
	}
	appendFn(x)
	return nil
}
