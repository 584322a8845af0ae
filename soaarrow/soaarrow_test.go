package soaarrow

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/hupe1980/soa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schema = soa.Schema{
	{Name: "id", Type: soa.Uint32},
	{Name: "x", Type: soa.Float32},
	{Name: "level", Type: soa.Int8},
	{Name: "alive", Type: soa.Bool},
	{Name: "name", Type: soa.String},
}

func TestSchema(t *testing.T) {
	s, err := Schema(schema)
	require.NoError(t, err)

	require.Equal(t, len(schema), s.NumFields())
	assert.Equal(t, "id", s.Field(0).Name)
	assert.Equal(t, arrow.PrimitiveTypes.Uint32, s.Field(0).Type)
	assert.Equal(t, arrow.PrimitiveTypes.Float32, s.Field(1).Type)
	assert.Equal(t, arrow.FixedWidthTypes.Boolean, s.Field(3).Type)
	assert.Equal(t, arrow.BinaryTypes.String, s.Field(4).Type)
	assert.False(t, s.Field(4).Nullable)

	_, err = Schema(nil)
	assert.ErrorIs(t, err, soa.ErrEmptySchema)

	_, err = DataType(soa.Invalid)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSnapshot(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	c, err := soa.New(schema)
	require.NoError(t, err)
	_, err = c.Add(
		soa.Record{"id": 10, "x": 0.5, "level": -1, "alive": true, "name": "a"},
		soa.Record{"id": 11, "x": 1.5, "level": 2, "alive": false, "name": "b"},
		soa.Record{"id": 12, "x": 2.5, "level": 3, "alive": true, "name": "c"},
	)
	require.NoError(t, err)
	c.Delete(1)

	rec, err := Snapshot(mem, c)
	require.NoError(t, err)
	defer rec.Release()

	require.Equal(t, int64(2), rec.NumRows())
	require.Equal(t, int64(len(schema)), rec.NumCols())

	assert.Equal(t, []uint32{10, 12}, rec.Column(0).(*array.Uint32).Uint32Values())
	assert.Equal(t, []float32{0.5, 2.5}, rec.Column(1).(*array.Float32).Float32Values())
	assert.Equal(t, []int8{-1, 3}, rec.Column(2).(*array.Int8).Int8Values())

	alive := rec.Column(3).(*array.Boolean)
	assert.True(t, alive.Value(0))
	assert.True(t, alive.Value(1))

	names := rec.Column(4).(*array.String)
	assert.Equal(t, "a", names.Value(0))
	assert.Equal(t, "c", names.Value(1))
}

func TestSnapshotWithIndex(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	c, err := soa.NewSparse(schema)
	require.NoError(t, err)
	_, err = c.Add(soa.Record{"id": 1}, soa.Record{"id": 2}, soa.Record{"id": 3})
	require.NoError(t, err)
	c.Delete(0)

	rec, err := SnapshotWithIndex(mem, c, "index")
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, "index", rec.ColumnName(0))
	assert.Equal(t, "id", rec.ColumnName(1))
	// Rows follow the sparse container's internal order.
	assert.Equal(t, []uint32{2, 1}, rec.Column(0).(*array.Uint32).Uint32Values())
	assert.Equal(t, []uint32{3, 2}, rec.Column(1).(*array.Uint32).Uint32Values())

	_, err = SnapshotWithIndex(mem, c, "name")
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = SnapshotWithIndex(mem, c, "")
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestSnapshotEmpty(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	c, err := soa.New(schema)
	require.NoError(t, err)

	rec, err := Snapshot(mem, c)
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, int64(0), rec.NumRows())
	assert.Equal(t, int64(len(schema)), rec.NumCols())
}
