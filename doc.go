// Package soa provides columnar record containers for Go.
//
// A container is built once from a Schema, an ordered list of fields with a
// scalar Type each, and stores every field in its own contiguous column
// instead of one object per record. Columns of fixed-width numeric fields are
// 64-byte aligned typed slices that can be handed to numeric code directly.
//
// # Quick Start
//
//	schema := soa.Schema{
//	    {Name: "x", Type: soa.Float32},
//	    {Name: "y", Type: soa.Float32},
//	    {Name: "name", Type: soa.String},
//	}
//
//	points, _ := soa.New(schema)
//	ids, _ := points.Add(soa.Record{"x": 1, "y": 2, "name": "a"})
//
//	x, _ := points.Get(ids[0], "x")          // float32(1)
//	xs, _ := soa.Column[float32](points, "x") // []float32{1}
//
// # Containers
//
// Two containers share the same record-level contract:
//
//   - StructureOfArrays keeps dense columns. Push appends in O(1) amortized
//     time with one append per column for a whole batch, Add reuses indexes
//     freed by Delete, and deleting at the tail shrinks the columns through
//     any run of recycled slots. Len is the column length, Size the number of
//     live records.
//   - StructureOfSparseMaps keeps one sparse map per field. Delete is a true
//     O(1) removal that moves the last entry into the freed position, so the
//     backing arrays never contain holes. GetInternalIndex translates a
//     record index into a backing-array position.
//
// # Records and Values
//
// A Record maps field names to values. Fields missing from a record take
// their default value (zero unless overridden with WithDefaults); unknown
// names are rejected with *ErrUnknownField. Numeric fields accept any Go
// number that is exactly representable in the field's type, so
// Record{"x": 1} works for a Float32 field. Get always returns the column's
// own type.
//
// # Errors
//
// Access to an index without a live record fails with *RangeError, which
// matches ErrIndexNotUsed. TryGet, TryUpdate and TryGetInternalIndex report
// that case as an absent result and return every other error unchanged.
//
// Single-record operations either apply fully or not at all. Add and Push
// write records one by one: when a record is rejected, the earlier records
// stay written and their indexes are returned together with the error.
//
// # Raw Columns
//
// Array and Column return the live backing slice of a field without
// copying. Writes through it are visible to Get, but only indexes that
// already hold a live record may be written, and the slice goes stale as
// soon as an operation resizes the column.
//
// Containers are not safe for concurrent use.
package soa
