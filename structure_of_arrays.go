package soa

import (
	"fmt"
	"iter"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/soa/internal/bitset"
	"github.com/hupe1980/soa/internal/conv"
)

// maxIndex is the largest addressable record index.
const maxIndex = math.MaxUint32

// StructureOfArrays stores records of a fixed schema as one contiguous column
// per field.
//
// Indexes of deleted records are recycled by later Add calls. Deleting the
// record at the end of the columns physically shrinks them, together with any
// run of recycled slots that becomes the new tail. Slots skipped by Upsert
// are not recycled and stop the shrinking, so Len can exceed the highest live
// index by such a run.
//
// A StructureOfArrays is not safe for concurrent use.
type StructureOfArrays struct {
	layout
	columns []denseColumn

	length   int
	used     *bitset.BitSet
	recycled *roaring.Bitmap

	logger  *Logger
	metrics MetricsCollector
}

// New creates a StructureOfArrays for schema.
//
// It fails with ErrEmptySchema, *ErrDuplicateField, *ErrUnknownType or
// *ErrInvalidDefault when the schema or options are unusable.
func New(schema Schema, optFns ...Option) (*StructureOfArrays, error) {
	o := applyOptions(optFns)

	l, err := newLayout(schema, o.defaults)
	if err != nil {
		return nil, err
	}

	columns := make([]denseColumn, len(schema))
	for i, f := range schema {
		info, _ := f.Type.info()
		columns[i] = info.newDense(o.initialCapacity)
	}

	s := &StructureOfArrays{
		layout:   l,
		columns:  columns,
		used:     bitset.New(uint64(o.initialCapacity)),
		recycled: roaring.New(),
		logger:   o.logger.WithContainer("dense"),
		metrics:  o.metricsCollector,
	}
	s.logger.LogCreate(schema)
	return s, nil
}

// Len returns the physical extent of the columns: one past the highest index
// that is still allocated.
func (s *StructureOfArrays) Len() int { return s.length }

// Size returns the number of live records.
func (s *StructureOfArrays) Size() int { return s.used.Count() }

// Schema returns a copy of the container's schema.
func (s *StructureOfArrays) Schema() Schema { return append(Schema(nil), s.schema...) }

// Fields returns the field names in schema order.
func (s *StructureOfArrays) Fields() []string { return s.schema.Names() }

// Defaults returns the default record used for missing fields.
func (s *StructureOfArrays) Defaults() Record { return s.defaultRecord() }

// Indexes yields every live index in ascending order.
//
// Deleting the yielded index during iteration is allowed; other mutations
// while iterating have unspecified results.
func (s *StructureOfArrays) Indexes() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range s.used.All() {
			if !yield(int(i)) {
				return
			}
		}
	}
}

// Has reports whether index holds a live record.
func (s *StructureOfArrays) Has(index int) bool {
	return index >= 0 && s.used.Test(uint64(index))
}

// Get returns the value of field for the record at index.
//
// It fails with *RangeError if index holds no live record and with
// *ErrUnknownField if field is not in the schema.
func (s *StructureOfArrays) Get(index int, field string) (any, error) {
	i, err := s.field(field)
	if err != nil {
		return nil, err
	}
	if !s.Has(index) {
		return nil, &RangeError{Index: index}
	}
	v, _ := s.columns[i].get(index)
	return v, nil
}

// TryGet is like Get but reports an unused index as ok == false instead of an
// error. Other errors are returned unchanged.
func (s *StructureOfArrays) TryGet(index int, field string) (any, bool, error) {
	v, err := s.Get(index, field)
	if err != nil {
		if isRangeError(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

// Add inserts records, reusing freed indexes before appending, and returns
// the index assigned to each record in input order.
//
// Records are written one by one. If a record is rejected, the records before
// it stay written and their indexes are returned together with the error.
func (s *StructureOfArrays) Add(records ...Record) ([]int, error) {
	reused := s.takeRecycled(len(records))
	indexes := make([]int, 0, len(records))

	for k, index := range reused {
		if err := s.stageRecord(records[k], 0); err != nil {
			s.metrics.RecordAdd(len(indexes), len(indexes), err)
			s.logger.LogBatchFailure("add", len(indexes), len(records), err)
			return indexes, err
		}
		for _, col := range s.columns {
			col.commitSet(index)
		}
		s.used.Set(uint64(index))
		s.recycled.Remove(uint32(index))
		indexes = append(indexes, index)
	}

	if len(reused) == len(records) {
		s.metrics.RecordAdd(len(indexes), len(reused), nil)
		return indexes, nil
	}

	pushed, err := s.push(records[len(reused):])
	indexes = append(indexes, pushed...)
	s.metrics.RecordAdd(len(indexes), len(reused), err)
	if err != nil {
		s.logger.LogBatchFailure("add", len(indexes), len(records), err)
	}
	return indexes, err
}

// AddWithDefaultValues adds n records holding the default values.
func (s *StructureOfArrays) AddWithDefaultValues(n int) ([]int, error) {
	return s.Add(make([]Record, max(n, 0))...)
}

// Push appends records at the end of the columns and returns their indexes.
// Freed indexes are not reused.
//
// Values are buffered per field and appended with one push per column. If a
// record is rejected, the records before it are still appended and their
// indexes are returned together with the error.
func (s *StructureOfArrays) Push(records ...Record) ([]int, error) {
	indexes, err := s.push(records)
	s.metrics.RecordPush(len(indexes), err)
	if err != nil {
		s.logger.LogBatchFailure("push", len(indexes), len(records), err)
	}
	return indexes, err
}

// PushWithDefaultValues appends n records holding the default values.
func (s *StructureOfArrays) PushWithDefaultValues(n int) ([]int, error) {
	return s.Push(make([]Record, max(n, 0))...)
}

func (s *StructureOfArrays) push(records []Record) ([]int, error) {
	if int64(s.length)+int64(len(records))-1 > maxIndex {
		return nil, fmt.Errorf("%w: push of %d records at length %d", ErrIndexOutOfRange, len(records), s.length)
	}

	staged := 0
	var err error
	for _, r := range records {
		if err = s.stageRecord(r, staged); err != nil {
			break
		}
		staged++
	}

	for _, col := range s.columns {
		col.commitPush()
	}

	indexes := make([]int, staged)
	for k := range indexes {
		indexes[k] = s.length
		s.used.Set(uint64(s.length))
		s.length++
	}
	return indexes, err
}

// Upsert writes record at index whether or not index is live. Writing past
// the end extends Len to index+1; the skipped indexes hold no record.
func (s *StructureOfArrays) Upsert(index int, record Record) error {
	err := s.upsert(index, record)
	s.metrics.RecordUpsert(err)
	return err
}

func (s *StructureOfArrays) upsert(index int, record Record) error {
	key, err := conv.IntToUint32(index)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexOutOfRange, err)
	}
	if err := s.stageRecord(record, 0); err != nil {
		return err
	}

	for _, col := range s.columns {
		col.commitSet(index)
	}
	if index >= s.length {
		s.length = index + 1
	}
	s.used.Set(uint64(index))
	s.recycled.Remove(key)
	return nil
}

// Update writes a single field of the live record at index.
//
// It fails with *RangeError if index holds no live record, including indexes
// below Len that were never written.
func (s *StructureOfArrays) Update(index int, field string, value any) error {
	err := s.update(index, field, value)
	s.metrics.RecordUpdate(err)
	return err
}

func (s *StructureOfArrays) update(index int, field string, value any) error {
	i, err := s.field(field)
	if err != nil {
		return err
	}
	if !s.Has(index) {
		return &RangeError{Index: index}
	}
	col := s.columns[i]
	if err := col.stage(value); err != nil {
		return s.mismatch(i, value, err)
	}
	col.commitSet(index)
	return nil
}

// TryUpdate is like Update but reports an unused index as false instead of an
// error. Other errors are returned unchanged.
func (s *StructureOfArrays) TryUpdate(index int, field string, value any) (bool, error) {
	if err := s.Update(index, field, value); err != nil {
		if isRangeError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the record at index.
//
// Deleting index Len-1 behaves like Pop, even when that slot was skipped by
// Upsert and holds no record. Any other live index is marked for reuse;
// numeric columns keep the stale value and reference columns clear the slot.
// Deleting any other unused index is a no-op.
func (s *StructureOfArrays) Delete(index int) {
	if index == s.length-1 {
		s.Pop()
		return
	}
	if !s.Has(index) {
		return
	}

	s.used.Unset(uint64(index))
	s.recycled.Add(uint32(index))
	for _, col := range s.columns {
		col.release(index)
	}
	s.metrics.RecordDelete(0)
}

// Pop removes the slot at Len-1, whether or not it holds a record, and then
// keeps removing the tail while it is a recycled index. The cascade stops at
// a slot skipped by Upsert, since such a slot was never freed.
func (s *StructureOfArrays) Pop() {
	if s.length == 0 {
		return
	}

	s.used.Unset(uint64(s.length - 1))
	s.popSlot()

	compacted := 1
	for s.length > 0 && s.recycled.Contains(uint32(s.length-1)) {
		s.recycled.Remove(uint32(s.length - 1))
		s.popSlot()
		compacted++
	}

	if compacted > 1 {
		s.logger.LogCompaction(compacted-1, s.length)
	}
	s.metrics.RecordDelete(compacted)
}

func (s *StructureOfArrays) popSlot() {
	for _, col := range s.columns {
		col.pop()
	}
	s.length--
}

// Clear removes every record and empties every column.
func (s *StructureOfArrays) Clear() {
	s.logger.LogClear(s.Size())

	for _, col := range s.columns {
		col.clear()
	}
	s.length = 0
	s.used.ClearAll()
	s.recycled.Clear()
	s.metrics.RecordClear()
}

// Array returns the live backing slice of field: []int8, []uint8, []int16,
// []uint16, []int32, []uint32, []float32, []float64, []bool or []string,
// with Len elements.
//
// The slice aliases the column. Writes through it are visible to Get but do
// not change occupancy, so only write elements of live indexes. The slice is
// invalidated by any call that resizes the column (Add, Push, Upsert, Delete,
// Pop, Clear).
func (s *StructureOfArrays) Array(field string) (any, error) {
	i, err := s.field(field)
	if err != nil {
		return nil, err
	}
	return s.columns[i].raw(), nil
}

// takeRecycled returns up to n recycled indexes in ascending order.
func (s *StructureOfArrays) takeRecycled(n int) []int {
	if n <= 0 || s.recycled.IsEmpty() {
		return nil
	}
	out := make([]int, 0, min(n, int(s.recycled.GetCardinality())))
	it := s.recycled.Iterator()
	for it.HasNext() && len(out) < n {
		out = append(out, int(it.Next()))
	}
	return out
}

// stageRecord stages one value per column for r. staged is the number of
// records already pending; on failure every column is truncated back to it.
func (s *StructureOfArrays) stageRecord(r Record, staged int) error {
	if err := s.unknownField(r); err != nil {
		return err
	}
	for i, f := range s.schema {
		v, ok := r[f.Name]
		if !ok {
			v = s.defaults[i]
		}
		if err := s.columns[i].stage(v); err != nil {
			for _, col := range s.columns {
				col.truncate(staged)
			}
			return s.mismatch(i, v, err)
		}
	}
	return nil
}
