package soa

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/soa/internal/conv"
)

// StructureOfSparseMaps stores records of a fixed schema as one sparse map per
// field, keyed by record index.
//
// Unlike StructureOfArrays there is no contiguous index range to keep
// compact: Delete removes the record from every map in O(1) by moving the
// last entry of each backing array into the freed position. Freed indexes are
// reused by later Add calls.
//
// A StructureOfSparseMaps is not safe for concurrent use.
type StructureOfSparseMaps struct {
	layout
	columns []sparseColumn

	// next is the smallest index never handed out by Add or Upsert.
	next     uint64
	used     *roaring.Bitmap
	recycled *roaring.Bitmap

	logger  *Logger
	metrics MetricsCollector
}

// NewSparse creates a StructureOfSparseMaps for schema.
//
// It fails like New when the schema or options are unusable.
func NewSparse(schema Schema, optFns ...Option) (*StructureOfSparseMaps, error) {
	o := applyOptions(optFns)

	l, err := newLayout(schema, o.defaults)
	if err != nil {
		return nil, err
	}

	columns := make([]sparseColumn, len(schema))
	for i, f := range schema {
		info, _ := f.Type.info()
		columns[i] = info.newSparse(o.initialCapacity)
	}

	s := &StructureOfSparseMaps{
		layout:   l,
		columns:  columns,
		used:     roaring.New(),
		recycled: roaring.New(),
		logger:   o.logger.WithContainer("sparse"),
		metrics:  o.metricsCollector,
	}
	s.logger.LogCreate(schema)
	return s, nil
}

// Size returns the number of live records.
func (s *StructureOfSparseMaps) Size() int { return int(s.used.GetCardinality()) }

// Schema returns a copy of the container's schema.
func (s *StructureOfSparseMaps) Schema() Schema { return append(Schema(nil), s.schema...) }

// Fields returns the field names in schema order.
func (s *StructureOfSparseMaps) Fields() []string { return s.schema.Names() }

// Defaults returns the default record used for missing fields.
func (s *StructureOfSparseMaps) Defaults() Record { return s.defaultRecord() }

// Indexes yields every live index exactly once, in the order of the first
// field's backing array. The order changes as records are deleted.
//
// Mutating the container during iteration has unspecified results.
func (s *StructureOfSparseMaps) Indexes() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, key := range s.columns[0].keys() {
			if !yield(int(key)) {
				return
			}
		}
	}
}

// Has reports whether index holds a live record.
func (s *StructureOfSparseMaps) Has(index int) bool {
	key, ok := s.key(index)
	return ok && s.used.Contains(key)
}

// Get returns the value of field for the record at index.
//
// It fails with *RangeError if index holds no live record and with
// *ErrUnknownField if field is not in the schema.
func (s *StructureOfSparseMaps) Get(index int, field string) (any, error) {
	i, err := s.field(field)
	if err != nil {
		return nil, err
	}
	if !s.Has(index) {
		return nil, &RangeError{Index: index}
	}
	v, _ := s.columns[i].get(uint32(index))
	return v, nil
}

// TryGet is like Get but reports an unused index as ok == false instead of an
// error. Other errors are returned unchanged.
func (s *StructureOfSparseMaps) TryGet(index int, field string) (any, bool, error) {
	v, err := s.Get(index, field)
	if err != nil {
		if isRangeError(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

// GetInternalIndex returns the position of index inside the backing arrays
// returned by Array. All fields of a record share that position.
//
// It fails with *RangeError if index holds no live record. The position
// changes when other records are deleted.
func (s *StructureOfSparseMaps) GetInternalIndex(index int) (int, error) {
	if !s.Has(index) {
		return 0, &RangeError{Index: index}
	}
	pos, _ := s.columns[0].internalIndex(uint32(index))
	return pos, nil
}

// TryGetInternalIndex is like GetInternalIndex but reports an unused index
// as ok == false.
func (s *StructureOfSparseMaps) TryGetInternalIndex(index int) (int, bool) {
	pos, err := s.GetInternalIndex(index)
	if err != nil {
		return 0, false
	}
	return pos, true
}

// Add inserts records, reusing freed indexes before handing out new ones,
// and returns the index assigned to each record in input order.
//
// If a record is rejected, the records before it stay written and their
// indexes are returned together with the error.
func (s *StructureOfSparseMaps) Add(records ...Record) ([]int, error) {
	indexes := make([]int, 0, len(records))
	recycled := 0

	for _, r := range records {
		key, reused, err := s.nextKey()
		if err == nil {
			err = s.stageRecord(r)
		}
		if err != nil {
			s.metrics.RecordAdd(len(indexes), recycled, err)
			s.logger.LogBatchFailure("add", len(indexes), len(records), err)
			return indexes, err
		}

		s.commit(key)
		if reused {
			s.recycled.Remove(key)
			recycled++
		} else if uint64(key) >= s.next {
			s.next = uint64(key) + 1
		}
		indexes = append(indexes, int(key))
	}

	s.metrics.RecordAdd(len(indexes), recycled, nil)
	return indexes, nil
}

// AddWithDefaultValues adds n records holding the default values.
func (s *StructureOfSparseMaps) AddWithDefaultValues(n int) ([]int, error) {
	return s.Add(make([]Record, max(n, 0))...)
}

// nextKey returns the index the next Add will use: the smallest recycled
// index, or a fresh one. Once fresh indexes above every upserted index are
// exhausted, it falls back to the smallest unused index.
func (s *StructureOfSparseMaps) nextKey() (key uint32, reused bool, err error) {
	if !s.recycled.IsEmpty() {
		return s.recycled.Minimum(), true, nil
	}
	if s.next <= maxIndex {
		return uint32(s.next), false, nil
	}
	if free, ok := s.firstUnused(); ok {
		return free, false, nil
	}
	return 0, false, fmt.Errorf("%w: no free index left", ErrIndexOutOfRange)
}

// firstUnused returns the smallest index not in used. It walks the used set,
// so it is only consulted after next has run past maxIndex.
func (s *StructureOfSparseMaps) firstUnused() (uint32, bool) {
	var want uint64
	it := s.used.Iterator()
	for it.HasNext() {
		if uint64(it.Next()) != want {
			break
		}
		want++
	}
	if want > maxIndex {
		return 0, false
	}
	return uint32(want), true
}

// Upsert writes record at index whether or not index is live.
//
// Add continues after the highest upserted index, so indexes skipped by an
// upsert are filled by Add only after the indexes above it are used up; from
// then on Add takes the smallest unused index.
func (s *StructureOfSparseMaps) Upsert(index int, record Record) error {
	err := s.upsert(index, record)
	s.metrics.RecordUpsert(err)
	return err
}

func (s *StructureOfSparseMaps) upsert(index int, record Record) error {
	key, err := conv.IntToUint32(index)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexOutOfRange, err)
	}
	if err := s.stageRecord(record); err != nil {
		return err
	}

	s.commit(key)
	s.recycled.Remove(key)
	if uint64(key) >= s.next {
		s.next = uint64(key) + 1
	}
	return nil
}

// Update writes a single field of the live record at index.
func (s *StructureOfSparseMaps) Update(index int, field string, value any) error {
	err := s.update(index, field, value)
	s.metrics.RecordUpdate(err)
	return err
}

func (s *StructureOfSparseMaps) update(index int, field string, value any) error {
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
	col.commitSet(uint32(index))
	return nil
}

// TryUpdate is like Update but reports an unused index as false instead of an
// error. Other errors are returned unchanged.
func (s *StructureOfSparseMaps) TryUpdate(index int, field string, value any) (bool, error) {
	if err := s.Update(index, field, value); err != nil {
		if isRangeError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the record at index from every field. Deleting an unused
// index is a no-op.
func (s *StructureOfSparseMaps) Delete(index int) {
	if !s.Has(index) {
		return
	}
	key := uint32(index)
	for _, col := range s.columns {
		col.remove(key)
	}
	s.used.Remove(key)
	s.recycled.Add(key)
	s.metrics.RecordDelete(0)
}

// Clear removes every record and resets index assignment.
func (s *StructureOfSparseMaps) Clear() {
	s.logger.LogClear(s.Size())

	for _, col := range s.columns {
		col.clear()
	}
	s.next = 0
	s.used.Clear()
	s.recycled.Clear()
	s.metrics.RecordClear()
}

// Array returns the live backing slice of field, one element per live record
// in internal-index order. See StructureOfArrays.Array for the element types.
//
// The slice aliases the field's map. Writes through it are visible to Get.
// It is invalidated by Add, Upsert of a new index, Delete and Clear.
func (s *StructureOfSparseMaps) Array(field string) (any, error) {
	i, err := s.field(field)
	if err != nil {
		return nil, err
	}
	return s.columns[i].raw(), nil
}

func (s *StructureOfSparseMaps) key(index int) (uint32, bool) {
	if index < 0 || int64(index) > maxIndex {
		return 0, false
	}
	return uint32(index), true
}

func (s *StructureOfSparseMaps) stageRecord(r Record) error {
	if err := s.unknownField(r); err != nil {
		return err
	}
	for i, f := range s.schema {
		v, ok := r[f.Name]
		if !ok {
			v = s.defaults[i]
		}
		if err := s.columns[i].stage(v); err != nil {
			for _, col := range s.columns[:i] {
				col.discard()
			}
			return s.mismatch(i, v, err)
		}
	}
	return nil
}

func (s *StructureOfSparseMaps) commit(key uint32) {
	for _, col := range s.columns {
		col.commitSet(key)
	}
	s.used.Add(key)
}
