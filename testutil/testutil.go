package testutil

import (
	"fmt"
	"iter"
	"math"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/soa"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// Value returns a random value of type t in the Go type Get returns for it.
func (r *RNG) Value(t soa.Type) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.valueLocked(t)
}

// valueLocked is the internal implementation (caller must hold lock).
func (r *RNG) valueLocked(t soa.Type) any {
	switch t {
	case soa.Int8:
		return int8(r.rand.Intn(math.MaxUint8+1) + math.MinInt8)
	case soa.Uint8:
		return uint8(r.rand.Intn(math.MaxUint8 + 1))
	case soa.Int16:
		return int16(r.rand.Intn(math.MaxUint16+1) + math.MinInt16)
	case soa.Uint16:
		return uint16(r.rand.Intn(math.MaxUint16 + 1))
	case soa.Int32:
		return int32(r.rand.Uint32())
	case soa.Uint32:
		return r.rand.Uint32()
	case soa.Float32:
		return r.rand.Float32()*2 - 1
	case soa.Float64:
		return r.rand.NormFloat64()
	case soa.Bool:
		return r.rand.Intn(2) == 1
	case soa.String:
		b := make([]byte, r.rand.Intn(12))
		for i := range b {
			b[i] = byte('a' + r.rand.Intn(26))
		}
		return string(b)
	default:
		panic(fmt.Sprintf("testutil: unsupported type %v", t))
	}
}

// Record generates a record that sets every field of schema.
func (r *RNG) Record(schema soa.Schema) soa.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := make(soa.Record, len(schema))
	for _, f := range schema {
		rec[f.Name] = r.valueLocked(f.Type)
	}
	return rec
}

// Records generates n records for schema.
func (r *RNG) Records(schema soa.Schema, n int) []soa.Record {
	out := make([]soa.Record, n)
	for i := range out {
		out[i] = r.Record(schema)
	}
	return out
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Small values are the most likely; s controls the skew (s > 1).
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 1 {
		return 0
	}
	z := rand.NewZipf(r.rand, s, 1, uint64(n-1))
	return int(z.Uint64())
}

// Container is the read side shared by both soa containers.
type Container interface {
	Size() int
	Has(index int) bool
	Get(index int, field string) (any, error)
	Indexes() iter.Seq[int]
	Fields() []string
}

// Model is a map-backed mirror of a container's live records.
type Model struct {
	records map[int]soa.Record
}

// NewModel creates an empty Model.
func NewModel() *Model {
	return &Model{records: make(map[int]soa.Record)}
}

// Put records rec (merged over defaults) at index.
func (m *Model) Put(index int, rec soa.Record, defaults soa.Record) {
	full := defaults.Clone()
	if full == nil {
		full = make(soa.Record, len(rec))
	}
	for k, v := range rec {
		full[k] = v
	}
	m.records[index] = full
}

// PutAll records recs at indexes pairwise. Extra records without an index
// are ignored, matching a partially applied batch.
func (m *Model) PutAll(indexes []int, recs []soa.Record, defaults soa.Record) {
	for i, index := range indexes {
		m.Put(index, recs[i], defaults)
	}
}

// Set overwrites one field of the record at index.
func (m *Model) Set(index int, field string, v any) {
	m.records[index][field] = v
}

// Has reports whether index holds a record.
func (m *Model) Has(index int) bool {
	_, ok := m.records[index]
	return ok
}

// Delete removes index.
func (m *Model) Delete(index int) {
	delete(m.records, index)
}

// Clear removes every record.
func (m *Model) Clear() {
	clear(m.records)
}

// Len returns the number of records.
func (m *Model) Len() int {
	return len(m.records)
}

// Indexes returns the live indexes in ascending order.
func (m *Model) Indexes() []int {
	out := make([]int, 0, len(m.records))
	for i := range m.records {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Pick returns a random live index, or -1 when the model is empty.
func (m *Model) Pick(r *RNG) int {
	idx := m.Indexes()
	if len(idx) == 0 {
		return -1
	}
	return idx[r.Intn(len(idx))]
}

// Check compares c with the model and returns the first difference.
// Values are compared with ==, so records must hold values of the Go type
// Get returns.
func (m *Model) Check(c Container) error {
	if c.Size() != len(m.records) {
		return fmt.Errorf("size: got %d, want %d", c.Size(), len(m.records))
	}

	var got []int
	for i := range c.Indexes() {
		got = append(got, i)
	}
	slices.Sort(got)
	if want := m.Indexes(); !slices.Equal(got, want) {
		return fmt.Errorf("indexes: got %v, want %v", got, want)
	}

	for index, rec := range m.records {
		if !c.Has(index) {
			return fmt.Errorf("index %d: missing", index)
		}
		for _, field := range c.Fields() {
			v, err := c.Get(index, field)
			if err != nil {
				return fmt.Errorf("index %d field %q: %w", index, field, err)
			}
			if v != rec[field] {
				return fmt.Errorf("index %d field %q: got %v (%T), want %v (%T)", index, field, v, v, rec[field], rec[field])
			}
		}
	}
	return nil
}
