// Package soaarrow exports the live records of a soa container as an
// Apache Arrow record.
//
// The export is an in-memory snapshot: one Arrow column per schema field, one
// row per live record in the container's Indexes order. It copies values and
// does not keep a reference to the container.
//
//	mem := memory.NewGoAllocator()
//	rec, err := soaarrow.SnapshotWithIndex(mem, points, "index")
//	if err != nil { ... }
//	defer rec.Release()
package soaarrow
