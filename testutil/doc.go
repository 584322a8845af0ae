// Package testutil provides testing utilities for soa containers.
//
// This package is intended for use in tests and benchmarks only.
// It provides a deterministic random source for records and operation
// sequences, and a map-backed Model that mirrors the observable state of a
// container.
//
// # Random Records
//
//	rng := testutil.NewRNG(seed)
//	rec := rng.Record(schema)      // every field set, values in range
//	recs := rng.Records(schema, 100)
//
// # Model Checking
//
//	m := testutil.NewModel()
//	ids, _ := c.Add(recs...)
//	m.PutAll(ids, recs)
//	if err := m.Check(c); err != nil { ... }
package testutil
