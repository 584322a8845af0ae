// Package conv provides checked numeric conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow/underflow
// and silent truncation when a value is narrowed into a fixed-width column type.
//
// Use cases:
//   - Coercing caller-supplied record values (int, float64, ...) into the
//     element type of a numeric column
//   - Converting between Go's int (platform-dependent) and the uint32 keys
//     used by the occupancy bitmaps
package conv
