// Package bitset provides a segmented, growable bitset for single-owner use.
//
// Architecture:
//   - Segmented design: 512-byte segments (64 uint64 words = 4096 bits each)
//   - Lazy allocation: segments allocated on first Set
//   - Population count maintained incrementally, so Count is O(1)
//
// Used internally for:
//   - Occupancy tracking of dense record indexes
//   - Presence tracking of reference-column slots (holes after deletion)
package bitset
