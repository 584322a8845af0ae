// Package sparsemap implements a sparse map from uint32 keys to values.
//
// Values are kept densely packed in a backing store, in insertion order
// except that Delete moves the last entry into the freed slot. A segmented
// key index maps every key to its position in the store, so Get, Set and
// Delete are O(1) and the backing store never contains holes.
//
// Two store flavours exist:
//   - NewTyped: fixed-width numerics in an aligned typedarray.Array
//   - New: any element type in a plain slice; freed slots are zeroed so
//     references are dropped
package sparsemap
