// Package typedarray implements a growable, 64-byte aligned buffer of
// fixed-width numeric elements.
//
// An Array behaves like a Go slice with explicit Push/Pop/Resize and exposes
// its live backing slice through Raw. Growth doubles the capacity, so Push is
// amortized O(1). Any call that grows the buffer may move it, which leaves
// previously returned Raw slices pointing at the old allocation.
package typedarray
