package mem

import (
	"unsafe"
)

// Alignment is the byte alignment required for AVX-512 (64 bytes).
const Alignment = 64

// Scalar is the set of pointer-free element types that may live in an aligned
// buffer.
type Scalar interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	// Allocate size + alignment to ensure we can find an aligned offset
	totalSize := size + Alignment
	buf := make([]byte, totalSize)

	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	addr := uintptr(ptr)
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}

// Alloc allocates a zeroed slice of T with the given length and capacity whose
// first element is 64-byte aligned. Returns nil when capacity is not positive.
func Alloc[T Scalar](length, capacity int) []T {
	if capacity < length {
		capacity = length
	}
	if capacity <= 0 {
		return nil
	}

	var zero T
	byteSlice := AllocAligned(capacity * int(unsafe.Sizeof(zero)))

	// Safe because AllocAligned guarantees 64-byte alignment, which satisfies
	// the alignment of every Scalar type.
	ptr := unsafe.Pointer(&byteSlice[0])                //nolint:gosec // unsafe is required for memory alignment
	return unsafe.Slice((*T)(ptr), capacity)[:length] //nolint:gosec // unsafe is required for memory alignment
}
