// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Numeric column buffers are allocated 64-byte aligned (AVX-512 friendly), so
// raw column views can be handed to SIMD or GPU upload code without copying.
package mem
