package bitset

import (
	"iter"
	"math/bits"
)

const (
	// segmentBits determines the size of each segment.
	// 12 bits = 4096 bits per segment.
	segmentBits = 12
	segmentSize = 1 << segmentBits
	segmentMask = segmentSize - 1

	// wordsPerSegment is the number of uint64 words in a segment.
	wordsPerSegment = segmentSize / 64
)

// BitSegment is a fixed-size segment of the bitset.
type BitSegment [wordsPerSegment]uint64

// BitSet is a segmented bitset. It is not safe for concurrent use.
type BitSet struct {
	segments []*BitSegment
	count    int
}

// New creates a new BitSet with room for size bits.
// The bitset grows on demand, so size is only a hint.
func New(size uint64) *BitSet {
	b := &BitSet{}
	b.Grow(size)
	return b
}

// Grow ensures the bitset can hold at least size bits without reallocating
// its segment table.
func (b *BitSet) Grow(size uint64) {
	if size == 0 {
		return
	}
	targetIdx := int((size - 1) >> segmentBits)
	if targetIdx < len(b.segments) {
		return
	}
	grown := make([]*BitSegment, targetIdx+1)
	copy(grown, b.segments)
	b.segments = grown
}

// Len returns the number of bits the segment table currently spans.
func (b *BitSet) Len() uint64 {
	return uint64(len(b.segments)) << segmentBits
}

// Set sets the bit at the given index, growing the bitset if necessary.
// It returns true if the bit was not set before.
func (b *BitSet) Set(i uint64) bool {
	segIdx := int(i >> segmentBits)
	if segIdx >= len(b.segments) {
		b.Grow(i + 1)
	}
	seg := b.segments[segIdx]
	if seg == nil {
		seg = new(BitSegment)
		b.segments[segIdx] = seg
	}

	offset := i & segmentMask
	wordIdx := offset / 64
	bitMask := uint64(1) << (offset % 64)

	if seg[wordIdx]&bitMask != 0 {
		return false
	}
	seg[wordIdx] |= bitMask
	b.count++
	return true
}

// Unset clears the bit at the given index.
// It returns true if the bit was set before.
func (b *BitSet) Unset(i uint64) bool {
	seg := b.segment(i)
	if seg == nil {
		return false
	}

	offset := i & segmentMask
	wordIdx := offset / 64
	bitMask := uint64(1) << (offset % 64)

	if seg[wordIdx]&bitMask == 0 {
		return false
	}
	seg[wordIdx] &^= bitMask
	b.count--
	return true
}

// Test returns true if the bit at the given index is set.
func (b *BitSet) Test(i uint64) bool {
	seg := b.segment(i)
	if seg == nil {
		return false
	}
	offset := i & segmentMask
	return seg[offset/64]&(uint64(1)<<(offset%64)) != 0
}

func (b *BitSet) segment(i uint64) *BitSegment {
	segIdx := i >> segmentBits
	if segIdx >= uint64(len(b.segments)) {
		return nil
	}
	return b.segments[segIdx]
}

// NextSetBit returns the index of the next set bit starting from i (inclusive).
// Returns -1 if no bit is set at or after i.
func (b *BitSet) NextSetBit(i uint64) int64 {
	segIdx := int(i >> segmentBits)
	if segIdx >= len(b.segments) {
		return -1
	}

	// 1. Check the word containing i
	offset := i & segmentMask
	wordIdx := int(offset / 64)
	bitOffset := offset % 64

	if seg := b.segments[segIdx]; seg != nil {
		val := seg[wordIdx] &^ ((uint64(1) << bitOffset) - 1)
		if val != 0 {
			return int64(uint64(segIdx)*segmentSize + uint64(wordIdx)*64 + uint64(bits.TrailingZeros64(val)))
		}

		// 2. Check remaining words in the current segment
		for w := wordIdx + 1; w < wordsPerSegment; w++ {
			if val := seg[w]; val != 0 {
				return int64(uint64(segIdx)*segmentSize + uint64(w)*64 + uint64(bits.TrailingZeros64(val)))
			}
		}
	}

	// 3. Check remaining segments
	for s := segIdx + 1; s < len(b.segments); s++ {
		seg := b.segments[s]
		if seg == nil {
			continue
		}
		for w := 0; w < wordsPerSegment; w++ {
			if val := seg[w]; val != 0 {
				return int64(uint64(s)*segmentSize + uint64(w)*64 + uint64(bits.TrailingZeros64(val)))
			}
		}
	}

	return -1
}

// All yields every set bit in ascending order.
//
// Unsetting the bit just yielded is allowed; any other modification while
// the sequence is being consumed has unspecified results.
func (b *BitSet) All() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for s, seg := range b.segments {
			if seg == nil {
				continue
			}
			base := uint64(s) * segmentSize
			for w, val := range seg {
				for val != 0 {
					tz := bits.TrailingZeros64(val)
					if !yield(base + uint64(w)*64 + uint64(tz)) {
						return
					}
					val &= val - 1
				}
			}
		}
	}
}

// Count returns the number of set bits.
func (b *BitSet) Count() int {
	return b.count
}

// ClearAll clears all bits and releases the segments.
func (b *BitSet) ClearAll() {
	b.segments = nil
	b.count = 0
}
