// Package container implements container data structures.
package container

const (
	// segmentBits determines the size of each segment.
	// 10 bits = 1024 items per segment.
	segmentBits = 10
	segmentSize = 1 << segmentBits
	segmentMask = segmentSize - 1
)

// SegmentedArray is a segmented array addressed by uint32 index.
// Segments are allocated on first write, so sparse index domains only pay
// for the segments they touch. It is not safe for concurrent use.
type SegmentedArray[T any] struct {
	segments []*Segment[T]
}

// Segment is a fixed-size array of items.
type Segment[T any] struct {
	items [segmentSize]T
}

// NewSegmentedArray creates a new SegmentedArray.
func NewSegmentedArray[T any]() *SegmentedArray[T] {
	return &SegmentedArray[T]{}
}

// Get returns the item at the given index.
// Returns zero value and false if the segment is not allocated.
func (sa *SegmentedArray[T]) Get(index uint32) (T, bool) {
	segIdx := int(index >> segmentBits)
	if segIdx >= len(sa.segments) || sa.segments[segIdx] == nil {
		var zero T
		return zero, false
	}
	return sa.segments[segIdx].items[index&segmentMask], true
}

// Set sets the item at the given index.
// It grows the array if necessary.
func (sa *SegmentedArray[T]) Set(index uint32, value T) {
	segIdx := int(index >> segmentBits)

	if segIdx >= len(sa.segments) {
		grown := make([]*Segment[T], segIdx+1)
		copy(grown, sa.segments)
		sa.segments = grown
	}
	if sa.segments[segIdx] == nil {
		sa.segments[segIdx] = &Segment[T]{}
	}
	sa.segments[segIdx].items[index&segmentMask] = value
}

// Unset resets the item at the given index to the zero value.
// Unallocated segments are left unallocated.
func (sa *SegmentedArray[T]) Unset(index uint32) {
	segIdx := int(index >> segmentBits)
	if segIdx >= len(sa.segments) || sa.segments[segIdx] == nil {
		return
	}
	var zero T
	sa.segments[segIdx].items[index&segmentMask] = zero
}

// Reset releases every segment.
func (sa *SegmentedArray[T]) Reset() {
	sa.segments = nil
}

// SegmentCount returns the number of allocated segments.
func (sa *SegmentedArray[T]) SegmentCount() int {
	n := 0
	for _, s := range sa.segments {
		if s != nil {
			n++
		}
	}
	return n
}
