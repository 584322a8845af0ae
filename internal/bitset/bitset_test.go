package bitset

import (
	"slices"
	"testing"
)

func TestBitSet(t *testing.T) {
	b := New(100)

	if b.Len() < 100 {
		t.Errorf("expected len >= 100, got %d", b.Len())
	}

	if !b.Set(10) {
		t.Errorf("expected first Set(10) to report a change")
	}
	if !b.Test(10) {
		t.Errorf("expected bit 10 to be set")
	}
	if b.Set(10) {
		t.Errorf("expected second Set(10) to report no change")
	}

	if b.Count() != 1 {
		t.Errorf("expected count 1, got %d", b.Count())
	}

	if !b.Unset(10) {
		t.Errorf("expected Unset(10) to report a change")
	}
	if b.Test(10) {
		t.Errorf("expected bit 10 to be unset")
	}
	if b.Unset(10) {
		t.Errorf("expected second Unset(10) to report no change")
	}

	b.Set(10)
	b.Set(20)
	b.Set(30)

	if b.Count() != 3 {
		t.Errorf("expected count 3, got %d", b.Count())
	}

	b.ClearAll()
	if b.Count() != 0 {
		t.Errorf("expected count 0 after clear, got %d", b.Count())
	}
	if b.Test(20) {
		t.Errorf("expected bit 20 to be unset after clear")
	}
}

func TestBitSet_Grow(t *testing.T) {
	b := New(10)
	b.Set(5)

	b.Grow(100000)
	if !b.Test(5) {
		t.Errorf("expected bit 5 to persist after grow")
	}

	// Set beyond the current table grows implicitly.
	b.Set(1 << 20)
	if !b.Test(1 << 20) {
		t.Errorf("expected bit %d to be set", 1<<20)
	}
	if b.Count() != 2 {
		t.Errorf("expected count 2, got %d", b.Count())
	}
}

func TestBitSet_OutOfRange(t *testing.T) {
	b := New(0)

	if b.Test(12345) {
		t.Errorf("expected unallocated bit to be unset")
	}
	if b.Unset(12345) {
		t.Errorf("expected Unset on unallocated bit to report no change")
	}
	if got := b.NextSetBit(0); got != -1 {
		t.Errorf("expected -1 on empty bitset, got %d", got)
	}
}

func TestBitSet_NextSetBit(t *testing.T) {
	b := New(0)
	b.Set(3)
	b.Set(64)
	b.Set(5000)

	tests := []struct {
		from uint64
		want int64
	}{
		{0, 3},
		{3, 3},
		{4, 64},
		{65, 5000},
		{5000, 5000},
		{5001, -1},
	}
	for _, tt := range tests {
		if got := b.NextSetBit(tt.from); got != tt.want {
			t.Errorf("NextSetBit(%d) = %d, want %d", tt.from, got, tt.want)
		}
	}
}

func TestBitSet_All(t *testing.T) {
	b := New(0)
	for _, i := range []uint64{9000, 1, 63, 64, 4095, 4096} {
		b.Set(i)
	}

	got := slices.Collect(b.All())
	want := []uint64{1, 63, 64, 4095, 4096, 9000}
	if !slices.Equal(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}

	// Early termination.
	var first []uint64
	for i := range b.All() {
		first = append(first, i)
		if len(first) == 2 {
			break
		}
	}
	if !slices.Equal(first, []uint64{1, 63}) {
		t.Errorf("expected early break after two bits, got %v", first)
	}
}

func BenchmarkBitSet_Test(b *testing.B) {
	bs := New(10000)
	for i := uint64(0); i < 10000; i += 2 {
		bs.Set(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bs.Test(uint64(i % 10000))
	}
}
