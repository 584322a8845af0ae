package sparsemap

// Store is the dense backing storage of a Map.
type Store[T any] interface {
	Len() int
	Get(i int) (T, bool)
	Set(i int, v T)
	Push(values ...T)
	Pop() (T, bool)
	Raw() []T
	Clear()
}

// sliceStore is a Store for arbitrary element types. Removed slots are zeroed.
type sliceStore[T any] struct {
	data []T
}

func (s *sliceStore[T]) Len() int { return len(s.data) }

func (s *sliceStore[T]) Get(i int) (v T, ok bool) {
	if i < 0 || i >= len(s.data) {
		return v, false
	}
	return s.data[i], true
}

func (s *sliceStore[T]) Set(i int, v T) {
	if i < 0 {
		return
	}
	if i >= len(s.data) {
		s.data = append(s.data, make([]T, i+1-len(s.data))...)
	}
	s.data[i] = v
}

func (s *sliceStore[T]) Push(values ...T) {
	s.data = append(s.data, values...)
}

func (s *sliceStore[T]) Pop() (v T, ok bool) {
	n := len(s.data)
	if n == 0 {
		return v, false
	}
	v = s.data[n-1]
	var zero T
	s.data[n-1] = zero
	s.data = s.data[:n-1]
	return v, true
}

func (s *sliceStore[T]) Raw() []T { return s.data }

func (s *sliceStore[T]) Clear() {
	clear(s.data)
	s.data = s.data[:0]
}
