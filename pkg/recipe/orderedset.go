package recipe

// OrderedSet is a set that remembers first-insertion order.
// The zero value is ready to use.
type OrderedSet[T comparable] struct {
	index map[T]int
	items []T
}

// Add inserts v if absent and reports whether it was inserted.
func (s *OrderedSet[T]) Add(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[T]int)
	}
	s.index[v] = len(s.items)
	s.items = append(s.items, v)
	return true
}

// Contains reports whether v is in the set.
func (s *OrderedSet[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of distinct elements.
func (s *OrderedSet[T]) Len() int { return len(s.items) }

// Items returns the elements in first-insertion order.
// The returned slice must not be modified.
func (s *OrderedSet[T]) Items() []T { return s.items }
