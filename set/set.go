package set

// Set is a collection of unique elements that remembers insertion order.
// Iteration through Values always follows the order items were first added.
type Set[T comparable] struct {
	index map[T]struct{}
	items []T
}

// New creates and returns a new empty Set.
func New[T comparable]() *Set[T] {
	return &Set[T]{
		index: make(map[T]struct{}),
	}
}

// FromSlice creates a new Set from the provided slice of items.
// Duplicates keep the position of their first occurrence.
func FromSlice[T comparable](items []T) *Set[T] {
	set := New[T]()
	for _, item := range items {
		set.Add(item)
	}
	return set
}

// Add adds an item to the Set and reports whether it was new.
func (s *Set[T]) Add(item T) bool {
	if _, exists := s.index[item]; exists {
		return false
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

// Contains checks if the item exists in the Set.
func (s *Set[T]) Contains(item T) bool {
	_, exists := s.index[item]
	return exists
}

// Size returns the number of items in the Set.
func (s *Set[T]) Size() int {
	return len(s.items)
}

// Values returns the items in insertion order. The slice is a copy.
func (s *Set[T]) Values() []T {
	result := make([]T, len(s.items))
	copy(result, s.items)
	return result
}
