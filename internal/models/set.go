package models

// Set is a hash set of entities keyed by [Hash] and resolved with [Equal].
//
// Unsaved entities all share bucket 0 and only match themselves, so distinct unsaved entities coexist.
// A Set is not safe for concurrent use.
type Set[T Entity] struct {
	buckets map[int32][]T
	order   []T
}

// NewSet returns a set holding items, dropping duplicates.
func NewSet[T Entity](items ...T) *Set[T] {
	s := &Set[T]{buckets: make(map[int32][]T)}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add inserts e and reports whether it was absent. Nil entities are ignored.
func (s *Set[T]) Add(e T) bool {
	if isNil(e) || s.Contains(e) {
		return false
	}

	h := Hash(e)
	s.buckets[h] = append(s.buckets[h], e)
	s.order = append(s.order, e)
	return true
}

// Contains reports whether an entity equal to e is present.
func (s *Set[T]) Contains(e T) bool {
	for _, candidate := range s.buckets[Hash(e)] {
		if Equal(candidate, e) {
			return true
		}
	}
	return false
}

// Remove deletes the entity equal to e and reports whether one was found.
func (s *Set[T]) Remove(e T) bool {
	h := Hash(e)
	bucket := s.buckets[h]
	for i, candidate := range bucket {
		if !Equal(candidate, e) {
			continue
		}

		s.buckets[h] = append(bucket[:i:i], bucket[i+1:]...)
		if len(s.buckets[h]) == 0 {
			delete(s.buckets, h)
		}

		for j, item := range s.order {
			if Equal(item, e) {
				s.order = append(s.order[:j:j], s.order[j+1:]...)
				break
			}
		}
		return true
	}
	return false
}

// Len returns the number of entities in the set.
func (s *Set[T]) Len() int {
	return len(s.order)
}

// Items returns the entities in insertion order.
func (s *Set[T]) Items() []T {
	items := make([]T, len(s.order))
	copy(items, s.order)
	return items
}
