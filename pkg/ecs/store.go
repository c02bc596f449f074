package ecs

import "slices"

// Store keeps entities keyed by id and iterates them in insertion order.
// Targeting tie-breaks depend on that order, so it is never reshuffled.
type Store[T any] struct {
	order []EntityID
	items map[EntityID]T
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{items: make(map[EntityID]T)}
}

// Add inserts item under id. It returns false if id is already present.
func (s *Store[T]) Add(id EntityID, item T) bool {
	if _, exists := s.items[id]; exists {
		return false
	}
	s.items[id] = item
	s.order = append(s.order, id)
	return true
}

// Remove deletes id. It returns false if id was not present.
func (s *Store[T]) Remove(id EntityID) bool {
	if _, exists := s.items[id]; !exists {
		return false
	}
	delete(s.items, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return true
}

// Get returns the item stored under id.
func (s *Store[T]) Get(id EntityID) (T, bool) {
	item, ok := s.items[id]
	return item, ok
}

// Has reports whether id is stored.
func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.items[id]
	return ok
}

// Len returns the number of stored items.
func (s *Store[T]) Len() int {
	return len(s.order)
}

// Filter returns the items accepted by keep, in insertion order.
// A nil keep returns every item.
func (s *Store[T]) Filter(keep func(T) bool) []T {
	result := make([]T, 0, len(s.order))
	for _, id := range s.order {
		item := s.items[id]
		if keep == nil || keep(item) {
			result = append(result, item)
		}
	}
	return result
}

// IDs returns a copy of the ids in insertion order.
func (s *Store[T]) IDs() []EntityID {
	return slices.Clone(s.order)
}
