// Package ecs provides entity identity and insertion-ordered entity storage.
package ecs

// EntityID uniquely identifies an entity for the lifetime of the simulation.
// Pooled objects receive a fresh id every time they are acquired, so a stale
// reference can always be detected by comparing ids.
type EntityID uint64

// InvalidID is never handed out.
const InvalidID EntityID = 0

// IDAllocator hands out monotonically increasing entity ids.
type IDAllocator struct {
	nextID uint64
}

// NewIDAllocator creates an allocator whose first id is 1; 0 is reserved as invalid.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{nextID: 1}
}

// Next returns a new unique id.
func (a *IDAllocator) Next() EntityID {
	id := EntityID(a.nextID)
	a.nextID++
	return id
}
