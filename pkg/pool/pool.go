// Package pool recycles simulation objects keyed by template.
//
// Every acquired object is reset through OnAcquire and every released object
// through OnRelease, so a recycled instance never carries state from its
// previous life.
package pool

import (
	"errors"
	"fmt"

	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/types"
	"github.com/sirupsen/logrus"
)

// ErrUnknownTemplate is returned when acquiring a key with no registered factory.
var ErrUnknownTemplate = errors.New("unknown pool template")

// Poolable is an object the pool can recycle.
type Poolable interface {
	comparable
	// OnAcquire resets the object and places it in the world.
	OnAcquire(position types.Vec3, orientation float64)
	// OnRelease deactivates the object and clears transient references.
	OnRelease()
}

// Factory constructs a new object for a template key.
type Factory[T Poolable] func() T

// Stats is a diagnostic snapshot of pool usage.
type Stats struct {
	Created     int
	Reused      int
	Outstanding int
	Free        int
}

// Pool is a keyed free-list of recycled objects.
// It is not safe for concurrent use; the simulation owns it from one goroutine.
type Pool[T Poolable] struct {
	factories   map[string]Factory[T]
	free        map[string][]T
	outstanding map[T]string
	created     int
	reused      int
	log         *logrus.Entry
}

// New creates an empty pool.
func New[T Poolable](log logrus.FieldLogger) *Pool[T] {
	return &Pool[T]{
		factories:   make(map[string]Factory[T]),
		free:        make(map[string][]T),
		outstanding: make(map[T]string),
		log:         logger.For(log, "Pool"),
	}
}

// Register installs the factory for key, replacing any previous one.
func (p *Pool[T]) Register(key string, factory Factory[T]) {
	p.factories[key] = factory
}

// Registered reports whether key has a factory.
func (p *Pool[T]) Registered(key string) bool {
	_, ok := p.factories[key]
	return ok
}

// Acquire returns a recycled or newly constructed object for key, reset and
// placed at position/orientation.
func (p *Pool[T]) Acquire(key string, position types.Vec3, orientation float64) (T, error) {
	var zero T
	factory, ok := p.factories[key]
	if !ok {
		p.log.WithField("key", key).Error("[Pool] acquire of unregistered template")
		return zero, fmt.Errorf("acquire %q: %w", key, ErrUnknownTemplate)
	}

	var item T
	if list := p.free[key]; len(list) > 0 {
		item = list[len(list)-1]
		list[len(list)-1] = zero
		p.free[key] = list[:len(list)-1]
		p.reused++
	} else {
		item = factory()
		p.created++
	}

	p.outstanding[item] = key
	item.OnAcquire(position, orientation)
	return item, nil
}

// Release resets item and returns it to its key's free list. Releasing an
// object that is not outstanding is a no-op and reports false.
func (p *Pool[T]) Release(item T) bool {
	key, ok := p.outstanding[item]
	if !ok {
		p.log.Debug("[Pool] release of object that is not outstanding ignored")
		return false
	}
	delete(p.outstanding, item)
	item.OnRelease()
	p.free[key] = append(p.free[key], item)
	return true
}

// Outstanding reports whether item is currently handed out.
func (p *Pool[T]) Outstanding(item T) bool {
	_, ok := p.outstanding[item]
	return ok
}

// Stats returns usage counters.
func (p *Pool[T]) Stats() Stats {
	free := 0
	for _, list := range p.free {
		free += len(list)
	}
	return Stats{
		Created:     p.created,
		Reused:      p.reused,
		Outstanding: len(p.outstanding),
		Free:        free,
	}
}
