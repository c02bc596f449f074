package modifier

import (
	"slices"

	"github.com/gonewx/bastion/pkg/types"
)

// Engine owns the modifiers of exactly one entity.
type Engine struct {
	owner  Entity
	stats  []*StatModifier
	events []EventModifier
}

// NewEngine creates an empty engine for owner.
func NewEngine(owner Entity) *Engine {
	return &Engine{owner: owner}
}

// AddStat appends m. Order of insertion is the fold order.
func (e *Engine) AddStat(m *StatModifier) {
	e.stats = append(e.stats, m)
}

// RemoveStat removes m and reports whether it was present.
func (e *Engine) RemoveStat(m *StatModifier) bool {
	i := slices.Index(e.stats, m)
	if i < 0 {
		return false
	}
	e.stats = slices.Delete(e.stats, i, i+1)
	return true
}

// Modified folds every modifier of stat over base, left to right in insertion
// order. Additive and multiplicative modifiers are not reordered, so
// +10 then ×1.2 on 100 gives 132 while ×1.2 then +10 gives 130.
func (e *Engine) Modified(stat types.Stat, base float64) float64 {
	v := base
	for _, m := range e.stats {
		if m.Stat == stat {
			v = m.Apply(v)
		}
	}
	return v
}

// Value returns the owner's modified value of stat.
func (e *Engine) Value(stat types.Stat) float64 {
	return e.Modified(stat, e.owner.BaseStat(stat))
}

// AddEvent binds m to the owner and starts dispatching hooks to it.
func (e *Engine) AddEvent(m EventModifier) {
	m.Bind(e.owner)
	e.events = append(e.events, m)
}

// RemoveEvent unbinds and drops m. It reports whether m was present.
func (e *Engine) RemoveEvent(m EventModifier) bool {
	i := slices.Index(e.events, m)
	if i < 0 {
		return false
	}
	e.events = slices.Delete(e.events, i, i+1)
	m.Unbind(e.owner)
	return true
}

// Update advances every modifier's lifetime and removes the expired ones.
func (e *Engine) Update(dt float64) {
	if len(e.stats) > 0 {
		kept := e.stats[:0]
		for _, m := range e.stats {
			m.Advance(dt)
			if !m.Expired() {
				kept = append(kept, m)
			}
		}
		clear(e.stats[len(kept):])
		e.stats = kept
	}

	for _, m := range slices.Clone(e.events) {
		m.Life().Advance(dt)
		if m.Life().Expired() {
			e.RemoveEvent(m)
		}
	}
}

// Clear unbinds every event modifier and drops all modifiers.
func (e *Engine) Clear() {
	events := e.events
	e.events = nil
	e.stats = nil
	for _, m := range events {
		m.Unbind(e.owner)
	}
}

// Stats returns a copy of the stat modifiers in fold order.
func (e *Engine) Stats() []*StatModifier {
	return slices.Clone(e.stats)
}

// Events returns a copy of the bound event modifiers.
func (e *Engine) Events() []EventModifier {
	return slices.Clone(e.events)
}

// Len returns the total number of modifiers.
func (e *Engine) Len() int {
	return len(e.stats) + len(e.events)
}

// OnAttack dispatches an attack to every attack observer.
func (e *Engine) OnAttack(ev AttackEvent) {
	e.dispatch(HookAttack, func(m EventModifier) bool {
		o, ok := m.(AttackObserver)
		if ok {
			o.OnAttack(ev)
		}
		return ok
	})
}

// OnHit dispatches a landed hit to every hit observer.
func (e *Engine) OnHit(ev HitEvent) {
	e.dispatch(HookHit, func(m EventModifier) bool {
		o, ok := m.(HitObserver)
		if ok {
			o.OnHit(ev)
		}
		return ok
	})
}

// OnDamaged dispatches damage taken to every damaged observer.
func (e *Engine) OnDamaged(ev DamagedEvent) {
	e.dispatch(HookDamaged, func(m EventModifier) bool {
		o, ok := m.(DamagedObserver)
		if ok {
			o.OnDamaged(ev)
		}
		return ok
	})
}

// dispatch calls fire for each event modifier observing h, consuming one use
// per trigger and removing modifiers whose uses ran out. Observers may cause
// the engine to be cleared; removed modifiers are skipped.
func (e *Engine) dispatch(h Hook, fire func(EventModifier) bool) {
	for _, m := range slices.Clone(e.events) {
		if !slices.Contains(e.events, m) {
			continue
		}
		if f, ok := m.(hookFilter); ok && !f.Triggers(h) {
			continue
		}
		if !fire(m) {
			continue
		}
		m.Life().Consume()
		if m.Life().Expired() {
			e.RemoveEvent(m)
		}
	}
}
