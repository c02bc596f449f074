// Package modifier implements the per-entity Modifier Engine: an ordered list
// of stat modifiers folded over base values, and event modifiers bound to the
// owner's attack, hit and damaged hooks.
package modifier

import (
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/types"
)

// Entity is the view of a simulation entity that modifiers read and mutate.
type Entity interface {
	ID() ecs.EntityID
	Alive() bool
	Position() types.Vec3
	// BaseStat returns the unmodified value of stat; unsupported stats return 0.
	BaseStat(stat types.Stat) float64
	// AdjustBaseStat permanently changes the base value of stat by delta.
	AdjustBaseStat(stat types.Stat, delta float64)
}

// World is the part of the simulation event modifiers may act on.
type World interface {
	// EnemiesWithin returns living hostiles of owner within radius of center,
	// in registry order.
	EnemiesWithin(owner Entity, center types.Vec3, radius float64) []Entity
	// ApplyDamage deals raw damage to target, applying defense and death rules.
	ApplyDamage(target Entity, raw float64, source Entity)
}

// Hook identifies an event an event modifier can observe.
type Hook int

// Hooks, in dispatch order of an attack that lands.
const (
	HookAttack Hook = iota
	HookHit
	HookDamaged
)

// AttackEvent is dispatched when the owner executes an attack.
type AttackEvent struct {
	World  World
	Owner  Entity
	Target Entity
}

// HitEvent is dispatched when the owner's attack lands. Target is the struck entity.
type HitEvent struct {
	World  World
	Owner  Entity
	Target Entity
	Point  types.Vec3
}

// DamagedEvent is dispatched after the owner took damage. Source may be nil.
type DamagedEvent struct {
	World  World
	Owner  Entity
	Source Entity
	Amount float64
}

// Lifetime bounds a modifier by time and/or number of triggers.
// Zero Duration and zero Uses mean unbounded.
type Lifetime struct {
	Duration float64
	Uses     int

	elapsed float64
	used    int
}

// Advance moves the modifier's clock forward.
func (l *Lifetime) Advance(dt float64) {
	l.elapsed += dt
}

// Consume records one trigger.
func (l *Lifetime) Consume() {
	l.used++
}

// Expired reports whether either bound has been reached.
func (l *Lifetime) Expired() bool {
	if l.Duration > 0 && l.elapsed >= l.Duration {
		return true
	}
	return l.Uses > 0 && l.used >= l.Uses
}

// Remaining returns the seconds left, or -1 when unbounded in time.
func (l *Lifetime) Remaining() float64 {
	if l.Duration <= 0 {
		return -1
	}
	return max(0, l.Duration-l.elapsed)
}

// StatModifier changes one stat by a fixed amount or a fraction.
type StatModifier struct {
	Name  string
	Stat  types.Stat
	Op    types.ModifierOp
	Value float64
	Lifetime
}

// Apply folds the modifier into the running value v.
func (m *StatModifier) Apply(v float64) float64 {
	switch m.Op {
	case types.OpMultiplicative:
		return v * (1 + m.Value)
	default:
		return v + m.Value
	}
}

// EventModifier is an effect bound to the owner's hooks. Implementations
// observe hooks by also implementing AttackObserver, HitObserver or
// DamagedObserver.
type EventModifier interface {
	Label() string
	Life() *Lifetime
	// Bind is called once when the modifier is attached to owner.
	Bind(owner Entity)
	// Unbind is called once when the modifier is detached.
	Unbind(owner Entity)
}

// AttackObserver is implemented by event modifiers reacting to the owner's attacks.
type AttackObserver interface {
	OnAttack(e AttackEvent)
}

// HitObserver is implemented by event modifiers reacting to the owner's hits.
type HitObserver interface {
	OnHit(e HitEvent)
}

// DamagedObserver is implemented by event modifiers reacting to damage the
// owner takes.
type DamagedObserver interface {
	OnDamaged(e DamagedEvent)
}

// hookFilter lets a modifier that implements every observer opt out of some hooks.
type hookFilter interface {
	Triggers(h Hook) bool
}
