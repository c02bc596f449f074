// Package components holds the simulation's entity data: structures,
// monsters, players and projectiles.
package components

import (
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/modifier"
)

// Faction separates the defending side from the monsters.
type Faction int

const (
	FactionDefenders Faction = iota
	FactionMonsters
)

// Combatant is an entity that can take damage and owns a Modifier Engine.
type Combatant interface {
	modifier.Entity
	Faction() Faction
	HealthState() *Vitals
	Modifiers() *modifier.Engine
}

// Ref is an id-checked reference to a combatant. Pooled entities get a new id
// on every acquire, so a Ref to a recycled object is detected as stale.
type Ref struct {
	id     ecs.EntityID
	target Combatant
}

// NewRef references c. A nil c yields an empty ref.
func NewRef(c Combatant) Ref {
	if c == nil {
		return Ref{}
	}
	return Ref{id: c.ID(), target: c}
}

// Get returns the referenced combatant if it is still the same live entity.
func (r Ref) Get() (Combatant, bool) {
	if r.target == nil || r.id == ecs.InvalidID {
		return nil, false
	}
	if r.target.ID() != r.id || !r.target.Alive() {
		return nil, false
	}
	return r.target, true
}

// ID returns the referenced id, or InvalidID for an empty ref.
func (r Ref) ID() ecs.EntityID {
	return r.id
}

// IsSet reports whether the ref was ever assigned.
func (r Ref) IsSet() bool {
	return r.target != nil
}
