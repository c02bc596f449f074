package systems

import (
	"github.com/gonewx/bastion/pkg/components"
	"github.com/gonewx/bastion/pkg/entities"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/modifier"
	"github.com/gonewx/bastion/pkg/types"
	"github.com/gonewx/bastion/pkg/world"
	"github.com/sirupsen/logrus"
)

// Battlefield resolves damage and death. It is the modifier.World handed to
// event modifiers, so splash and debuff effects go through the same rules as
// direct hits.
type Battlefield struct {
	registry *world.Registry
	grid     world.PlacementService
	factory  *entities.Factory
	log      *logrus.Entry

	// OnStructureDestroyed runs after a structure died and left the registry.
	OnStructureDestroyed func(s *components.Structure)

	MonstersKilled   int
	StructuresLost   int
	PlayersDefeated  int
	TotalDamageDealt float64
}

// NewBattlefield creates a damage resolver over the registry.
func NewBattlefield(registry *world.Registry, grid world.PlacementService, factory *entities.Factory, log logrus.FieldLogger) *Battlefield {
	return &Battlefield{
		registry: registry,
		grid:     grid,
		factory:  factory,
		log:      logger.For(log, "Battlefield"),
	}
}

// EnemiesWithin implements modifier.World.
func (b *Battlefield) EnemiesWithin(owner modifier.Entity, center types.Vec3, radius float64) []modifier.Entity {
	c, ok := owner.(components.Combatant)
	if !ok {
		return nil
	}
	enemies := b.registry.EnemiesWithin(c.Faction(), center, radius)
	out := make([]modifier.Entity, len(enemies))
	for i, e := range enemies {
		out[i] = e
	}
	return out
}

// ApplyDamage implements modifier.World.
func (b *Battlefield) ApplyDamage(target modifier.Entity, raw float64, source modifier.Entity) {
	c, ok := target.(components.Combatant)
	if !ok {
		return
	}
	b.Damage(c, raw, source)
}

// Damage applies raw damage to target: defense is subtracted, health is
// clamped at 0, the target's on-damaged hook fires and a lethal hit kills it
// exactly once. Damage to dead targets is ignored.
func (b *Battlefield) Damage(target components.Combatant, raw float64, source modifier.Entity) components.DamageResult {
	res := target.HealthState().ApplyDamage(raw)
	if !res.Applied {
		return res
	}
	b.TotalDamageDealt += res.Dealt

	target.Modifiers().OnDamaged(modifier.DamagedEvent{
		World:  b,
		Owner:  target,
		Source: source,
		Amount: res.Dealt,
	})

	if res.Killed {
		b.kill(target)
	}
	return res
}

func (b *Battlefield) kill(target components.Combatant) {
	switch e := target.(type) {
	case *components.Monster:
		b.MonstersKilled++
		b.log.WithFields(logrus.Fields{"id": e.ID(), "template": e.Template.ID}).Debug("[Battlefield] monster died")
		b.registry.UnregisterMonster(e.ID())
		b.factory.ReleaseMonster(e)
	case *components.Structure:
		b.StructuresLost++
		b.log.WithFields(logrus.Fields{"id": e.ID(), "owner": e.OwnerID}).Info("[Battlefield] structure destroyed")
		b.RemoveStructure(e)
	case *components.Player:
		b.PlayersDefeated++
		b.log.WithField("id", e.ID()).Warn("[Battlefield] player defeated")
	}
}

// RemoveStructure frees the structure's cells, unregisters it and returns it
// to the pool. Removing a structure that is already gone does nothing.
func (b *Battlefield) RemoveStructure(s *components.Structure) bool {
	if _, ok := b.registry.Structure(s.ID()); !ok {
		return false
	}
	b.grid.Remove(s.ID())
	b.registry.UnregisterStructure(s.ID())
	if b.OnStructureDestroyed != nil {
		b.OnStructureDestroyed(s)
	}
	b.factory.ReleaseStructure(s)
	return true
}
