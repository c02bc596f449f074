// Package world holds the spatial state of the simulation: the entity
// registry, the placement grid, pathfinding and the entrance gate.
package world

import (
	"fmt"
	"slices"

	"github.com/gonewx/bastion/pkg/components"
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/types"
)

// Registry tracks every live monster, structure and player, plus structure
// ownership per player and category. Iteration follows registration order.
type Registry struct {
	monsters   *ecs.Store[*components.Monster]
	structures *ecs.Store[*components.Structure]
	players    *ecs.Store[*components.Player]
	owned      map[ecs.EntityID]map[types.Category][]ecs.EntityID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		monsters:   ecs.NewStore[*components.Monster](),
		structures: ecs.NewStore[*components.Structure](),
		players:    ecs.NewStore[*components.Player](),
		owned:      make(map[ecs.EntityID]map[types.Category][]ecs.EntityID),
	}
}

// RegisterMonster adds m.
func (r *Registry) RegisterMonster(m *components.Monster) error {
	if !r.monsters.Add(m.ID(), m) {
		return fmt.Errorf("monster %d already registered", m.ID())
	}
	return nil
}

// UnregisterMonster removes the monster with id. It reports whether it was present.
func (r *Registry) UnregisterMonster(id ecs.EntityID) bool {
	return r.monsters.Remove(id)
}

// RegisterStructure adds s and records it under its owner.
func (r *Registry) RegisterStructure(s *components.Structure) error {
	if !r.structures.Add(s.ID(), s) {
		return fmt.Errorf("structure %d already registered", s.ID())
	}
	byCat, ok := r.owned[s.OwnerID]
	if !ok {
		byCat = make(map[types.Category][]ecs.EntityID)
		r.owned[s.OwnerID] = byCat
	}
	byCat[s.Category] = append(byCat[s.Category], s.ID())
	return nil
}

// UnregisterStructure removes the structure with id and its ownership entry.
func (r *Registry) UnregisterStructure(id ecs.EntityID) bool {
	s, ok := r.structures.Get(id)
	if !ok {
		return false
	}
	r.structures.Remove(id)
	if byCat, ok := r.owned[s.OwnerID]; ok {
		list := byCat[s.Category]
		if i := slices.Index(list, id); i >= 0 {
			byCat[s.Category] = slices.Delete(list, i, i+1)
		}
	}
	return true
}

// RegisterPlayer adds p.
func (r *Registry) RegisterPlayer(p *components.Player) error {
	if !r.players.Add(p.ID(), p) {
		return fmt.Errorf("player %d already registered", p.ID())
	}
	return nil
}

// UnregisterPlayer removes the player with id. Their structures stay registered.
func (r *Registry) UnregisterPlayer(id ecs.EntityID) bool {
	return r.players.Remove(id)
}

// Monster looks up a registered monster by id, alive or not.
func (r *Registry) Monster(id ecs.EntityID) (*components.Monster, bool) {
	return r.monsters.Get(id)
}

// Structure looks up a registered structure by id.
func (r *Registry) Structure(id ecs.EntityID) (*components.Structure, bool) {
	return r.structures.Get(id)
}

// Player looks up a registered player by id, including defeated players.
func (r *Registry) Player(id ecs.EntityID) (*components.Player, bool) {
	return r.players.Get(id)
}

// AliveMonsters returns active monsters with health above 0.
func (r *Registry) AliveMonsters() []*components.Monster {
	return r.monsters.Filter(func(m *components.Monster) bool { return m.Alive() })
}

// AliveMonsterCount returns len(AliveMonsters()) without allocating.
func (r *Registry) AliveMonsterCount() int {
	n := 0
	for _, id := range r.monsters.IDs() {
		if m, _ := r.monsters.Get(id); m.Alive() {
			n++
		}
	}
	return n
}

// AliveStructures returns active structures with health above 0.
func (r *Registry) AliveStructures() []*components.Structure {
	return r.structures.Filter(func(s *components.Structure) bool { return s.Alive() })
}

// AlivePlayers returns active players with health above 0.
func (r *Registry) AlivePlayers() []*components.Player {
	return r.players.Filter(func(p *components.Player) bool { return p.Alive() })
}

// Players returns every registered player, alive or not.
func (r *Registry) Players() []*components.Player {
	return r.players.Filter(nil)
}

// PlayerCount returns the number of registered players.
func (r *Registry) PlayerCount() int {
	return r.players.Len()
}

// Monsters returns every registered monster.
func (r *Registry) Monsters() []*components.Monster {
	return r.monsters.Filter(nil)
}

// Structures returns every registered structure.
func (r *Registry) Structures() []*components.Structure {
	return r.structures.Filter(nil)
}

// StructuresOf returns the living structures of player in category, in build order.
func (r *Registry) StructuresOf(player ecs.EntityID, category types.Category) []*components.Structure {
	ids := r.owned[player][category]
	result := make([]*components.Structure, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.structures.Get(id); ok && s.Alive() {
			result = append(result, s)
		}
	}
	return result
}

// EnemiesWithin returns living combatants hostile to faction within radius of center.
func (r *Registry) EnemiesWithin(faction components.Faction, center types.Vec3, radius float64) []components.Combatant {
	var result []components.Combatant
	if faction == components.FactionDefenders {
		for _, m := range r.AliveMonsters() {
			if m.Position().Distance(center) <= radius {
				result = append(result, m)
			}
		}
		return result
	}
	for _, s := range r.AliveStructures() {
		if s.Position().Distance(center) <= radius {
			result = append(result, s)
		}
	}
	for _, p := range r.AlivePlayers() {
		if p.Position().Distance(center) <= radius {
			result = append(result, p)
		}
	}
	return result
}
