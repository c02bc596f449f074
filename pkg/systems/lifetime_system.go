package systems

import (
	"github.com/gonewx/bastion/pkg/world"
)

// LifetimeSystem ages every modifier in the world and drops the expired ones.
type LifetimeSystem struct {
	registry *world.Registry
}

// NewLifetimeSystem creates the modifier lifetime system.
func NewLifetimeSystem(registry *world.Registry) *LifetimeSystem {
	return &LifetimeSystem{registry: registry}
}

// Update advances modifier clocks on structures, monsters and players.
func (s *LifetimeSystem) Update(deltaTime float64) {
	for _, st := range s.registry.AliveStructures() {
		st.Modifiers().Update(deltaTime)
	}
	for _, m := range s.registry.AliveMonsters() {
		m.Modifiers().Update(deltaTime)
	}
	for _, p := range s.registry.AlivePlayers() {
		p.Modifiers().Update(deltaTime)
	}
}
