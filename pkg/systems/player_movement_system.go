package systems

import (
	"github.com/gonewx/bastion/pkg/world"
)

// PlayerMovementSystem walks players toward their requested destination.
type PlayerMovementSystem struct {
	registry *world.Registry
	path     world.Pathfinder
}

// NewPlayerMovementSystem creates the player movement system.
func NewPlayerMovementSystem(registry *world.Registry, path world.Pathfinder) *PlayerMovementSystem {
	return &PlayerMovementSystem{registry: registry, path: path}
}

// Update moves each player with a destination by at most MoveSpeed × deltaTime.
func (s *PlayerMovementSystem) Update(deltaTime float64) {
	for _, p := range s.registry.AlivePlayers() {
		if p.Destination == nil {
			continue
		}
		dest := *p.Destination
		next := s.path.MoveToward(p.Position(), dest, p.MoveSpeed*deltaTime)
		p.SetPosition(next)
		if next == dest {
			p.Destination = nil
		}
	}
}
