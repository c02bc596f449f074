package systems

import (
	"math"

	"github.com/gonewx/bastion/pkg/components"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/world"
	"github.com/sirupsen/logrus"
)

// EconomySystem accumulates resource structure stacks, lets nearby players
// harvest them and repairs walls while a player stands close.
type EconomySystem struct {
	registry *world.Registry
	log      *logrus.Entry
}

// NewEconomySystem creates the economy system.
func NewEconomySystem(registry *world.Registry, log logrus.FieldLogger) *EconomySystem {
	return &EconomySystem{registry: registry, log: logger.For(log, "EconomySystem")}
}

// Update advances every resource and wall structure by deltaTime.
func (s *EconomySystem) Update(deltaTime float64) {
	players := s.registry.AlivePlayers()
	for _, st := range s.registry.AliveStructures() {
		switch {
		case st.Resource != nil:
			s.updateResource(st, players, deltaTime)
		case st.Wall != nil:
			s.updateWall(st, players, deltaTime)
		}
	}
}

func (s *EconomySystem) updateResource(st *components.Structure, players []*components.Player, dt float64) {
	r := st.Resource
	r.Stack = min(r.Stack+r.YieldPerSecond*dt, r.MaxStack)

	for _, p := range players {
		if p.Position().Distance(st.Position()) > r.ProximityRange {
			delete(r.Progress, p.ID())
			continue
		}
		if r.Stack <= 0 {
			continue
		}
		r.Progress[p.ID()] += dt
		if r.Progress[p.ID()] < r.HarvestDuration {
			continue
		}
		r.Progress[p.ID()] = 0

		amount := int(math.Floor(r.Stack))
		if amount <= 0 {
			continue
		}
		p.Ledger.Add(r.Type, amount)
		r.Stack = 0
		s.log.WithFields(logrus.Fields{"player": p.ID(), "structure": st.ID()}).
			Infof("[EconomySystem] 🌾 harvested %d %s", amount, r.Type)
	}
}

func (s *EconomySystem) updateWall(st *components.Structure, players []*components.Player, dt float64) {
	for _, p := range players {
		if st.Vitals.Health >= st.Vitals.MaxHealth {
			return
		}
		if p.Position().Distance(st.Position()) <= st.Wall.ProximityRange {
			st.Vitals.Heal(st.Wall.RepairPerSecond * dt)
		}
	}
}
