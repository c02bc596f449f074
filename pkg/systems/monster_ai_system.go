package systems

import (
	"github.com/gonewx/bastion/pkg/components"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/modifier"
	"github.com/gonewx/bastion/pkg/types"
	"github.com/gonewx/bastion/pkg/world"
	"github.com/sirupsen/logrus"
)

// MonsterAISystem moves monsters toward their target and attacks in range.
type MonsterAISystem struct {
	registry    *world.Registry
	battlefield *Battlefield
	path        world.Pathfinder
	log         *logrus.Entry

	Attacks int
}

// NewMonsterAISystem wires the monster behaviour system.
func NewMonsterAISystem(registry *world.Registry, bf *Battlefield, path world.Pathfinder, log logrus.FieldLogger) *MonsterAISystem {
	return &MonsterAISystem{
		registry:    registry,
		battlefield: bf,
		path:        path,
		log:         logger.For(log, "MonsterAISystem"),
	}
}

// Update runs one behaviour step for every living monster.
func (s *MonsterAISystem) Update(deltaTime, now float64) {
	for _, m := range s.registry.AliveMonsters() {
		if !m.Alive() {
			continue
		}
		target := s.chooseTarget(m)
		if target == nil {
			m.Target = components.Ref{}
			continue
		}
		m.Target = components.NewRef(target)

		engine := m.Modifiers()
		attackRange := engine.Value(types.StatAttackRange)
		if m.Position().Distance(target.Position()) > attackRange {
			next := s.path.MoveToward(m.Position(), target.Position(), m.MoveSpeed*deltaTime)
			m.SetPosition(next)
			continue
		}

		speed := engine.Value(types.StatAttackSpeed)
		if speed <= 0 || now-m.LastAttack < 1/speed {
			continue
		}
		m.LastAttack = now
		s.strike(m, target)
	}
}

// chooseTarget returns the nearer of the nearest reachable living player and
// the nearest living structure. A player wins a tie.
func (s *MonsterAISystem) chooseTarget(m *components.Monster) components.Combatant {
	pos := m.Position()

	var player components.Combatant
	playerDist := 0.0
	for _, p := range s.registry.AlivePlayers() {
		if !s.path.Reachable(pos, p.Position()) {
			continue
		}
		d := pos.Distance(p.Position())
		if player == nil || d < playerDist {
			player, playerDist = p, d
		}
	}

	var structure components.Combatant
	structDist := 0.0
	for _, st := range s.registry.AliveStructures() {
		d := pos.Distance(st.Position())
		if structure == nil || d < structDist {
			structure, structDist = st, d
		}
	}

	switch {
	case player == nil:
		return structure
	case structure == nil:
		return player
	case structDist < playerDist:
		return structure
	default:
		return player
	}
}

func (s *MonsterAISystem) strike(m *components.Monster, target components.Combatant) {
	s.Attacks++
	engine := m.Modifiers()
	engine.OnAttack(modifier.AttackEvent{World: s.battlefield, Owner: m, Target: target})
	if !m.Alive() || !target.Alive() {
		return
	}
	damage := engine.Value(types.StatAttackDamage)
	s.battlefield.Damage(target, damage, m)
	if m.Alive() {
		engine.OnHit(modifier.HitEvent{World: s.battlefield, Owner: m, Target: target, Point: target.Position()})
	}
}
