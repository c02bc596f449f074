package systems

import (
	"github.com/gonewx/bastion/pkg/components"
	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/entities"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/modifier"
	"github.com/gonewx/bastion/pkg/types"
	"github.com/gonewx/bastion/pkg/world"
	"github.com/sirupsen/logrus"
)

// CombatSystem drives attack structures: target validation and acquisition,
// the attack cadence gate and projectile launch.
type CombatSystem struct {
	registry    *world.Registry
	battlefield *Battlefield
	factory     *entities.Factory
	projectiles *ProjectileSystem
	queue       *EventQueue
	cfg         *config.SimulationConfig
	log         *logrus.Entry

	Attacks int
}

// NewCombatSystem creates the combat system.
//
// Parameters:
//
//	registry - live entities to pick attackers and targets from
//	bf - spatial queries and damage application
//	factory - pooled projectile construction
//	projectiles - launches and tracks ranged shots
//	queue - receives kill and attack events
//	cfg - simulation tuning such as minimum attack interval
//	log - structured logger
func NewCombatSystem(registry *world.Registry, bf *Battlefield, factory *entities.Factory, projectiles *ProjectileSystem, queue *EventQueue, cfg *config.SimulationConfig, log logrus.FieldLogger) *CombatSystem {
	return &CombatSystem{
		registry:    registry,
		battlefield: bf,
		factory:     factory,
		projectiles: projectiles,
		queue:       queue,
		cfg:         cfg,
		log:         logger.For(log, "CombatSystem"),
	}
}

// Update runs one combat step for every living attack structure at time now.
func (s *CombatSystem) Update(now float64) {
	monsters := s.registry.AliveMonsters()
	for _, st := range s.registry.AliveStructures() {
		if st.Attack == nil {
			continue
		}
		target := s.engage(st, monsters)
		if target == nil {
			continue
		}

		speed := st.Modifiers().Value(types.StatAttackSpeed)
		if speed <= 0 || now-st.Attack.LastAttack < 1/speed {
			continue
		}
		st.Attack.LastAttack = now
		s.attack(st, target, now)
	}
}

// engage keeps the current target while it is alive and in modified range,
// otherwise acquires a new one by priority.
func (s *CombatSystem) engage(st *components.Structure, monsters []*components.Monster) components.Combatant {
	attackRange := st.Modifiers().Value(types.StatAttackRange)

	if current, ok := st.Attack.Target.Get(); ok {
		if st.Position().Distance(current.Position()) <= attackRange {
			return current
		}
	}
	st.Attack.Target = components.Ref{}

	next := SelectTarget(st.Attack.Priority, st.Position(), attackRange, monsters)
	if next == nil {
		return nil
	}
	st.Attack.Target = components.NewRef(next)
	return next
}

// attack fires the on-attack hook and launches the volley: the first shot now,
// the k-th after k × shotDelay.
func (s *CombatSystem) attack(st *components.Structure, target components.Combatant, now float64) {
	s.Attacks++
	st.Modifiers().OnAttack(modifier.AttackEvent{World: s.battlefield, Owner: st, Target: target})

	// on-attack effects may have killed the source or the target
	if !st.Alive() || !target.Alive() {
		return
	}

	s.fire(st, target)

	count := st.ProjectilesPerAttack()
	sourceID := st.ID()
	ref := components.NewRef(target)
	for k := 1; k < count; k++ {
		s.queue.Schedule(now+float64(k)*s.cfg.ShotDelay, func(float64) {
			if st.ID() != sourceID || !st.Alive() {
				return
			}
			t, ok := ref.Get()
			if !ok {
				return
			}
			s.fire(st, t)
		})
	}
}

func (s *CombatSystem) fire(st *components.Structure, target components.Combatant) {
	damage := st.Modifiers().Value(types.StatAttackDamage)
	p, err := s.factory.NewProjectile(st, target, damage)
	if err != nil {
		s.log.WithError(err).Error("[CombatSystem] failed to create projectile")
		return
	}
	s.projectiles.Launch(p)
}

// TargetOf returns the id of the structure's current target, if any.
func TargetOf(st *components.Structure) ecs.EntityID {
	if st.Attack == nil {
		return ecs.InvalidID
	}
	if t, ok := st.Attack.Target.Get(); ok {
		return t.ID()
	}
	return ecs.InvalidID
}
