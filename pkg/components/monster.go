package components

import (
	"math"

	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/modifier"
	"github.com/gonewx/bastion/pkg/types"
)

// Monster is a wave-spawned enemy.
type Monster struct {
	id       ecs.EntityID
	active   bool
	position types.Vec3
	Yaw      float64

	Template *config.MonsterTemplate
	Vitals   Vitals

	AttackDamage float64
	AttackSpeed  float64
	AttackRange  float64
	MoveSpeed    float64

	// SpawnTime and ScalingSteps record the scaling snapshot taken at spawn.
	SpawnTime    float64
	ScalingSteps int
	WaveID       int

	Target     Ref
	LastAttack float64

	engine *modifier.Engine
}

// NewMonster returns an inactive monster ready for pooling.
func NewMonster() *Monster {
	m := &Monster{}
	m.engine = modifier.NewEngine(m)
	return m
}

// OnAcquire implements pool.Poolable.
func (m *Monster) OnAcquire(position types.Vec3, yaw float64) {
	m.position = position
	m.Yaw = yaw
	m.active = true
}

// OnRelease implements pool.Poolable.
func (m *Monster) OnRelease() {
	m.engine.Clear()
	m.active = false
	m.id = ecs.InvalidID
	m.Template = nil
	m.Target = Ref{}
	m.Vitals = Vitals{}
	m.Yaw = 0
	m.AttackDamage = 0
	m.AttackSpeed = 0
	m.AttackRange = 0
	m.MoveSpeed = 0
	m.SpawnTime = 0
	m.ScalingSteps = 0
	m.WaveID = 0
	m.LastAttack = math.Inf(-1)
}

// Init assigns identity and applies the spawn-time scaling snapshot.
func (m *Monster) Init(id ecs.EntityID, tmpl *config.MonsterTemplate, now float64, waveID int) {
	scaled := tmpl.Scaled(now)

	m.id = id
	m.Template = tmpl
	m.Vitals.Reset(scaled.MaxHealth, scaled.Defense)
	m.AttackDamage = scaled.Damage
	m.AttackSpeed = tmpl.AttackSpeed
	m.AttackRange = tmpl.AttackRange
	m.MoveSpeed = tmpl.MoveSpeed
	m.SpawnTime = now
	m.ScalingSteps = scaled.Steps
	m.WaveID = waveID
	m.Target = Ref{}
	m.LastAttack = math.Inf(-1)
}

func (m *Monster) ID() ecs.EntityID            { return m.id }
func (m *Monster) Active() bool                { return m.active }
func (m *Monster) Alive() bool                 { return m.active && m.Vitals.IsAlive() }
func (m *Monster) Position() types.Vec3        { return m.position }
func (m *Monster) Faction() Faction            { return FactionMonsters }
func (m *Monster) HealthState() *Vitals        { return &m.Vitals }
func (m *Monster) Modifiers() *modifier.Engine { return m.engine }

// SetPosition moves the monster.
func (m *Monster) SetPosition(p types.Vec3) {
	m.position = p
}

// IsBoss reports whether the monster's template is a boss.
func (m *Monster) IsBoss() bool {
	return m.Template != nil && m.Template.IsBoss
}

// BaseStat implements modifier.Entity.
func (m *Monster) BaseStat(stat types.Stat) float64 {
	switch stat {
	case types.StatAttackDamage:
		return m.AttackDamage
	case types.StatAttackSpeed:
		return m.AttackSpeed
	case types.StatAttackRange:
		return m.AttackRange
	case types.StatProjectileCount:
		return 1
	}
	return 0
}

// AdjustBaseStat implements modifier.Entity.
func (m *Monster) AdjustBaseStat(stat types.Stat, delta float64) {
	switch stat {
	case types.StatAttackDamage:
		m.AttackDamage = max(0, m.AttackDamage+delta)
	case types.StatAttackSpeed:
		m.AttackSpeed = max(0, m.AttackSpeed+delta)
	case types.StatAttackRange:
		m.AttackRange = max(0, m.AttackRange+delta)
	}
}
