package components

import (
	"math"

	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/modifier"
	"github.com/gonewx/bastion/pkg/types"
)

// Footprint is the rectangle of grid cells a structure occupies.
type Footprint struct {
	X, Y          int
	Width, Height int
}

// Cells returns every occupied cell as (x, y) pairs.
func (f Footprint) Cells() [][2]int {
	cells := make([][2]int, 0, f.Width*f.Height)
	for dy := 0; dy < f.Height; dy++ {
		for dx := 0; dx < f.Width; dx++ {
			cells = append(cells, [2]int{f.X + dx, f.Y + dy})
		}
	}
	return cells
}

// AttackStats is the profile of an attack structure.
type AttackStats struct {
	Damage          float64
	AttackSpeed     float64
	Range           float64
	ProjectileCount float64
	ProjectileSpeed float64
	Movement        types.MovementKind
	Priority        types.TargetPriority

	Target     Ref
	LastAttack float64
}

// ResourceStats is the profile of a resource structure.
type ResourceStats struct {
	Type            types.ResourceType
	MaxStack        float64
	YieldPerSecond  float64
	HarvestDuration float64
	ProximityRange  float64

	Stack float64
	// Progress is the time each player has spent in range, keyed by player id.
	Progress map[ecs.EntityID]float64
}

// WallStats is the profile of a wall.
type WallStats struct {
	RepairPerSecond float64
	ProximityRange  float64
}

// Structure is a player-built building. Exactly one of Attack, Resource and
// Wall is set for the matching category; support structures carry none.
type Structure struct {
	id       ecs.EntityID
	active   bool
	position types.Vec3
	Yaw      float64

	OwnerID   ecs.EntityID
	Template  *config.StructureTemplate
	Category  types.Category
	Footprint Footprint
	Vitals    Vitals

	Attack   *AttackStats
	Resource *ResourceStats
	Wall     *WallStats

	engine *modifier.Engine
}

// NewStructure returns an inactive structure ready for pooling.
func NewStructure() *Structure {
	s := &Structure{}
	s.engine = modifier.NewEngine(s)
	return s
}

// OnAcquire implements pool.Poolable.
func (s *Structure) OnAcquire(position types.Vec3, yaw float64) {
	s.position = position
	s.Yaw = yaw
	s.active = true
}

// OnRelease implements pool.Poolable.
func (s *Structure) OnRelease() {
	s.engine.Clear()
	s.active = false
	s.id = ecs.InvalidID
	s.OwnerID = ecs.InvalidID
	s.Template = nil
	s.Attack = nil
	s.Resource = nil
	s.Wall = nil
	s.Vitals = Vitals{}
	s.Footprint = Footprint{}
	s.Yaw = 0
}

// Init assigns identity and resets all stats from the template.
func (s *Structure) Init(id, owner ecs.EntityID, tmpl *config.StructureTemplate, fp Footprint) {
	s.id = id
	s.OwnerID = owner
	s.Template = tmpl
	s.Category = tmpl.Category
	s.Footprint = fp
	s.Vitals.Reset(tmpl.MaxHealth, tmpl.Defense)
	s.Attack, s.Resource, s.Wall = nil, nil, nil

	switch tmpl.Category {
	case types.CategoryAttack:
		a := tmpl.Attack
		s.Attack = &AttackStats{
			Damage:          a.Damage,
			AttackSpeed:     a.AttackSpeed,
			Range:           a.Range,
			ProjectileCount: float64(a.ProjectileCount),
			ProjectileSpeed: a.ProjectileSpeed,
			Movement:        a.Movement,
			Priority:        a.Priority,
			LastAttack:      math.Inf(-1),
		}
	case types.CategoryResource:
		r := tmpl.Resource
		s.Resource = &ResourceStats{
			Type:            r.Type,
			MaxStack:        r.MaxStack,
			YieldPerSecond:  r.YieldPerSecond,
			HarvestDuration: r.HarvestDuration,
			ProximityRange:  r.ProximityRange,
			Progress:        make(map[ecs.EntityID]float64),
		}
	case types.CategoryWall:
		s.Wall = &WallStats{
			RepairPerSecond: tmpl.Wall.RepairPerSecond,
			ProximityRange:  tmpl.Wall.ProximityRange,
		}
	}
}

func (s *Structure) ID() ecs.EntityID            { return s.id }
func (s *Structure) Active() bool                { return s.active }
func (s *Structure) Alive() bool                 { return s.active && s.Vitals.IsAlive() }
func (s *Structure) Position() types.Vec3        { return s.position }
func (s *Structure) Faction() Faction            { return FactionDefenders }
func (s *Structure) HealthState() *Vitals        { return &s.Vitals }
func (s *Structure) Modifiers() *modifier.Engine { return s.engine }

// BaseStat implements modifier.Entity. Only attack structures have combat stats.
func (s *Structure) BaseStat(stat types.Stat) float64 {
	if s.Attack == nil {
		return 0
	}
	switch stat {
	case types.StatAttackDamage:
		return s.Attack.Damage
	case types.StatAttackSpeed:
		return s.Attack.AttackSpeed
	case types.StatAttackRange:
		return s.Attack.Range
	case types.StatProjectileCount:
		return s.Attack.ProjectileCount
	}
	return 0
}

// AdjustBaseStat implements modifier.Entity.
func (s *Structure) AdjustBaseStat(stat types.Stat, delta float64) {
	if s.Attack == nil {
		return
	}
	switch stat {
	case types.StatAttackDamage:
		s.Attack.Damage = max(0, s.Attack.Damage+delta)
	case types.StatAttackSpeed:
		s.Attack.AttackSpeed = max(0, s.Attack.AttackSpeed+delta)
	case types.StatAttackRange:
		s.Attack.Range = max(0, s.Attack.Range+delta)
	case types.StatProjectileCount:
		s.Attack.ProjectileCount = max(0, s.Attack.ProjectileCount+delta)
	}
}

// ProjectilesPerAttack returns the modified projectile count, at least 1.
func (s *Structure) ProjectilesPerAttack() int {
	n := int(math.Round(s.engine.Value(types.StatProjectileCount)))
	return max(1, n)
}
