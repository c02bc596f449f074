package components

import (
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/types"
)

// Projectile is a pooled shot in flight from an attack structure.
type Projectile struct {
	id       ecs.EntityID
	active   bool
	position types.Vec3

	Source   *Structure
	SourceID ecs.EntityID
	Target   Ref
	// Aim is the target position captured at launch. It never changes in
	// flight; homing shots fall back to it once the target dies.
	Aim types.Vec3

	Start      types.Vec3
	Damage     float64
	Speed      float64
	Movement   types.MovementKind
	Elapsed    float64
	FlightTime float64
}

// NewProjectile returns an inactive projectile ready for pooling.
func NewProjectile() *Projectile {
	return &Projectile{}
}

// OnAcquire implements pool.Poolable.
func (p *Projectile) OnAcquire(position types.Vec3, _ float64) {
	p.position = position
	p.Start = position
	p.active = true
	p.Elapsed = 0
}

// OnRelease implements pool.Poolable.
func (p *Projectile) OnRelease() {
	p.active = false
	p.id = ecs.InvalidID
	p.Source = nil
	p.SourceID = ecs.InvalidID
	p.Target = Ref{}
	p.Aim = types.Vec3{}
	p.Start = types.Vec3{}
	p.Damage = 0
	p.Speed = 0
	p.Movement = types.MovementLinear
	p.Elapsed = 0
	p.FlightTime = 0
}

// Launch aims the projectile at target from source.
func (p *Projectile) Launch(id ecs.EntityID, source *Structure, target Combatant, damage float64) {
	p.id = id
	p.Source = source
	p.SourceID = source.ID()
	p.Target = NewRef(target)
	p.Aim = target.Position()
	p.Damage = damage
	p.Speed = source.Attack.ProjectileSpeed
	p.Movement = source.Attack.Movement
}

func (p *Projectile) ID() ecs.EntityID     { return p.id }
func (p *Projectile) Active() bool         { return p.active }
func (p *Projectile) Position() types.Vec3 { return p.position }

// SetPosition moves the projectile.
func (p *Projectile) SetPosition(pos types.Vec3) {
	p.position = pos
}

// SourceAlive reports whether the firing structure is still the same live entity.
func (p *Projectile) SourceAlive() bool {
	return p.Source != nil && p.Source.ID() == p.SourceID && p.Source.Alive()
}
