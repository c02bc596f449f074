package modifier

import (
	"fmt"

	"github.com/gonewx/bastion/pkg/types"
)

// AreaDamage deals Ratio × the owner's base attack damage to every enemy
// within Radius of the hit point. The struck target is included.
type AreaDamage struct {
	Radius float64
	Ratio  float64
	Lifetime
}

// Label names the effect with its radius and ratio.
func (m *AreaDamage) Label() string {
	return fmt.Sprintf("area_damage(r=%.1f, x%.2f)", m.Radius, m.Ratio)
}

// Life exposes the use and duration limits.
func (m *AreaDamage) Life() *Lifetime { return &m.Lifetime }

// Bind and Unbind do nothing; the effect only reacts to hits.
func (m *AreaDamage) Bind(Entity)   {}
func (m *AreaDamage) Unbind(Entity) {}

// OnHit splashes the hit point.
func (m *AreaDamage) OnHit(e HitEvent) {
	if e.World == nil || e.Owner == nil {
		return
	}
	damage := e.Owner.BaseStat(types.StatAttackDamage) * m.Ratio
	if damage <= 0 {
		return
	}
	for _, enemy := range e.World.EnemiesWithin(e.Owner, e.Point, m.Radius) {
		e.World.ApplyDamage(enemy, damage, e.Owner)
	}
}

// AttackDebuff permanently reduces the struck enemy's base attack damage by Ratio.
type AttackDebuff struct {
	Ratio float64
	Lifetime
}

// Label names the effect with its reduction percentage.
func (m *AttackDebuff) Label() string {
	return fmt.Sprintf("attack_debuff(-%.0f%%)", m.Ratio*100)
}

// Life exposes the use and duration limits.
func (m *AttackDebuff) Life() *Lifetime { return &m.Lifetime }

// Bind and Unbind do nothing; the debuff lands on the target, not the owner.
func (m *AttackDebuff) Bind(Entity)   {}
func (m *AttackDebuff) Unbind(Entity) {}

// OnHit lowers the living target's base attack damage.
func (m *AttackDebuff) OnHit(e HitEvent) {
	if e.Target == nil || !e.Target.Alive() {
		return
	}
	current := e.Target.BaseStat(types.StatAttackDamage)
	e.Target.AdjustBaseStat(types.StatAttackDamage, -current*m.Ratio)
}

// ExtraProjectile increments the owner's persistent projectile count once,
// when bound. The increment outlives the modifier.
type ExtraProjectile struct {
	Lifetime
	applied bool
}

// Label returns "extra_projectile".
func (m *ExtraProjectile) Label() string { return "extra_projectile" }

// Life exposes the use and duration limits.
func (m *ExtraProjectile) Life() *Lifetime { return &m.Lifetime }

// Bind adds one projectile to owner the first time it is called.
func (m *ExtraProjectile) Bind(owner Entity) {
	if m.applied {
		return
	}
	m.applied = true
	owner.AdjustBaseStat(types.StatProjectileCount, 1)
}

// Unbind leaves the extra projectile in place.
func (m *ExtraProjectile) Unbind(Entity) {}

// HookModifier composes an ad hoc effect from plain functions. Nil functions
// do not observe their hook and do not consume uses.
type HookModifier struct {
	Name      string
	Attack    func(AttackEvent)
	Hit       func(HitEvent)
	Damaged   func(DamagedEvent)
	OnBind    func(Entity)
	OnUnbind  func(Entity)
	Lifetime
}

// Label returns Name.
func (m *HookModifier) Label() string { return m.Name }

// Life exposes the use and duration limits.
func (m *HookModifier) Life() *Lifetime { return &m.Lifetime }

// Bind runs OnBind if set.

func (m *HookModifier) Bind(owner Entity) {
	if m.OnBind != nil {
		m.OnBind(owner)
	}
}

// Unbind runs OnUnbind if set.
func (m *HookModifier) Unbind(owner Entity) {
	if m.OnUnbind != nil {
		m.OnUnbind(owner)
	}
}

// Triggers reports whether a callback is set for h.
func (m *HookModifier) Triggers(h Hook) bool {
	switch h {
	case HookAttack:
		return m.Attack != nil
	case HookHit:
		return m.Hit != nil
	case HookDamaged:
		return m.Damaged != nil
	}
	return false
}

// OnAttack, OnHit and OnDamaged forward to the matching callback. The engine
// only calls the ones Triggers reports.
func (m *HookModifier) OnAttack(e AttackEvent)   { m.Attack(e) }
func (m *HookModifier) OnHit(e HitEvent)         { m.Hit(e) }
func (m *HookModifier) OnDamaged(e DamagedEvent) { m.Damaged(e) }

// FromEventKind builds the event modifier for an augment event effect.
func FromEventKind(kind types.EventKind, radius, ratio, duration float64, uses int) (EventModifier, error) {
	life := Lifetime{Duration: duration, Uses: uses}
	switch kind {
	case types.EventAreaDamageOnHit:
		return &AreaDamage{Radius: radius, Ratio: ratio, Lifetime: life}, nil
	case types.EventAttackDebuffOnHit:
		return &AttackDebuff{Ratio: ratio, Lifetime: life}, nil
	case types.EventExtraProjectile:
		return &ExtraProjectile{Lifetime: life}, nil
	}
	return nil, fmt.Errorf("unsupported event kind %s", kind)
}
