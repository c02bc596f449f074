package modifier

import (
	"math"
	"testing"

	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/types"
)

type fakeEntity struct {
	id    ecs.EntityID
	pos   types.Vec3
	alive bool
	base  map[types.Stat]float64
	hp    float64
}

func newFake(id ecs.EntityID, pos types.Vec3) *fakeEntity {
	return &fakeEntity{id: id, pos: pos, alive: true, base: map[types.Stat]float64{}, hp: 100}
}

func (f *fakeEntity) ID() ecs.EntityID                    { return f.id }
func (f *fakeEntity) Alive() bool                         { return f.alive }
func (f *fakeEntity) Position() types.Vec3                { return f.pos }
func (f *fakeEntity) BaseStat(s types.Stat) float64       { return f.base[s] }
func (f *fakeEntity) AdjustBaseStat(s types.Stat, d float64) { f.base[s] += d }

type fakeWorld struct {
	enemies []*fakeEntity
	damage  map[ecs.EntityID]float64
}

func (w *fakeWorld) EnemiesWithin(_ Entity, c types.Vec3, r float64) []Entity {
	var out []Entity
	for _, e := range w.enemies {
		if e.alive && e.pos.Distance(c) <= r {
			out = append(out, e)
		}
	}
	return out
}

func (w *fakeWorld) ApplyDamage(t Entity, raw float64, _ Entity) {
	if w.damage == nil {
		w.damage = map[ecs.EntityID]float64{}
	}
	w.damage[t.ID()] += raw
}

func TestStatModifierOrderMatters(t *testing.T) {
	owner := newFake(1, types.Vec3{})
	add := &StatModifier{Stat: types.StatAttackDamage, Op: types.OpAdditive, Value: 10}
	mul := &StatModifier{Stat: types.StatAttackDamage, Op: types.OpMultiplicative, Value: 0.2}

	t.Run("additive first", func(t *testing.T) {
		e := NewEngine(owner)
		e.AddStat(add)
		e.AddStat(mul)
		if got := e.Modified(types.StatAttackDamage, 100); math.Abs(got-132) > 1e-9 {
			t.Errorf("Modified = %v, want 132", got)
		}
	})

	t.Run("multiplicative first", func(t *testing.T) {
		e := NewEngine(owner)
		e.AddStat(mul)
		e.AddStat(add)
		if got := e.Modified(types.StatAttackDamage, 100); math.Abs(got-130) > 1e-9 {
			t.Errorf("Modified = %v, want 130", got)
		}
	})

	t.Run("other stats untouched", func(t *testing.T) {
		e := NewEngine(owner)
		e.AddStat(add)
		if got := e.Modified(types.StatAttackSpeed, 1); got != 1 {
			t.Errorf("attack speed = %v, want 1", got)
		}
	})
}

func TestStatModifierRemoveAndExpire(t *testing.T) {
	owner := newFake(1, types.Vec3{})
	owner.base[types.StatAttackRange] = 8
	e := NewEngine(owner)

	timed := &StatModifier{Stat: types.StatAttackRange, Value: 2, Lifetime: Lifetime{Duration: 1}}
	permanent := &StatModifier{Stat: types.StatAttackRange, Value: 1}
	e.AddStat(timed)
	e.AddStat(permanent)

	if got := e.Value(types.StatAttackRange); got != 11 {
		t.Fatalf("Value = %v, want 11", got)
	}
	e.Update(0.5)
	if e.Len() != 2 {
		t.Fatalf("modifier expired too early")
	}
	e.Update(0.5)
	if got := e.Value(types.StatAttackRange); got != 9 {
		t.Errorf("after expiry Value = %v, want 9", got)
	}
	if !e.RemoveStat(permanent) || e.RemoveStat(permanent) {
		t.Error("RemoveStat should succeed once")
	}
}

func TestEventModifierUsesAndClear(t *testing.T) {
	owner := newFake(1, types.Vec3{})
	e := NewEngine(owner)

	hits, unbinds := 0, 0
	limited := &HookModifier{
		Name:     "counter",
		Hit:      func(HitEvent) { hits++ },
		OnUnbind: func(Entity) { unbinds++ },
		Lifetime: Lifetime{Uses: 2},
	}
	e.AddEvent(limited)

	for i := 0; i < 4; i++ {
		e.OnHit(HitEvent{Owner: owner})
	}
	if hits != 2 {
		t.Errorf("hook fired %d times, want 2", hits)
	}
	if unbinds != 1 || len(e.Events()) != 0 {
		t.Errorf("expired modifier should be unbound once and removed (unbinds=%d, events=%d)", unbinds, len(e.Events()))
	}

	// attack events do not consume a hit-only modifier
	attackOnly := &HookModifier{Name: "hit only", Hit: func(HitEvent) {}, Lifetime: Lifetime{Uses: 1}}
	e.AddEvent(attackOnly)
	e.OnAttack(AttackEvent{Owner: owner})
	if len(e.Events()) != 1 {
		t.Error("attack dispatch must not consume a hit observer")
	}

	timed := &HookModifier{Name: "timed", Damaged: func(DamagedEvent) {}, OnUnbind: func(Entity) { unbinds++ }, Lifetime: Lifetime{Duration: 2}}
	e.AddEvent(timed)
	e.Update(2)
	if slicesContains(e.Events(), timed) {
		t.Error("timed modifier should expire after its duration")
	}

	e.AddStat(&StatModifier{Stat: types.StatAttackDamage, Value: 1})
	before := unbinds
	e.Clear()
	if e.Len() != 0 {
		t.Errorf("Clear left %d modifiers", e.Len())
	}
	if unbinds != before {
		// attackOnly has no unbind hook; only verify nothing else fired
		t.Errorf("unexpected unbind calls during Clear")
	}
	e.OnHit(HitEvent{Owner: owner})
}

func slicesContains(list []EventModifier, m EventModifier) bool {
	for _, x := range list {
		if x == m {
			return true
		}
	}
	return false
}

func TestAreaDamageIncludesPrimaryTarget(t *testing.T) {
	owner := newFake(1, types.Vec3{})
	owner.base[types.StatAttackDamage] = 40
	primary := newFake(2, types.Vec3{X: 10})
	near := newFake(3, types.Vec3{X: 12})
	far := newFake(4, types.Vec3{X: 30})
	world := &fakeWorld{enemies: []*fakeEntity{primary, near, far}}

	e := NewEngine(owner)
	e.AddEvent(&AreaDamage{Radius: 5, Ratio: 0.5})
	e.AddStat(&StatModifier{Stat: types.StatAttackDamage, Value: 100})

	e.OnHit(HitEvent{World: world, Owner: owner, Target: primary, Point: primary.pos})

	if world.damage[primary.id] != 20 {
		t.Errorf("primary took %v, want 20", world.damage[primary.id])
	}
	if world.damage[near.id] != 20 {
		t.Errorf("near enemy took %v, want 20", world.damage[near.id])
	}
	if _, hit := world.damage[far.id]; hit {
		t.Error("enemy outside radius must not be hit")
	}
}

func TestAttackDebuffIsPermanent(t *testing.T) {
	owner := newFake(1, types.Vec3{})
	enemy := newFake(2, types.Vec3{})
	enemy.base[types.StatAttackDamage] = 50

	e := NewEngine(owner)
	e.AddEvent(&AttackDebuff{Ratio: 0.1})
	e.OnHit(HitEvent{Owner: owner, Target: enemy})
	e.OnHit(HitEvent{Owner: owner, Target: enemy})

	if got := enemy.base[types.StatAttackDamage]; math.Abs(got-40.5) > 1e-9 {
		t.Errorf("debuffed damage = %v, want 40.5", got)
	}
	e.Clear()
	if got := enemy.base[types.StatAttackDamage]; math.Abs(got-40.5) > 1e-9 {
		t.Errorf("debuff must survive modifier removal, got %v", got)
	}
}

func TestExtraProjectileIncrementsOnce(t *testing.T) {
	owner := newFake(1, types.Vec3{})
	owner.base[types.StatProjectileCount] = 1

	e := NewEngine(owner)
	m := &ExtraProjectile{}
	e.AddEvent(m)
	e.OnAttack(AttackEvent{Owner: owner})
	m.Bind(owner)

	if got := owner.base[types.StatProjectileCount]; got != 2 {
		t.Errorf("projectile count = %v, want 2", got)
	}
	e.RemoveEvent(m)
	if got := owner.base[types.StatProjectileCount]; got != 2 {
		t.Errorf("increment should persist after removal, got %v", got)
	}
}

func TestFromEventKind(t *testing.T) {
	m, err := FromEventKind(types.EventAreaDamageOnHit, 5, 0.5, 0, 0)
	if err != nil {
		t.Fatalf("FromEventKind failed: %v", err)
	}
	if aoe, ok := m.(*AreaDamage); !ok || aoe.Radius != 5 {
		t.Errorf("unexpected modifier %#v", m)
	}
	if _, err := FromEventKind(types.EventKind(99), 0, 0, 0, 0); err == nil {
		t.Error("expected error for unknown kind")
	}
}
