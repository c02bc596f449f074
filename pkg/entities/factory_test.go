package entities

import (
	"errors"
	"math"
	"testing"

	"github.com/gonewx/bastion/pkg/components"
	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/types"
)

func newTestFactory(t *testing.T) *Factory {
	t.Helper()
	catalog, err := config.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	return NewFactory(catalog, ecs.NewIDAllocator(), logger.Discard())
}

func TestNewMonsterAppliesScaling(t *testing.T) {
	f := newTestFactory(t)

	fresh, err := f.NewMonster(1, types.Vec3{}, 0, 1)
	if err != nil {
		t.Fatalf("NewMonster: %v", err)
	}
	if fresh.Vitals.MaxHealth != 100 || fresh.AttackDamage != 10 {
		t.Errorf("unscaled zombie: hp %v dmg %v", fresh.Vitals.MaxHealth, fresh.AttackDamage)
	}

	late, _ := f.NewMonster(1, types.Vec3{}, 120, 2)
	if math.Abs(late.Vitals.MaxHealth-130) > 1e-9 || late.ScalingSteps != 2 {
		t.Errorf("two-minute zombie: hp %v steps %d", late.Vitals.MaxHealth, late.ScalingSteps)
	}
	if late.MoveSpeed != 3 || late.AttackRange != 2 {
		t.Error("speed and range must never scale")
	}
	if late.ID() == fresh.ID() {
		t.Error("each monster needs a unique id")
	}

	if _, err := f.NewMonster(42, types.Vec3{}, 0, 1); !errors.Is(err, config.ErrNotFound) {
		t.Errorf("unknown monster: got %v", err)
	}
}

func TestStructureRecyclingResetsState(t *testing.T) {
	f := newTestFactory(t)
	fp := components.Footprint{Width: 1, Height: 1}

	s, err := f.NewStructure(1, 9, fp, types.Vec3{X: 1})
	if err != nil {
		t.Fatalf("NewStructure: %v", err)
	}
	oldID := s.ID()
	s.Vitals.ApplyDamage(200)
	s.AdjustBaseStat(types.StatProjectileCount, 3)

	f.ReleaseStructure(s)
	again, _ := f.NewStructure(1, 9, fp, types.Vec3{X: 2})
	if again != s {
		t.Fatal("expected pooled instance to be reused")
	}
	if again.ID() == oldID {
		t.Error("reused structure must get a fresh id")
	}
	if again.Vitals.Health != 500 || again.Attack.ProjectileCount != 1 {
		t.Errorf("reused structure kept stale state: hp %v projectiles %v", again.Vitals.Health, again.Attack.ProjectileCount)
	}
	if stats := f.PoolStats()["structures"]; stats.Reused != 1 || stats.Outstanding != 1 {
		t.Errorf("pool stats %+v", stats)
	}
}

func TestMonsterReleaseClearsTransientState(t *testing.T) {
	f := newTestFactory(t)

	m, err := f.NewMonster(1, types.Vec3{X: 3}, 120, 4)
	if err != nil {
		t.Fatalf("NewMonster: %v", err)
	}
	m.LastAttack = 42
	m.AttackDamage = 999

	f.ReleaseMonster(m)
	if !math.IsInf(m.LastAttack, -1) {
		t.Errorf("LastAttack = %v after release, want -Inf", m.LastAttack)
	}
	if m.AttackDamage != 0 || m.AttackSpeed != 0 || m.AttackRange != 0 || m.MoveSpeed != 0 {
		t.Errorf("attack stats kept after release: %+v", m)
	}
	if m.SpawnTime != 0 || m.ScalingSteps != 0 || m.WaveID != 0 || m.Target.IsSet() {
		t.Errorf("spawn snapshot kept after release: time %v steps %d wave %d", m.SpawnTime, m.ScalingSteps, m.WaveID)
	}

	again, _ := f.NewMonster(1, types.Vec3{}, 0, 1)
	if again != m {
		t.Fatal("expected pooled instance to be reused")
	}
	if again.AttackDamage != 10 || again.ScalingSteps != 0 || again.WaveID != 1 || !math.IsInf(again.LastAttack, -1) {
		t.Errorf("reused monster: dmg %v steps %d wave %d last attack %v", again.AttackDamage, again.ScalingSteps, again.WaveID, again.LastAttack)
	}
}

func TestProjectileReleaseClearsFlightState(t *testing.T) {
	f := newTestFactory(t)

	source, err := f.NewStructure(1, 9, components.Footprint{Width: 1, Height: 1}, types.Vec3{X: 1})
	if err != nil {
		t.Fatalf("NewStructure: %v", err)
	}
	target, _ := f.NewMonster(1, types.Vec3{X: 5, Z: 5}, 0, 1)

	p, err := f.NewProjectile(source, target, 30)
	if err != nil {
		t.Fatalf("NewProjectile: %v", err)
	}
	p.Movement = types.MovementHoming
	p.Elapsed = 0.7
	p.FlightTime = 1.5

	f.ReleaseProjectile(p)
	if p.Aim != (types.Vec3{}) || p.Start != (types.Vec3{}) {
		t.Errorf("positions kept after release: aim %+v start %+v", p.Aim, p.Start)
	}
	if p.Speed != 0 || p.Damage != 0 || p.Elapsed != 0 || p.FlightTime != 0 {
		t.Errorf("flight values kept after release: %+v", p)
	}
	if p.Movement != types.MovementLinear || p.Source != nil || p.Target.IsSet() {
		t.Errorf("references kept after release: movement %v source %v", p.Movement, p.Source)
	}
	if stats := f.PoolStats()["projectiles"]; stats.Outstanding != 0 || stats.Free != 1 {
		t.Errorf("pool stats %+v", stats)
	}
}
