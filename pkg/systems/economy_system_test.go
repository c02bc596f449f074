package systems

import (
	"testing"

	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/types"
)

func TestEconomyHarvest(t *testing.T) {
	f := newFixture(t, nil)
	p := f.addPlayer(t, types.Vec3{})
	mine := f.build(t, 2, p.ID(), 0, 0)
	p.SetPosition(mine.Position().Add(types.Vec3{X: 1}))
	eco := NewEconomySystem(f.registry, logger.Discard())

	eco.Update(1)
	if !approx(mine.Resource.Stack, 10) || p.Ledger.Get(types.ResourceGold) != 100 {
		t.Fatalf("stack=%v gold=%d after 1s", mine.Resource.Stack, p.Ledger.Get(types.ResourceGold))
	}

	eco.Update(1)
	if got := p.Ledger.Get(types.ResourceGold); got != 120 {
		t.Errorf("gold = %d, want 120", got)
	}
	if mine.Resource.Stack != 0 {
		t.Errorf("stack = %v, want 0 after harvest", mine.Resource.Stack)
	}
}

func TestEconomyStackCapsAndLeavingResets(t *testing.T) {
	f := newFixture(t, nil)
	p := f.addPlayer(t, types.Vec3{X: 30, Z: 30})
	mine := f.build(t, 2, p.ID(), 0, 0)
	eco := NewEconomySystem(f.registry, logger.Discard())

	eco.Update(100)
	if mine.Resource.Stack != mine.Resource.MaxStack {
		t.Errorf("stack = %v, want capped at %v", mine.Resource.Stack, mine.Resource.MaxStack)
	}

	p.SetPosition(mine.Position())
	eco.Update(1.5)
	p.SetPosition(types.Vec3{X: 30, Z: 30})
	eco.Update(0.1)
	p.SetPosition(mine.Position())
	eco.Update(1)
	if got := p.Ledger.Get(types.ResourceGold); got != 100 {
		t.Errorf("gold = %d, progress should reset when leaving range", got)
	}
}

func TestEconomyWallRepair(t *testing.T) {
	f := newFixture(t, nil)
	p := f.addPlayer(t, types.Vec3{})
	wall := f.build(t, 3, p.ID(), 10, 10)
	f.battlefield.Damage(wall, 105, nil)

	eco := NewEconomySystem(f.registry, logger.Discard())
	p.SetPosition(types.Vec3{X: 30, Z: 30})
	eco.Update(1)
	if !approx(wall.Vitals.Health, 900) {
		t.Fatalf("health = %v, no player in range should not repair", wall.Vitals.Health)
	}

	p.SetPosition(wall.Position())
	eco.Update(2)
	if !approx(wall.Vitals.Health, 910) {
		t.Errorf("health = %v, want 910", wall.Vitals.Health)
	}

	eco.Update(1000)
	if wall.Vitals.Health != wall.Vitals.MaxHealth {
		t.Errorf("repair should stop at max health, got %v", wall.Vitals.Health)
	}
}
