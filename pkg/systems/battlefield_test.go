package systems

import (
	"testing"

	"github.com/gonewx/bastion/pkg/components"
	"github.com/gonewx/bastion/pkg/modifier"
	"github.com/gonewx/bastion/pkg/types"
)

func TestDamageKillsOnce(t *testing.T) {
	f := newFixture(t, nil)
	m := f.spawn(t, 1, types.Vec3{X: 10, Z: 10})

	damaged := 0
	m.Modifiers().AddEvent(&modifier.HookModifier{
		Name:    "count",
		Damaged: func(modifier.DamagedEvent) { damaged++ },
	})

	res := f.battlefield.Damage(m, 55, nil)
	if !res.Applied || !approx(res.Dealt, 50) || res.Killed {
		t.Fatalf("first hit = %+v, want 50 dealt and alive", res)
	}
	res = f.battlefield.Damage(m, 1000, nil)
	if !res.Killed || !approx(res.Dealt, 50) {
		t.Fatalf("second hit = %+v, want lethal 50", res)
	}
	if damaged != 2 {
		t.Errorf("on-damaged fired %d times, want 2", damaged)
	}

	res = f.battlefield.Damage(m, 1000, nil)
	if res.Applied || res.Killed {
		t.Errorf("damage to a dead monster = %+v, want no effect", res)
	}
	if f.battlefield.MonstersKilled != 1 {
		t.Errorf("MonstersKilled = %d, want 1", f.battlefield.MonstersKilled)
	}
	if f.registry.AliveMonsterCount() != 0 {
		t.Error("dead monster still registered")
	}
}

func TestDefenseFloorsAtZero(t *testing.T) {
	f := newFixture(t, nil)
	wall := f.build(t, 3, 0, 0, 0)

	res := f.battlefield.Damage(wall, 3, nil)
	if !res.Applied || res.Dealt != 0 || wall.Vitals.Health != wall.Vitals.MaxHealth {
		t.Errorf("damage below defense = %+v, health %v", res, wall.Vitals.Health)
	}
}

func TestDestroyedStructureFreesCells(t *testing.T) {
	f := newFixture(t, nil)
	mine := f.build(t, 2, 0, 4, 4)

	var destroyed []*components.Structure
	f.battlefield.OnStructureDestroyed = func(s *components.Structure) { destroyed = append(destroyed, s) }

	f.battlefield.Damage(mine, 1e9, nil)
	if f.battlefield.StructuresLost != 1 || len(destroyed) != 1 {
		t.Fatalf("lost=%d callbacks=%d, want 1/1", f.battlefield.StructuresLost, len(destroyed))
	}
	for _, c := range [][2]int{{4, 4}, {5, 4}, {4, 5}, {5, 5}} {
		if f.grid.IsOccupied(c[0], c[1]) {
			t.Errorf("cell %v still occupied", c)
		}
	}
	if f.battlefield.RemoveStructure(mine) {
		t.Error("removing a destroyed structure should report false")
	}
}

func TestPlayerDefeatIsCounted(t *testing.T) {
	f := newFixture(t, nil)
	p := f.addPlayer(t, types.Vec3{X: 1, Z: 1})

	f.battlefield.Damage(p, 150, nil)
	if p.Alive() || f.battlefield.PlayersDefeated != 1 {
		t.Errorf("alive=%v defeated=%d", p.Alive(), f.battlefield.PlayersDefeated)
	}
	if _, ok := f.registry.Player(p.ID()); !ok {
		t.Error("defeated players stay registered")
	}
}
