package systems

import (
	"testing"

	"github.com/gonewx/bastion/pkg/modifier"
	"github.com/gonewx/bastion/pkg/types"
)

func TestLifetimeExpiresTimedModifiers(t *testing.T) {
	f := newFixture(t, nil)
	turret := f.build(t, 1, 0, 5, 5)
	m := f.spawn(t, 1, types.Vec3{X: 30, Z: 30})

	turret.Modifiers().AddStat(&modifier.StatModifier{
		Name: "rage", Stat: types.StatAttackDamage, Op: types.OpAdditive, Value: 10,
		Lifetime: modifier.Lifetime{Duration: 2},
	})
	turret.Modifiers().AddStat(&modifier.StatModifier{
		Name: "forever", Stat: types.StatAttackDamage, Op: types.OpAdditive, Value: 1,
	})
	m.Modifiers().AddEvent(&modifier.AttackDebuff{Ratio: 0.1, Lifetime: modifier.Lifetime{Duration: 1}})

	system := NewLifetimeSystem(f.registry)
	system.Update(1.5)
	if got := turret.Modifiers().Value(types.StatAttackDamage); !approx(got, 36) {
		t.Errorf("damage = %v, want 36 before expiry", got)
	}
	if len(m.Modifiers().Events()) != 0 {
		t.Error("monster event modifier should have expired")
	}

	system.Update(1)
	if got := turret.Modifiers().Value(types.StatAttackDamage); !approx(got, 26) {
		t.Errorf("damage = %v, want 26 after expiry", got)
	}
}
