package types

import (
	"math"
	"testing"
)

func TestEnumTextRoundTrip(t *testing.T) {
	var c Category
	if err := c.UnmarshalText([]byte("wall")); err != nil || c != CategoryWall {
		t.Fatalf("UnmarshalText(wall) = %v, %v", c, err)
	}
	var p TargetPriority
	if err := p.UnmarshalText([]byte("lowest_hp")); err != nil || p != PriorityLowestHP {
		t.Fatalf("UnmarshalText(lowest_hp) = %v, %v", p, err)
	}
	var r Rarity
	if err := r.UnmarshalText([]byte("diamond")); err == nil {
		t.Error("expected error for unknown rarity")
	}
	if Stat(42).String() != "unknown" {
		t.Errorf("out of range stat should stringify as unknown")
	}
}

func TestVec3MoveTowards(t *testing.T) {
	from := Vec3{}
	to := Vec3{X: 3, Z: 4}

	step := from.MoveTowards(to, 2.5)
	if math.Abs(step.Distance(from)-2.5) > 1e-9 {
		t.Errorf("step length = %v, want 2.5", step.Distance(from))
	}
	if got := from.MoveTowards(to, 10); got != to {
		t.Errorf("overshoot: got %v, want %v", got, to)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero normalize = %v", got)
	}
}
