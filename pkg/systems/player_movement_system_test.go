package systems

import (
	"testing"

	"github.com/gonewx/bastion/pkg/types"
)

func TestPlayerMovesToDestination(t *testing.T) {
	f := newFixture(t, nil)
	p := f.addPlayer(t, types.Vec3{X: 10, Z: 10})
	dest := types.Vec3{X: 10, Z: 17}
	p.Destination = &dest
	system := NewPlayerMovementSystem(f.registry, f.path)

	system.Update(1)
	if got := p.Position(); !approx(got.Z, 15) {
		t.Errorf("Z after 1s = %v, want 15", got.Z)
	}
	system.Update(1)
	if p.Position() != dest || p.Destination != nil {
		t.Errorf("position=%v destination=%v, want arrival", p.Position(), p.Destination)
	}
}
