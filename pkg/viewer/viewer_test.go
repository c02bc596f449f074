package viewer

import (
	"math"
	"testing"

	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/game"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/types"
)

func newTestViewer(t *testing.T) *Viewer {
	t.Helper()
	catalog, err := config.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	sim := game.NewSimulation(catalog, game.Options{Authority: true, Logger: logger.Discard()})
	id, err := sim.AddPlayer("viewer")
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	return New(sim, id, NewSettingsManager(nil, logger.Discard()), logger.Discard())
}

func TestScreenWorldRoundTrip(t *testing.T) {
	v := newTestViewer(t)
	p := types.Vec3{X: 12.5, Z: 7.25}
	sx, sy := v.worldToScreen(p)
	back := v.screenToWorld(float64(sx), float64(sy))
	if math.Abs(back.X-p.X) > 1e-3 || math.Abs(back.Z-p.Z) > 1e-3 {
		t.Errorf("round trip %+v -> %+v", p, back)
	}
	if x, y := v.cellAt(p); x != 12 || y != 7 {
		t.Errorf("cellAt = (%d,%d), want (12,7)", x, y)
	}
}

func TestLayoutFitsArenaAndPanel(t *testing.T) {
	v := newTestViewer(t)
	w, h := v.Layout(0, 0)
	// 40 cells at 16 px plus the panel, 48 rows tall
	if w != 40*16+2*margin+panelWidth || h != 48*16+2*margin {
		t.Errorf("Layout = %dx%d", w, h)
	}
}

func TestReportKeepsLastMessage(t *testing.T) {
	v := newTestViewer(t)
	_, err := v.sim.PlaceStructure(v.player, 1, -1, 0)
	v.report(err, "placed")
	if v.message == "placed" || v.message == "" {
		t.Errorf("message = %q, want the placement error", v.message)
	}
	v.report(nil, "ok")
	if v.message != "ok" {
		t.Errorf("message = %q", v.message)
	}
}
