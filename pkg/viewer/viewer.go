// Package viewer renders a local simulation with ebiten for debugging.
package viewer

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/game"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
)

const (
	margin     = 24
	panelWidth = 280
	// extra rows below the grid so the monster spawn point is visible
	spawnRows = 8
)

var (
	colorBackground = color.RGBA{R: 24, G: 28, B: 24, A: 255}
	colorGrid       = color.RGBA{R: 60, G: 70, B: 60, A: 255}
	colorAttack     = color.RGBA{R: 90, G: 140, B: 230, A: 255}
	colorResource   = color.RGBA{R: 230, G: 190, B: 60, A: 255}
	colorWall       = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	colorSupport    = color.RGBA{R: 150, G: 90, B: 200, A: 255}
	colorMonster    = color.RGBA{R: 220, G: 60, B: 60, A: 255}
	colorBoss       = color.RGBA{R: 255, G: 20, B: 120, A: 255}
	colorPlayer     = color.RGBA{R: 80, G: 230, B: 120, A: 255}
	colorShot       = color.RGBA{R: 255, G: 255, B: 140, A: 255}
	colorRock       = color.RGBA{R: 110, G: 90, B: 70, A: 255}
	colorRange      = color.RGBA{R: 90, G: 140, B: 230, A: 90}
	colorHealthBg   = color.RGBA{R: 60, G: 0, B: 0, A: 255}
	colorHealth     = color.RGBA{R: 0, G: 200, B: 0, A: 255}
)

// Viewer is an ebiten.Game that drives and draws a local simulation for one
// player.
type Viewer struct {
	sim      *game.Simulation
	player   ecs.EntityID
	settings *SettingsManager
	log      *logrus.Entry

	snap    game.Snapshot
	message string
}

// New creates a viewer controlling player inside sim.
func New(sim *game.Simulation, player ecs.EntityID, settings *SettingsManager, log logrus.FieldLogger) *Viewer {
	return &Viewer{
		sim:      sim,
		player:   player,
		settings: settings,
		log:      logger.For(log, "Viewer"),
		snap:     sim.Snapshot(),
	}
}

func (v *Viewer) Update() error {
	s := v.settings.Settings()
	v.handleKeys(s)
	v.handleMouse(s)

	dt := s.TimeScale / float64(ebiten.TPS())
	if err := v.sim.Tick(dt); err != nil {
		return err
	}
	v.snap = v.sim.Snapshot()
	return nil
}

func (v *Viewer) handleKeys(s *Settings) {
	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5} {
		if inpututil.IsKeyJustPressed(key) {
			if _, ok := v.sim.Catalog().Structure(i + 1); ok {
				s.Structure = i + 1
			}
		}
	}
	for i, key := range []ebiten.Key{ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC} {
		if inpututil.IsKeyJustPressed(key) {
			augment, err := v.sim.PickAugment(v.player, i)
			v.report(err, fmt.Sprintf("picked augment %d", augment))
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.report(v.sim.StartWave(), "wave started")
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		s.ShowGrid = !s.ShowGrid
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.ShowRanges = !s.ShowRanges
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		s.ShowHealth = !s.ShowHealth
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		v.settings.ScaleTime(2)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		v.settings.ScaleTime(0.5)
	}
}

func (v *Viewer) handleMouse(s *Settings) {
	cx, cy := ebiten.CursorPosition()
	pos := v.screenToWorld(float64(cx), float64(cy))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := v.cellAt(pos)
		_, err := v.sim.PlaceStructure(v.player, s.Structure, x, y)
		v.report(err, fmt.Sprintf("placed structure %d at (%d,%d)", s.Structure, x, y))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		v.report(v.sim.MovePlayer(v.player, pos), "moving")
	}
}

func (v *Viewer) report(err error, ok string) {
	if err != nil {
		v.message = err.Error()
		v.log.WithError(err).Debug("[Viewer] request rejected")
		return
	}
	v.message = ok
}

func (v *Viewer) pixelsPerMeter() float64 {
	return v.settings.Settings().PixelsPerMeter
}

func (v *Viewer) worldToScreen(p types.Vec3) (float32, float32) {
	origin := v.sim.Catalog().Simulation.Grid.Origin
	ppm := v.pixelsPerMeter()
	return float32(margin + (p.X-origin.X)*ppm), float32(margin + (p.Z-origin.Z)*ppm)
}

func (v *Viewer) screenToWorld(x, y float64) types.Vec3 {
	origin := v.sim.Catalog().Simulation.Grid.Origin
	ppm := v.pixelsPerMeter()
	return types.Vec3{X: origin.X + (x-margin)/ppm, Y: origin.Y, Z: origin.Z + (y-margin)/ppm}
}

func (v *Viewer) cellAt(p types.Vec3) (int, int) {
	grid := v.sim.Catalog().Simulation.Grid
	return int((p.X - grid.Origin.X) / grid.CellSize), int((p.Z - grid.Origin.Z) / grid.CellSize)
}

func (v *Viewer) arenaSize() (float64, float64) {
	grid := v.sim.Catalog().Simulation.Grid
	ppm := v.pixelsPerMeter()
	w := float64(grid.Width) * grid.CellSize * ppm
	h := float64(grid.Height+spawnRows) * grid.CellSize * ppm
	return w, h
}

func (v *Viewer) Layout(_, _ int) (int, int) {
	w, h := v.arenaSize()
	return int(w) + 2*margin + panelWidth, int(h) + 2*margin
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	s := v.settings.Settings()

	if s.ShowGrid {
		v.drawGrid(screen)
	}
	for _, r := range v.snap.Rocks {
		x, y := v.worldToScreen(r)
		vector.DrawFilledRect(screen, x-4, y-4, 8, 8, colorRock, false)
	}
	v.drawStructures(screen, s)

	for _, m := range v.snap.Monsters {
		x, y := v.worldToScreen(m.Position)
		radius, clr := float32(5), colorMonster
		if m.Boss {
			radius, clr = 9, colorBoss
		}
		vector.DrawFilledCircle(screen, x, y, radius, clr, true)
		if s.ShowHealth {
			drawHealthBar(screen, x-radius, y-radius-5, radius*2, m.Health, m.MaxHealth)
		}
	}
	for _, p := range v.snap.Players {
		x, y := v.worldToScreen(p.Position)
		vector.DrawFilledCircle(screen, x, y, 6, colorPlayer, true)
		if s.ShowHealth {
			drawHealthBar(screen, x-6, y-11, 12, p.Health, p.MaxHealth)
		}
	}
	for _, p := range v.snap.Projectiles {
		x, y := v.worldToScreen(p.Position)
		vector.DrawFilledCircle(screen, x, y, 2, colorShot, false)
	}

	v.drawPanel(screen)
}

func (v *Viewer) drawGrid(screen *ebiten.Image) {
	grid := v.sim.Catalog().Simulation.Grid
	step := float32(grid.CellSize * v.pixelsPerMeter())
	w, h := float32(grid.Width)*step, float32(grid.Height)*step
	for i := 0; i <= grid.Width; i++ {
		x := margin + float32(i)*step
		vector.StrokeLine(screen, x, margin, x, margin+h, 1, colorGrid, false)
	}
	for j := 0; j <= grid.Height; j++ {
		y := margin + float32(j)*step
		vector.StrokeLine(screen, margin, y, margin+w, y, 1, colorGrid, false)
	}
}

func (v *Viewer) drawStructures(screen *ebiten.Image, s *Settings) {
	grid := v.sim.Catalog().Simulation.Grid
	step := float32(grid.CellSize * v.pixelsPerMeter())

	for _, st := range v.snap.Structures {
		x := margin + float32(st.Cell[0])*step
		y := margin + float32(st.Cell[1])*step
		w, h := float32(st.Size[0])*step, float32(st.Size[1])*step
		vector.DrawFilledRect(screen, x+1, y+1, w-2, h-2, categoryColor(st.Category), false)

		if s.ShowRanges && st.Category == types.CategoryAttack {
			if tmpl, ok := v.sim.Catalog().Structure(st.TemplateID); ok && tmpl.Attack != nil {
				cx, cy := v.worldToScreen(st.Position)
				r := float32(tmpl.Attack.Range * v.pixelsPerMeter())
				vector.StrokeCircle(screen, cx, cy, r, 1, colorRange, true)
			}
		}
		if s.ShowHealth {
			drawHealthBar(screen, x, y-4, w, st.Health, st.MaxHealth)
		}
	}
}

func (v *Viewer) drawPanel(screen *ebiten.Image) {
	w, _ := v.arenaSize()
	x := int(w) + 2*margin

	var b strings.Builder
	wave := v.snap.Wave
	fmt.Fprintf(&b, "t=%.1fs  tick %d\n", v.snap.Time, v.snap.Tick)
	fmt.Fprintf(&b, "wave %d (%s) %d/%d\n", wave.Number, wave.State, wave.Spawned, wave.Total)
	if wave.CooldownRemaining > 0 {
		fmt.Fprintf(&b, "next wave in %.1fs\n", wave.CooldownRemaining)
	}
	fmt.Fprintf(&b, "speed x%.2f\n\n", v.settings.Settings().TimeScale)

	if me, ok := v.snap.Player(v.player); ok {
		fmt.Fprintf(&b, "%s  hp %.0f/%.0f\n", me.Name, me.Health, me.MaxHealth)
		fmt.Fprintf(&b, "gold %d wood %d stone %d\n", me.Resources.Gold, me.Resources.Wood, me.Resources.Stone)
		fmt.Fprintf(&b, "augments %v\n", me.Augments)
	}
	fmt.Fprintf(&b, "monster augments %v\n\n", v.snap.MonsterAugments)

	if offer := v.snap.Offer; offer != nil {
		fmt.Fprintf(&b, "%s offer (Z/X/C):\n", offer.Rarity)
		for i, id := range offer.Options {
			name := fmt.Sprint(id)
			if a, ok := v.sim.Catalog().Augment(id); ok {
				name = a.Name
			}
			fmt.Fprintf(&b, " %d. %s\n", i+1, name)
		}
		b.WriteString("\n")
	}

	if tmpl, ok := v.sim.Catalog().Structure(v.settings.Settings().Structure); ok {
		fmt.Fprintf(&b, "build [1-5]: %s\n", tmpl.Name)
	}
	st := v.snap.Stats
	fmt.Fprintf(&b, "kills %d  lost %d\nhits %d misses %d\n\n", st.MonstersKilled, st.StructuresLost, st.Hits, st.Misses)
	b.WriteString("LMB build  RMB move  SPACE wave\nG grid  R ranges  H health  +/- speed\n\n")
	b.WriteString(v.message)

	ebitenutil.DebugPrintAt(screen, b.String(), x, margin)
}

func categoryColor(c types.Category) color.Color {
	switch c {
	case types.CategoryAttack:
		return colorAttack
	case types.CategoryResource:
		return colorResource
	case types.CategoryWall:
		return colorWall
	}
	return colorSupport
}

func drawHealthBar(screen *ebiten.Image, x, y, w float32, health, maxHealth float64) {
	if maxHealth <= 0 {
		return
	}
	ratio := float32(health / maxHealth)
	vector.DrawFilledRect(screen, x, y, w, 2, colorHealthBg, false)
	vector.DrawFilledRect(screen, x, y, w*ratio, 2, colorHealth, false)
}
