package systems

import (
	"testing"

	"github.com/gonewx/bastion/pkg/components"
	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/entities"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/types"
	"github.com/gonewx/bastion/pkg/world"
)

// fixedRand replays vals in a loop, each reduced modulo n.
type fixedRand struct {
	vals []int
	i    int
}

func (r *fixedRand) IntN(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

type fixture struct {
	catalog     *config.Catalog
	registry    *world.Registry
	grid        *world.Grid
	path        *world.DirectPathfinder
	factory     *entities.Factory
	queue       *EventQueue
	rng         *fixedRand
	battlefield *Battlefield
	projectiles *ProjectileSystem
	combat      *CombatSystem
	ai          *MonsterAISystem
	augments    *AugmentSystem
	waves       *WaveSystem
}

// newFixture wires every system over the embedded catalog. edit may adjust the
// catalog before anything reads it.
func newFixture(t *testing.T, edit func(c *config.Catalog)) *fixture {
	t.Helper()
	catalog, err := config.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	if edit != nil {
		edit(catalog)
	}

	log := logger.Discard()
	f := &fixture{
		catalog:  catalog,
		registry: world.NewRegistry(),
		grid:     world.NewGrid(catalog.Simulation.Grid),
		queue:    NewEventQueue(),
		rng:      &fixedRand{},
	}
	sim := &catalog.Simulation
	f.path = world.NewDirectPathfinder(f.grid, 10)
	f.factory = entities.NewFactory(catalog, ecs.NewIDAllocator(), log)
	f.battlefield = NewBattlefield(f.registry, f.grid, f.factory, log)
	f.projectiles = NewProjectileSystem(f.battlefield, f.factory, sim, log)
	f.combat = NewCombatSystem(f.registry, f.battlefield, f.factory, f.projectiles, f.queue, sim, log)
	f.ai = NewMonsterAISystem(f.registry, f.battlefield, f.path, log)
	f.augments = NewAugmentSystem(catalog, f.registry, f.rng, log)
	f.waves = NewWaveSystem(catalog, f.registry, f.factory, f.queue, f.augments, f.rng, log)
	f.waves.OnMonsterSpawned = f.augments.OnMonsterSpawned
	return f
}

func (f *fixture) addPlayer(t *testing.T, pos types.Vec3) *components.Player {
	t.Helper()
	p := f.factory.NewPlayer("tester", pos)
	if err := f.registry.RegisterPlayer(p); err != nil {
		t.Fatalf("RegisterPlayer: %v", err)
	}
	return p
}

func (f *fixture) build(t *testing.T, templateID int, owner ecs.EntityID, x, y int) *components.Structure {
	t.Helper()
	tmpl, ok := f.catalog.Structure(templateID)
	if !ok {
		t.Fatalf("structure %d not in catalog", templateID)
	}
	fp := components.Footprint{X: x, Y: y, Width: tmpl.SizeX, Height: tmpl.SizeY}
	s, err := f.factory.NewStructure(templateID, owner, fp, f.grid.FootprintCenter(fp))
	if err != nil {
		t.Fatalf("NewStructure: %v", err)
	}
	if err := f.grid.Place(s.ID(), fp); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if err := f.registry.RegisterStructure(s); err != nil {
		t.Fatalf("RegisterStructure: %v", err)
	}
	f.augments.OnStructureBuilt(s)
	return s
}

func (f *fixture) spawn(t *testing.T, templateID int, pos types.Vec3) *components.Monster {
	t.Helper()
	m, err := f.factory.NewMonster(templateID, pos, 0, 1)
	if err != nil {
		t.Fatalf("NewMonster: %v", err)
	}
	if err := f.registry.RegisterMonster(m); err != nil {
		t.Fatalf("RegisterMonster: %v", err)
	}
	return m
}

func (f *fixture) killAll() {
	for _, m := range f.registry.AliveMonsters() {
		f.battlefield.Damage(m, 1e9, nil)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
