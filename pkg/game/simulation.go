// Package game hosts the authoritative simulation facade and its tick loop.
package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/gonewx/bastion/pkg/components"
	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/entities"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/systems"
	"github.com/gonewx/bastion/pkg/types"
	"github.com/gonewx/bastion/pkg/world"
	"github.com/sirupsen/logrus"
)

const (
	// pathMargin lets monsters chase players slightly outside the grid.
	pathMargin = 10
	// rockClearance, in rock spacings, keeps walkers out of the gaps between
	// adjacent rocks.
	rockClearance = 0.6
)

// Options configures a Simulation.
type Options struct {
	// Authority marks the one instance allowed to mutate state.
	Authority bool
	// Seed drives every random roll; equal seeds replay equal games.
	Seed uint64

	// Placement and Pathfinder default to world.Grid and world.DirectPathfinder.
	Placement  world.PlacementService
	Pathfinder world.Pathfinder

	Logger logrus.FieldLogger
}

// Simulation owns the world state and every system. It is not safe for
// concurrent use; Loop serialises access to it.
type Simulation struct {
	authority bool
	catalog   *config.Catalog
	log       *logrus.Entry

	now  float64
	tick uint64

	registry  *world.Registry
	placement world.PlacementService
	path      world.Pathfinder
	entrance  *world.Entrance
	factory   *entities.Factory
	queue     *systems.EventQueue

	battlefield *systems.Battlefield
	projectiles *systems.ProjectileSystem
	combat      *systems.CombatSystem
	monsterAI   *systems.MonsterAISystem
	augments    *systems.AugmentSystem
	waves       *systems.WaveSystem
	economy     *systems.EconomySystem
	movement    *systems.PlayerMovementSystem
	lifetime    *systems.LifetimeSystem
}

// NewSimulation wires a fresh game over catalog.
func NewSimulation(catalog *config.Catalog, opts Options) *Simulation {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	sim := &catalog.Simulation
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	s := &Simulation{
		authority: opts.Authority,
		catalog:   catalog,
		log:       logger.For(log, "Simulation"),
		registry:  world.NewRegistry(),
		placement: opts.Placement,
		path:      opts.Pathfinder,
		entrance:  world.NewEntrance(sim.Entrance, log),
		factory:   entities.NewFactory(catalog, ecs.NewIDAllocator(), log),
		queue:     systems.NewEventQueue(),
	}
	if s.placement == nil || s.path == nil {
		grid := world.NewGrid(sim.Grid)
		if s.placement == nil {
			s.placement = grid
		}
		if s.path == nil {
			s.path = world.NewDirectPathfinder(grid, pathMargin).
				WithObstacles(s.entrance, rockClearance*sim.Entrance.RockSpacing)
		}
	}

	s.battlefield = systems.NewBattlefield(s.registry, s.placement, s.factory, log)
	s.projectiles = systems.NewProjectileSystem(s.battlefield, s.factory, sim, log)
	s.combat = systems.NewCombatSystem(s.registry, s.battlefield, s.factory, s.projectiles, s.queue, sim, log)
	s.monsterAI = systems.NewMonsterAISystem(s.registry, s.battlefield, s.path, log)
	s.augments = systems.NewAugmentSystem(catalog, s.registry, rng, log)
	s.waves = systems.NewWaveSystem(catalog, s.registry, s.factory, s.queue, s.augments, rng, log)
	s.economy = systems.NewEconomySystem(s.registry, log)
	s.movement = systems.NewPlayerMovementSystem(s.registry, s.path)
	s.lifetime = systems.NewLifetimeSystem(s.registry)

	s.waves.OnMonsterSpawned = s.augments.OnMonsterSpawned
	s.waves.OnStateChanged = func(from, to systems.WaveState) {
		s.log.WithFields(logrus.Fields{"from": from, "to": to, "wave": s.waves.WaveID()}).Debug("[Simulation] wave state changed")
	}
	return s
}

// Authority reports whether this instance may mutate state.
func (s *Simulation) Authority() bool { return s.authority }

// Now returns the simulation clock in seconds.
func (s *Simulation) Now() float64 { return s.now }

// TickCount returns the number of ticks run so far.
func (s *Simulation) TickCount() uint64 { return s.tick }

// Catalog returns the catalog the game runs on.
func (s *Simulation) Catalog() *config.Catalog { return s.catalog }

// WaveState returns the wave scheduler phase.
func (s *Simulation) WaveState() systems.WaveState { return s.waves.State() }

func (s *Simulation) guard(op string) error {
	if !s.authority {
		s.log.WithField("op", op).Warn("[Simulation] rejected: not the authority")
		return ErrNotAuthority
	}
	return nil
}

// activePlayer returns a registered, living player.
func (s *Simulation) activePlayer(id ecs.EntityID) (*components.Player, error) {
	p, ok := s.registry.Player(id)
	if !ok {
		return nil, fmt.Errorf("player %d: %w", id, ErrUnknownPlayer)
	}
	if !p.Alive() {
		return nil, fmt.Errorf("player %d: %w", id, ErrPlayerDefeated)
	}
	return p, nil
}

// Tick advances the game by deltaTime seconds.
func (s *Simulation) Tick(deltaTime float64) error {
	if err := s.guard("Tick"); err != nil {
		return err
	}
	if deltaTime <= 0 {
		return nil
	}
	s.now += deltaTime
	s.tick++

	s.queue.Update(s.now)
	s.waves.Update(s.now)
	s.monsterAI.Update(deltaTime, s.now)
	s.combat.Update(s.now)
	s.projectiles.Update(deltaTime)
	s.economy.Update(deltaTime)
	s.movement.Update(deltaTime)
	s.lifetime.Update(deltaTime)
	return nil
}

// AddPlayer joins a new player at the configured spawn and widens the
// monster entrance.
func (s *Simulation) AddPlayer(name string) (ecs.EntityID, error) {
	if err := s.guard("AddPlayer"); err != nil {
		return ecs.InvalidID, err
	}
	p := s.factory.NewPlayer(name, s.catalog.Simulation.PlayerSpawn)
	if err := s.registry.RegisterPlayer(p); err != nil {
		return ecs.InvalidID, fmt.Errorf("add player %q: %w", name, err)
	}
	if err := s.entrance.PlayersChanged(s.registry.PlayerCount()); err != nil {
		s.log.WithError(err).Error("[Simulation] entrance update failed")
	}
	s.log.WithFields(logrus.Fields{"player": p.ID(), "name": name}).Info("[Simulation] ✅ player joined")
	return p.ID(), nil
}

// RemovePlayer takes a player out of the game. Their structures stay.
// Removing an absent player does nothing.
func (s *Simulation) RemovePlayer(id ecs.EntityID) error {
	if err := s.guard("RemovePlayer"); err != nil {
		return err
	}
	p, ok := s.registry.Player(id)
	if !ok {
		return nil
	}
	p.Deactivate()
	s.registry.UnregisterPlayer(id)
	s.augments.ForgetPlayer(id)
	s.log.WithField("player", id).Info("[Simulation] player left")
	return nil
}

// PlaceStructure builds templateID with its footprint's lower corner at cell
// (cellX, cellY), charging the player's ledger. Nothing changes on error.
func (s *Simulation) PlaceStructure(playerID ecs.EntityID, templateID, cellX, cellY int) (ecs.EntityID, error) {
	if err := s.guard("PlaceStructure"); err != nil {
		return ecs.InvalidID, err
	}
	p, err := s.activePlayer(playerID)
	if err != nil {
		return ecs.InvalidID, err
	}
	tmpl, ok := s.catalog.Structure(templateID)
	if !ok {
		return ecs.InvalidID, fmt.Errorf("structure template %d: %w", templateID, config.ErrNotFound)
	}

	fp := components.Footprint{X: cellX, Y: cellY, Width: tmpl.SizeX, Height: tmpl.SizeY}
	if err := s.placement.IsAreaFree(fp); err != nil {
		return ecs.InvalidID, fmt.Errorf("place %s: %w", tmpl.Name, err)
	}
	if !p.Ledger.CanAfford(tmpl.Costs) {
		return ecs.InvalidID, fmt.Errorf("place %s: %w", tmpl.Name, ErrInsufficientResources)
	}

	st, err := s.factory.NewStructure(templateID, p.ID(), fp, s.placement.FootprintCenter(fp))
	if err != nil {
		return ecs.InvalidID, err
	}
	if err := s.placement.Place(st.ID(), fp); err != nil {
		s.factory.ReleaseStructure(st)
		return ecs.InvalidID, fmt.Errorf("place %s: %w", tmpl.Name, err)
	}
	if err := s.registry.RegisterStructure(st); err != nil {
		s.placement.Remove(st.ID())
		s.factory.ReleaseStructure(st)
		return ecs.InvalidID, err
	}
	p.Ledger.Spend(tmpl.Costs)
	s.augments.OnStructureBuilt(st)

	s.log.WithFields(logrus.Fields{"player": p.ID(), "structure": st.ID(), "cell": [2]int{cellX, cellY}}).
		Infof("[Simulation] 🏗️ %s placed", tmpl.Name)
	return st.ID(), nil
}

// RemoveStructure demolishes one of the player's structures. Removing a
// structure that no longer exists does nothing.
func (s *Simulation) RemoveStructure(playerID, structureID ecs.EntityID) error {
	if err := s.guard("RemoveStructure"); err != nil {
		return err
	}
	if _, ok := s.registry.Player(playerID); !ok {
		return fmt.Errorf("player %d: %w", playerID, ErrUnknownPlayer)
	}
	st, ok := s.registry.Structure(structureID)
	if !ok {
		return nil
	}
	if st.OwnerID != playerID {
		return fmt.Errorf("structure %d: %w", structureID, ErrNotOwner)
	}
	s.battlefield.RemoveStructure(st)
	return nil
}

// StartWave starts the current wave now.
func (s *Simulation) StartWave() error {
	if err := s.guard("StartWave"); err != nil {
		return err
	}
	return s.waves.Start(s.now)
}

// PickAugment claims option index of the open augment round for the player
// and returns the chosen augment id.
func (s *Simulation) PickAugment(playerID ecs.EntityID, index int) (int, error) {
	if err := s.guard("PickAugment"); err != nil {
		return 0, err
	}
	if _, err := s.activePlayer(playerID); err != nil {
		return 0, err
	}
	a, err := s.augments.Pick(playerID, index)
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}

// MovePlayer sets the player's walk destination.
func (s *Simulation) MovePlayer(playerID ecs.EntityID, destination types.Vec3) error {
	if err := s.guard("MovePlayer"); err != nil {
		return err
	}
	p, err := s.activePlayer(playerID)
	if err != nil {
		return err
	}
	if !s.path.Reachable(p.Position(), destination) {
		return fmt.Errorf("move to %+v: %w", destination, ErrUnreachable)
	}
	p.Destination = &destination
	return nil
}
