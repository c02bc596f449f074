package systems

import (
	"errors"
	"fmt"

	"github.com/gonewx/bastion/pkg/components"
	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/entities"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/types"
	"github.com/gonewx/bastion/pkg/world"
	"github.com/sirupsen/logrus"
)

// spawnEpsilon absorbs float drift when comparing the clock to spawn times.
const spawnEpsilon = 1e-9

var (
	// ErrWaveActive is returned when starting a wave while one is running.
	ErrWaveActive = errors.New("wave already active")
	// ErrGameOver is returned when starting a wave after victory.
	ErrGameOver = errors.New("all waves cleared")
	// ErrUnknownWave is returned when the wave to start is not in the catalog.
	ErrUnknownWave = errors.New("unknown wave")
)

// WaveState is the phase of the wave state machine.
type WaveState int

const (
	WaveIdle WaveState = iota
	WaveActive
	WaveEnded
	WaveCooldown
	WaveVictory
)

func (s WaveState) String() string {
	switch s {
	case WaveIdle:
		return "idle"
	case WaveActive:
		return "active"
	case WaveEnded:
		return "ended"
	case WaveCooldown:
		return "cooldown"
	case WaveVictory:
		return "victory"
	}
	return "unknown"
}

// spawnTrack follows one spawn entry of the active wave.
type spawnTrack struct {
	monsterID int
	total     int
	spawned   int
	interval  float64
}

func (t *spawnTrack) done() bool {
	return t.spawned >= t.total
}

// WaveSystem is the wave scheduler:
//
//	Idle → Active → Ended → Cooldown → Active | Victory
//
// Each spawn entry spreads its monsters evenly over the wave duration, the
// boss spawns once every entry is complete, and the wave ends when everything
// has spawned and no monster is left alive.
type WaveSystem struct {
	catalog  *config.Catalog
	registry *world.Registry
	factory  *entities.Factory
	queue    *EventQueue
	augments *AugmentSystem
	rng      Rand
	log      *logrus.Entry

	state       WaveState
	waveID      int
	wave        *config.WaveTemplate
	startTime   float64
	tracks      []spawnTrack
	bossSpawned bool
	generation  int
	cooldownAt  float64

	// OnMonsterSpawned runs after a monster is registered.
	OnMonsterSpawned func(m *components.Monster)
	// OnStateChanged runs on every state transition.
	OnStateChanged func(from, to WaveState)
}

// NewWaveSystem creates an idle wave scheduler positioned at the first wave.
func NewWaveSystem(catalog *config.Catalog, registry *world.Registry, factory *entities.Factory, queue *EventQueue, augments *AugmentSystem, rng Rand, log logrus.FieldLogger) *WaveSystem {
	return &WaveSystem{
		catalog:  catalog,
		registry: registry,
		factory:  factory,
		queue:    queue,
		augments: augments,
		rng:      rng,
		log:      logger.For(log, "WaveSystem"),
		state:    WaveIdle,
		waveID:   catalog.Simulation.FirstWave,
	}
}

// State returns the current phase.
func (w *WaveSystem) State() WaveState { return w.state }

// WaveID returns the id of the active wave, or of the next wave when none is active.
func (w *WaveSystem) WaveID() int { return w.waveID }

// WaveNumber returns the display number of the active wave, or 0.
func (w *WaveSystem) WaveNumber() int {
	if w.wave == nil {
		return 0
	}
	return w.wave.Number
}

// CooldownRemaining returns the seconds until the next wave starts during cooldown.
func (w *WaveSystem) CooldownRemaining(now float64) float64 {
	if w.state != WaveCooldown {
		return 0
	}
	return max(0, w.cooldownAt-now)
}

// Progress returns the spawned and total monster counts of the active wave,
// boss included.
func (w *WaveSystem) Progress() (spawned, total int) {
	for _, t := range w.tracks {
		spawned += t.spawned
		total += t.total
	}
	if w.wave != nil && w.wave.HasBoss() {
		total++
		if w.bossSpawned {
			spawned++
		}
	}
	return spawned, total
}

// Start begins the current wave at time now. It is rejected while a wave is
// active or after victory. Starting during cooldown skips the rest of it.
func (w *WaveSystem) Start(now float64) error {
	switch w.state {
	case WaveActive:
		w.log.Warn("[WaveSystem] start rejected: wave already active")
		return ErrWaveActive
	case WaveVictory:
		return ErrGameOver
	}

	wave, ok := w.catalog.Wave(w.waveID)
	if !ok {
		w.log.WithField("wave", w.waveID).Error("[WaveSystem] wave data not found")
		return fmt.Errorf("wave %d: %w", w.waveID, ErrUnknownWave)
	}

	players := w.registry.PlayerCount()
	tracks := make([]spawnTrack, 0, len(wave.Spawns))
	for _, entry := range wave.Spawns {
		tracks = append(tracks, spawnTrack{
			monsterID: entry.MonsterID,
			total:     entry.Total(players),
			interval:  wave.SpawnInterval(entry, players),
		})
	}

	w.generation++
	w.wave = wave
	w.tracks = tracks
	w.bossSpawned = false
	w.startTime = now
	w.setState(WaveActive)

	_, total := w.Progress()
	w.log.WithFields(logrus.Fields{"wave": wave.ID, "players": players, "monsters": total}).
		Infof("[WaveSystem] ✅ Wave %d started", wave.Number)
	return nil
}

// Update spawns due monsters and checks the end condition.
func (w *WaveSystem) Update(now float64) {
	if w.state != WaveActive {
		return
	}

	allDone := true
	for i := range w.tracks {
		t := &w.tracks[i]
		for !t.done() && now+spawnEpsilon >= w.startTime+t.interval*float64(t.spawned+1) {
			t.spawned++
			w.spawn(t.monsterID, now)
		}
		if !t.done() {
			allDone = false
		}
	}
	if !allDone {
		return
	}

	if w.wave.HasBoss() && !w.bossSpawned {
		w.bossSpawned = true
		w.log.Infof("[WaveSystem] 👑 boss %d spawning", w.wave.BossID)
		w.spawn(w.wave.BossID, now)
	}

	if w.registry.AliveMonsterCount() == 0 {
		w.end(now)
	}
}

// spawn creates one monster near the spawn point. Failures are logged and the
// slot is still consumed so the wave can finish.
func (w *WaveSystem) spawn(monsterID int, now float64) {
	sim := &w.catalog.Simulation
	pos := sim.SpawnPoint
	if sim.SpawnSpread > 0 {
		offset := float64(w.rng.IntN(2001)-1000) / 1000 * sim.SpawnSpread
		pos = pos.Add(types.Vec3{X: offset})
	}

	m, err := w.factory.NewMonster(monsterID, pos, now, w.wave.ID)
	if err != nil {
		w.log.WithError(err).WithField("monster", monsterID).Error("[WaveSystem] spawn aborted")
		return
	}
	if err := w.registry.RegisterMonster(m); err != nil {
		w.log.WithError(err).Error("[WaveSystem] register failed")
		w.factory.ReleaseMonster(m)
		return
	}
	if w.OnMonsterSpawned != nil {
		w.OnMonsterSpawned(m)
	}
}

// end runs the augment round, advances to the next wave and schedules it
// after the cooldown.
func (w *WaveSystem) end(now float64) {
	w.setState(WaveEnded)
	w.log.Infof("[WaveSystem] 🏁 Wave %d cleared", w.wave.Number)

	if w.augments != nil {
		w.augments.StartRound(w.wave.Number)
	}

	w.waveID++
	w.cooldownAt = now + w.catalog.Simulation.WaveCooldown
	w.setState(WaveCooldown)

	gen := w.generation
	w.queue.Schedule(w.cooldownAt, func(at float64) {
		if w.generation != gen || w.state != WaveCooldown {
			return
		}
		if _, ok := w.catalog.Wave(w.waveID); !ok {
			w.setState(WaveVictory)
			w.log.Info("[WaveSystem] 🎉 Victory: all waves cleared")
			return
		}
		if err := w.Start(at); err != nil {
			w.log.WithError(err).Error("[WaveSystem] scheduled start failed")
		}
	})
}

func (w *WaveSystem) setState(to WaveState) {
	from := w.state
	w.state = to
	if w.OnStateChanged != nil && from != to {
		w.OnStateChanged(from, to)
	}
}
