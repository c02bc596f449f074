package systems

import (
	"errors"
	"testing"

	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/types"
)

func TestWaveSpawnTiming(t *testing.T) {
	f := newFixture(t, nil)
	for i := 0; i < 3; i++ {
		f.addPlayer(t, types.Vec3{X: 20, Z: 20})
	}

	if err := f.waves.Start(0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, total := f.waves.Progress(); total != 16 {
		t.Fatalf("total = %d, want 16", total)
	}

	f.waves.Update(3.74)
	if spawned, _ := f.waves.Progress(); spawned != 0 {
		t.Errorf("spawned %d before the first interval", spawned)
	}

	for k := 1; k <= 16; k++ {
		f.waves.Update(3.75 * float64(k))
		if spawned, _ := f.waves.Progress(); spawned != k {
			t.Fatalf("at t=%.2f spawned = %d, want %d", 3.75*float64(k), spawned, k)
		}
	}
	if f.registry.AliveMonsterCount() != 16 {
		t.Errorf("alive = %d, want 16", f.registry.AliveMonsterCount())
	}
	if f.waves.State() != WaveActive {
		t.Errorf("wave should stay active while monsters live, got %v", f.waves.State())
	}
}

func TestWaveLateUpdateCatchesUp(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.waves.Start(10); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// 10 monsters over 60s, one every 6s
	f.waves.Update(10 + 31)
	if spawned, _ := f.waves.Progress(); spawned != 5 {
		t.Errorf("spawned = %d, want 5", spawned)
	}
}

func TestWaveStartRejectedWhileActive(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.waves.Start(0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := f.waves.Start(1); !errors.Is(err, ErrWaveActive) {
		t.Errorf("second Start error = %v, want ErrWaveActive", err)
	}
}

func TestWaveUnknownFirstWave(t *testing.T) {
	f := newFixture(t, func(c *config.Catalog) { c.Simulation.FirstWave = 99 })
	if err := f.waves.Start(0); !errors.Is(err, ErrUnknownWave) {
		t.Errorf("Start error = %v, want ErrUnknownWave", err)
	}
	if f.waves.State() != WaveIdle {
		t.Errorf("state = %v, want idle", f.waves.State())
	}
}

func TestWaveBossAndVictory(t *testing.T) {
	f := newFixture(t, func(c *config.Catalog) { c.Simulation.FirstWave = 3 })

	var transitions []WaveState
	f.waves.OnStateChanged = func(_, to WaveState) { transitions = append(transitions, to) }

	if err := f.waves.Start(0); err != nil {
		t.Fatalf("Start: %v", err)
	}

	f.waves.Update(59)
	for _, m := range f.registry.AliveMonsters() {
		if m.IsBoss() {
			t.Fatal("boss spawned before every entry finished")
		}
	}

	f.waves.Update(60)
	spawned, total := f.waves.Progress()
	if spawned != 11 || total != 11 {
		t.Fatalf("progress = %d/%d, want 11/11", spawned, total)
	}
	bosses := 0
	for _, m := range f.registry.AliveMonsters() {
		if m.IsBoss() {
			bosses++
		}
	}
	if bosses != 1 {
		t.Fatalf("bosses = %d, want 1", bosses)
	}

	f.killAll()
	f.waves.Update(61)
	if f.waves.State() != WaveCooldown {
		t.Fatalf("state = %v, want cooldown", f.waves.State())
	}
	if f.augments.CurrentRound() == nil {
		t.Error("wave end should open an augment round")
	}
	if got := f.waves.CooldownRemaining(71); !approx(got, 20) {
		t.Errorf("CooldownRemaining = %v, want 20", got)
	}

	f.queue.Update(61 + f.catalog.Simulation.WaveCooldown)
	if f.waves.State() != WaveVictory {
		t.Fatalf("state = %v, want victory", f.waves.State())
	}
	if err := f.waves.Start(100); !errors.Is(err, ErrGameOver) {
		t.Errorf("Start after victory = %v, want ErrGameOver", err)
	}

	want := []WaveState{WaveActive, WaveEnded, WaveCooldown, WaveVictory}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, transitions[i], want[i])
		}
	}
}

func TestWaveCooldownStartsNextWave(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.waves.Start(0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	f.waves.Update(60)
	f.killAll()
	f.waves.Update(60)

	if f.waves.State() != WaveCooldown || f.waves.WaveID() != 2 {
		t.Fatalf("state = %v wave = %d, want cooldown before wave 2", f.waves.State(), f.waves.WaveID())
	}

	f.queue.Update(90)
	if f.waves.State() != WaveActive || f.waves.WaveNumber() != 2 {
		t.Errorf("state = %v number = %d, want wave 2 active", f.waves.State(), f.waves.WaveNumber())
	}
}

func TestWaveEarlyStartDuringCooldown(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.waves.Start(0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	f.waves.Update(60)
	f.killAll()
	f.waves.Update(60)

	if err := f.waves.Start(65); err != nil {
		t.Fatalf("early Start: %v", err)
	}
	f.waves.Update(70)
	spawnedBefore, _ := f.waves.Progress()

	// the stale cooldown event must not restart the wave
	f.queue.Update(90)
	spawnedAfter, _ := f.waves.Progress()
	if f.waves.WaveNumber() != 2 || spawnedAfter < spawnedBefore {
		t.Errorf("wave restarted by stale cooldown: number=%d spawned %d -> %d",
			f.waves.WaveNumber(), spawnedBefore, spawnedAfter)
	}
}

func TestWaveSpawnFailureConsumesSlot(t *testing.T) {
	f := newFixture(t, func(c *config.Catalog) {
		c.Waves[0].Spawns[0].MonsterID = 404
	})
	if err := f.waves.Start(0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	f.waves.Update(60)
	if spawned, total := f.waves.Progress(); spawned != total {
		t.Errorf("progress = %d/%d, failed spawns should still count", spawned, total)
	}
	if f.waves.State() != WaveCooldown {
		t.Errorf("state = %v, want cooldown", f.waves.State())
	}
}
