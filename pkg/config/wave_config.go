package config

import "fmt"

// SpawnEntry is one monster type scheduled within a wave.
type SpawnEntry struct {
	MonsterID      int `yaml:"monster"`
	BaseCount      int `yaml:"baseCount"`
	PerPlayerCount int `yaml:"perPlayerCount"`
}

// Total returns base + perPlayer × players.
func (e SpawnEntry) Total(players int) int {
	if players < 0 {
		players = 0
	}
	return e.BaseCount + e.PerPlayerCount*players
}

// WaveTemplate is the immutable catalog record of a wave.
type WaveTemplate struct {
	ID       int          `yaml:"id"`
	Number   int          `yaml:"number"`
	Duration float64      `yaml:"duration"` // seconds
	Spawns   []SpawnEntry `yaml:"spawns"`
	BossID   int          `yaml:"boss"` // 0 means no boss
}

// HasBoss reports whether the wave ends with a boss spawn.
func (w *WaveTemplate) HasBoss() bool {
	return w.BossID > 0
}

// SpawnInterval spreads an entry's spawns evenly over the wave duration.
// It returns 0 when the entry spawns nothing.
func (w *WaveTemplate) SpawnInterval(e SpawnEntry, players int) float64 {
	total := e.Total(players)
	if total <= 0 {
		return 0
	}
	return w.Duration / float64(total)
}

func validateWave(w *WaveTemplate, monsters map[int]*MonsterTemplate) error {
	if w.ID <= 0 {
		return fmt.Errorf("wave id must be positive, got %d", w.ID)
	}
	if len(w.Spawns) > 0 && w.Duration <= 0 {
		return fmt.Errorf("wave %d: duration must be positive, got %v", w.ID, w.Duration)
	}
	for i, e := range w.Spawns {
		if _, ok := monsters[e.MonsterID]; !ok {
			return fmt.Errorf("wave %d: spawn %d references unknown monster %d", w.ID, i, e.MonsterID)
		}
		if e.BaseCount < 0 || e.PerPlayerCount < 0 {
			return fmt.Errorf("wave %d: spawn %d counts cannot be negative", w.ID, i)
		}
	}
	if w.HasBoss() {
		if _, ok := monsters[w.BossID]; !ok {
			return fmt.Errorf("wave %d: unknown boss monster %d", w.ID, w.BossID)
		}
	}
	return nil
}
