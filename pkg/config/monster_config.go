package config

import (
	"fmt"
	"math"
)

// MonsterTemplate is the immutable catalog record of a monster type.
type MonsterTemplate struct {
	ID           int     `yaml:"id"`
	Name         string  `yaml:"name"`
	MaxHealth    float64 `yaml:"maxHealth"`
	Defense      float64 `yaml:"defense"`
	MoveSpeed    float64 `yaml:"moveSpeed"`
	AttackDamage float64 `yaml:"attackDamage"`
	AttackRange  float64 `yaml:"attackRange"`
	AttackSpeed  float64 `yaml:"attackSpeed"`

	// Scaling applies per elapsed interval; an interval of 0 disables it.
	ScalingIntervalMinutes float64 `yaml:"scalingIntervalMinutes"`
	HealthScaling          float64 `yaml:"healthScaling"`
	DamageScaling          float64 `yaml:"damageScaling"`
	DefenseScaling         float64 `yaml:"defenseScaling"`

	IsBoss bool `yaml:"isBoss"`
}

// ScaledStats is the spawn-time snapshot of a monster's scaled stats.
type ScaledStats struct {
	Steps     int
	MaxHealth float64
	Defense   float64
	Damage    float64
}

// PoolKey is the object pool key of the monster template.
func (m *MonsterTemplate) PoolKey() string {
	return fmt.Sprintf("monster/%d", m.ID)
}

// ScalingSteps returns floor(elapsedMinutes / interval), or 0 when scaling is disabled.
func (m *MonsterTemplate) ScalingSteps(elapsedSeconds float64) int {
	if m.ScalingIntervalMinutes <= 0 || elapsedSeconds <= 0 {
		return 0
	}
	return int(math.Floor((elapsedSeconds / 60) / m.ScalingIntervalMinutes))
}

// Scaled computes health, defense and damage at the given elapsed game time:
//
//	value = base × (1 + rate × steps)
//
// Move speed and attack range are never scaled.
func (m *MonsterTemplate) Scaled(elapsedSeconds float64) ScaledStats {
	steps := float64(m.ScalingSteps(elapsedSeconds))
	return ScaledStats{
		Steps:     int(steps),
		MaxHealth: m.MaxHealth * (1 + m.HealthScaling*steps),
		Defense:   m.Defense * (1 + m.DefenseScaling*steps),
		Damage:    m.AttackDamage * (1 + m.DamageScaling*steps),
	}
}

func validateMonster(m *MonsterTemplate) error {
	if m.ID <= 0 {
		return fmt.Errorf("monster %q: id must be positive, got %d", m.Name, m.ID)
	}
	if m.MaxHealth <= 0 {
		return fmt.Errorf("monster %d: maxHealth must be positive, got %v", m.ID, m.MaxHealth)
	}
	if m.AttackSpeed <= 0 {
		return fmt.Errorf("monster %d: attackSpeed must be positive, got %v", m.ID, m.AttackSpeed)
	}
	if m.Defense < 0 || m.MoveSpeed < 0 || m.AttackDamage < 0 || m.AttackRange < 0 {
		return fmt.Errorf("monster %d: stats cannot be negative", m.ID)
	}
	if m.ScalingIntervalMinutes < 0 {
		return fmt.Errorf("monster %d: scalingIntervalMinutes cannot be negative, got %v", m.ID, m.ScalingIntervalMinutes)
	}
	return nil
}
