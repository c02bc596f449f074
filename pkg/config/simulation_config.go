package config

import (
	"fmt"

	"github.com/gonewx/bastion/pkg/types"
)

// RarityWeights are the relative roll weights of each augment rarity.
type RarityWeights struct {
	Silver   int `yaml:"silver"`
	Gold     int `yaml:"gold"`
	Platinum int `yaml:"platinum"`
}

// Weight returns the weight of r.
func (w RarityWeights) Weight(r types.Rarity) int {
	switch r {
	case types.RaritySilver:
		return w.Silver
	case types.RarityGold:
		return w.Gold
	case types.RarityPlatinum:
		return w.Platinum
	}
	return 0
}

// Total returns the sum of all weights.
func (w RarityWeights) Total() int {
	return w.Silver + w.Gold + w.Platinum
}

// ResourceAmounts is a Gold/Wood/Stone triple.
type ResourceAmounts struct {
	Gold  int `yaml:"gold"`
	Wood  int `yaml:"wood"`
	Stone int `yaml:"stone"`
}

// Get returns the amount for r.
func (a ResourceAmounts) Get(r types.ResourceType) int {
	switch r {
	case types.ResourceGold:
		return a.Gold
	case types.ResourceWood:
		return a.Wood
	case types.ResourceStone:
		return a.Stone
	}
	return 0
}

// GridConfig describes the placement grid on the ground plane.
type GridConfig struct {
	Width    int        `yaml:"width"`
	Height   int        `yaml:"height"`
	CellSize float64    `yaml:"cellSize"`
	Origin   types.Vec3 `yaml:"origin"`
}

// EntranceConfig describes the rock row that blocks the monster entrance.
type EntranceConfig struct {
	Rocks          int        `yaml:"rocks"`
	RockSpacing    float64    `yaml:"rockSpacing"`
	RocksPerPlayer int        `yaml:"rocksPerPlayer"`
	Center         types.Vec3 `yaml:"center"`
}

// SimulationConfig holds the tunables of the authoritative simulation.
type SimulationConfig struct {
	TickRate              int             `yaml:"tickRate"`
	FirstWave             int             `yaml:"firstWave"`
	WaveCooldown          float64         `yaml:"waveCooldown"`
	ShotDelay             float64         `yaml:"shotDelay"`
	OptionsPerRound       int             `yaml:"optionsPerRound"`
	ArcHeight             float64         `yaml:"arcHeight"`
	ArrivalDistance       float64         `yaml:"arrivalDistance"`
	HomingArrivalDistance float64         `yaml:"homingArrivalDistance"`
	PlayerMaxHealth       float64         `yaml:"playerMaxHealth"`
	PlayerMoveSpeed       float64         `yaml:"playerMoveSpeed"`
	StartingResources     ResourceAmounts `yaml:"startingResources"`
	RarityWeights         RarityWeights   `yaml:"rarityWeights"`
	Grid                  GridConfig      `yaml:"grid"`
	PlayerSpawn           types.Vec3      `yaml:"playerSpawn"`
	SpawnPoint            types.Vec3      `yaml:"spawnPoint"`
	SpawnSpread           float64         `yaml:"spawnSpread"`
	Entrance              EntranceConfig  `yaml:"entrance"`
}

// DefaultSimulationConfig returns the built-in tunables.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		TickRate:              30,
		FirstWave:             1,
		WaveCooldown:          30,
		ShotDelay:             0.1,
		OptionsPerRound:       3,
		ArcHeight:             2,
		ArrivalDistance:       0.1,
		HomingArrivalDistance: 0.2,
		PlayerMaxHealth:       100,
		PlayerMoveSpeed:       5,
		StartingResources:     ResourceAmounts{Gold: 100, Wood: 100, Stone: 100},
		RarityWeights:         RarityWeights{Silver: 50, Gold: 30, Platinum: 20},
		Grid:                  GridConfig{Width: 40, Height: 40, CellSize: 1},
		Entrance:              EntranceConfig{RocksPerPlayer: 2, RockSpacing: 1},
	}
}

// applyDefaults fills zero-valued fields from DefaultSimulationConfig.
func (c *SimulationConfig) applyDefaults() {
	d := DefaultSimulationConfig()
	if c.TickRate == 0 {
		c.TickRate = d.TickRate
	}
	if c.FirstWave == 0 {
		c.FirstWave = d.FirstWave
	}
	if c.WaveCooldown == 0 {
		c.WaveCooldown = d.WaveCooldown
	}
	if c.ShotDelay == 0 {
		c.ShotDelay = d.ShotDelay
	}
	if c.OptionsPerRound == 0 {
		c.OptionsPerRound = d.OptionsPerRound
	}
	if c.ArcHeight == 0 {
		c.ArcHeight = d.ArcHeight
	}
	if c.ArrivalDistance == 0 {
		c.ArrivalDistance = d.ArrivalDistance
	}
	if c.HomingArrivalDistance == 0 {
		c.HomingArrivalDistance = d.HomingArrivalDistance
	}
	if c.PlayerMaxHealth == 0 {
		c.PlayerMaxHealth = d.PlayerMaxHealth
	}
	if c.PlayerMoveSpeed == 0 {
		c.PlayerMoveSpeed = d.PlayerMoveSpeed
	}
	if c.StartingResources == (ResourceAmounts{}) {
		c.StartingResources = d.StartingResources
	}
	if c.RarityWeights == (RarityWeights{}) {
		c.RarityWeights = d.RarityWeights
	}
	if c.Grid.Width == 0 {
		c.Grid.Width = d.Grid.Width
	}
	if c.Grid.Height == 0 {
		c.Grid.Height = d.Grid.Height
	}
	if c.Grid.CellSize == 0 {
		c.Grid.CellSize = d.Grid.CellSize
	}
	if c.Entrance.RocksPerPlayer == 0 {
		c.Entrance.RocksPerPlayer = d.Entrance.RocksPerPlayer
	}
	if c.Entrance.RockSpacing == 0 {
		c.Entrance.RockSpacing = d.Entrance.RockSpacing
	}
}

func validateSimulation(c *SimulationConfig) error {
	if c.TickRate < 1 {
		return fmt.Errorf("tickRate must be at least 1, got %d", c.TickRate)
	}
	if c.WaveCooldown < 0 || c.ShotDelay < 0 {
		return fmt.Errorf("waveCooldown and shotDelay cannot be negative")
	}
	if c.OptionsPerRound < 1 {
		return fmt.Errorf("optionsPerRound must be at least 1, got %d", c.OptionsPerRound)
	}
	w := c.RarityWeights
	if w.Silver < 0 || w.Gold < 0 || w.Platinum < 0 || w.Total() <= 0 {
		return fmt.Errorf("rarity weights must be non-negative with a positive total, got %+v", w)
	}
	if c.Grid.Width < 1 || c.Grid.Height < 1 || c.Grid.CellSize <= 0 {
		return fmt.Errorf("invalid grid %+v", c.Grid)
	}
	if c.Entrance.Rocks < 0 || c.Entrance.Rocks%2 != 0 {
		return fmt.Errorf("entrance rocks must be a non-negative even number, got %d", c.Entrance.Rocks)
	}
	if c.Entrance.RocksPerPlayer < 0 || c.Entrance.RocksPerPlayer%2 != 0 {
		return fmt.Errorf("entrance rocksPerPlayer must be a non-negative even number, got %d", c.Entrance.RocksPerPlayer)
	}
	return nil
}
