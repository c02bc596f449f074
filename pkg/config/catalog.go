package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gonewx/bastion/pkg/embedded"
	"github.com/gonewx/bastion/pkg/types"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a catalog lookup misses.
var ErrNotFound = errors.New("catalog entry not found")

// Catalog is the read-only game data: structure, monster, wave and augment
// templates plus the simulation tunables. Lookups return shared pointers that
// callers must not modify.
type Catalog struct {
	Simulation SimulationConfig    `yaml:"simulation"`
	Structures []StructureTemplate `yaml:"structures"`
	Monsters   []MonsterTemplate   `yaml:"monsters"`
	Waves      []WaveTemplate      `yaml:"waves"`
	Augments   []AugmentTemplate   `yaml:"augments"`

	structureByID map[int]*StructureTemplate
	monsterByID   map[int]*MonsterTemplate
	waveByID      map[int]*WaveTemplate
	augmentByID   map[int]*AugmentTemplate
	byRarity      map[types.Rarity][]*AugmentTemplate
}

// LoadCatalog reads and validates a catalog YAML file.
// Paths carrying the embedded prefix resolve against the built-in data.
//
// Returns an error when the file cannot be read, parsed or fails validation.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return c, nil
}

// DefaultCatalog loads the catalog compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(embedded.CatalogPath)
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	c.Simulation.applyDefaults()
	if err := c.build(); err != nil {
		return nil, err
	}
	return &c, nil
}

// build validates every record and indexes it by id.
func (c *Catalog) build() error {
	if err := validateSimulation(&c.Simulation); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	c.structureByID = make(map[int]*StructureTemplate, len(c.Structures))
	for i := range c.Structures {
		s := &c.Structures[i]
		if err := validateStructure(s); err != nil {
			return err
		}
		if _, dup := c.structureByID[s.ID]; dup {
			return fmt.Errorf("duplicate structure id %d", s.ID)
		}
		c.structureByID[s.ID] = s
	}

	c.monsterByID = make(map[int]*MonsterTemplate, len(c.Monsters))
	for i := range c.Monsters {
		m := &c.Monsters[i]
		if err := validateMonster(m); err != nil {
			return err
		}
		if _, dup := c.monsterByID[m.ID]; dup {
			return fmt.Errorf("duplicate monster id %d", m.ID)
		}
		c.monsterByID[m.ID] = m
	}

	c.waveByID = make(map[int]*WaveTemplate, len(c.Waves))
	for i := range c.Waves {
		w := &c.Waves[i]
		if err := validateWave(w, c.monsterByID); err != nil {
			return err
		}
		if _, dup := c.waveByID[w.ID]; dup {
			return fmt.Errorf("duplicate wave id %d", w.ID)
		}
		c.waveByID[w.ID] = w
	}

	c.augmentByID = make(map[int]*AugmentTemplate, len(c.Augments))
	c.byRarity = make(map[types.Rarity][]*AugmentTemplate)
	for i := range c.Augments {
		a := &c.Augments[i]
		if err := validateAugment(a); err != nil {
			return err
		}
		if _, dup := c.augmentByID[a.ID]; dup {
			return fmt.Errorf("duplicate augment id %d", a.ID)
		}
		c.augmentByID[a.ID] = a
		c.byRarity[a.Rarity] = append(c.byRarity[a.Rarity], a)
	}
	for r := range c.byRarity {
		list := c.byRarity[r]
		sort.SliceStable(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	}
	return nil
}

// Structure looks up a structure template by id.
func (c *Catalog) Structure(id int) (*StructureTemplate, bool) {
	s, ok := c.structureByID[id]
	return s, ok
}

// Monster looks up a monster template by id.
func (c *Catalog) Monster(id int) (*MonsterTemplate, bool) {
	m, ok := c.monsterByID[id]
	return m, ok
}

// Wave looks up a wave template by id.
func (c *Catalog) Wave(id int) (*WaveTemplate, bool) {
	w, ok := c.waveByID[id]
	return w, ok
}

// Augment looks up an augment template by id.
func (c *Catalog) Augment(id int) (*AugmentTemplate, bool) {
	a, ok := c.augmentByID[id]
	return a, ok
}

// AugmentsByRarity returns the augments of a rarity ordered by id.
func (c *Catalog) AugmentsByRarity(r types.Rarity) []*AugmentTemplate {
	return c.byRarity[r]
}
