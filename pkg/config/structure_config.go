package config

import (
	"fmt"

	"github.com/gonewx/bastion/pkg/types"
)

// ResourceCost is one entry of a multi-resource construction cost.
type ResourceCost struct {
	Type   types.ResourceType `yaml:"type"`
	Amount int                `yaml:"amount"`
}

// AttackProfile holds the base combat stats of an attack structure.
type AttackProfile struct {
	Damage          float64              `yaml:"damage"`
	AttackSpeed     float64              `yaml:"attackSpeed"` // attacks per second
	Range           float64              `yaml:"range"`
	ProjectileCount int                  `yaml:"projectileCount"`
	ProjectileSpeed float64              `yaml:"projectileSpeed"`
	Movement        types.MovementKind   `yaml:"movement"`
	Priority        types.TargetPriority `yaml:"priority"`
}

// ResourceProfile holds the accumulation and harvest settings of a resource structure.
type ResourceProfile struct {
	Type            types.ResourceType `yaml:"type"`
	MaxStack        float64            `yaml:"maxStack"`
	YieldPerSecond  float64            `yaml:"yieldPerSecond"`
	HarvestDuration float64            `yaml:"harvestDuration"`
	ProximityRange  float64            `yaml:"proximityRange"`
}

// WallProfile holds the self-repair settings of a wall.
type WallProfile struct {
	RepairPerSecond float64 `yaml:"repairPerSecond"`
	ProximityRange  float64 `yaml:"proximityRange"`
}

// StructureTemplate is the immutable catalog record of a buildable structure.
// Exactly the profile matching Category is set.
type StructureTemplate struct {
	ID        int              `yaml:"id"`
	Name      string           `yaml:"name"`
	Category  types.Category   `yaml:"category"`
	SizeX     int              `yaml:"sizeX"`
	SizeY     int              `yaml:"sizeY"`
	MaxHealth float64          `yaml:"maxHealth"`
	Defense   float64          `yaml:"defense"`
	Costs     []ResourceCost   `yaml:"costs"`
	Attack    *AttackProfile   `yaml:"attack,omitempty"`
	Resource  *ResourceProfile `yaml:"resource,omitempty"`
	Wall      *WallProfile     `yaml:"wall,omitempty"`
}

// PoolKey is the object pool key of the structure template.
func (s *StructureTemplate) PoolKey() string {
	return fmt.Sprintf("structure/%d", s.ID)
}

func validateStructure(s *StructureTemplate) error {
	if s.ID <= 0 {
		return fmt.Errorf("structure %q: id must be positive, got %d", s.Name, s.ID)
	}
	if s.SizeX < 1 || s.SizeY < 1 {
		return fmt.Errorf("structure %d: footprint must be at least 1x1, got %dx%d", s.ID, s.SizeX, s.SizeY)
	}
	if s.MaxHealth <= 0 {
		return fmt.Errorf("structure %d: maxHealth must be positive, got %v", s.ID, s.MaxHealth)
	}
	if s.Defense < 0 {
		return fmt.Errorf("structure %d: defense cannot be negative, got %v", s.ID, s.Defense)
	}
	for _, c := range s.Costs {
		if c.Amount < 0 {
			return fmt.Errorf("structure %d: cost of %s cannot be negative, got %d", s.ID, c.Type, c.Amount)
		}
	}

	profiles := []struct {
		cat     types.Category
		present bool
	}{
		{types.CategoryAttack, s.Attack != nil},
		{types.CategoryResource, s.Resource != nil},
		{types.CategoryWall, s.Wall != nil},
	}
	for _, p := range profiles {
		if p.cat == s.Category && !p.present {
			return fmt.Errorf("structure %d: category %s requires a %s profile", s.ID, s.Category, p.cat)
		}
	}
	for _, p := range profiles {
		if p.cat != s.Category && p.present {
			return fmt.Errorf("structure %d: category %s cannot carry a %s profile", s.ID, s.Category, p.cat)
		}
	}

	switch s.Category {
	case types.CategoryAttack:
		a := s.Attack
		if a.AttackSpeed <= 0 {
			return fmt.Errorf("structure %d: attackSpeed must be positive, got %v", s.ID, a.AttackSpeed)
		}
		if a.Range <= 0 {
			return fmt.Errorf("structure %d: range must be positive, got %v", s.ID, a.Range)
		}
		if a.ProjectileCount < 1 {
			return fmt.Errorf("structure %d: projectileCount must be at least 1, got %d", s.ID, a.ProjectileCount)
		}
		if a.ProjectileSpeed <= 0 {
			return fmt.Errorf("structure %d: projectileSpeed must be positive, got %v", s.ID, a.ProjectileSpeed)
		}
	case types.CategoryResource:
		r := s.Resource
		if r.MaxStack <= 0 || r.YieldPerSecond < 0 || r.HarvestDuration < 0 {
			return fmt.Errorf("structure %d: invalid resource profile %+v", s.ID, *r)
		}
	case types.CategoryWall:
		if s.Wall.RepairPerSecond < 0 {
			return fmt.Errorf("structure %d: repairPerSecond cannot be negative", s.ID)
		}
	}
	return nil
}
