package config

import (
	"fmt"

	"github.com/gonewx/bastion/pkg/types"
)

// StatEffect is an augment that adds a stat modifier.
// First is used for the first pick, Repeat for every later pick of the same augment.
type StatEffect struct {
	Stat   types.Stat       `yaml:"stat"`
	Op     types.ModifierOp `yaml:"op"`
	First  float64          `yaml:"first"`
	Repeat float64          `yaml:"repeat"`
}

// EventEffect is an augment that binds an event modifier.
type EventEffect struct {
	Kind     types.EventKind `yaml:"kind"`
	Radius   float64         `yaml:"radius,omitempty"`
	Ratio    float64         `yaml:"ratio,omitempty"`
	Duration float64         `yaml:"duration,omitempty"` // 0 = permanent
	Uses     int             `yaml:"uses,omitempty"`     // 0 = unlimited
}

// AugmentTemplate is the immutable catalog record of an augment. Exactly one
// of Stat and Event is set.
type AugmentTemplate struct {
	ID          int          `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Rarity      types.Rarity `yaml:"rarity"`
	Stat        *StatEffect  `yaml:"stat,omitempty"`
	Event       *EventEffect `yaml:"event,omitempty"`
}

// ValueFor returns the stat value for the n-th pick (0-based).
func (s *StatEffect) ValueFor(pick int) float64 {
	if pick == 0 {
		return s.First
	}
	return s.Repeat
}

func validateAugment(a *AugmentTemplate) error {
	if a.ID <= 0 {
		return fmt.Errorf("augment %q: id must be positive, got %d", a.Name, a.ID)
	}
	if (a.Stat == nil) == (a.Event == nil) {
		return fmt.Errorf("augment %d: exactly one of stat or event must be set", a.ID)
	}
	if e := a.Event; e != nil {
		if e.Duration < 0 || e.Uses < 0 {
			return fmt.Errorf("augment %d: duration and uses cannot be negative", a.ID)
		}
		switch e.Kind {
		case types.EventAreaDamageOnHit:
			if e.Radius <= 0 || e.Ratio <= 0 {
				return fmt.Errorf("augment %d: area damage needs positive radius and ratio", a.ID)
			}
		case types.EventAttackDebuffOnHit:
			if e.Ratio <= 0 || e.Ratio > 1 {
				return fmt.Errorf("augment %d: debuff ratio must be in (0, 1], got %v", a.ID, e.Ratio)
			}
		}
	}
	return nil
}
