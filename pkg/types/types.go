// Package types defines the shared enums and value types of the simulation.
// It depends on no other project package so every layer can import it.
package types

import "fmt"

// Category is the fixed functional class of a structure.
type Category int

const (
	CategoryAttack Category = iota
	CategoryResource
	CategorySupport
	CategoryWall
)

var categoryNames = []string{"attack", "resource", "support", "wall"}

func (c Category) String() string {
	if int(c) >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	i, err := parseName(categoryNames, string(text), "category")
	*c = Category(i)
	return err
}

// TargetPriority selects which in-range monster an attack structure engages.
type TargetPriority int

const (
	// PriorityNearest minimises distance to the structure.
	PriorityNearest TargetPriority = iota
	// PriorityLowestHP minimises current health.
	PriorityLowestHP
	// PriorityStrongest maximises max health.
	PriorityStrongest
)

var priorityNames = []string{"nearest", "lowest_hp", "strongest"}

func (p TargetPriority) String() string {
	if int(p) >= 0 && int(p) < len(priorityNames) {
		return priorityNames[p]
	}
	return "unknown"
}

func (p TargetPriority) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *TargetPriority) UnmarshalText(text []byte) error {
	i, err := parseName(priorityNames, string(text), "target priority")
	*p = TargetPriority(i)
	return err
}

// ResourceType is one of the player's independent resource counters.
type ResourceType int

const (
	ResourceGold ResourceType = iota
	ResourceWood
	ResourceStone
)

var resourceNames = []string{"gold", "wood", "stone"}

// AllResources lists every resource type in ledger order.
var AllResources = []ResourceType{ResourceGold, ResourceWood, ResourceStone}

func (r ResourceType) String() string {
	if int(r) >= 0 && int(r) < len(resourceNames) {
		return resourceNames[r]
	}
	return "unknown"
}

func (r ResourceType) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *ResourceType) UnmarshalText(text []byte) error {
	i, err := parseName(resourceNames, string(text), "resource type")
	*r = ResourceType(i)
	return err
}

// Rarity is the augment tier rolled at the end of a wave.
type Rarity int

const (
	RaritySilver Rarity = iota
	RarityGold
	RarityPlatinum
)

var rarityNames = []string{"silver", "gold", "platinum"}

// AllRarities lists the rarities in roll order.
var AllRarities = []Rarity{RaritySilver, RarityGold, RarityPlatinum}

func (r Rarity) String() string {
	if int(r) >= 0 && int(r) < len(rarityNames) {
		return rarityNames[r]
	}
	return "unknown"
}

func (r Rarity) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Rarity) UnmarshalText(text []byte) error {
	i, err := parseName(rarityNames, string(text), "rarity")
	*r = Rarity(i)
	return err
}

// Stat names a numeric attribute that stat modifiers can fold over.
type Stat int

const (
	StatAttackDamage Stat = iota
	StatAttackSpeed
	StatAttackRange
	StatProjectileCount
)

var statNames = []string{"attack_damage", "attack_speed", "attack_range", "projectile_count"}

func (s Stat) String() string {
	if int(s) >= 0 && int(s) < len(statNames) {
		return statNames[s]
	}
	return "unknown"
}

func (s Stat) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Stat) UnmarshalText(text []byte) error {
	i, err := parseName(statNames, string(text), "stat")
	*s = Stat(i)
	return err
}

// ModifierOp is how a stat modifier combines with the running value.
type ModifierOp int

const (
	// OpAdditive adds a fixed amount.
	OpAdditive ModifierOp = iota
	// OpMultiplicative scales by (1 + fraction).
	OpMultiplicative
)

var opNames = []string{"additive", "multiplicative"}

func (o ModifierOp) String() string {
	if int(o) >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

func (o ModifierOp) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *ModifierOp) UnmarshalText(text []byte) error {
	i, err := parseName(opNames, string(text), "modifier op")
	*o = ModifierOp(i)
	return err
}

// EventKind identifies an event-bound augment effect.
type EventKind int

const (
	EventAreaDamageOnHit EventKind = iota
	EventAttackDebuffOnHit
	EventExtraProjectile
)

var eventNames = []string{"area_damage_on_hit", "attack_debuff_on_hit", "extra_projectile"}

func (e EventKind) String() string {
	if int(e) >= 0 && int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

func (e EventKind) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *EventKind) UnmarshalText(text []byte) error {
	i, err := parseName(eventNames, string(text), "event kind")
	*e = EventKind(i)
	return err
}

// MovementKind is the flight path strategy of a projectile.
type MovementKind int

const (
	MovementLinear MovementKind = iota
	MovementArc
	MovementHoming
)

var movementNames = []string{"linear", "arc", "homing"}

func (m MovementKind) String() string {
	if int(m) >= 0 && int(m) < len(movementNames) {
		return movementNames[m]
	}
	return "unknown"
}

func (m MovementKind) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *MovementKind) UnmarshalText(text []byte) error {
	i, err := parseName(movementNames, string(text), "movement kind")
	*m = MovementKind(i)
	return err
}

func parseName(names []string, s, what string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, s)
}
