package game

import (
	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/systems"
	"github.com/gonewx/bastion/pkg/types"
)

// Snapshot is a read-only copy of the presentation state after a tick.
type Snapshot struct {
	Tick uint64  `msgpack:"tick" json:"tick"`
	Time float64 `msgpack:"time" json:"time"`

	Wave            WaveSnapshot         `msgpack:"wave" json:"wave"`
	Offer           *OfferSnapshot       `msgpack:"offer,omitempty" json:"offer,omitempty"`
	MonsterAugments []int                `msgpack:"monsterAugments" json:"monsterAugments"`
	Players         []PlayerSnapshot     `msgpack:"players" json:"players"`
	Structures      []StructureSnapshot  `msgpack:"structures" json:"structures"`
	Monsters        []MonsterSnapshot    `msgpack:"monsters" json:"monsters"`
	Projectiles     []ProjectileSnapshot `msgpack:"projectiles" json:"projectiles"`
	Rocks           []types.Vec3         `msgpack:"rocks" json:"rocks"`
	Stats           StatsSnapshot        `msgpack:"stats" json:"stats"`
}

// WaveSnapshot is the scheduler phase and spawn progress of the current wave.
type WaveSnapshot struct {
	ID                int     `msgpack:"id" json:"id"`
	Number            int     `msgpack:"number" json:"number"`
	State             string  `msgpack:"state" json:"state"`
	Spawned           int     `msgpack:"spawned" json:"spawned"`
	Total             int     `msgpack:"total" json:"total"`
	CooldownRemaining float64 `msgpack:"cooldown" json:"cooldown"`
}

// OfferSnapshot is the open augment round.
type OfferSnapshot struct {
	WaveNumber int          `msgpack:"wave" json:"wave"`
	Rarity     types.Rarity `msgpack:"rarity" json:"rarity"`
	Options    []int        `msgpack:"options" json:"options"`
}

// PlayerSnapshot is one player's vitals, ledger and augment picks in order.
type PlayerSnapshot struct {
	ID        ecs.EntityID           `msgpack:"id" json:"id"`
	Name      string                 `msgpack:"name" json:"name"`
	Position  types.Vec3             `msgpack:"pos" json:"pos"`
	Health    float64                `msgpack:"hp" json:"hp"`
	MaxHealth float64                `msgpack:"maxHp" json:"maxHp"`
	Resources config.ResourceAmounts `msgpack:"resources" json:"resources"`
	Augments  []int                  `msgpack:"augments" json:"augments"`
}

// StructureSnapshot is a placed structure. Cell is the footprint's lower
// corner and Size its extent in cells. Target is set for attack structures
// with an acquired monster; Stack is the unharvested amount of a resource
// structure.
type StructureSnapshot struct {
	ID         ecs.EntityID   `msgpack:"id" json:"id"`
	TemplateID int            `msgpack:"template" json:"template"`
	Owner      ecs.EntityID   `msgpack:"owner" json:"owner"`
	Category   types.Category `msgpack:"category" json:"category"`
	Position   types.Vec3     `msgpack:"pos" json:"pos"`
	Cell       [2]int         `msgpack:"cell" json:"cell"`
	Size       [2]int         `msgpack:"size" json:"size"`
	Health     float64        `msgpack:"hp" json:"hp"`
	MaxHealth  float64        `msgpack:"maxHp" json:"maxHp"`
	Target     ecs.EntityID   `msgpack:"target,omitempty" json:"target,omitempty"`
	Stack      float64        `msgpack:"stack,omitempty" json:"stack,omitempty"`
}

// MonsterSnapshot is a living monster.
type MonsterSnapshot struct {
	ID         ecs.EntityID `msgpack:"id" json:"id"`
	TemplateID int          `msgpack:"template" json:"template"`
	Position   types.Vec3   `msgpack:"pos" json:"pos"`
	Health     float64      `msgpack:"hp" json:"hp"`
	MaxHealth  float64      `msgpack:"maxHp" json:"maxHp"`
	Boss       bool         `msgpack:"boss,omitempty" json:"boss,omitempty"`
}

// ProjectileSnapshot is a shot in flight and the monster it was fired at.
type ProjectileSnapshot struct {
	ID       ecs.EntityID `msgpack:"id" json:"id"`
	Position types.Vec3   `msgpack:"pos" json:"pos"`
	Target   ecs.EntityID `msgpack:"target" json:"target"`
}

// StatsSnapshot holds running totals since the game started.
type StatsSnapshot struct {
	MonstersKilled  int     `msgpack:"monstersKilled" json:"monstersKilled"`
	StructuresLost  int     `msgpack:"structuresLost" json:"structuresLost"`
	PlayersDefeated int     `msgpack:"playersDefeated" json:"playersDefeated"`
	DamageDealt     float64 `msgpack:"damageDealt" json:"damageDealt"`
	Hits            int     `msgpack:"hits" json:"hits"`
	Misses          int     `msgpack:"misses" json:"misses"`
}

// Snapshot captures the current state. The result shares nothing with the
// simulation and may be handed to other goroutines.
func (s *Simulation) Snapshot() Snapshot {
	spawned, total := s.waves.Progress()
	snap := Snapshot{
		Tick: s.tick,
		Time: s.now,
		Wave: WaveSnapshot{
			ID:                s.waves.WaveID(),
			Number:            s.waves.WaveNumber(),
			State:             s.waves.State().String(),
			Spawned:           spawned,
			Total:             total,
			CooldownRemaining: s.waves.CooldownRemaining(s.now),
		},
		MonsterAugments: s.augments.MonsterAugments(),
		Stats: StatsSnapshot{
			MonstersKilled:  s.battlefield.MonstersKilled,
			StructuresLost:  s.battlefield.StructuresLost,
			PlayersDefeated: s.battlefield.PlayersDefeated,
			DamageDealt:     s.battlefield.TotalDamageDealt,
			Hits:            s.projectiles.Hits,
			Misses:          s.projectiles.Misses,
		},
	}

	if round := s.augments.CurrentRound(); round != nil {
		offer := &OfferSnapshot{
			WaveNumber: round.WaveNumber,
			Rarity:     round.Rarity,
		}
		for _, a := range round.Options {
			offer.Options = append(offer.Options, a.ID)
		}
		snap.Offer = offer
	}

	for _, p := range s.registry.Players() {
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:        p.ID(),
			Name:      p.Name,
			Position:  p.Position(),
			Health:    p.Vitals.Health,
			MaxHealth: p.Vitals.MaxHealth,
			Resources: p.Ledger.Amounts(),
			Augments:  s.augments.History(p.ID()),
		})
	}

	for _, st := range s.registry.AliveStructures() {
		ss := StructureSnapshot{
			ID:         st.ID(),
			TemplateID: st.Template.ID,
			Owner:      st.OwnerID,
			Category:   st.Category,
			Position:   st.Position(),
			Cell:       [2]int{st.Footprint.X, st.Footprint.Y},
			Size:       [2]int{st.Footprint.Width, st.Footprint.Height},
			Health:     st.Vitals.Health,
			MaxHealth:  st.Vitals.MaxHealth,
			Target:     systems.TargetOf(st),
		}
		if st.Resource != nil {
			ss.Stack = st.Resource.Stack
		}
		snap.Structures = append(snap.Structures, ss)
	}

	for _, m := range s.registry.AliveMonsters() {
		snap.Monsters = append(snap.Monsters, MonsterSnapshot{
			ID:         m.ID(),
			TemplateID: m.Template.ID,
			Position:   m.Position(),
			Health:     m.Vitals.Health,
			MaxHealth:  m.Vitals.MaxHealth,
			Boss:       m.IsBoss(),
		})
	}

	for _, p := range s.projectiles.Active() {
		snap.Projectiles = append(snap.Projectiles, ProjectileSnapshot{
			ID:       p.ID(),
			Position: p.Position(),
			Target:   p.Target.ID(),
		})
	}

	for _, r := range s.entrance.Rocks() {
		if r.Present {
			snap.Rocks = append(snap.Rocks, r.Position)
		}
	}
	return snap
}

// Player returns the snapshot entry of id.
func (snap *Snapshot) Player(id ecs.EntityID) (PlayerSnapshot, bool) {
	for _, p := range snap.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerSnapshot{}, false
}
