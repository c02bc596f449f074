package systems

import (
	"errors"
	"fmt"

	"github.com/gonewx/bastion/pkg/components"
	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/modifier"
	"github.com/gonewx/bastion/pkg/types"
	"github.com/gonewx/bastion/pkg/world"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoOffer is returned when picking while no augment round is open.
	ErrNoOffer = errors.New("no augment offer pending")
	// ErrInvalidOption is returned for an out-of-range option index.
	ErrInvalidOption = errors.New("invalid augment option")
)

// Rand is the random source used for rolls.
type Rand interface {
	IntN(n int) int
}

// AugmentRound is the offer presented after a wave ends.
type AugmentRound struct {
	WaveNumber int
	Rarity     types.Rarity
	Options    []*config.AugmentTemplate
}

// augmentPick is one entry of a player's pick history.
type augmentPick struct {
	augment *config.AugmentTemplate
	value   float64 // stat value resolved at pick time
	stack   int     // 0 for the first pick of this augment
}

// AugmentSystem runs augment rounds and applies picks to structures and monsters.
type AugmentSystem struct {
	catalog  *config.Catalog
	registry *world.Registry
	rng      Rand
	log      *logrus.Entry

	round    *AugmentRound
	history  map[ecs.EntityID][]augmentPick
	counts   map[ecs.EntityID]map[int]int
	monsters []*config.AugmentTemplate
}

// NewAugmentSystem creates the augment system.
func NewAugmentSystem(catalog *config.Catalog, registry *world.Registry, rng Rand, log logrus.FieldLogger) *AugmentSystem {
	return &AugmentSystem{
		catalog:  catalog,
		registry: registry,
		rng:      rng,
		log:      logger.For(log, "AugmentSystem"),
		history:  make(map[ecs.EntityID][]augmentPick),
		counts:   make(map[ecs.EntityID]map[int]int),
	}
}

// RollRarity draws a rarity with the configured weights.
func (s *AugmentSystem) RollRarity() types.Rarity {
	weights := s.catalog.Simulation.RarityWeights
	roll := s.rng.IntN(weights.Total())
	for _, r := range types.AllRarities {
		w := weights.Weight(r)
		if roll < w {
			return r
		}
		roll -= w
	}
	return types.RaritySilver
}

// StartRound opens a new offer, replacing any unclaimed one. It returns nil
// when the rolled rarity has no augments.
func (s *AugmentSystem) StartRound(waveNumber int) *AugmentRound {
	rarity := s.RollRarity()
	pool := s.catalog.AugmentsByRarity(rarity)
	if len(pool) == 0 {
		s.log.WithField("rarity", rarity).Error("[AugmentSystem] no augments for rolled rarity, skipping round")
		s.round = nil
		return nil
	}

	n := s.catalog.Simulation.OptionsPerRound
	options := make([]*config.AugmentTemplate, n)
	for i := range options {
		options[i] = pool[s.rng.IntN(len(pool))]
	}
	s.round = &AugmentRound{
		WaveNumber: waveNumber,
		Rarity:     rarity,
		Options:    options,
	}
	s.log.Infof("[AugmentSystem] 🎁 round for wave %d: %s x%d", waveNumber, rarity, n)
	return s.round
}

// CurrentRound returns the open offer, or nil.
func (s *AugmentSystem) CurrentRound() *AugmentRound {
	return s.round
}

// Pick applies option index of the current round to player and grants all
// monsters a random augment of the same rarity. The first successful pick
// closes the round; later picks get ErrNoOffer until the next wave ends.
func (s *AugmentSystem) Pick(player ecs.EntityID, index int) (*config.AugmentTemplate, error) {
	if s.round == nil {
		return nil, ErrNoOffer
	}
	if index < 0 || index >= len(s.round.Options) {
		return nil, fmt.Errorf("option %d of %d: %w", index, len(s.round.Options), ErrInvalidOption)
	}

	round := s.round
	s.round = nil
	chosen := round.Options[index]
	s.ApplyToPlayer(player, chosen)

	pool := s.catalog.AugmentsByRarity(round.Rarity)
	monsterAugment := pool[s.rng.IntN(len(pool))]
	s.ApplyToMonsters(monsterAugment)
	return chosen, nil
}

// ApplyToPlayer records the pick and attaches a new modifier to every Attack
// structure the player owns. Repeat picks use the repeat value.
func (s *AugmentSystem) ApplyToPlayer(player ecs.EntityID, a *config.AugmentTemplate) {
	byID, ok := s.counts[player]
	if !ok {
		byID = make(map[int]int)
		s.counts[player] = byID
	}
	stack := byID[a.ID]
	byID[a.ID] = stack + 1

	pick := augmentPick{augment: a, stack: stack}
	if a.Stat != nil {
		pick.value = a.Stat.ValueFor(stack)
	}
	s.history[player] = append(s.history[player], pick)

	for _, st := range s.registry.StructuresOf(player, types.CategoryAttack) {
		s.attach(st.Modifiers(), pick)
	}
	s.log.WithFields(logrus.Fields{"player": player, "augment": a.ID, "stack": stack}).Infof("[AugmentSystem] ✅ %s applied", a.Name)
}

// ApplyToMonsters records a monster-side augment and applies it to every
// living monster. Monsters always use the first value.
func (s *AugmentSystem) ApplyToMonsters(a *config.AugmentTemplate) {
	s.monsters = append(s.monsters, a)
	for _, m := range s.registry.AliveMonsters() {
		s.attachMonster(m, a)
	}
	s.log.WithField("augment", a.ID).Infof("[AugmentSystem] 👹 monsters gain %s", a.Name)
}

// OnStructureBuilt replays the owner's whole pick history, in order, on a new
// Attack structure.
func (s *AugmentSystem) OnStructureBuilt(st *components.Structure) {
	if st.Category != types.CategoryAttack {
		return
	}
	for _, pick := range s.history[st.OwnerID] {
		s.attach(st.Modifiers(), pick)
	}
}

// OnMonsterSpawned applies every monster augment granted so far.
func (s *AugmentSystem) OnMonsterSpawned(m *components.Monster) {
	for _, a := range s.monsters {
		s.attachMonster(m, a)
	}
}

// History returns the augment ids picked by player, in order.
func (s *AugmentSystem) History(player ecs.EntityID) []int {
	picks := s.history[player]
	ids := make([]int, len(picks))
	for i, p := range picks {
		ids[i] = p.augment.ID
	}
	return ids
}

// MonsterAugments returns the augment ids granted to monsters, in order.
func (s *AugmentSystem) MonsterAugments() []int {
	ids := make([]int, len(s.monsters))
	for i, a := range s.monsters {
		ids[i] = a.ID
	}
	return ids
}

// ForgetPlayer drops a departed player's history.
func (s *AugmentSystem) ForgetPlayer(player ecs.EntityID) {
	delete(s.history, player)
	delete(s.counts, player)
}

func (s *AugmentSystem) attach(engine *modifier.Engine, pick augmentPick) {
	a := pick.augment
	if a.Stat != nil {
		engine.AddStat(&modifier.StatModifier{
			Name:  fmt.Sprintf("augment:%d#%d", a.ID, pick.stack),
			Stat:  a.Stat.Stat,
			Op:    a.Stat.Op,
			Value: pick.value,
		})
		return
	}
	e := a.Event
	m, err := modifier.FromEventKind(e.Kind, e.Radius, e.Ratio, e.Duration, e.Uses)
	if err != nil {
		s.log.WithError(err).WithField("augment", a.ID).Error("[AugmentSystem] cannot build event modifier")
		return
	}
	engine.AddEvent(m)
}

// attachMonster applies stat augments with the first value. Event augments
// granted to monsters are recorded but have no monster-side effect.
func (s *AugmentSystem) attachMonster(m *components.Monster, a *config.AugmentTemplate) {
	if a.Stat == nil {
		return
	}
	m.Modifiers().AddStat(&modifier.StatModifier{
		Name:  fmt.Sprintf("monster-augment:%d", a.ID),
		Stat:  a.Stat.Stat,
		Op:    a.Stat.Op,
		Value: a.Stat.First,
	})
}
