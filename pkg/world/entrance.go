package world

import (
	"errors"
	"fmt"

	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/types"
	"github.com/sirupsen/logrus"
)

// ErrOddRemoval is returned when rocks are not removed in symmetric pairs.
var ErrOddRemoval = errors.New("rock removal count must be positive and even")

// Rock is one block of the entrance barrier.
type Rock struct {
	Index    int
	Position types.Vec3
	Present  bool
}

// Entrance is the row of rocks across the monster entrance. It widens from
// the center outward as players join.
type Entrance struct {
	rocks          []Rock
	rocksPerPlayer int
	lastPlayers    int
	log            *logrus.Entry
}

// NewEntrance lays out cfg.Rocks rocks centered on cfg.Center along X.
func NewEntrance(cfg config.EntranceConfig, log logrus.FieldLogger) *Entrance {
	e := &Entrance{
		rocksPerPlayer: cfg.RocksPerPlayer,
		lastPlayers:    1,
		log:            logger.For(log, "Entrance"),
	}
	width := float64(cfg.Rocks-1) * cfg.RockSpacing
	for i := 0; i < cfg.Rocks; i++ {
		e.rocks = append(e.rocks, Rock{
			Index:    i,
			Position: cfg.Center.Add(types.Vec3{X: -width/2 + float64(i)*cfg.RockSpacing}),
			Present:  true,
		})
	}
	return e
}

// PlayersChanged opens the entrance for players beyond the first. Leaving
// players never close it again.
func (e *Entrance) PlayersChanged(count int) error {
	if count <= e.lastPlayers {
		return nil
	}
	joined := count - e.lastPlayers
	e.lastPlayers = count
	if e.rocksPerPlayer == 0 {
		return nil
	}
	removed, err := e.RemoveCenterRocks(joined * e.rocksPerPlayer)
	if err != nil {
		return err
	}
	e.log.Infof("[Entrance] players: %d (+%d), removed %d rocks, %d left", count, joined, removed, e.Remaining())
	return nil
}

// RemoveCenterRocks removes count rocks in pairs, always taking the innermost
// remaining pair around the center. It returns the number actually removed,
// which is lower than count once the entrance is fully open.
func (e *Entrance) RemoveCenterRocks(count int) (int, error) {
	if count <= 0 || count%2 != 0 {
		e.log.WithField("count", count).Error("[Entrance] rejected rock removal")
		return 0, fmt.Errorf("remove %d rocks: %w", count, ErrOddRemoval)
	}
	removed := 0
	for pair := 0; pair < count/2; pair++ {
		left, right := e.innermostPair()
		if left < 0 && right < 0 {
			break
		}
		for _, i := range []int{left, right} {
			if i >= 0 {
				e.rocks[i].Present = false
				removed++
			}
		}
	}
	return removed, nil
}

// innermostPair returns the closest present rock on each side of the center,
// or -1 for a side with none left.
func (e *Entrance) innermostPair() (left, right int) {
	n := len(e.rocks)
	left, right = -1, -1
	for i := n/2 - 1; i >= 0; i-- {
		if e.rocks[i].Present {
			left = i
			break
		}
	}
	for i := n / 2; i < n; i++ {
		if e.rocks[i].Present {
			right = i
			break
		}
	}
	return left, right
}

// Remaining returns the number of rocks still present.
func (e *Entrance) Remaining() int {
	n := 0
	for _, r := range e.rocks {
		if r.Present {
			n++
		}
	}
	return n
}

// Blockers returns the positions of the rocks still present, so a
// pathfinder can steer around them.
func (e *Entrance) Blockers() []types.Vec3 {
	var out []types.Vec3
	for _, r := range e.rocks {
		if r.Present {
			out = append(out, r.Position)
		}
	}
	return out
}

// Rocks returns a copy of the rock row.
func (e *Entrance) Rocks() []Rock {
	out := make([]Rock, len(e.rocks))
	copy(out, e.rocks)
	return out
}
