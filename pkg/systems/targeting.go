package systems

import (
	"github.com/gonewx/bastion/pkg/components"
	"github.com/gonewx/bastion/pkg/types"
)

// priorityScore is minimised by target selection.
func priorityScore(p types.TargetPriority, origin types.Vec3, m *components.Monster) float64 {
	switch p {
	case types.PriorityLowestHP:
		return m.Vitals.Health
	case types.PriorityStrongest:
		return -m.Vitals.MaxHealth
	default:
		return origin.Distance(m.Position())
	}
}

// SelectTarget picks the living monster within attackRange of origin with the
// lowest priority score. Candidates are scanned in order and only a strictly
// better score replaces the current pick, so ties go to the earliest candidate.
func SelectTarget(p types.TargetPriority, origin types.Vec3, attackRange float64, candidates []*components.Monster) *components.Monster {
	var best *components.Monster
	bestScore := 0.0
	for _, m := range candidates {
		if !m.Alive() || origin.Distance(m.Position()) > attackRange {
			continue
		}
		score := priorityScore(p, origin, m)
		if best == nil || score < bestScore {
			best = m
			bestScore = score
		}
	}
	return best
}
