package world

import (
	"math"

	"github.com/gonewx/bastion/pkg/types"
)

// Pathfinder answers reachability and produces movement steps. Path
// computation itself is a black box to the simulation.
type Pathfinder interface {
	Reachable(from, to types.Vec3) bool
	MoveToward(from, to types.Vec3, maxStep float64) types.Vec3
}

// Obstacles lists blocking points on the ground plane, such as the rocks
// still standing in the entrance.
type Obstacles interface {
	Blockers() []types.Vec3
}

// DirectPathfinder moves in straight lines. A destination is reachable when it
// lies inside the arena bounds, extended by Margin on every side.
//
// With Obstacles set, a straight line passing closer than Clearance to a
// blocker is replaced by a detour around the end of the blocker's cluster.
// Clusters are finite, so obstacles lengthen paths but never seal them.
type DirectPathfinder struct {
	Min, Max types.Vec3
	Margin   float64

	Obstacles Obstacles
	Clearance float64
}

// NewDirectPathfinder creates a pathfinder over the grid's area.
func NewDirectPathfinder(g *Grid, margin float64) *DirectPathfinder {
	lo, hi := g.Bounds()
	return &DirectPathfinder{Min: lo, Max: hi, Margin: margin}
}

// WithObstacles makes the pathfinder steer around obs, keeping clearance
// meters from every blocker.
func (p *DirectPathfinder) WithObstacles(obs Obstacles, clearance float64) *DirectPathfinder {
	p.Obstacles = obs
	p.Clearance = clearance
	return p
}

func (p *DirectPathfinder) Reachable(_, to types.Vec3) bool {
	return to.X >= p.Min.X-p.Margin && to.X <= p.Max.X+p.Margin &&
		to.Z >= p.Min.Z-p.Margin && to.Z <= p.Max.Z+p.Margin
}

func (p *DirectPathfinder) MoveToward(from, to types.Vec3, maxStep float64) types.Vec3 {
	if maxStep <= 0 {
		return from
	}
	return from.MoveTowards(p.Waypoint(from, to), maxStep)
}

// Waypoint returns the point to head for on the way from from to to: to
// itself when the straight line is clear, otherwise a detour point beside
// the first blocking cluster.
func (p *DirectPathfinder) Waypoint(from, to types.Vec3) types.Vec3 {
	if p.Obstacles == nil || p.Clearance <= 0 {
		return to
	}
	blockers := p.Obstacles.Blockers()
	first := -1
	best := math.Inf(1)
	for i, b := range blockers {
		if segmentDistance(from, to, b) >= p.Clearance {
			continue
		}
		if d := groundDistance(from, b); d < best {
			first, best = i, d
		}
	}
	if first < 0 {
		return to
	}
	return p.detour(from, to, blockers, first)
}

// detour picks the shorter way around the cluster containing blockers[first].
func (p *DirectPathfinder) detour(from, to types.Vec3, blockers []types.Vec3, first int) types.Vec3 {
	dir := ground(to.Sub(from)).Normalize()
	side := types.Vec3{X: -dir.Z, Z: dir.X}
	if side == (types.Vec3{}) {
		return to
	}

	cluster := clusterOf(blockers, first, 2*p.Clearance)
	origin := blockers[first]
	lo, hi := 0.0, 0.0
	for _, b := range cluster {
		proj := dot(ground(b.Sub(origin)), side)
		lo, hi = min(lo, proj), max(hi, proj)
	}

	offset := 2 * p.Clearance
	left := origin.Add(side.Scale(hi + offset))
	right := origin.Add(side.Scale(lo - offset))
	left.Y, right.Y = from.Y, from.Y

	if groundDistance(from, left)+groundDistance(left, to) <= groundDistance(from, right)+groundDistance(right, to) {
		return left
	}
	return right
}

// clusterOf returns every blocker chained to blockers[start] by links shorter
// than link.
func clusterOf(blockers []types.Vec3, start int, link float64) []types.Vec3 {
	seen := make([]bool, len(blockers))
	seen[start] = true
	queue := []int{start}
	var out []types.Vec3
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		out = append(out, blockers[i])
		for j, b := range blockers {
			if !seen[j] && groundDistance(blockers[i], b) <= link {
				seen[j] = true
				queue = append(queue, j)
			}
		}
	}
	return out
}

// segmentDistance is the ground-plane distance from point to segment a-b.
func segmentDistance(a, b, point types.Vec3) float64 {
	ab := ground(b.Sub(a))
	ap := ground(point.Sub(a))
	lenSq := dot(ab, ab)
	if lenSq == 0 {
		return ap.Length()
	}
	t := math.Max(0, math.Min(1, dot(ap, ab)/lenSq))
	return ap.Sub(ab.Scale(t)).Length()
}

func ground(v types.Vec3) types.Vec3 { return types.Vec3{X: v.X, Z: v.Z} }

func groundDistance(a, b types.Vec3) float64 { return ground(a.Sub(b)).Length() }

func dot(a, b types.Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
