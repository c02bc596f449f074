package systems

import (
	"math"

	"github.com/gonewx/bastion/pkg/components"
	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/entities"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/modifier"
	"github.com/gonewx/bastion/pkg/types"
	"github.com/sirupsen/logrus"
)

// minFlightTime keeps arc shots at point-blank range from dividing by zero.
const minFlightTime = 0.05

// ProjectileSystem moves shots in flight and resolves them on arrival.
type ProjectileSystem struct {
	battlefield *Battlefield
	factory     *entities.Factory
	cfg         *config.SimulationConfig
	active      []*components.Projectile
	log         *logrus.Entry

	Hits   int
	Misses int
}

// NewProjectileSystem creates an empty projectile system.
func NewProjectileSystem(bf *Battlefield, factory *entities.Factory, cfg *config.SimulationConfig, log logrus.FieldLogger) *ProjectileSystem {
	return &ProjectileSystem{
		battlefield: bf,
		factory:     factory,
		cfg:         cfg,
		log:         logger.For(log, "ProjectileSystem"),
	}
}

// Launch starts tracking p and prepares its flight path.
func (s *ProjectileSystem) Launch(p *components.Projectile) {
	start := p.Position()
	switch p.Movement {
	case types.MovementArc:
		if p.Speed > 0 {
			p.FlightTime = max(minFlightTime, start.Distance(p.Aim)/p.Speed)
		} else {
			p.FlightTime = minFlightTime
		}
	}
	s.active = append(s.active, p)
}

// Active returns the projectiles currently in flight.
func (s *ProjectileSystem) Active() []*components.Projectile {
	return s.active
}

// Update advances every projectile by deltaTime and resolves arrivals.
func (s *ProjectileSystem) Update(deltaTime float64) {
	kept := s.active[:0]
	for _, p := range s.active {
		if s.step(p, deltaTime) {
			s.resolve(p)
			s.factory.ReleaseProjectile(p)
			continue
		}
		kept = append(kept, p)
	}
	clear(s.active[len(kept):])
	s.active = kept
}

// step moves p and reports whether it arrived.
func (s *ProjectileSystem) step(p *components.Projectile, dt float64) bool {
	p.Elapsed += dt
	if p.Speed <= 0 {
		p.SetPosition(homingDestination(p))
		return true
	}

	switch p.Movement {
	case types.MovementArc:
		t := min(1, p.Elapsed/p.FlightTime)
		pos := p.Start.Lerp(p.Aim, t)
		pos.Y += s.cfg.ArcHeight * math.Sin(math.Pi*t)
		p.SetPosition(pos)
		return t >= 1

	case types.MovementHoming:
		dest := homingDestination(p)
		next := p.Position().MoveTowards(dest, p.Speed*dt)
		p.SetPosition(next)
		return next.Distance(dest) < s.cfg.HomingArrivalDistance

	default:
		next := p.Position().MoveTowards(p.Aim, p.Speed*dt)
		p.SetPosition(next)
		return next.Distance(p.Aim) < s.cfg.ArrivalDistance
	}
}

// homingDestination is the live target position for homing shots whose
// target still lives, and the launch snapshot otherwise.
func homingDestination(p *components.Projectile) types.Vec3 {
	if p.Movement != types.MovementHoming {
		return p.Aim
	}
	if target, ok := p.Target.Get(); ok {
		return target.Position()
	}
	return p.Aim
}

// resolve damages the live target and dispatches the source's on-hit hook.
// A shot whose target already died does nothing.
func (s *ProjectileSystem) resolve(p *components.Projectile) {
	target, ok := p.Target.Get()
	if !ok {
		s.Misses++
		return
	}
	s.Hits++

	var source modifier.Entity
	if p.SourceAlive() {
		source = p.Source
	}
	s.battlefield.Damage(target, p.Damage, source)

	if source != nil {
		p.Source.Modifiers().OnHit(modifier.HitEvent{
			World:  s.battlefield,
			Owner:  p.Source,
			Target: target,
			Point:  p.Position(),
		})
	}
}
