// Package entities builds pooled simulation entities from catalog templates.
package entities

import (
	"fmt"
	"math"

	"github.com/gonewx/bastion/pkg/components"
	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/pool"
	"github.com/gonewx/bastion/pkg/types"
	"github.com/sirupsen/logrus"
)

const projectileKey = "projectile"

// Factory turns templates into initialised entities, recycling instances
// through one object pool per entity kind.
type Factory struct {
	catalog     *config.Catalog
	ids         *ecs.IDAllocator
	structures  *pool.Pool[*components.Structure]
	monsters    *pool.Pool[*components.Monster]
	projectiles *pool.Pool[*components.Projectile]
	log         *logrus.Entry
}

// NewFactory registers a pool factory for every template in the catalog.
func NewFactory(catalog *config.Catalog, ids *ecs.IDAllocator, log logrus.FieldLogger) *Factory {
	f := &Factory{
		catalog:     catalog,
		ids:         ids,
		structures:  pool.New[*components.Structure](log),
		monsters:    pool.New[*components.Monster](log),
		projectiles: pool.New[*components.Projectile](log),
		log:         logger.For(log, "Factory"),
	}
	for i := range catalog.Structures {
		f.structures.Register(catalog.Structures[i].PoolKey(), components.NewStructure)
	}
	for i := range catalog.Monsters {
		f.monsters.Register(catalog.Monsters[i].PoolKey(), components.NewMonster)
	}
	f.projectiles.Register(projectileKey, components.NewProjectile)
	return f
}

// IDs returns the shared id allocator.
func (f *Factory) IDs() *ecs.IDAllocator {
	return f.ids
}

// NewStructure acquires and initialises a structure of templateID for owner,
// positioned at the footprint's world center.
//
// Returns config.ErrNotFound for unknown templates.
func (f *Factory) NewStructure(templateID int, owner ecs.EntityID, fp components.Footprint, center types.Vec3) (*components.Structure, error) {
	tmpl, ok := f.catalog.Structure(templateID)
	if !ok {
		return nil, fmt.Errorf("structure template %d: %w", templateID, config.ErrNotFound)
	}
	s, err := f.structures.Acquire(tmpl.PoolKey(), center, 0)
	if err != nil {
		return nil, err
	}
	s.Init(f.ids.Next(), owner, tmpl, fp)
	f.log.WithFields(logrus.Fields{"id": s.ID(), "template": tmpl.ID, "owner": owner}).Debug("[Factory] structure created")
	return s, nil
}

// NewMonster acquires a monster of templateID, scaled for the elapsed game time now.
func (f *Factory) NewMonster(templateID int, position types.Vec3, now float64, waveID int) (*components.Monster, error) {
	tmpl, ok := f.catalog.Monster(templateID)
	if !ok {
		return nil, fmt.Errorf("monster template %d: %w", templateID, config.ErrNotFound)
	}
	m, err := f.monsters.Acquire(tmpl.PoolKey(), position, math.Pi)
	if err != nil {
		return nil, err
	}
	m.Init(f.ids.Next(), tmpl, now, waveID)
	return m, nil
}

// NewProjectile acquires a projectile fired by source at target.
func (f *Factory) NewProjectile(source *components.Structure, target components.Combatant, damage float64) (*components.Projectile, error) {
	p, err := f.projectiles.Acquire(projectileKey, source.Position(), 0)
	if err != nil {
		return nil, err
	}
	p.Launch(f.ids.Next(), source, target, damage)
	return p, nil
}

// NewPlayer creates a player. Players are never pooled.
func (f *Factory) NewPlayer(name string, position types.Vec3) *components.Player {
	return components.NewPlayer(f.ids.Next(), name, position, &f.catalog.Simulation)
}

func (f *Factory) ReleaseStructure(s *components.Structure) bool {
	return f.structures.Release(s)
}

func (f *Factory) ReleaseMonster(m *components.Monster) bool {
	return f.monsters.Release(m)
}

func (f *Factory) ReleaseProjectile(p *components.Projectile) bool {
	return f.projectiles.Release(p)
}

// PoolStats reports usage of each pool, keyed by entity kind.
func (f *Factory) PoolStats() map[string]pool.Stats {
	return map[string]pool.Stats{
		"structures":  f.structures.Stats(),
		"monsters":    f.monsters.Stats(),
		"projectiles": f.projectiles.Stats(),
	}
}
