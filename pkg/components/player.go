package components

import (
	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/modifier"
	"github.com/gonewx/bastion/pkg/types"
)

// Player is a connected participant. Players are not pooled.
type Player struct {
	id       ecs.EntityID
	active   bool
	position types.Vec3

	Name        string
	Vitals      Vitals
	Ledger      *Ledger
	MoveSpeed   float64
	Destination *types.Vec3

	engine *modifier.Engine
}

// NewPlayer creates an active player at position.
func NewPlayer(id ecs.EntityID, name string, position types.Vec3, sim *config.SimulationConfig) *Player {
	p := &Player{
		id:        id,
		active:    true,
		position:  position,
		Name:      name,
		Ledger:    NewLedger(sim.StartingResources),
		MoveSpeed: sim.PlayerMoveSpeed,
	}
	p.Vitals.Reset(sim.PlayerMaxHealth, 0)
	p.engine = modifier.NewEngine(p)
	return p
}

// Deactivate marks the player as gone.
func (p *Player) Deactivate() {
	p.active = false
	p.engine.Clear()
}

func (p *Player) ID() ecs.EntityID            { return p.id }
func (p *Player) Active() bool                { return p.active }
func (p *Player) Alive() bool                 { return p.active && p.Vitals.IsAlive() }
func (p *Player) Position() types.Vec3        { return p.position }
func (p *Player) Faction() Faction            { return FactionDefenders }
func (p *Player) HealthState() *Vitals        { return &p.Vitals }
func (p *Player) Modifiers() *modifier.Engine { return p.engine }

// SetPosition moves the player.
func (p *Player) SetPosition(pos types.Vec3) {
	p.position = pos
}

// Players have no combat stats of their own.
func (p *Player) BaseStat(types.Stat) float64          { return 0 }
func (p *Player) AdjustBaseStat(types.Stat, float64) {}
