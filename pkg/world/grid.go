package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonewx/bastion/pkg/components"
	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/ecs"
	"github.com/gonewx/bastion/pkg/types"
)

var (
	// ErrOutOfBounds is returned for footprints that leave the grid.
	ErrOutOfBounds = errors.New("footprint out of bounds")
	// ErrCellOccupied is returned when any footprint cell is taken.
	ErrCellOccupied = errors.New("cell occupied")
)

// PlacementService converts between world and grid space and tracks which
// structure occupies each cell.
type PlacementService interface {
	WorldToCell(p types.Vec3) (x, y int)
	CellToWorld(x, y int) types.Vec3
	FootprintCenter(fp components.Footprint) types.Vec3
	IsAreaFree(fp components.Footprint) error
	Place(id ecs.EntityID, fp components.Footprint) error
	Remove(id ecs.EntityID) bool
}

// Grid is the in-memory placement grid on the X/Z plane.
// Cell (x, y) spans [origin.X + x*size, origin.X + (x+1)*size) along X and the
// same along Z for y.
type Grid struct {
	width, height int
	cellSize      float64
	origin        types.Vec3
	occupancy     []ecs.EntityID
	footprints    map[ecs.EntityID]components.Footprint
}

// NewGrid creates an empty grid.
func NewGrid(cfg config.GridConfig) *Grid {
	return &Grid{
		width:      cfg.Width,
		height:     cfg.Height,
		cellSize:   cfg.CellSize,
		origin:     cfg.Origin,
		occupancy:  make([]ecs.EntityID, cfg.Width*cfg.Height),
		footprints: make(map[ecs.EntityID]components.Footprint),
	}
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// CellSize returns the world length of one cell edge.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// WorldToCell returns the cell containing p. The result may be out of bounds.
func (g *Grid) WorldToCell(p types.Vec3) (int, int) {
	x := int(math.Floor((p.X - g.origin.X) / g.cellSize))
	y := int(math.Floor((p.Z - g.origin.Z) / g.cellSize))
	return x, y
}

// CellToWorld returns the center of cell (x, y).
func (g *Grid) CellToWorld(x, y int) types.Vec3 {
	return types.Vec3{
		X: g.origin.X + (float64(x)+0.5)*g.cellSize,
		Y: g.origin.Y,
		Z: g.origin.Z + (float64(y)+0.5)*g.cellSize,
	}
}

// FootprintCenter returns the world center of a footprint.
func (g *Grid) FootprintCenter(fp components.Footprint) types.Vec3 {
	return types.Vec3{
		X: g.origin.X + (float64(fp.X)+float64(fp.Width)/2)*g.cellSize,
		Y: g.origin.Y,
		Z: g.origin.Z + (float64(fp.Y)+float64(fp.Height)/2)*g.cellSize,
	}
}

// InBounds reports whether cell (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// IsOccupied reports whether cell (x, y) is taken. Out-of-bounds cells count as occupied.
func (g *Grid) IsOccupied(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.occupancy[y*g.width+x] != ecs.InvalidID
}

// OccupantAt returns the structure occupying cell (x, y).
func (g *Grid) OccupantAt(x, y int) (ecs.EntityID, bool) {
	if !g.InBounds(x, y) {
		return ecs.InvalidID, false
	}
	id := g.occupancy[y*g.width+x]
	return id, id != ecs.InvalidID
}

// IsAreaFree returns nil when every footprint cell is in bounds and free.
func (g *Grid) IsAreaFree(fp components.Footprint) error {
	if fp.Width < 1 || fp.Height < 1 {
		return fmt.Errorf("footprint %dx%d: %w", fp.Width, fp.Height, ErrOutOfBounds)
	}
	for _, c := range fp.Cells() {
		if !g.InBounds(c[0], c[1]) {
			return fmt.Errorf("cell (%d,%d): %w", c[0], c[1], ErrOutOfBounds)
		}
		if g.IsOccupied(c[0], c[1]) {
			return fmt.Errorf("cell (%d,%d): %w", c[0], c[1], ErrCellOccupied)
		}
	}
	return nil
}

// Place occupies every footprint cell with id, or none of them on error.
func (g *Grid) Place(id ecs.EntityID, fp components.Footprint) error {
	if _, exists := g.footprints[id]; exists {
		return fmt.Errorf("entity %d already placed", id)
	}
	if err := g.IsAreaFree(fp); err != nil {
		return err
	}
	for _, c := range fp.Cells() {
		g.occupancy[c[1]*g.width+c[0]] = id
	}
	g.footprints[id] = fp
	return nil
}

// Remove frees the cells of id. It reports whether id was placed.
func (g *Grid) Remove(id ecs.EntityID) bool {
	fp, ok := g.footprints[id]
	if !ok {
		return false
	}
	for _, c := range fp.Cells() {
		if g.occupancy[c[1]*g.width+c[0]] == id {
			g.occupancy[c[1]*g.width+c[0]] = ecs.InvalidID
		}
	}
	delete(g.footprints, id)
	return true
}

// Bounds returns the world-space corners of the grid on the ground plane.
func (g *Grid) Bounds() (minCorner, maxCorner types.Vec3) {
	minCorner = g.origin
	maxCorner = types.Vec3{
		X: g.origin.X + float64(g.width)*g.cellSize,
		Y: g.origin.Y,
		Z: g.origin.Z + float64(g.height)*g.cellSize,
	}
	return minCorner, maxCorner
}
