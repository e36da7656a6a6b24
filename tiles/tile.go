// Package tiles serves point queries over a logical maze larger than memory by generating
// fixed-size tiles on demand and keeping a bounded ring of them resident.
package tiles

import (
	"github.com/lixenwraith/mazegen/core"
	"github.com/lixenwraith/mazegen/grid"
)

// Tile is a materialized window of the logical maze. Grid origin is the tile's logical
// origin; cells past the logical maze edge are wall.
type Tile struct {
	X, Y int
	Size int
	Grid *grid.BitGrid
}

// NewTile allocates an all-wall tile at origin (x,y)
func NewTile(x, y, size int) *Tile {
	return &Tile{X: x, Y: y, Size: size, Grid: grid.NewBitGridAt(x, y, size, size)}
}

// Covers reports whether logical cell (x,y) lies in the tile
func (t *Tile) Covers(x, y int) bool {
	return x >= t.X && y >= t.Y && x < t.X+t.Size && y < t.Y+t.Size
}

// Get reads logical cell (x,y); the cell must be covered
func (t *Tile) Get(x, y int) bool {
	return t.Grid.Get(x-t.X, y-t.Y)
}

// Origin returns the tile's logical origin
func (t *Tile) Origin() core.Point {
	return core.Point{X: t.X, Y: t.Y}
}

// PartGenerator builds the tile at logical origin (x,y) covering w×h cells. Calls with the
// same arguments must return identical tiles, which is what makes eviction lossless.
type PartGenerator func(x, y, w, h int) *Tile

// EvictFunc receives a tile right before its slot is reused
type EvictFunc func(t *Tile)
