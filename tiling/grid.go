package tiling

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// NoTile is returned by all lookups for coordinates or row/column values that
// lie outside the grid.
const NoTile = -1

// DefaultMaxTiles is the cap used by TileList on the number of tiles a single
// enumeration returns.
const DefaultMaxTiles = 4096

// Grid is a uniform square tiling of a bounding box. Tile IDs start at 0 in
// the lower-left corner (bounds min) and increase along each row (increasing
// x) first, then row by row (increasing y): id = row*numCols + col.
//
// A Grid is immutable after construction and can be shared by concurrent
// readers without synchronization.
type Grid struct {
	bounds   orb.Bound
	tileSize float64
	numRows  int
	numCols  int
	wrapCols bool
}

// NewGrid creates a tiling of the given bounds with square tiles of the given
// edge length. The number of rows and columns is derived once from the bounds
// and tile size. With wrapColumns set, the east and west edges of the grid are
// treated as adjacent (for coordinate systems that wrap horizontally, e.g. a
// full longitude band); otherwise the grid has hard edges on all sides.
func NewGrid(bounds orb.Bound, tileSize float64, wrapColumns bool) (*Grid, error) {
	if tileSize <= 0 {
		return nil, errors.Errorf("Tile size must be positive but was %f", tileSize)
	}
	if bounds.Max.X() <= bounds.Min.X() || bounds.Max.Y() <= bounds.Min.Y() {
		return nil, errors.Errorf("Degenerate grid bounds: min=%v must be strictly below max=%v on both axes", bounds.Min, bounds.Max)
	}

	return &Grid{
		bounds:   bounds,
		tileSize: tileSize,
		numRows:  int(math.Ceil((bounds.Max.Y() - bounds.Min.Y()) / tileSize)),
		numCols:  int(math.Ceil((bounds.Max.X() - bounds.Min.X()) / tileSize)),
		wrapCols: wrapColumns,
	}, nil
}

func (g *Grid) TileSize() float64 { return g.tileSize }

func (g *Grid) Bounds() orb.Bound { return g.bounds }

func (g *Grid) NumRows() int { return g.numRows }

func (g *Grid) NumCols() int { return g.numCols }

// TileCount returns the total number of tiles in the grid.
func (g *Grid) TileCount() int { return g.numRows * g.numCols }

// Row returns the row containing the given y coordinate and NoTile if y lies
// outside the grid bounds. The upper bounds edge belongs to the last row.
func (g *Grid) Row(y float64) int {
	if y < g.bounds.Min.Y() || y > g.bounds.Max.Y() {
		return NoTile
	}

	row := int((y - g.bounds.Min.Y()) / g.tileSize)
	if row >= g.numRows {
		// y == bounds max: the closed upper edge still maps to a valid row.
		row = g.numRows - 1
	}
	return row
}

// Col returns the column containing the given x coordinate and NoTile if x
// lies outside the grid bounds. The right bounds edge belongs to the last
// column.
func (g *Grid) Col(x float64) int {
	if x < g.bounds.Min.X() || x > g.bounds.Max.X() {
		return NoTile
	}

	col := int((x - g.bounds.Min.X()) / g.tileSize)
	if col >= g.numCols {
		col = g.numCols - 1
	}
	return col
}

// TileId returns the ID of the tile containing the given point and NoTile if
// the point lies outside the grid bounds.
func (g *Grid) TileId(p orb.Point) int {
	row := g.Row(p.Y())
	col := g.Col(p.X())
	if row == NoTile || col == NoTile {
		return NoTile
	}
	return row*g.numCols + col
}

// TileIdFromColRow returns the ID of the tile at the given column and row and
// NoTile if either lies outside the grid.
func (g *Grid) TileIdFromColRow(col int, row int) int {
	if col < 0 || col >= g.numCols || row < 0 || row >= g.numRows {
		return NoTile
	}
	return row*g.numCols + col
}

// Base returns the lower-left corner of the given tile. The tile ID must have
// been obtained from this grid, out-of-range IDs are not checked.
func (g *Grid) Base(tileId int) orb.Point {
	row := tileId / g.numCols
	col := tileId % g.numCols
	return orb.Point{
		g.bounds.Min.X() + float64(col)*g.tileSize,
		g.bounds.Min.Y() + float64(row)*g.tileSize,
	}
}

// TileBounds returns the bounding box of the given tile.
func (g *Grid) TileBounds(tileId int) orb.Bound {
	base := g.Base(tileId)
	return orb.Bound{
		Min: base,
		Max: orb.Point{base.X() + g.tileSize, base.Y() + g.tileSize},
	}
}

// TileBoundsFromColRow returns the bounding box of the tile at the given
// column and row.
func (g *Grid) TileBoundsFromColRow(col int, row int) orb.Bound {
	base := orb.Point{
		g.bounds.Min.X() + float64(col)*g.tileSize,
		g.bounds.Min.Y() + float64(row)*g.tileSize,
	}
	return orb.Bound{
		Min: base,
		Max: orb.Point{base.X() + g.tileSize, base.Y() + g.tileSize},
	}
}

// Center returns the center point of the given tile.
func (g *Grid) Center(tileId int) orb.Point {
	base := g.Base(tileId)
	return orb.Point{base.X() + g.tileSize/2, base.Y() + g.tileSize/2}
}

// RelativeTileId returns the tile the given number of rows and columns away
// from the given tile and NoTile if that position lies outside the grid.
// Deltas can be negative.
func (g *Grid) RelativeTileId(tileId int, deltaRows int, deltaCols int) int {
	row := tileId/g.numCols + deltaRows
	col := tileId%g.numCols + deltaCols
	return g.TileIdFromColRow(col, row)
}

// TileOffsets returns the row and column offsets from one tile to another.
// Offsets can be positive, negative or zero.
func (g *Grid) TileOffsets(fromTileId int, toTileId int) (deltaRows int, deltaCols int) {
	deltaRows = toTileId/g.numCols - fromTileId/g.numCols
	deltaCols = toTileId%g.numCols - fromTileId%g.numCols
	return deltaRows, deltaCols
}

// RightNeighbor returns the tile east of the given one. On the last column
// the result wraps to column 0 for a column-wrapping grid and is NoTile
// otherwise.
func (g *Grid) RightNeighbor(tileId int) int {
	if tileId%g.numCols < g.numCols-1 {
		return tileId + 1
	}
	if g.wrapCols {
		return tileId - g.numCols + 1
	}
	return NoTile
}

// LeftNeighbor returns the tile west of the given one. On column 0 the result
// wraps to the last column for a column-wrapping grid and is NoTile otherwise.
func (g *Grid) LeftNeighbor(tileId int) int {
	if tileId%g.numCols > 0 {
		return tileId - 1
	}
	if g.wrapCols {
		return tileId + g.numCols - 1
	}
	return NoTile
}

// TopNeighbor returns the tile north of the given one and NoTile on the last
// row. Rows never wrap.
func (g *Grid) TopNeighbor(tileId int) int {
	if tileId/g.numCols < g.numRows-1 {
		return tileId + g.numCols
	}
	return NoTile
}

// BottomNeighbor returns the tile south of the given one and NoTile on row 0.
func (g *Grid) BottomNeighbor(tileId int) int {
	if tileId/g.numCols > 0 {
		return tileId - g.numCols
	}
	return NoTile
}
