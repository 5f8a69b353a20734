package tiling

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
)

// TileList returns the IDs of all tiles whose bounds intersect the given
// bounding box, capped at DefaultMaxTiles. See TileListCapped.
func (g *Grid) TileList(bbox orb.Bound) []int {
	return g.TileListCapped(bbox, DefaultMaxTiles)
}

// TileListCapped returns the IDs of all tiles whose bounds intersect the
// given bounding box, which may lie partially or entirely outside the grid.
// Touching edges count as intersecting.
//
// The search starts at a seed tile near the center of the box and expands
// outward over tile neighbors, so the work is proportional to the number of
// tiles touched and not to the grid size. Once maxTiles IDs have been
// collected the search stops and the partial result is returned; tiles
// farther from the seed are dropped first. The result is roughly in
// breadth-first order from the seed, not sorted by ID. A box that does not
// overlap the grid at all yields an empty result.
//
// All search state is local to the call, concurrent enumerations on the same
// grid are safe.
func (g *Grid) TileListCapped(bbox orb.Bound, maxTiles int) []int {
	seed := g.TileId(bbox.Center())
	if seed == NoTile {
		// Center is off-grid, probe the corners of the box instead.
		corners := []orb.Point{bbox.Min, bbox.LeftTop(), bbox.Max, bbox.RightBottom()}
		for _, corner := range corners {
			if seed = g.TileId(corner); seed != NoTile {
				break
			}
		}
	}
	if seed == NoTile {
		sigolo.Tracef("Tile list for bbox=%v: no overlap with grid bounds %v", bbox, g.bounds)
		return nil
	}

	var tileList []int

	// FIFO of discovered but unchecked tiles. New tiles go on the back, so
	// the search spirals outward from the seed.
	checkList := []int{seed}
	visited := map[int]bool{seed: true}

	for len(checkList) > 0 && len(tileList) < maxTiles {
		tileId := checkList[0]
		checkList = checkList[1:]

		if !g.TileBounds(tileId).Intersects(bbox) {
			// Past the edge of the box, do not expand further from here.
			continue
		}
		tileList = append(tileList, tileId)

		neighbors := [4]int{
			g.RightNeighbor(tileId),
			g.LeftNeighbor(tileId),
			g.TopNeighbor(tileId),
			g.BottomNeighbor(tileId),
		}
		for _, neighbor := range neighbors {
			if neighbor == NoTile || visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			checkList = append(checkList, neighbor)
		}
	}

	return tileList
}
