package coverage

import (
	"os"
	"path"
	"testing"

	"gridtiles/tiling"
	"gridtiles/util"

	"github.com/paulmach/orb"
)

const testOsmData = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
	<node id="1" version="1" lat="5" lon="5"/>
	<node id="2" version="1" lat="5.5" lon="5.5"/>
	<node id="3" version="1" lat="95" lon="95"/>
	<node id="4" version="1" lat="15" lon="25"/>
	<node id="5" version="1" lat="150" lon="150"/>
</osm>`

func TestTilesForFile(t *testing.T) {
	inputFile := path.Join(t.TempDir(), "nodes.osm")
	err := os.WriteFile(inputFile, []byte(testOsmData), 0644)
	util.AssertNil(t, err)

	grid, err := tiling.NewGrid(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}, 10, false)
	util.AssertNil(t, err)

	tileIds, err := TilesForFile(inputFile, grid)

	util.AssertNil(t, err)
	// Nodes 1 and 2 share tile 0, node 5 lies outside the grid
	util.AssertEqual(t, []int{0, 12, 99}, tileIds)
}

func TestTilesForFile_unsupportedExtension(t *testing.T) {
	grid, err := tiling.NewGrid(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}, 10, false)
	util.AssertNil(t, err)

	tileIds, err := TilesForFile("nodes.geojson", grid)

	util.AssertNotNil(t, err)
	util.AssertNil(t, tileIds)
}
