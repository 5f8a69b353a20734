// Package coverage determines which tiles of a grid are covered by the nodes
// of an OSM extract. A tile-building pipeline uses this to decide which data
// tiles have to be produced for a given extract.
package coverage

import (
	"context"
	"os"
	"sort"
	"strings"
	"time"

	"gridtiles/tiling"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

// TilesForFile scans the given .osm or .pbf file and returns the IDs of all
// tiles containing at least one node, sorted ascending. Nodes outside the
// grid bounds are skipped.
func TilesForFile(inputFile string, grid *tiling.Grid) ([]int, error) {
	file, scanner, err := getScanner(inputFile)
	if err != nil {
		return nil, err
	}

	defer file.Close()
	defer scanner.Close()

	sigolo.Infof("Determine tile coverage for input file %s", inputFile)
	scanStartTime := time.Now()

	coveredTiles := map[int]bool{}
	nodeCount := 0
	skippedNodeCount := 0

	for scanner.Scan() {
		node, isNode := scanner.Object().(*osm.Node)
		if !isNode {
			continue
		}
		nodeCount++

		tileId := grid.TileId(orb.Point{node.Lon, node.Lat})
		if tileId == tiling.NoTile {
			skippedNodeCount++
			continue
		}
		coveredTiles[tileId] = true
	}

	if err = scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "Error scanning input file %s", inputFile)
	}

	tileIds := make([]int, 0, len(coveredTiles))
	for tileId := range coveredTiles {
		tileIds = append(tileIds, tileId)
	}
	sort.Ints(tileIds)

	scanDuration := time.Since(scanStartTime)
	sigolo.Infof("Found %d covered tiles for %d nodes (%d outside the grid) in %s", len(tileIds), nodeCount, skippedNodeCount, scanDuration)

	return tileIds, nil
}

func getScanner(inputFile string) (*os.File, osm.Scanner, error) {
	if !strings.HasSuffix(inputFile, ".osm") && !strings.HasSuffix(inputFile, ".pbf") {
		return nil, nil, errors.Errorf("Input file %s must be an .osm or .pbf file", inputFile)
	}

	f, err := os.Open(inputFile)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Unable to open input file %s", inputFile)
	}

	var scanner osm.Scanner
	if strings.HasSuffix(inputFile, ".osm") {
		scanner = osmxml.New(context.Background(), f)
	} else {
		scanner = osmpbf.New(context.Background(), f, 1)
	}
	return f, scanner, nil
}
