package io

import (
	"io"
	"os"
	"time"

	"gridtiles/tiling"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

func WriteTilesAsGeoJsonFile(grid *tiling.Grid, tileIds []int) error {
	file, err := os.Create("tiles.geojson")
	if err != nil {
		return err
	}

	defer func() {
		err = file.Close()
		sigolo.FatalCheck(errors.Wrapf(err, "Unable to close file handle for GeoJSON file %s", file.Name()))
	}()

	return WriteTilesAsGeoJson(grid, tileIds, file)
}

// WriteTilesAsGeoJson writes the given tiles as a FeatureCollection with one
// polygon per tile so the result can be inspected in any map viewer.
func WriteTilesAsGeoJson(grid *tiling.Grid, tileIds []int, writer io.Writer) error {
	sigolo.Debugf("Write %d tiles to GeoJSON", len(tileIds))
	writeStartTime := time.Now()

	featureCollection := geojson.NewFeatureCollection()
	for _, tileId := range tileIds {
		feature := geojson.NewFeature(boundsToPolygon(grid.TileBounds(tileId)))

		feature.Properties["tile_id"] = tileId
		feature.Properties["row"] = tileId / grid.NumCols()
		feature.Properties["col"] = tileId % grid.NumCols()

		featureCollection.Features = append(featureCollection.Features, feature)
	}

	geojsonBytes, err := featureCollection.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Unable to marshal tile FeatureCollection")
	}

	_, err = writer.Write(geojsonBytes)
	if err != nil {
		return errors.Wrap(err, "Unable to write tile GeoJSON")
	}

	writeDuration := time.Since(writeStartTime)
	sigolo.Debugf("Finished writing in %s", writeDuration)

	return nil
}

func boundsToPolygon(bounds orb.Bound) orb.Polygon {
	return orb.Polygon{
		orb.Ring{
			bounds.Min,
			orb.Point{bounds.Max.X(), bounds.Min.Y()},
			bounds.Max,
			orb.Point{bounds.Min.X(), bounds.Max.Y()},
			bounds.Min,
		},
	}
}
