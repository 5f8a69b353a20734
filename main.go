package main

import (
	"fmt"
	"strconv"
	"strings"

	"gridtiles/coverage"
	ownIo "gridtiles/io"
	"gridtiles/tiling"
	"gridtiles/web"

	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const VERSION = "v0.1.0"

var cli struct {
	Logging  string      `help:"Logging verbosity." enum:"info,debug,trace" short:"l" default:"info"`
	Version  VersionFlag `help:"Print version information and quit" name:"version" short:"v"`
	Bounds   string      `help:"Bounding box of the tiling grid as 'minX,minY,maxX,maxY'." default:"-180,-90,180,90"`
	TileSize float64     `help:"Edge length of each square tile, in the units of the bounds." default:"4"`
	Wrap     bool        `help:"Treat the east and west edges of the grid as adjacent (longitude wrapping)." default:"true" negatable:""`
	TileId   struct {
		X float64 `help:"The x (or longitude) coordinate." arg:""`
		Y float64 `help:"The y (or latitude) coordinate." arg:""`
	} `cmd:"" name:"tile-id" help:"Prints the ID of the tile containing the given coordinate."`
	List struct {
		MinX     float64 `arg:""`
		MinY     float64 `arg:""`
		MaxX     float64 `arg:""`
		MaxY     float64 `arg:""`
		MaxTiles int     `help:"Maximum number of tiles to return." default:"4096"`
		Geojson  bool    `help:"Write the tiles as GeoJSON to 'tiles.geojson' instead of printing IDs."`
	} `cmd:"" help:"Lists all tiles intersecting the given bounding box."`
	Cover struct {
		Input string `help:"The input file. Either .osm or .pbf." placeholder:"<input-file>" arg:"" type:"existingfile"`
	} `cmd:"" help:"Prints the IDs of all tiles covered by the nodes of the given OSM file."`
	Server struct {
		Port string `help:"Port to listen on." default:"8080"`
	} `cmd:"" help:"Starts the HTTP API for tile lookups and enumeration."`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("gridtiles"),
		kong.Description("A uniform square-tiling spatial index."),
		kong.Vars{
			"version": VERSION,
		},
	)

	if strings.ToLower(cli.Logging) == "debug" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	} else if strings.ToLower(cli.Logging) == "trace" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	} else if strings.ToLower(cli.Logging) == "info" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	} else {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.Fatalf("Unknown logging level '%s'", cli.Logging)
	}

	bounds, err := parseBounds(cli.Bounds)
	sigolo.FatalCheck(err)

	grid, err := tiling.NewGrid(bounds, cli.TileSize, cli.Wrap)
	sigolo.FatalCheck(err)

	switch ctx.Command() {
	case "tile-id <x> <y>":
		tileId := grid.TileId(orb.Point{cli.TileId.X, cli.TileId.Y})
		if tileId == tiling.NoTile {
			sigolo.Fatalf("Coordinate (%f, %f) lies outside the grid bounds %s", cli.TileId.X, cli.TileId.Y, cli.Bounds)
		}
		fmt.Println(tileId)
	case "list <min-x> <min-y> <max-x> <max-y>":
		bbox := orb.Bound{
			Min: orb.Point{cli.List.MinX, cli.List.MinY},
			Max: orb.Point{cli.List.MaxX, cli.List.MaxY},
		}
		tileIds := grid.TileListCapped(bbox, cli.List.MaxTiles)

		if cli.List.Geojson {
			err = ownIo.WriteTilesAsGeoJsonFile(grid, tileIds)
			sigolo.FatalCheck(err)
		} else {
			for _, tileId := range tileIds {
				fmt.Println(tileId)
			}
		}
	case "cover <input>":
		tileIds, err := coverage.TilesForFile(cli.Cover.Input, grid)
		sigolo.FatalCheck(err)

		for _, tileId := range tileIds {
			fmt.Println(tileId)
		}
	case "server":
		web.StartServer(cli.Server.Port, grid)
	default:
		sigolo.Errorf("Unknown command '%s'", ctx.Command())
	}
}

func parseBounds(boundsString string) (orb.Bound, error) {
	parts := strings.Split(boundsString, ",")
	if len(parts) != 4 {
		return orb.Bound{}, errors.Errorf("Bounds '%s' must consist of four comma-separated values 'minX,minY,maxX,maxY'", boundsString)
	}

	values := make([]float64, 4)
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return orb.Bound{}, errors.Wrapf(err, "Unable to parse bounds value '%s'", part)
		}
		values[i] = value
	}

	return orb.Bound{
		Min: orb.Point{values[0], values[1]},
		Max: orb.Point{values[2], values[3]},
	}, nil
}
