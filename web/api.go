package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	ownIo "gridtiles/io"
	"gridtiles/tiling"

	"github.com/gorilla/mux"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type TileListRequest struct {
	MinX     float64 `json:"min_x"`
	MinY     float64 `json:"min_y"`
	MaxX     float64 `json:"max_x"`
	MaxY     float64 `json:"max_y"`
	MaxTiles int     `json:"max_tiles"`
}

type TileListResponse struct {
	TileIds []int `json:"tile_ids"`
	Count   int   `json:"count"`
}

type TileInfoResponse struct {
	Id     int        `json:"id"`
	Row    int        `json:"row"`
	Col    int        `json:"col"`
	Base   orb.Point  `json:"base"`
	Center orb.Point  `json:"center"`
	Bounds [4]float64 `json:"bounds"`
}

func StartServer(port string, grid *tiling.Grid) {
	r := initRouter(grid)
	sigolo.Infof("Start server on port %s", port)
	err := http.ListenAndServe(":"+port, r)
	sigolo.FatalCheck(err)
}

func initRouter(grid *tiling.Grid) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/tilelist", func(writer http.ResponseWriter, request *http.Request) {
		handleTileList(writer, request, grid)
	}).Methods(http.MethodPost)
	r.HandleFunc("/tile/{id}", func(writer http.ResponseWriter, request *http.Request) {
		handleTileInfo(writer, request, grid)
	}).Methods(http.MethodGet)
	return r
}

func handleTileList(writer http.ResponseWriter, request *http.Request, grid *tiling.Grid) {
	writer.Header().Set("Access-Control-Allow-Origin", "*")

	var tileListRequest TileListRequest
	err := json.NewDecoder(request.Body).Decode(&tileListRequest)
	if err != nil {
		sigolo.Errorf("Error parsing request to '/tilelist': %+v", err)
		writeError(writer, http.StatusBadRequest, fmt.Sprintf("Error parsing request body: %s", err.Error()))
		return
	}

	maxTiles := tileListRequest.MaxTiles
	if maxTiles <= 0 {
		maxTiles = tiling.DefaultMaxTiles
	}

	bbox := orb.Bound{
		Min: orb.Point{tileListRequest.MinX, tileListRequest.MinY},
		Max: orb.Point{tileListRequest.MaxX, tileListRequest.MaxY},
	}
	tileIds := grid.TileListCapped(bbox, maxTiles)
	if tileIds == nil {
		tileIds = []int{}
	}

	sigolo.Debugf("Found %d tiles for bbox=%v", len(tileIds), bbox)

	if request.URL.Query().Get("format") == "geojson" {
		writer.Header().Set("Content-Type", "application/geo+json")
		err = ownIo.WriteTilesAsGeoJson(grid, tileIds, writer)
		if err != nil {
			sigolo.Errorf("Error writing tile list as GeoJSON: %+v", err)
			writeError(writer, http.StatusInternalServerError, "Error writing tile list as GeoJSON.")
		}
		return
	}

	writeJson(writer, TileListResponse{
		TileIds: tileIds,
		Count:   len(tileIds),
	})
}

func handleTileInfo(writer http.ResponseWriter, request *http.Request, grid *tiling.Grid) {
	writer.Header().Set("Access-Control-Allow-Origin", "*")

	tileId, err := strconv.Atoi(mux.Vars(request)["id"])
	if err != nil {
		writeError(writer, http.StatusBadRequest, fmt.Sprintf("Tile ID must be an integer: %s", err.Error()))
		return
	}
	if tileId < 0 || tileId >= grid.TileCount() {
		writeError(writer, http.StatusBadRequest, fmt.Sprintf("Tile ID %d is outside the grid (valid range 0-%d).", tileId, grid.TileCount()-1))
		return
	}

	tileBounds := grid.TileBounds(tileId)
	writeJson(writer, TileInfoResponse{
		Id:     tileId,
		Row:    tileId / grid.NumCols(),
		Col:    tileId % grid.NumCols(),
		Base:   grid.Base(tileId),
		Center: grid.Center(tileId),
		Bounds: [4]float64{tileBounds.Min.X(), tileBounds.Min.Y(), tileBounds.Max.X(), tileBounds.Max.Y()},
	})
}

func writeJson(writer http.ResponseWriter, response any) {
	writer.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(writer).Encode(response)
	if err != nil {
		sigolo.Errorf("Error writing response: %+v", err)
	}
}

func writeError(writer http.ResponseWriter, status int, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	err := json.NewEncoder(writer).Encode(ErrorResponse{Error: message})
	if err != nil {
		sigolo.Errorf("Error writing error response: %+v", err)
	}
}
