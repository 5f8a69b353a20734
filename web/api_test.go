package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"gridtiles/tiling"
	"gridtiles/util"

	"github.com/paulmach/orb"
)

func testRouter(t *testing.T) http.Handler {
	grid, err := tiling.NewGrid(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}, 10, false)
	util.AssertNil(t, err)
	return initRouter(grid)
}

func TestHandleTileList(t *testing.T) {
	router := testRouter(t)

	request := httptest.NewRequest(http.MethodPost, "/tilelist", strings.NewReader(`{"min_x":15,"min_y":15,"max_x":25,"max_y":25}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	util.AssertEqual(t, http.StatusOK, recorder.Code)

	var response TileListResponse
	err := json.Unmarshal(recorder.Body.Bytes(), &response)
	util.AssertNil(t, err)
	util.AssertEqual(t, 4, response.Count)

	sort.Ints(response.TileIds)
	util.AssertEqual(t, []int{11, 12, 21, 22}, response.TileIds)
}

func TestHandleTileList_maxTiles(t *testing.T) {
	router := testRouter(t)

	request := httptest.NewRequest(http.MethodPost, "/tilelist", strings.NewReader(`{"min_x":0,"min_y":0,"max_x":100,"max_y":100,"max_tiles":1}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	util.AssertEqual(t, http.StatusOK, recorder.Code)

	var response TileListResponse
	err := json.Unmarshal(recorder.Body.Bytes(), &response)
	util.AssertNil(t, err)
	util.AssertEqual(t, 1, response.Count)
}

func TestHandleTileList_emptyResult(t *testing.T) {
	router := testRouter(t)

	request := httptest.NewRequest(http.MethodPost, "/tilelist", strings.NewReader(`{"min_x":200,"min_y":200,"max_x":210,"max_y":210}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	util.AssertEqual(t, http.StatusOK, recorder.Code)

	var response TileListResponse
	err := json.Unmarshal(recorder.Body.Bytes(), &response)
	util.AssertNil(t, err)
	util.AssertEqual(t, 0, response.Count)
	util.AssertEqual(t, []int{}, response.TileIds)
}

func TestHandleTileList_malformedBody(t *testing.T) {
	router := testRouter(t)

	request := httptest.NewRequest(http.MethodPost, "/tilelist", strings.NewReader(`{"min_x":`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	util.AssertEqual(t, http.StatusBadRequest, recorder.Code)
}

func TestHandleTileList_geojsonFormat(t *testing.T) {
	router := testRouter(t)

	request := httptest.NewRequest(http.MethodPost, "/tilelist?format=geojson", strings.NewReader(`{"min_x":15,"min_y":15,"max_x":25,"max_y":25}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	util.AssertEqual(t, http.StatusOK, recorder.Code)
	util.AssertEqual(t, "application/geo+json", recorder.Header().Get("Content-Type"))
	util.AssertTrue(t, strings.Contains(recorder.Body.String(), "FeatureCollection"))
}

func TestHandleTileInfo(t *testing.T) {
	router := testRouter(t)

	request := httptest.NewRequest(http.MethodGet, "/tile/12", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	util.AssertEqual(t, http.StatusOK, recorder.Code)

	var response TileInfoResponse
	err := json.Unmarshal(recorder.Body.Bytes(), &response)
	util.AssertNil(t, err)
	util.AssertEqual(t, 12, response.Id)
	util.AssertEqual(t, 1, response.Row)
	util.AssertEqual(t, 2, response.Col)
	util.AssertEqual(t, orb.Point{20, 10}, response.Base)
	util.AssertEqual(t, orb.Point{25, 15}, response.Center)
	util.AssertEqual(t, [4]float64{20, 10, 30, 20}, response.Bounds)
}

func TestHandleTileInfo_invalidId(t *testing.T) {
	router := testRouter(t)

	for _, url := range []string{"/tile/foo", "/tile/-1", "/tile/100"} {
		request := httptest.NewRequest(http.MethodGet, url, nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		util.AssertEqual(t, http.StatusBadRequest, recorder.Code)
	}
}
