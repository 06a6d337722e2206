package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azybler/transitnet/pkg/geo"
	"github.com/azybler/transitnet/pkg/network"
	"github.com/azybler/transitnet/pkg/routing"
)

// mockPlanner implements routing.Planner for testing.
type mockPlanner struct {
	result *routing.Result
	err    error
	got    routing.Query
}

func (m *mockPlanner) Plan(ctx context.Context, q routing.Query) (*routing.Result, error) {
	m.got = q
	return m.result, m.err
}

// testNetwork has three stops on one line: Alpha in north, Beta in city,
// Gamma unattached. north sits inside city.
func testNetwork(t *testing.T) *network.Network {
	t.Helper()
	n := network.New()
	require.NoError(t, n.AddStop(1, "Alpha", geo.Coord{X: 0, Y: 0}))
	require.NoError(t, n.AddStop(2, "Beta", geo.Coord{X: 3, Y: 4}))
	require.NoError(t, n.AddStop(3, "Gamma", geo.Coord{X: 6, Y: 8}))
	require.NoError(t, n.AddRegion("city", "City"))
	require.NoError(t, n.AddRegion("north", "North"))
	require.NoError(t, n.AddSubregionToRegion("north", "city"))
	require.NoError(t, n.AddStopToRegion(1, "north"))
	require.NoError(t, n.AddStopToRegion(2, "city"))
	require.NoError(t, n.AddRoute("r1", []network.StopID{1, 2, 3}))
	require.NoError(t, n.AddTrip("r1", []network.Time{480, 490, 500}))
	n.CreationFinished()
	return n
}

func newTestRouter(t *testing.T, planner routing.Planner) (http.Handler, *network.Network) {
	t.Helper()
	n := testNetwork(t)
	if planner == nil {
		planner = routing.NewEngine(n, routing.Options{})
	}
	return NewRouter(DefaultConfig(":0"), NewHandlers(n, planner)), n
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), w.Body.String())
	return v
}

func TestHandleHealth(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	w := do(h, "GET", "/api/v1/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[HealthResponse](t, w).Status)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	const id = "0b7c8f1e-4a53-4a39-9a3b-1f0c2b5e6d7a"
	req := httptest.NewRequest("GET", "/api/v1/stops/99", nil)
	req.Header.Set("X-Request-ID", id)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, id, w.Header().Get("X-Request-ID"))
	assert.Equal(t, id, decode[ErrorResponse](t, w).RequestID)
}

func TestHandleStats(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	w := do(h, "GET", "/api/v1/stats", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, StatsResponse{Stops: 3, Regions: 2, Routes: 1, Trips: 1}, decode[StatsResponse](t, w))
}

func TestHandleClearNetwork(t *testing.T) {
	h, n := newTestRouter(t, nil)
	w := do(h, "DELETE", "/api/v1/network", "")

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, network.Stats{}, n.Stats())
}

func TestHandleCreateStop(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"created", `{"id":4,"name":"Delta","x":9,"y":9}`, http.StatusCreated, ""},
		{"duplicate", `{"id":1,"name":"Again","x":1,"y":1}`, http.StatusConflict, "stop_exists"},
		{"missing id", `{"name":"Nobody"}`, http.StatusBadRequest, "invalid_request"},
		{"unknown field", `{"id":5,"colour":"red"}`, http.StatusBadRequest, "invalid_request"},
		{"bad json", `{bad`, http.StatusBadRequest, "invalid_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRouter(t, nil)
			w := do(h, "POST", "/api/v1/stops", tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.code != "" {
				assert.Equal(t, tt.code, decode[ErrorResponse](t, w).Error)
			}
		})
	}
}

func TestHandleCreateStop_MissingContentType(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	req := httptest.NewRequest("POST", "/api/v1/stops", strings.NewReader(`{"id":4}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "content-type", decode[ErrorResponse](t, w).Field)
}

func TestHandleListStops(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	require.Equal(t, http.StatusCreated, do(h, "POST", "/api/v1/stops", `{"id":0,"name":"Aardvark","x":-1,"y":-1}`).Code)

	ids := func(path string) []int64 {
		w := do(h, "GET", path, "")
		require.Equal(t, http.StatusOK, w.Code)
		var out []int64
		for _, s := range decode[[]StopJSON](t, w) {
			out = append(out, s.ID)
		}
		return out
	}

	assert.Equal(t, []int64{1, 2, 3, 0}, ids("/api/v1/stops"))
	assert.Equal(t, []int64{0, 1, 2, 3}, ids("/api/v1/stops?order=alpha"))
	assert.Equal(t, []int64{1, 0, 2, 3}, ids("/api/v1/stops?order=coord"))
	assert.Equal(t, []int64{2}, ids("/api/v1/stops?name=Beta"))

	w := do(h, "GET", "/api/v1/stops?order=random", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetStop(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	w := do(h, "GET", "/api/v1/stops/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, StopJSON{ID: 2, Name: "Beta", X: 3, Y: 4}, decode[StopJSON](t, w))

	w = do(h, "GET", "/api/v1/stops/42", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "stop_not_found", decode[ErrorResponse](t, w).Error)

	w = do(h, "GET", "/api/v1/stops/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_stop_id", decode[ErrorResponse](t, w).Error)
}

func TestHandleUpdateStop(t *testing.T) {
	h, n := newTestRouter(t, nil)

	w := do(h, "PATCH", "/api/v1/stops/1", `{"name":"Zulu","x":10,"y":10}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, StopJSON{ID: 1, Name: "Zulu", X: 10, Y: 10}, decode[StopJSON](t, w))
	assert.Equal(t, []network.StopID{2, 3, 1}, n.StopsAlphabetically())

	w = do(h, "PATCH", "/api/v1/stops/1", `{"x":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(h, "PATCH", "/api/v1/stops/42", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDeleteStop(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	require.Equal(t, http.StatusNoContent, do(h, "DELETE", "/api/v1/stops/2", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, "GET", "/api/v1/stops/2", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, "DELETE", "/api/v1/stops/2", "").Code)

	// The route still lists the removed stop.
	w := do(h, "GET", "/api/v1/routes/r1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{1, 2, 3}, decode[RouteDetailResponse](t, w).Stops)
}

func TestHandleExtremes(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	w := do(h, "GET", "/api/v1/stops/extremes", "")

	require.Equal(t, http.StatusOK, w.Code)
	got := decode[ExtremesResponse](t, w)
	assert.Equal(t, int64(1), got.Min.ID)
	assert.Equal(t, int64(3), got.Max.ID)

	do(h, "DELETE", "/api/v1/network", "")
	assert.Equal(t, http.StatusNotFound, do(h, "GET", "/api/v1/stops/extremes", "").Code)
}

func TestHandleClosestStops(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	w := do(h, "GET", "/api/v1/stops/1/closest", "")

	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]StopJSON](t, w)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	assert.Equal(t, http.StatusNotFound, do(h, "GET", "/api/v1/stops/42/closest", "").Code)
}

func TestHandleNearestStop(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	w := do(h, "GET", "/api/v1/stops/nearest?x=5&y=7", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(3), decode[StopJSON](t, w).ID)

	w = do(h, "GET", "/api/v1/stops/nearest?x=5", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "y", decode[ErrorResponse](t, w).Field)

	do(h, "DELETE", "/api/v1/network", "")
	assert.Equal(t, http.StatusNotFound, do(h, "GET", "/api/v1/stops/nearest?x=0&y=0", "").Code)
}

func TestHandleStopsInBox(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	ids := func(w *httptest.ResponseRecorder) []int64 {
		out := []int64{}
		for _, s := range decode[[]StopJSON](t, w) {
			out = append(out, s.ID)
		}
		return out
	}

	w := do(h, "GET", "/api/v1/stops/in-box?minx=0&miny=0&maxx=3&maxy=4", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []int64{1, 2}, ids(w))

	w = do(h, "GET", "/api/v1/stops/in-box?minx=100&miny=100&maxx=200&maxy=200", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, ids(w))

	w = do(h, "GET", "/api/v1/stops/in-box?minx=5&miny=0&maxx=0&maxy=4", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_box", decode[ErrorResponse](t, w).Error)

	assert.Equal(t, http.StatusBadRequest, do(h, "GET", "/api/v1/stops/in-box?minx=0", "").Code)
}

func TestHandleStopRegions(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	w := do(h, "GET", "/api/v1/stops/1/regions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []RegionJSON{{ID: "north", Name: "North"}, {ID: "city", Name: "City"}}, decode[[]RegionJSON](t, w))

	w = do(h, "GET", "/api/v1/stops/3/regions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]RegionJSON](t, w))
}

func TestHandleStopRoutes(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	w := do(h, "GET", "/api/v1/stops/1/routes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []SuccessorJSON{{Route: "r1", Next: 2}}, decode[[]SuccessorJSON](t, w))

	w = do(h, "GET", "/api/v1/stops/3/routes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]SuccessorJSON](t, w))
}

func TestHandleRegions(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	w := do(h, "POST", "/api/v1/regions", `{"id":"harbour","name":"Harbour","parent":"north"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(h, "GET", "/api/v1/regions/north", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"harbour"}, decode[RegionDetailResponse](t, w).Subregions)

	w = do(h, "POST", "/api/v1/regions", `{"id":"harbour","name":"Again"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(h, "POST", "/api/v1/regions", `{"id":"orphan","name":"Orphan","parent":"nowhere"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(h, "GET", "/api/v1/regions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]RegionJSON](t, w), 3)

	require.Equal(t, http.StatusNoContent, do(h, "POST", "/api/v1/regions/harbour/stops", `{"stop":3}`).Code)

	w = do(h, "GET", "/api/v1/regions/city", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[RegionDetailResponse](t, w)
	assert.Equal(t, []string{"north", "harbour"}, got.Subregions)
	assert.Equal(t, []int64{2, 1, 3}, got.Stops)

	assert.Equal(t, http.StatusNotFound, do(h, "GET", "/api/v1/regions/nowhere", "").Code)
}

func TestHandleAttachErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"stop already attached", "/api/v1/regions/city/stops", `{"stop":1}`, http.StatusConflict, "stop_already_attached"},
		{"unknown stop", "/api/v1/regions/city/stops", `{"stop":42}`, http.StatusNotFound, "stop_not_found"},
		{"missing stop", "/api/v1/regions/city/stops", `{}`, http.StatusBadRequest, "invalid_request"},
		{"unknown region", "/api/v1/regions/nowhere/stops", `{"stop":3}`, http.StatusNotFound, "region_not_found"},
		{"region already attached", "/api/v1/regions/city/subregions", `{"region":"north"}`, http.StatusConflict, "region_already_attached"},
		{"cycle", "/api/v1/regions/north/subregions", `{"region":"city"}`, http.StatusConflict, "region_cycle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRouter(t, nil)
			w := do(h, "POST", tt.path, tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[ErrorResponse](t, w).Error)
		})
	}
}

func TestHandleRegionBBox(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	w := do(h, "GET", "/api/v1/regions/city/bbox", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, BBoxResponse{Min: CoordJSON{0, 0}, Max: CoordJSON{3, 4}}, decode[BBoxResponse](t, w))

	do(h, "POST", "/api/v1/regions", `{"id":"empty","name":"Empty"}`)
	w = do(h, "GET", "/api/v1/regions/empty/bbox", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "region_has_no_stops", decode[ErrorResponse](t, w).Error)
}

func TestHandleCommonRegion(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	w := do(h, "GET", "/api/v1/common-region?a=1&b=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, CommonRegionResponse{Region: "city", Name: "City"}, decode[CommonRegionResponse](t, w))

	w = do(h, "GET", "/api/v1/common-region?a=1&b=3", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no_common_region", decode[ErrorResponse](t, w).Error)

	assert.Equal(t, http.StatusNotFound, do(h, "GET", "/api/v1/common-region?a=1&b=42", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(h, "GET", "/api/v1/common-region?a=1", "").Code)
}

func TestHandleRoutes(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	w := do(h, "POST", "/api/v1/routes", `{"id":"r2","stops":[3,1]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	tests := []struct {
		body   string
		status int
	}{
		{`{"id":"r2","stops":[1,2]}`, http.StatusConflict},
		{`{"id":"r3","stops":[1]}`, http.StatusUnprocessableEntity},
		{`{"id":"r3","stops":[1,42]}`, http.StatusNotFound},
		{`{"stops":[1,2]}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, do(h, "POST", "/api/v1/routes", tt.body).Code, tt.body)
	}

	w = do(h, "GET", "/api/v1/routes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"r1", "r2"}, decode[[]string](t, w))

	w = do(h, "GET", "/api/v1/routes/r1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, RouteDetailResponse{ID: "r1", Stops: []int64{1, 2, 3}, Trips: 1}, decode[RouteDetailResponse](t, w))

	assert.Equal(t, http.StatusNotFound, do(h, "GET", "/api/v1/routes/nope", "").Code)
}

func TestHandleTrips(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	require.Equal(t, http.StatusCreated, do(h, "POST", "/api/v1/routes/r1/trips", `{"times":[500,515,530]}`).Code)

	w := do(h, "POST", "/api/v1/routes/r1/trips", `{"times":[500,515]}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "trip_length_mismatch", decode[ErrorResponse](t, w).Error)

	assert.Equal(t, http.StatusNotFound, do(h, "POST", "/api/v1/routes/nope/trips", `{"times":[1,2]}`).Code)

	w = do(h, "GET", "/api/v1/routes/r1/times?stop=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []DepartureJSON{{Time: 490, Duration: 10}, {Time: 515, Duration: 15}}, decode[[]DepartureJSON](t, w))

	// The last stop has no onward departure.
	assert.Equal(t, http.StatusNotFound, do(h, "GET", "/api/v1/routes/r1/times?stop=3", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(h, "GET", "/api/v1/routes/r1/times", "").Code)
}

func TestHandleClearRoutes(t *testing.T) {
	h, n := newTestRouter(t, nil)

	require.Equal(t, http.StatusNoContent, do(h, "DELETE", "/api/v1/routes", "").Code)
	assert.Empty(t, n.AllRoutes())
	assert.Equal(t, 3, n.StopCount())
}

func TestHandleJourney_Engine(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	w := do(h, "GET", "/api/v1/journeys/least-stops?from=1&to=3", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[JourneyResponse](t, w)
	assert.True(t, got.Found)
	require.Len(t, got.Legs, 3)
	assert.Equal(t, "r1", got.Legs[0].Route)
	assert.Equal(t, "", got.Legs[2].Route)
	require.NotNil(t, got.Legs[2].Distance)
	assert.InDelta(t, 10.0, *got.Legs[2].Distance, 1e-9)

	w = do(h, "GET", "/api/v1/journeys/earliest?from=1&to=3&start=475", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got = decode[JourneyResponse](t, w)
	require.Len(t, got.Legs, 3)
	require.NotNil(t, got.Legs[2].Time)
	assert.Equal(t, 500, *got.Legs[2].Time)

	w = do(h, "GET", "/api/v1/journeys/any?from=3&to=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[JourneyResponse](t, w)
	assert.False(t, got.Found)
	assert.Empty(t, got.Legs)

	w = do(h, "GET", "/api/v1/journeys/any?from=1&to=42", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "stop_not_found", decode[ErrorResponse](t, w).Error)
}

func TestHandleJourney_Mock(t *testing.T) {
	mock := &mockPlanner{result: &routing.Result{
		Variant: routing.VariantCycle,
		Legs: []routing.Leg{
			{Stop: 1, Route: "r1", Distance: 0},
			{Stop: 2, Route: "back", Distance: 5},
			{Stop: 1, Route: network.NoRoute, Distance: 10},
		},
	}}
	h, _ := newTestRouter(t, mock)

	w := do(h, "GET", "/api/v1/journeys/cycle?from=1", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, routing.Query{Variant: routing.VariantCycle, From: 1, To: network.NoStop}, mock.got)
	got := decode[JourneyResponse](t, w)
	assert.Equal(t, "cycle", got.Variant)
	require.Len(t, got.Legs, 3)
	assert.Equal(t, "", got.Legs[2].Route)
	assert.Nil(t, got.Legs[2].Time)
}

func TestHandleJourney_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
		code   string
	}{
		{"unknown variant", "/api/v1/journeys/fastest?from=1&to=2", nil, http.StatusBadRequest, "unknown_variant"},
		{"missing from", "/api/v1/journeys/any?to=2", nil, http.StatusBadRequest, "invalid_stop_id"},
		{"missing to", "/api/v1/journeys/shortest?from=1", nil, http.StatusBadRequest, "invalid_stop_id"},
		{"bad start", "/api/v1/journeys/earliest?from=1&to=2&start=-5", nil, http.StatusBadRequest, "invalid_request"},
		{"timeout", "/api/v1/journeys/any?from=1&to=2", context.DeadlineExceeded, http.StatusServiceUnavailable, "search_timeout"},
		{"unknown stop", "/api/v1/journeys/any?from=1&to=2", routing.ErrUnknownStop, http.StatusNotFound, "stop_not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRouter(t, &mockPlanner{err: tt.err})
			w := do(h, "GET", tt.path, "")
			require.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[ErrorResponse](t, w).Error)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	do(h, "GET", "/api/v1/health", "")

	w := do(h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "transitnet_http_requests_total")
}

func TestErrorStatus(t *testing.T) {
	status, code := errorStatus(context.Canceled)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", code)

	status, _ = errorStatus(network.ErrRouteTooShort)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}
