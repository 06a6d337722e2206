package api

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	Stops   int `json:"stops"`
	Regions int `json:"regions"`
	Routes  int `json:"routes"`
	Trips   int `json:"trips"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type CoordJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type StopJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// CreateStopRequest is the JSON body for POST /api/v1/stops.
type CreateStopRequest struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// UpdateStopRequest is the JSON body for PATCH /api/v1/stops/{id}.
// Absent fields are left unchanged.
type UpdateStopRequest struct {
	Name *string `json:"name"`
	X    *int    `json:"x"`
	Y    *int    `json:"y"`
}

type ExtremesResponse struct {
	Min StopJSON `json:"min"`
	Max StopJSON `json:"max"`
}

type SuccessorJSON struct {
	Route string `json:"route"`
	Next  int64  `json:"next"`
}

type RegionJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RegionDetailResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Subregions []string `json:"subregions"`
	Stops      []int64  `json:"stops"`
}

// CreateRegionRequest is the JSON body for POST /api/v1/regions. A non-empty
// parent attaches the new region below it.
type CreateRegionRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
}

type AttachStopRequest struct {
	Stop *int64 `json:"stop"`
}

type AttachRegionRequest struct {
	Region string `json:"region"`
}

type BBoxResponse struct {
	Min CoordJSON `json:"min"`
	Max CoordJSON `json:"max"`
}

type CommonRegionResponse struct {
	Region string `json:"region"`
	Name   string `json:"name"`
}

// CreateRouteRequest is the JSON body for POST /api/v1/routes.
type CreateRouteRequest struct {
	ID    string  `json:"id"`
	Stops []int64 `json:"stops"`
}

type RouteDetailResponse struct {
	ID    string  `json:"id"`
	Stops []int64 `json:"stops"`
	Trips int     `json:"trips"`
}

// AddTripRequest is the JSON body for POST /api/v1/routes/{id}/trips.
// Times are minutes from midnight, one per stop of the route.
type AddTripRequest struct {
	Times []int `json:"times"`
}

type DepartureJSON struct {
	Time     int `json:"time"`
	Duration int `json:"duration"`
}

// LegJSON is one stop of a journey. Route is empty on the final leg.
// Distance is set for distance searches, Time for earliest-arrival.
type LegJSON struct {
	Stop     int64    `json:"stop"`
	Route    string   `json:"route,omitempty"`
	Distance *float64 `json:"distance,omitempty"`
	Time     *int     `json:"time,omitempty"`
}

// JourneyResponse is the JSON response for GET /api/v1/journeys/{variant}.
type JourneyResponse struct {
	Variant string    `json:"variant"`
	Found   bool      `json:"found"`
	Legs    []LegJSON `json:"legs"`
}
