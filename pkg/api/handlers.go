package api

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/azybler/transitnet/pkg/geo"
	"github.com/azybler/transitnet/pkg/network"
	"github.com/azybler/transitnet/pkg/routing"
)

const maxBodyBytes = 1 << 20

// Handlers holds the HTTP handlers and their dependencies.
//
// Every handler holds mu for its whole network access: even read queries
// can re-sort the stop orderings.
type Handlers struct {
	mu      sync.Mutex
	net     *network.Network
	planner routing.Planner
}

// NewHandlers creates handlers serving n. Journeys are answered by planner,
// which is expected to read n.
func NewHandlers(n *network.Network, planner routing.Planner) *Handlers {
	return &Handlers{net: n, planner: planner}
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	s := h.net.Stats()
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, StatsResponse{
		Stops:   s.Stops,
		Regions: s.Regions,
		Routes:  s.Routes,
		Trips:   s.Trips,
	})
}

// HandleClearNetwork handles DELETE /api/v1/network.
func (h *Handlers) HandleClearNetwork(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.net.ClearAll()
	h.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// errorStatus maps network errors to HTTP status codes and error codes.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, network.ErrStopNotFound):
		return http.StatusNotFound, "stop_not_found"
	case errors.Is(err, network.ErrRegionNotFound):
		return http.StatusNotFound, "region_not_found"
	case errors.Is(err, network.ErrRouteNotFound):
		return http.StatusNotFound, "route_not_found"
	case errors.Is(err, routing.ErrUnknownStop):
		return http.StatusNotFound, "stop_not_found"
	case errors.Is(err, network.ErrStopExists):
		return http.StatusConflict, "stop_exists"
	case errors.Is(err, network.ErrRegionExists):
		return http.StatusConflict, "region_exists"
	case errors.Is(err, network.ErrRouteExists):
		return http.StatusConflict, "route_exists"
	case errors.Is(err, network.ErrStopAttached):
		return http.StatusConflict, "stop_already_attached"
	case errors.Is(err, network.ErrRegionAttached):
		return http.StatusConflict, "region_already_attached"
	case errors.Is(err, network.ErrRegionCycle):
		return http.StatusConflict, "region_cycle"
	case errors.Is(err, network.ErrRouteTooShort):
		return http.StatusUnprocessableEntity, "route_too_short"
	case errors.Is(err, routing.ErrUnknownVariant):
		return http.StatusBadRequest, "unknown_variant"
	}
	return http.StatusInternalServerError, "internal_error"
}

func writeNetworkError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorStatus(err)
	writeError(w, r, status, code, "")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, field string) {
	writeJSON(w, status, ErrorResponse{Error: code, Field: field, RequestID: requestID(r.Context())})
}

// decodeJSON reads a JSON body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "content-type")
		return false
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "")
		return false
	}
	return true
}

// stopParam parses the {id} path parameter, writing a 400 on failure.
func stopParam(w http.ResponseWriter, r *http.Request) (network.StopID, bool) {
	return parseStopID(w, r, chi.URLParam(r, "id"), "id")
}

func parseStopID(w http.ResponseWriter, r *http.Request, raw, field string) (network.StopID, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_stop_id", field)
		return 0, false
	}
	return network.StopID(id), true
}

func intParam(w http.ResponseWriter, r *http.Request, raw, field string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", field)
		return 0, false
	}
	return n, true
}

func coordJSON(c geo.Coord) CoordJSON {
	return CoordJSON{X: c.X, Y: c.Y}
}

func stopIDs(ids []network.StopID) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}
