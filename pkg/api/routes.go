package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/azybler/transitnet/pkg/network"
)

// HandleCreateRoute handles POST /api/v1/routes.
func (h *Handlers) HandleCreateRoute(w http.ResponseWriter, r *http.Request) {
	var req CreateRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "id")
		return
	}
	stops := make([]network.StopID, len(req.Stops))
	for i, id := range req.Stops {
		stops[i] = network.StopID(id)
	}

	h.mu.Lock()
	err := h.net.AddRoute(network.RouteID(req.ID), stops)
	h.mu.Unlock()
	if err != nil {
		writeNetworkError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, RouteDetailResponse{ID: req.ID, Stops: req.Stops})
}

// HandleListRoutes handles GET /api/v1/routes.
func (h *Handlers) HandleListRoutes(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	ids := h.net.AllRoutes()
	h.mu.Unlock()

	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGetRoute handles GET /api/v1/routes/{id}.
func (h *Handlers) HandleGetRoute(w http.ResponseWriter, r *http.Request) {
	id := network.RouteID(chi.URLParam(r, "id"))

	h.mu.Lock()
	defer h.mu.Unlock()
	stops, ok := h.net.RouteStops(id)
	if !ok {
		writeNetworkError(w, r, network.ErrRouteNotFound)
		return
	}
	trips, _ := h.net.TripCount(id)
	writeJSON(w, http.StatusOK, RouteDetailResponse{ID: string(id), Stops: stopIDs(stops), Trips: trips})
}

// HandleAddTrip handles POST /api/v1/routes/{id}/trips.
func (h *Handlers) HandleAddTrip(w http.ResponseWriter, r *http.Request) {
	var req AddTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id := network.RouteID(chi.URLParam(r, "id"))

	h.mu.Lock()
	defer h.mu.Unlock()
	stops, ok := h.net.RouteStops(id)
	if !ok {
		writeNetworkError(w, r, network.ErrRouteNotFound)
		return
	}
	if len(req.Times) != len(stops) {
		writeError(w, r, http.StatusUnprocessableEntity, "trip_length_mismatch", "times")
		return
	}
	times := make([]network.Time, len(req.Times))
	for i, t := range req.Times {
		times[i] = network.Time(t)
	}
	if err := h.net.AddTrip(id, times); err != nil {
		writeNetworkError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// HandleRouteTimes handles GET /api/v1/routes/{id}/times?stop=.
func (h *Handlers) HandleRouteTimes(w http.ResponseWriter, r *http.Request) {
	stop, ok := parseStopID(w, r, r.URL.Query().Get("stop"), "stop")
	if !ok {
		return
	}
	id := network.RouteID(chi.URLParam(r, "id"))

	h.mu.Lock()
	defer h.mu.Unlock()
	deps, ok := h.net.RouteTimesFrom(id, stop)
	if !ok {
		writeError(w, r, http.StatusNotFound, "no_departures", "")
		return
	}
	out := make([]DepartureJSON, len(deps))
	for i, d := range deps {
		out[i] = DepartureJSON{Time: int(d.Time), Duration: int(d.Duration)}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleClearRoutes handles DELETE /api/v1/routes.
func (h *Handlers) HandleClearRoutes(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.net.ClearRoutes()
	h.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}
