package api

import (
	"net/http"

	"github.com/azybler/transitnet/pkg/geo"
	"github.com/azybler/transitnet/pkg/network"
)

// stopJSON describes a registered stop. Callers hold h.mu.
func (h *Handlers) stopJSON(id network.StopID) StopJSON {
	name, _ := h.net.StopName(id)
	c, _ := h.net.StopCoord(id)
	return StopJSON{ID: int64(id), Name: string(name), X: c.X, Y: c.Y}
}

func (h *Handlers) stopsJSON(ids []network.StopID) []StopJSON {
	out := make([]StopJSON, len(ids))
	for i, id := range ids {
		out[i] = h.stopJSON(id)
	}
	return out
}

// HandleCreateStop handles POST /api/v1/stops.
func (h *Handlers) HandleCreateStop(w http.ResponseWriter, r *http.Request) {
	var req CreateStopRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID == nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "id")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	id := network.StopID(*req.ID)
	if err := h.net.AddStop(id, network.Name(req.Name), geo.Coord{X: req.X, Y: req.Y}); err != nil {
		writeNetworkError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.stopJSON(id))
}

// HandleListStops handles GET /api/v1/stops. The order query parameter
// selects insertion (default), alpha or coord order; name filters by exact
// name.
func (h *Handlers) HandleListStops(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	h.mu.Lock()
	defer h.mu.Unlock()

	var ids []network.StopID
	switch q.Get("order") {
	case "", "insertion":
		ids = h.net.AllStops()
	case "alpha":
		ids = h.net.StopsAlphabetically()
	case "coord":
		ids = h.net.StopsCoordOrder()
	default:
		writeError(w, r, http.StatusBadRequest, "invalid_order", "order")
		return
	}

	if q.Has("name") {
		match := make(map[network.StopID]bool)
		for _, id := range h.net.FindStops(network.Name(q.Get("name"))) {
			match[id] = true
		}
		filtered := ids[:0]
		for _, id := range ids {
			if match[id] {
				filtered = append(filtered, id)
			}
		}
		ids = filtered
	}
	writeJSON(w, http.StatusOK, h.stopsJSON(ids))
}

// HandleGetStop handles GET /api/v1/stops/{id}.
func (h *Handlers) HandleGetStop(w http.ResponseWriter, r *http.Request) {
	id, ok := stopParam(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.net.HasStop(id) {
		writeNetworkError(w, r, network.ErrStopNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.stopJSON(id))
}

// HandleUpdateStop handles PATCH /api/v1/stops/{id}.
func (h *Handlers) HandleUpdateStop(w http.ResponseWriter, r *http.Request) {
	id, ok := stopParam(w, r)
	if !ok {
		return
	}
	var req UpdateStopRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if (req.X == nil) != (req.Y == nil) {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "x,y")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.net.HasStop(id) {
		writeNetworkError(w, r, network.ErrStopNotFound)
		return
	}
	if req.Name != nil {
		if err := h.net.RenameStop(id, network.Name(*req.Name)); err != nil {
			writeNetworkError(w, r, err)
			return
		}
	}
	if req.X != nil {
		if err := h.net.MoveStop(id, geo.Coord{X: *req.X, Y: *req.Y}); err != nil {
			writeNetworkError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, h.stopJSON(id))
}

// HandleDeleteStop handles DELETE /api/v1/stops/{id}.
func (h *Handlers) HandleDeleteStop(w http.ResponseWriter, r *http.Request) {
	id, ok := stopParam(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	err := h.net.RemoveStop(id)
	h.mu.Unlock()
	if err != nil {
		writeNetworkError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleExtremes handles GET /api/v1/stops/extremes.
func (h *Handlers) HandleExtremes(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	lo, ok := h.net.MinCoord()
	if !ok {
		writeNetworkError(w, r, network.ErrStopNotFound)
		return
	}
	hi, _ := h.net.MaxCoord()
	writeJSON(w, http.StatusOK, ExtremesResponse{Min: h.stopJSON(lo), Max: h.stopJSON(hi)})
}

// HandleClosestStops handles GET /api/v1/stops/{id}/closest.
func (h *Handlers) HandleClosestStops(w http.ResponseWriter, r *http.Request) {
	id, ok := stopParam(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	ids, ok := h.net.ClosestStops(id)
	if !ok {
		writeNetworkError(w, r, network.ErrStopNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.stopsJSON(ids))
}

// HandleStopRegions handles GET /api/v1/stops/{id}/regions. Regions are
// listed innermost first.
func (h *Handlers) HandleStopRegions(w http.ResponseWriter, r *http.Request) {
	id, ok := stopParam(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	chain, ok := h.net.StopRegions(id)
	if !ok {
		writeNetworkError(w, r, network.ErrStopNotFound)
		return
	}
	out := make([]RegionJSON, 0, len(chain))
	for _, rid := range chain {
		if rid == network.NoRegion {
			break
		}
		name, _ := h.net.RegionName(rid)
		out = append(out, RegionJSON{ID: string(rid), Name: string(name)})
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleStopRoutes handles GET /api/v1/stops/{id}/routes.
func (h *Handlers) HandleStopRoutes(w http.ResponseWriter, r *http.Request) {
	id, ok := stopParam(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	succ, ok := h.net.RoutesFrom(id)
	if !ok {
		writeNetworkError(w, r, network.ErrStopNotFound)
		return
	}
	out := make([]SuccessorJSON, len(succ))
	for i, s := range succ {
		out[i] = SuccessorJSON{Route: string(s.Route), Next: int64(s.Stop)}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleNearestStop handles GET /api/v1/stops/nearest?x=&y=.
func (h *Handlers) HandleNearestStop(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, ok := intParam(w, r, q.Get("x"), "x")
	if !ok {
		return
	}
	y, ok := intParam(w, r, q.Get("y"), "y")
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	id, ok := h.net.NearestStop(geo.Coord{X: x, Y: y})
	if !ok {
		writeNetworkError(w, r, network.ErrStopNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.stopJSON(id))
}

// HandleStopsInBox handles GET /api/v1/stops/in-box?minx=&miny=&maxx=&maxy=.
// Edges are included; stops come back in ascending id order.
func (h *Handlers) HandleStopsInBox(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var v [4]int
	for i, name := range []string{"minx", "miny", "maxx", "maxy"} {
		n, ok := intParam(w, r, q.Get(name), name)
		if !ok {
			return
		}
		v[i] = n
	}
	box := geo.BBox{Min: geo.Coord{X: v[0], Y: v[1]}, Max: geo.Coord{X: v[2], Y: v[3]}}
	if box.Min.X > box.Max.X || box.Min.Y > box.Max.Y {
		writeError(w, r, http.StatusBadRequest, "invalid_box", "")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, h.stopsJSON(h.net.StopsInBox(box)))
}
