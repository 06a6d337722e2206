package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/azybler/transitnet/pkg/network"
)

// HandleCreateRegion handles POST /api/v1/regions.
func (h *Handlers) HandleCreateRegion(w http.ResponseWriter, r *http.Request) {
	var req CreateRegionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "id")
		return
	}
	id := network.RegionID(req.ID)

	h.mu.Lock()
	defer h.mu.Unlock()
	if req.Parent != "" {
		if _, ok := h.net.RegionName(network.RegionID(req.Parent)); !ok {
			writeError(w, r, http.StatusNotFound, "region_not_found", "parent")
			return
		}
	}
	if err := h.net.AddRegion(id, network.Name(req.Name)); err != nil {
		writeNetworkError(w, r, err)
		return
	}
	if req.Parent != "" {
		if err := h.net.AddSubregionToRegion(id, network.RegionID(req.Parent)); err != nil {
			writeNetworkError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, RegionJSON{ID: req.ID, Name: req.Name})
}

// HandleListRegions handles GET /api/v1/regions.
func (h *Handlers) HandleListRegions(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := h.net.AllRegions()
	out := make([]RegionJSON, len(ids))
	for i, id := range ids {
		name, _ := h.net.RegionName(id)
		out[i] = RegionJSON{ID: string(id), Name: string(name)}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGetRegion handles GET /api/v1/regions/{id}. Subregions and stops
// include everything below the region, not only direct children.
func (h *Handlers) HandleGetRegion(w http.ResponseWriter, r *http.Request) {
	id := network.RegionID(chi.URLParam(r, "id"))

	h.mu.Lock()
	defer h.mu.Unlock()
	name, ok := h.net.RegionName(id)
	if !ok {
		writeNetworkError(w, r, network.ErrRegionNotFound)
		return
	}
	subs, _ := h.net.Subregions(id)
	stops, _ := h.net.RegionStops(id)

	resp := RegionDetailResponse{
		ID:         string(id),
		Name:       string(name),
		Subregions: make([]string, len(subs)),
		Stops:      stopIDs(stops),
	}
	for i, s := range subs {
		resp.Subregions[i] = string(s)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleAttachStop handles POST /api/v1/regions/{id}/stops.
func (h *Handlers) HandleAttachStop(w http.ResponseWriter, r *http.Request) {
	var req AttachStopRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Stop == nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "stop")
		return
	}

	h.mu.Lock()
	err := h.net.AddStopToRegion(network.StopID(*req.Stop), network.RegionID(chi.URLParam(r, "id")))
	h.mu.Unlock()
	if err != nil {
		writeNetworkError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAttachSubregion handles POST /api/v1/regions/{id}/subregions.
func (h *Handlers) HandleAttachSubregion(w http.ResponseWriter, r *http.Request) {
	var req AttachRegionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.mu.Lock()
	err := h.net.AddSubregionToRegion(network.RegionID(req.Region), network.RegionID(chi.URLParam(r, "id")))
	h.mu.Unlock()
	if err != nil {
		writeNetworkError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRegionBBox handles GET /api/v1/regions/{id}/bbox.
func (h *Handlers) HandleRegionBBox(w http.ResponseWriter, r *http.Request) {
	id := network.RegionID(chi.URLParam(r, "id"))

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.net.RegionName(id); !ok {
		writeNetworkError(w, r, network.ErrRegionNotFound)
		return
	}
	box, ok := h.net.RegionBoundingBox(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "region_has_no_stops", "")
		return
	}
	writeJSON(w, http.StatusOK, BBoxResponse{Min: coordJSON(box.Min), Max: coordJSON(box.Max)})
}

// HandleCommonRegion handles GET /api/v1/common-region?a=&b=.
func (h *Handlers) HandleCommonRegion(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a, ok := parseStopID(w, r, q.Get("a"), "a")
	if !ok {
		return
	}
	b, ok := parseStopID(w, r, q.Get("b"), "b")
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.net.HasStop(a) || !h.net.HasStop(b) {
		writeNetworkError(w, r, network.ErrStopNotFound)
		return
	}
	region, ok := h.net.StopsCommonRegion(a, b)
	if !ok {
		writeError(w, r, http.StatusNotFound, "no_common_region", "")
		return
	}
	name, _ := h.net.RegionName(region)
	writeJSON(w, http.StatusOK, CommonRegionResponse{Region: string(region), Name: string(name)})
}
