package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/azybler/transitnet/pkg/network"
	"github.com/azybler/transitnet/pkg/routing"
)

// HandleJourney handles GET /api/v1/journeys/{variant}?from=&to=&start=.
// to is ignored by the cycle search; start (minutes from midnight) is only
// read by the earliest-arrival search and defaults to 0.
func (h *Handlers) HandleJourney(w http.ResponseWriter, r *http.Request) {
	variant, err := routing.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		writeNetworkError(w, r, err)
		return
	}

	q := r.URL.Query()
	query := routing.Query{Variant: variant, To: network.NoStop}
	var ok bool
	if query.From, ok = parseStopID(w, r, q.Get("from"), "from"); !ok {
		return
	}
	if variant != routing.VariantCycle {
		if query.To, ok = parseStopID(w, r, q.Get("to"), "to"); !ok {
			return
		}
	}
	if variant == routing.VariantEarliest && q.Get("start") != "" {
		start, err := strconv.Atoi(q.Get("start"))
		if err != nil || start < 0 {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "start")
			return
		}
		query.Start = network.Time(start)
	}

	began := time.Now()
	h.mu.Lock()
	res, err := h.planner.Plan(r.Context(), query)
	h.mu.Unlock()
	journeyDuration.WithLabelValues(string(variant)).Observe(time.Since(began).Seconds())

	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			journeySearches.WithLabelValues(string(variant), "canceled").Inc()
			writeError(w, r, http.StatusServiceUnavailable, "search_timeout", "")
		case errors.Is(err, routing.ErrUnknownStop):
			journeySearches.WithLabelValues(string(variant), "unknown_stop").Inc()
			writeNetworkError(w, r, err)
		default:
			journeySearches.WithLabelValues(string(variant), "error").Inc()
			log.Error().Err(err).Str("variant", string(variant)).Msg("Journey search failed")
			writeNetworkError(w, r, err)
		}
		return
	}

	resp := JourneyResponse{Variant: string(variant), Legs: legsJSON(res)}
	resp.Found = len(resp.Legs) > 0
	if resp.Found {
		journeySearches.WithLabelValues(string(variant), "found").Inc()
		journeyLegs.Observe(float64(len(resp.Legs)))
	} else {
		journeySearches.WithLabelValues(string(variant), "not_found").Inc()
	}
	writeJSON(w, http.StatusOK, resp)
}

func legsJSON(res *routing.Result) []LegJSON {
	out := make([]LegJSON, 0, len(res.Legs)+len(res.TimedLegs))
	for _, l := range res.Legs {
		d := l.Distance
		out = append(out, LegJSON{Stop: int64(l.Stop), Route: routeJSON(l.Route), Distance: &d})
	}
	for _, l := range res.TimedLegs {
		t := int(l.Time)
		out = append(out, LegJSON{Stop: int64(l.Stop), Route: routeJSON(l.Route), Time: &t})
	}
	return out
}

func routeJSON(id network.RouteID) string {
	if id == network.NoRoute {
		return ""
	}
	return string(id)
}
