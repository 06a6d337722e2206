package network

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Successor is an outgoing edge of a stop: the next stop on a route.
type Successor struct {
	Route RouteID
	Stop  StopID
}

// Departure is one trip's departure from a stop and the time it takes to
// reach the route's next stop.
type Departure struct {
	Time     Time
	Duration Duration
}

var (
	noSuccessor = []Successor{{Route: NoRoute, Stop: NoStop}}
	noDeparture = []Departure{{Time: NoTime, Duration: NoDuration}}
)

// AddRoute registers a route through stops, in order. Every stop but the last
// gets a successor entry for the route, replacing any earlier entry for the
// same route at that stop.
func (n *Network) AddRoute(id RouteID, stops []StopID) error {
	if _, ok := n.routes[id]; ok {
		return ErrRouteExists
	}
	for _, sid := range stops {
		if _, ok := n.stops[sid]; !ok {
			return fmt.Errorf("%w: %d", ErrStopNotFound, sid)
		}
	}
	if len(stops) < 2 {
		return ErrRouteTooShort
	}

	n.routes[id] = slices.Clone(stops)
	n.routeOrder = append(n.routeOrder, id)
	for i := 0; i < len(stops)-1; i++ {
		n.setSuccessor(stops[i], id, stops[i+1])
	}
	return nil
}

func (n *Network) setSuccessor(from StopID, route RouteID, next StopID) {
	succ := n.successors[from]
	for i := range succ {
		if succ[i].Route == route {
			succ[i].Stop = next
			return
		}
	}
	n.successors[from] = append(succ, Successor{Route: route, Stop: next})
}

// AllRoutes returns every route id in insertion order.
func (n *Network) AllRoutes() []RouteID {
	return slices.Clone(n.routeOrder)
}

// RouteStops returns the stop sequence of a route, or [NoStop] and false.
func (n *Network) RouteStops(id RouteID) ([]StopID, bool) {
	stops, ok := n.routes[id]
	if !ok {
		return []StopID{NoStop}, false
	}
	return slices.Clone(stops), true
}

// RoutesFrom lists the routes leaving a stop with the next stop on each.
// An unknown stop yields a single (NoRoute, NoStop) entry and false.
func (n *Network) RoutesFrom(id StopID) ([]Successor, bool) {
	if _, ok := n.stops[id]; !ok {
		return slices.Clone(noSuccessor), false
	}
	return slices.Clone(n.successors[id]), true
}

// Successors is the route table's view of the edges leaving id. Unlike
// RoutesFrom it does not consult the stop registry, so edges of removed
// stops are still returned. The slice must not be modified.
func (n *Network) Successors(id StopID) []Successor {
	return n.successors[id]
}

// AddTrip appends a trip to a route. times holds one departure per stop of
// the route; its length is not checked.
func (n *Network) AddTrip(route RouteID, times []Time) error {
	if _, ok := n.routes[route]; !ok {
		return ErrRouteNotFound
	}
	n.trips[route] = append(n.trips[route], slices.Clone(times))
	return nil
}

// TripCount returns the number of trips of a route, or 0 and false.
func (n *Network) TripCount(route RouteID) (int, bool) {
	if _, ok := n.routes[route]; !ok {
		return 0, false
	}
	return len(n.trips[route]), true
}

// RouteTimesFrom returns, for every trip of route, the departure from stop
// and the duration to the route's next stop. Unknown route or stop, a route
// without trips, and a stop that is not on the route (or only as its last
// stop) yield a single (NoTime, NoDuration) entry and false.
func (n *Network) RouteTimesFrom(route RouteID, stop StopID) ([]Departure, bool) {
	if _, ok := n.stops[stop]; !ok {
		return slices.Clone(noDeparture), false
	}
	return n.Departures(route, stop)
}

// Departures is RouteTimesFrom without the stop registry check.
// Trips too short to cover the stop's position are skipped.
func (n *Network) Departures(route RouteID, stop StopID) ([]Departure, bool) {
	seq, ok := n.routes[route]
	if !ok {
		return slices.Clone(noDeparture), false
	}
	trips, ok := n.trips[route]
	if !ok || len(trips) == 0 {
		return slices.Clone(noDeparture), false
	}
	idx := slices.Index(seq[:len(seq)-1], stop)
	if idx < 0 {
		return slices.Clone(noDeparture), false
	}

	out := make([]Departure, 0, len(trips))
	for _, times := range trips {
		if idx+1 >= len(times) {
			continue
		}
		out = append(out, Departure{
			Time:     times[idx],
			Duration: Duration(times[idx+1] - times[idx]),
		})
	}
	return out, true
}

// ClearRoutes removes all routes, trips and successor entries. Stops and
// regions stay.
func (n *Network) ClearRoutes() {
	clear(n.routes)
	n.routeOrder = nil
	clear(n.trips)
	clear(n.successors)
	clear(n.removed)
}
