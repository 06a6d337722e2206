package routing

import (
	"context"

	"github.com/azybler/transitnet/pkg/network"
)

var (
	unknownLeg      = Leg{Stop: network.NoStop, Route: network.NoRoute, Distance: network.NoDistance}
	unknownTimedLeg = TimedLeg{Stop: network.NoStop, Route: network.NoRoute, Time: network.NoTime}
)

// hopEntry is a fringe entry of the distance searches: a stop, the distance
// travelled to it and the legs before it.
type hopEntry struct {
	at   network.StopID
	dist float64
	path *trail[Leg]
}

// timedEntry is a fringe entry of the earliest-arrival search.
type timedEntry struct {
	at      network.StopID
	arrival network.Time
	last    network.Time // departure recorded on the newest leg
	path    *trail[TimedLeg]
}

// JourneyAny returns some path from one stop to another, depth first.
func (e *Engine) JourneyAny(ctx context.Context, from, to network.StopID) ([]Leg, error) {
	return e.explore(ctx, from, to, &stack[hopEntry]{})
}

// JourneyLeastStops returns a path with the fewest stops, breadth first.
func (e *Engine) JourneyLeastStops(ctx context.Context, from, to network.StopID) ([]Leg, error) {
	return e.explore(ctx, from, to, &queue[hopEntry]{})
}

// JourneyShortestDistance returns a path of minimal total distance.
func (e *Engine) JourneyShortestDistance(ctx context.Context, from, to network.StopID) ([]Leg, error) {
	return e.explore(ctx, from, to, &keyed[hopEntry]{
		key: func(h hopEntry) float64 { return h.dist },
	})
}

// explore runs the visited-on-pop search shared by the distance variants.
// The fringe discipline decides which path is found.
//
// Unknown endpoints give a single sentinel leg and ErrUnknownStop. The same
// stop at both ends and an unreachable target both give an empty path.
func (e *Engine) explore(ctx context.Context, from, to network.StopID, f fringe[hopEntry]) ([]Leg, error) {
	if !e.g.HasStop(from) || !e.g.HasStop(to) {
		return []Leg{unknownLeg}, ErrUnknownStop
	}
	if from == to {
		return []Leg{}, nil
	}

	visited := make(map[network.StopID]struct{})
	f.push(hopEntry{at: from})

	for i := 1; f.len() > 0; i++ {
		if err := cancelled(ctx, i); err != nil {
			return nil, err
		}

		cur := f.pop()
		if cur.at == to {
			return cur.path.legs(Leg{Stop: to, Route: network.NoRoute, Distance: cur.dist}), nil
		}
		if _, ok := visited[cur.at]; ok {
			continue
		}
		visited[cur.at] = struct{}{}

		for _, s := range e.g.Successors(cur.at) {
			if _, ok := visited[s.Stop]; ok {
				continue
			}
			f.push(hopEntry{
				at:   s.Stop,
				dist: cur.dist + e.hop(cur.at, s.Stop),
				path: cur.path.extend(Leg{Stop: cur.at, Route: s.Route, Distance: cur.dist}),
			})
		}
	}
	return []Leg{}, nil
}

// JourneyWithCycle follows routes depth first from a stop until a path
// returns to a stop already on it, and returns that path with the repeated
// stop appended. Stops are never marked visited, so on a large acyclic
// network the search can take very long; bound it with ctx.
func (e *Engine) JourneyWithCycle(ctx context.Context, from network.StopID) ([]Leg, error) {
	if !e.g.HasStop(from) {
		return []Leg{unknownLeg}, ErrUnknownStop
	}

	var st stack[hopEntry]
	st.push(hopEntry{at: from})

	for i := 1; st.len() > 0; i++ {
		if err := cancelled(ctx, i); err != nil {
			return nil, err
		}

		cur := st.pop()
		repeats := cur.path.contains(func(l Leg) bool { return l.Stop == cur.at })
		if repeats {
			return cur.path.legs(Leg{Stop: cur.at, Route: network.NoRoute, Distance: cur.dist}), nil
		}

		for _, s := range e.g.Successors(cur.at) {
			st.push(hopEntry{
				at:   s.Stop,
				dist: cur.dist + e.hop(cur.at, s.Stop),
				path: cur.path.extend(Leg{Stop: cur.at, Route: s.Route, Distance: cur.dist}),
			})
		}
	}
	return []Leg{}, nil
}

// JourneyEarliestArrival finds the timetabled journey reaching to soonest
// when leaving from at or after start.
//
// Departures from the first stop must fall inside the boarding window
// [start, start+window]; later stops accept any departure. Along a path each
// departure must be strictly later than the previous one. Each leg records its
// departure; the final leg records the arrival.
func (e *Engine) JourneyEarliestArrival(ctx context.Context, from, to network.StopID, start network.Time) ([]TimedLeg, error) {
	if !e.g.HasStop(from) || !e.g.HasStop(to) {
		return []TimedLeg{unknownTimedLeg}, ErrUnknownStop
	}
	if from == to {
		return []TimedLeg{}, nil
	}

	f := &keyed[timedEntry]{
		key: func(t timedEntry) float64 { return float64(t.arrival) },
	}
	visited := make(map[network.StopID]struct{})
	f.push(timedEntry{at: from, arrival: start, last: network.NoTime})
	first := true

	for i := 1; f.len() > 0; i++ {
		if err := cancelled(ctx, i); err != nil {
			return nil, err
		}

		cur := f.pop()
		if cur.at == to {
			return cur.path.legs(TimedLeg{Stop: to, Route: network.NoRoute, Time: cur.arrival}), nil
		}
		if _, ok := visited[cur.at]; ok {
			continue
		}
		visited[cur.at] = struct{}{}

		for _, s := range e.g.Successors(cur.at) {
			if _, ok := visited[s.Stop]; ok {
				continue
			}
			deps, ok := e.g.Departures(s.Route, cur.at)
			if !ok {
				continue
			}
			for _, d := range deps {
				if first && (d.Time < start || d.Time > start+network.Time(e.window)) {
					continue
				}
				if cur.path != nil && d.Time <= cur.last {
					continue
				}
				f.push(timedEntry{
					at:      s.Stop,
					arrival: d.Time + network.Time(d.Duration),
					last:    d.Time,
					path:    cur.path.extend(TimedLeg{Stop: cur.at, Route: s.Route, Time: d.Time}),
				})
			}
		}
		first = false
	}
	return []TimedLeg{}, nil
}
