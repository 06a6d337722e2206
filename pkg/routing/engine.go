package routing

import (
	"context"
	"errors"
	"fmt"

	"github.com/azybler/transitnet/pkg/geo"
	"github.com/azybler/transitnet/pkg/network"
)

var (
	// ErrUnknownStop is returned with a single sentinel leg when an endpoint
	// of a search is not a registered stop.
	ErrUnknownStop = errors.New("unknown stop")

	ErrUnknownVariant = errors.New("unknown journey variant")
)

// DefaultBoardingWindow is how long after the start time the first
// departure of an earliest-arrival search may leave.
const DefaultBoardingWindow network.Duration = 20

// Graph is the read-only view of the network the searches walk.
// *network.Network satisfies it.
type Graph interface {
	HasStop(id network.StopID) bool
	Position(id network.StopID) (geo.Coord, bool)
	Successors(id network.StopID) []network.Successor
	Departures(route network.RouteID, stop network.StopID) ([]network.Departure, bool)
}

// Leg is one stop of a journey: the route taken from it and the distance
// travelled to reach it. The final leg carries network.NoRoute.
type Leg struct {
	Stop     network.StopID
	Route    network.RouteID
	Distance float64
}

// TimedLeg is one stop of a timetabled journey: the route taken from it and
// the departure time. The final leg carries network.NoRoute and the arrival
// time.
type TimedLeg struct {
	Stop  network.StopID
	Route network.RouteID
	Time  network.Time
}

// Variant names a search discipline.
type Variant string

const (
	VariantAny      Variant = "any"
	VariantLeast    Variant = "least-stops"
	VariantCycle    Variant = "cycle"
	VariantShortest Variant = "shortest"
	VariantEarliest Variant = "earliest"
)

// Variants lists every supported variant.
var Variants = []Variant{VariantAny, VariantLeast, VariantCycle, VariantShortest, VariantEarliest}

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Query describes one journey search. To is ignored by VariantCycle and
// Start is only used by VariantEarliest.
type Query struct {
	Variant Variant
	From    network.StopID
	To      network.StopID
	Start   network.Time
}

// Result holds the path of a search. Legs is filled for the distance
// variants, TimedLegs for VariantEarliest.
type Result struct {
	Variant   Variant
	Legs      []Leg
	TimedLegs []TimedLeg
}

// Empty reports whether the search found no path.
func (r *Result) Empty() bool {
	return len(r.Legs) == 0 && len(r.TimedLegs) == 0
}

// Planner is the interface for journey queries.
type Planner interface {
	Plan(ctx context.Context, q Query) (*Result, error)
}

// Options tunes an Engine.
type Options struct {
	// BoardingWindow overrides DefaultBoardingWindow when positive.
	BoardingWindow network.Duration
}

// Engine implements Planner over a Graph.
type Engine struct {
	g      Graph
	window network.Duration
}

// NewEngine creates a journey engine reading g.
func NewEngine(g Graph, opts Options) *Engine {
	window := opts.BoardingWindow
	if window <= 0 {
		window = DefaultBoardingWindow
	}
	return &Engine{g: g, window: window}
}

// Plan runs the search named by q.Variant.
func (e *Engine) Plan(ctx context.Context, q Query) (*Result, error) {
	res := &Result{Variant: q.Variant}
	var err error
	switch q.Variant {
	case VariantAny:
		res.Legs, err = e.JourneyAny(ctx, q.From, q.To)
	case VariantLeast:
		res.Legs, err = e.JourneyLeastStops(ctx, q.From, q.To)
	case VariantCycle:
		res.Legs, err = e.JourneyWithCycle(ctx, q.From)
	case VariantShortest:
		res.Legs, err = e.JourneyShortestDistance(ctx, q.From, q.To)
	case VariantEarliest:
		res.TimedLegs, err = e.JourneyEarliestArrival(ctx, q.From, q.To, q.Start)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, q.Variant)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// hop returns the straight-line distance between two stops on a route.
func (e *Engine) hop(a, b network.StopID) float64 {
	pa, okA := e.g.Position(a)
	pb, okB := e.g.Position(b)
	if !okA || !okB {
		return 0
	}
	return geo.Dist(pa, pb)
}

// cancelled reports a context error every 100 iterations.
func cancelled(ctx context.Context, iterations int) error {
	if iterations%100 == 0 {
		return ctx.Err()
	}
	return nil
}
