package network

import (
	"strings"

	"github.com/azybler/transitnet/pkg/geo"
)

type stop struct {
	name     Name
	location geo.Coord
	region   RegionID
}

type region struct {
	name     Name
	parent   RegionID
	children []RegionID
	stops    []StopID // attached directly, not through subregions
}

// Network is the whole transit model. The zero value is not usable; call New.
type Network struct {
	stops     map[StopID]*stop
	stopOrder []StopID // insertion order
	byName    *lazyIndex
	byCoord   *lazyIndex
	spatial   spatialIndex

	regions     map[RegionID]*region
	regionOrder []RegionID
	forest      *regionForest

	routes     map[RouteID][]StopID
	routeOrder []RouteID
	trips      map[RouteID][][]Time
	successors map[StopID][]Successor

	// removed keeps the last location of stops taken out of the registry.
	// Routes are never rewritten on removal, so searches may still pass
	// through these stops.
	removed map[StopID]geo.Coord
}

// Stats summarizes the size of a Network.
type Stats struct {
	Stops   int
	Regions int
	Routes  int
	Trips   int
}

// New returns an empty Network.
func New() *Network {
	n := &Network{
		stops:      make(map[StopID]*stop),
		regions:    make(map[RegionID]*region),
		forest:     newRegionForest(),
		routes:     make(map[RouteID][]StopID),
		trips:      make(map[RouteID][][]Time),
		successors: make(map[StopID][]Successor),
		removed:    make(map[StopID]geo.Coord),
	}
	n.byName = newLazyIndex(func(a, b StopID) int {
		return strings.Compare(string(n.stops[a].name), string(n.stops[b].name))
	})
	n.byCoord = newLazyIndex(func(a, b StopID) int {
		return geo.CompareOrigin(n.stops[a].location, n.stops[b].location)
	})
	return n
}

// ClearAll removes every stop, region, route and trip.
func (n *Network) ClearAll() {
	clear(n.stops)
	n.stopOrder = nil
	n.byName.reset()
	n.byCoord.reset()
	n.spatial.clear()

	clear(n.regions)
	n.regionOrder = nil
	n.forest.reset()

	n.ClearRoutes()
}

// CreationFinished signals the end of a bulk load and brings both stop
// orderings up to date, so the first queries afterwards are cheap.
func (n *Network) CreationFinished() {
	n.byName.ordered(n.stopOrder)
	n.byCoord.ordered(n.stopOrder)
}

// Stats returns entity counts.
func (n *Network) Stats() Stats {
	s := Stats{
		Stops:   len(n.stops),
		Regions: len(n.regions),
		Routes:  len(n.routes),
	}
	for _, t := range n.trips {
		s.Trips += len(t)
	}
	return s
}
