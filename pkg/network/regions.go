package network

import (
	"golang.org/x/exp/slices"

	"github.com/azybler/transitnet/pkg/geo"
)

// AddRegion registers a new region with no parent.
func (n *Network) AddRegion(id RegionID, name Name) error {
	if _, ok := n.regions[id]; ok {
		return ErrRegionExists
	}
	n.regions[id] = &region{name: name, parent: NoRegion}
	n.regionOrder = append(n.regionOrder, id)
	n.forest.add(id)
	return nil
}

// RegionName returns the name of a region, or NoName and false.
func (n *Network) RegionName(id RegionID) (Name, bool) {
	r, ok := n.regions[id]
	if !ok {
		return NoName, false
	}
	return r.name, true
}

// AllRegions returns every region id in insertion order.
func (n *Network) AllRegions() []RegionID {
	return slices.Clone(n.regionOrder)
}

// AddStopToRegion attaches a stop directly to a region. A stop belongs to at
// most one region and cannot be moved once attached.
func (n *Network) AddStopToRegion(id StopID, parent RegionID) error {
	s, ok := n.stops[id]
	if !ok {
		return ErrStopNotFound
	}
	r, ok := n.regions[parent]
	if !ok {
		return ErrRegionNotFound
	}
	if s.region != NoRegion {
		return ErrStopAttached
	}
	s.region = parent
	r.stops = append(r.stops, id)
	return nil
}

// AddSubregionToRegion makes id a child of parent. A region gets at most one
// parent, assigned once.
//
// The attach is also rejected with ErrRegionCycle when parent already lies
// below id, since every ancestor walk would otherwise loop forever.
func (n *Network) AddSubregionToRegion(id, parent RegionID) error {
	child, ok := n.regions[id]
	if !ok {
		return ErrRegionNotFound
	}
	p, ok := n.regions[parent]
	if !ok {
		return ErrRegionNotFound
	}
	if child.parent != NoRegion {
		return ErrRegionAttached
	}
	// child has no parent, so it is the root of its tree: sharing a tree
	// with parent means parent is one of its descendants.
	if n.forest.connected(id, parent) {
		return ErrRegionCycle
	}
	child.parent = parent
	p.children = append(p.children, id)
	n.forest.union(id, parent)
	return nil
}

// ancestors climbs from the region a stop is attached to up to the root.
// The chain always ends with NoRegion.
func (n *Network) ancestors(s *stop) []RegionID {
	var chain []RegionID
	for cur := s.region; cur != NoRegion; {
		chain = append(chain, cur)
		r, ok := n.regions[cur]
		if !ok {
			break
		}
		cur = r.parent
	}
	return append(chain, NoRegion)
}

// StopRegions returns the regions containing a stop, innermost first,
// terminated by NoRegion. An unattached stop yields [NoRegion]; an unknown
// stop yields [NoRegion] and false.
func (n *Network) StopRegions(id StopID) ([]RegionID, bool) {
	s, ok := n.stops[id]
	if !ok {
		return []RegionID{NoRegion}, false
	}
	return n.ancestors(s), true
}

// Subregions returns every region below id in depth-first pre-order.
func (n *Network) Subregions(id RegionID) ([]RegionID, bool) {
	r, ok := n.regions[id]
	if !ok {
		return nil, false
	}
	var out []RegionID
	stack := reversed(r.children)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cur)
		stack = append(stack, reversed(n.regions[cur].children)...)
	}
	return out, true
}

// RegionStops returns the stops attached to id or to any region below it:
// id's own stops first, then each subregion's in depth-first pre-order.
func (n *Network) RegionStops(id RegionID) ([]StopID, bool) {
	subs, ok := n.Subregions(id)
	if !ok {
		return nil, false
	}
	out := slices.Clone(n.regions[id].stops)
	for _, sub := range subs {
		out = append(out, n.regions[sub].stops...)
	}
	return out, true
}

// RegionBoundingBox returns the smallest box holding every stop of the region
// and its subregions. Unknown or stop-less regions yield NoBBox and false.
func (n *Network) RegionBoundingBox(id RegionID) (geo.BBox, bool) {
	ids, ok := n.RegionStops(id)
	if !ok {
		return geo.NoBBox, false
	}
	coords := make([]geo.Coord, 0, len(ids))
	for _, sid := range ids {
		coords = append(coords, n.stops[sid].location)
	}
	return geo.Bounds(coords)
}

// StopsCommonRegion returns the innermost region containing both stops.
//
// Both ancestor chains end with NoRegion, so two stops without a shared real
// region still "meet" at NoRegion. That case, and unknown stops, report
// false; only a real shared region reports true.
func (n *Network) StopsCommonRegion(a, b StopID) (RegionID, bool) {
	sa, okA := n.stops[a]
	sb, okB := n.stops[b]
	if !okA || !okB {
		return NoRegion, false
	}
	other := make(map[RegionID]struct{})
	for _, r := range n.ancestors(sb) {
		other[r] = struct{}{}
	}
	for _, r := range n.ancestors(sa) {
		if _, ok := other[r]; ok {
			return r, r != NoRegion
		}
	}
	return NoRegion, false
}

func reversed[T any](s []T) []T {
	out := slices.Clone(s)
	slices.Reverse(out)
	return out
}
