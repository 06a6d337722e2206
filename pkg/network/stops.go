package network

import (
	"golang.org/x/exp/slices"

	"github.com/azybler/transitnet/pkg/geo"
)

// closestLimit caps the result of ClosestStops.
const closestLimit = 5

// AddStop registers a new stop. The stop starts without a region.
func (n *Network) AddStop(id StopID, name Name, xy geo.Coord) error {
	if _, ok := n.stops[id]; ok {
		return ErrStopExists
	}
	n.stops[id] = &stop{name: name, location: xy, region: NoRegion}
	n.stopOrder = append(n.stopOrder, id)
	n.byName.add(id)
	n.byCoord.add(id)
	n.spatial.insert(id, xy)
	if _, ok := n.removed[id]; ok {
		// A reused id starts without the old stop's outgoing entries.
		delete(n.successors, id)
		delete(n.removed, id)
	}
	return nil
}

// StopName returns the name of a stop, or NoName and false.
func (n *Network) StopName(id StopID) (Name, bool) {
	s, ok := n.stops[id]
	if !ok {
		return NoName, false
	}
	return s.name, true
}

// StopCoord returns the location of a stop, or NoCoord and false.
func (n *Network) StopCoord(id StopID) (geo.Coord, bool) {
	s, ok := n.stops[id]
	if !ok {
		return NoCoord, false
	}
	return s.location, true
}

// HasStop reports whether id is in the registry.
func (n *Network) HasStop(id StopID) bool {
	_, ok := n.stops[id]
	return ok
}

// Position returns the location of a registered stop, or the last location
// of a removed one. Journey searches use it because routes keep referring to
// removed stops.
func (n *Network) Position(id StopID) (geo.Coord, bool) {
	if s, ok := n.stops[id]; ok {
		return s.location, true
	}
	c, ok := n.removed[id]
	if !ok {
		return NoCoord, false
	}
	return c, true
}

func (n *Network) StopCount() int {
	return len(n.stops)
}

// AllStops returns every stop id in insertion order.
func (n *Network) AllStops() []StopID {
	return slices.Clone(n.stopOrder)
}

// FindStops returns all stops whose name is exactly name.
func (n *Network) FindStops(name Name) []StopID {
	var matches []StopID
	for _, id := range n.stopOrder {
		if n.stops[id].name == name {
			matches = append(matches, id)
		}
	}
	return matches
}

// RenameStop changes a stop's name.
func (n *Network) RenameStop(id StopID, name Name) error {
	s, ok := n.stops[id]
	if !ok {
		return ErrStopNotFound
	}
	s.name = name
	n.byName.touch(id)
	return nil
}

// MoveStop changes a stop's location.
func (n *Network) MoveStop(id StopID, xy geo.Coord) error {
	s, ok := n.stops[id]
	if !ok {
		return ErrStopNotFound
	}
	n.spatial.move(id, s.location, xy)
	s.location = xy
	n.byCoord.touch(id)
	return nil
}

// RemoveStop takes a stop out of the registry, its region and the orderings.
// Routes through the stop and other stops' successor entries are left as
// they are.
func (n *Network) RemoveStop(id StopID) error {
	s, ok := n.stops[id]
	if !ok {
		return ErrStopNotFound
	}
	if r, ok := n.regions[s.region]; ok {
		if i := slices.Index(r.stops, id); i >= 0 {
			r.stops = slices.Delete(r.stops, i, i+1)
		}
	}
	n.byName.remove(id)
	n.byCoord.remove(id)
	n.spatial.remove(id, s.location)
	if i := slices.Index(n.stopOrder, id); i >= 0 {
		n.stopOrder = slices.Delete(n.stopOrder, i, i+1)
	}
	n.removed[id] = s.location
	delete(n.stops, id)
	return nil
}

// StopsAlphabetically returns all stops ordered by name.
func (n *Network) StopsAlphabetically() []StopID {
	return n.byName.ordered(n.stopOrder)
}

// StopsCoordOrder returns all stops ordered by squared distance from the
// origin, ties broken by ascending y.
func (n *Network) StopsCoordOrder() []StopID {
	return n.byCoord.ordered(n.stopOrder)
}

// MinCoord returns the stop closest to the origin. On equal distance the
// smaller y wins; on a full tie the first inserted stop is kept.
func (n *Network) MinCoord() (StopID, bool) {
	return n.extremeCoord(func(d, best int64, y, bestY int) bool {
		return d < best || (d == best && y < bestY)
	})
}

// MaxCoord returns the stop farthest from the origin. On equal distance the
// larger y wins; on a full tie the first inserted stop is kept.
func (n *Network) MaxCoord() (StopID, bool) {
	return n.extremeCoord(func(d, best int64, y, bestY int) bool {
		return d > best || (d == best && y > bestY)
	})
}

func (n *Network) extremeCoord(better func(d, best int64, y, bestY int) bool) (StopID, bool) {
	if len(n.stopOrder) == 0 {
		return NoStop, false
	}
	bestID := n.stopOrder[0]
	bestLoc := n.stops[bestID].location
	bestDist := geo.OriginDist(bestLoc)
	for _, id := range n.stopOrder[1:] {
		loc := n.stops[id].location
		d := geo.OriginDist(loc)
		if better(d, bestDist, loc.Y, bestLoc.Y) {
			bestID, bestLoc, bestDist = id, loc, d
		}
	}
	return bestID, true
}

// ClosestStops returns up to five other stops nearest to id, closest first.
// Unknown id yields [NoStop] and false.
func (n *Network) ClosestStops(id StopID) ([]StopID, bool) {
	s, ok := n.stops[id]
	if !ok {
		return []StopID{NoStop}, false
	}
	out := make([]StopID, 0, closestLimit)
	n.spatial.nearby(s.location, func(other StopID) bool {
		if other == id {
			return true
		}
		out = append(out, other)
		return len(out) < closestLimit
	})
	return out, true
}

// NearestStop returns the stop closest to an arbitrary point.
func (n *Network) NearestStop(xy geo.Coord) (StopID, bool) {
	found, ok := NoStop, false
	n.spatial.nearby(xy, func(id StopID) bool {
		found, ok = id, true
		return false
	})
	return found, ok
}

// StopsInBox returns the stops inside box, edges included, in ascending id
// order.
func (n *Network) StopsInBox(box geo.BBox) []StopID {
	var out []StopID
	n.spatial.within(box, func(id StopID) bool {
		out = append(out, id)
		return true
	})
	slices.Sort(out)
	return out
}
