package network

import (
	"github.com/tidwall/rtree"

	"github.com/azybler/transitnet/pkg/geo"
)

// spatialIndex answers proximity queries over stop locations with an R-tree.
// Stops are stored as degenerate boxes (min == max).
type spatialIndex struct {
	tree rtree.RTreeG[StopID]
}

func point(c geo.Coord) [2]float64 {
	return [2]float64{float64(c.X), float64(c.Y)}
}

func (s *spatialIndex) insert(id StopID, c geo.Coord) {
	p := point(c)
	s.tree.Insert(p, p, id)
}

func (s *spatialIndex) remove(id StopID, c geo.Coord) {
	p := point(c)
	s.tree.Delete(p, p, id)
}

func (s *spatialIndex) move(id StopID, from, to geo.Coord) {
	pf, pt := point(from), point(to)
	s.tree.Replace(pf, pf, id, pt, pt, id)
}

// nearby visits stops in order of increasing distance from c until iter
// returns false.
func (s *spatialIndex) nearby(c geo.Coord, iter func(id StopID) bool) {
	p := point(c)
	s.tree.Nearby(
		rtree.BoxDist[float64, StopID](p, p, nil),
		func(_, _ [2]float64, id StopID, _ float64) bool {
			return iter(id)
		},
	)
}

// within visits every stop inside box, edges included.
func (s *spatialIndex) within(box geo.BBox, iter func(id StopID) bool) {
	s.tree.Search(point(box.Min), point(box.Max), func(_, _ [2]float64, id StopID) bool {
		return iter(id)
	})
}

func (s *spatialIndex) len() int {
	return s.tree.Len()
}

func (s *spatialIndex) clear() {
	s.tree = rtree.RTreeG[StopID]{}
}
