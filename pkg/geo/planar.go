package geo

import (
	"cmp"
	"math"
)

// NoValue marks an integer component that could not be determined.
const NoValue = math.MinInt32

// Coord is a point on the integer plane, in metres.
type Coord struct {
	X int
	Y int
}

// NoCoord is returned when a coordinate lookup fails.
var NoCoord = Coord{X: NoValue, Y: NoValue}

// SquaredDist returns the squared Euclidean distance between a and b.
func SquaredDist(a, b Coord) int64 {
	dx := int64(a.X) - int64(b.X)
	dy := int64(a.Y) - int64(b.Y)
	return dx*dx + dy*dy
}

// OriginDist returns the squared distance of c from (0,0).
func OriginDist(c Coord) int64 {
	return SquaredDist(c, Coord{})
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Coord) float64 {
	return math.Sqrt(float64(SquaredDist(a, b)))
}

// CompareOrigin orders coordinates by squared distance from the origin,
// breaking ties by ascending y. Stays in integer space.
func CompareOrigin(a, b Coord) int {
	if c := cmp.Compare(OriginDist(a), OriginDist(b)); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

// BBox is an axis-aligned box given by its lower-left and upper-right corners.
type BBox struct {
	Min Coord
	Max Coord
}

// NoBBox is returned when a bounding box has no points.
var NoBBox = BBox{Min: NoCoord, Max: NoCoord}

// Bounds returns the component-wise min/max of coords.
// Returns NoBBox and false for an empty input.
func Bounds(coords []Coord) (BBox, bool) {
	if len(coords) == 0 {
		return NoBBox, false
	}
	b := BBox{Min: coords[0], Max: coords[0]}
	for _, c := range coords[1:] {
		b.Min.X = min(b.Min.X, c.X)
		b.Min.Y = min(b.Min.Y, c.Y)
		b.Max.X = max(b.Max.X, c.X)
		b.Max.Y = max(b.Max.Y, c.Y)
	}
	return b, true
}
