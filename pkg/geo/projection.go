package geo

import "math"

const earthRadiusMeters = 6_371_000.0

// degToMeters converts degree-scaled equirectangular distances to meters.
const degToMeters = math.Pi / 180 * earthRadiusMeters

// Projection maps lat/lon onto a local plane in whole metres, using an
// equirectangular projection centred on an origin point. Good to well under
// 1% across a city-sized network.
type Projection struct {
	originLat float64
	originLon float64
	cosLat    float64
}

// NewProjection returns a projection whose (0,0) is at lat/lon.
func NewProjection(lat, lon float64) Projection {
	return Projection{
		originLat: lat,
		originLon: lon,
		cosLat:    math.Cos(lat * math.Pi / 180),
	}
}

// Project returns the plane coordinate of lat/lon, rounded to the metre.
// x grows eastwards, y northwards.
func (p Projection) Project(lat, lon float64) Coord {
	x := (lon - p.originLon) * p.cosLat * degToMeters
	y := (lat - p.originLat) * degToMeters
	return Coord{X: int(math.Round(x)), Y: int(math.Round(y))}
}
