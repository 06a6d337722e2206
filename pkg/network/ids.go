// Package network holds the in-memory transit network: the stop registry with
// its lazily sorted orderings, the region hierarchy, and the route table with
// its timetabled trips.
//
// The package does no locking. Reads may materialize sorted orderings, so a
// caller sharing a Network between goroutines must serialize every call.
package network

import (
	"errors"

	"github.com/azybler/transitnet/pkg/geo"
)

type (
	StopID   int64
	RegionID string
	RouteID  string
	Name     string

	// Time is a time of day in minutes from midnight.
	Time int
	// Duration is a span of time in minutes.
	Duration int
)

// Sentinels returned by lookups that fail. Every lookup also reports a
// boolean, so callers never need to compare against these directly.
const (
	NoStop   StopID   = -1
	NoRegion RegionID = "!!NO_REGION!!"
	NoRoute  RouteID  = "!!NO_ROUTE!!"
	NoName   Name     = "!!NO_NAME!!"

	NoValue               = geo.NoValue
	NoTime       Time     = NoValue
	NoDuration   Duration = NoValue
	NoDistance            = float64(NoValue)
)

// NoCoord is returned for the location of an unknown stop.
var NoCoord = geo.NoCoord

var (
	ErrStopExists     = errors.New("stop already exists")
	ErrStopNotFound   = errors.New("stop not found")
	ErrStopAttached   = errors.New("stop already belongs to a region")
	ErrRegionExists   = errors.New("region already exists")
	ErrRegionNotFound = errors.New("region not found")
	ErrRegionAttached = errors.New("region already has a parent")
	ErrRegionCycle    = errors.New("region would become its own ancestor")
	ErrRouteExists    = errors.New("route already exists")
	ErrRouteNotFound  = errors.New("route not found")
	ErrRouteTooShort  = errors.New("route needs at least two stops")
)
