package osm

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/paulmach/osm"
	"github.com/rs/zerolog/log"

	"github.com/azybler/transitnet/pkg/geo"
	"github.com/azybler/transitnet/pkg/network"
)

// LoadStats counts what Load added to the network and what it skipped.
type LoadStats struct {
	Stops          int
	Routes         int
	Regions        int
	SkippedStops   int
	SkippedRoutes  int
	SkippedRegions int
	SkippedLinks   int
}

// Load adds a parse result to n. Coordinates are projected to metres around
// the first stop. Entities the network rejects (duplicates, too-short routes,
// conflicting boundary nesting) are skipped and counted.
func Load(res *ParseResult, n *network.Network) LoadStats {
	var stats LoadStats

	var proj geo.Projection
	if len(res.Stops) > 0 {
		proj = geo.NewProjection(res.Stops[0].Lat, res.Stops[0].Lon)
	}
	for _, s := range res.Stops {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("node/%d", s.ID)
		}
		err := n.AddStop(network.StopID(s.ID), network.Name(name), proj.Project(s.Lat, s.Lon))
		if err != nil {
			log.Debug().Err(err).Int64("node", int64(s.ID)).Msg("Skipping stop")
			stats.SkippedStops++
			continue
		}
		stats.Stops++
	}

	for _, r := range res.Routes {
		stops := make([]network.StopID, 0, len(r.Stops))
		for _, id := range r.Stops {
			if sid := network.StopID(id); n.HasStop(sid) {
				stops = append(stops, sid)
			}
		}
		if err := addRoute(n, r, stops); err != nil {
			log.Debug().Err(err).Int64("relation", int64(r.ID)).Str("ref", r.Ref).Msg("Skipping route")
			stats.SkippedRoutes++
			continue
		}
		stats.Routes++
	}

	for _, a := range res.Areas {
		name := a.Name
		if name == "" {
			name = fmt.Sprintf("relation/%d", a.ID)
		}
		if err := n.AddRegion(areaID(a.ID), network.Name(name)); err != nil {
			log.Debug().Err(err).Int64("relation", int64(a.ID)).Msg("Skipping area")
			stats.SkippedRegions++
			continue
		}
		stats.Regions++
	}
	for _, a := range res.Areas {
		for _, sub := range a.Subareas {
			err := n.AddSubregionToRegion(areaID(sub), areaID(a.ID))
			if err != nil {
				log.Debug().Err(err).Int64("parent", int64(a.ID)).Int64("child", int64(sub)).Msg("Skipping subarea")
				stats.SkippedLinks++
			}
		}
	}

	n.CreationFinished()
	log.Info().
		Int("stops", stats.Stops).
		Int("routes", stats.Routes).
		Int("regions", stats.Regions).
		Msg("OSM data loaded")
	return stats
}

// addRoute registers a route under its public ref, falling back to a
// relation-qualified id when another direction or variant already took it.
func addRoute(n *network.Network, r RawRoute, stops []network.StopID) error {
	err := n.AddRoute(network.RouteID(r.Ref), stops)
	if !errors.Is(err, network.ErrRouteExists) {
		return err
	}
	return n.AddRoute(network.RouteID(fmt.Sprintf("%s@%d", r.Ref, r.ID)), stops)
}

func areaID(id osm.RelationID) network.RegionID {
	return network.RegionID(strconv.FormatInt(int64(id), 10))
}
