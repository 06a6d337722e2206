package osm

import (
	"context"
	"fmt"
	"io"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/rs/zerolog/log"
)

// RawStop is a stop node parsed from OSM data.
type RawStop struct {
	ID   osm.NodeID
	Name string
	Lat  float64
	Lon  float64
}

// RawRoute is a public transport route relation with its stops in order.
type RawRoute struct {
	ID    osm.RelationID
	Ref   string
	Mode  string
	Stops []osm.NodeID
}

// RawArea is an administrative boundary and the boundaries directly inside it.
type RawArea struct {
	ID       osm.RelationID
	Name     string
	Subareas []osm.RelationID
}

// ParseResult holds the output of parsing an OSM PBF file.
type ParseResult struct {
	Stops  []RawStop
	Routes []RawRoute
	Areas  []RawArea
}

// transitModes lists the route=* values imported as transit routes.
var transitModes = map[string]bool{
	"bus":        true,
	"trolleybus": true,
	"tram":       true,
	"train":      true,
	"subway":     true,
	"light_rail": true,
	"ferry":      true,
}

// isStopNode returns true if the node is tagged as a place to board.
func isStopNode(tags osm.Tags) bool {
	if tags.Find("highway") == "bus_stop" {
		return true
	}
	switch tags.Find("public_transport") {
	case "platform", "stop_position":
		return true
	}
	switch tags.Find("railway") {
	case "station", "halt", "tram_stop":
		return true
	}
	return false
}

// isTransitRoute returns the mode of a route relation, or "" if the relation
// is not an imported transit route.
func isTransitRoute(tags osm.Tags) string {
	if tags.Find("type") != "route" {
		return ""
	}
	mode := tags.Find("route")
	if !transitModes[mode] {
		return ""
	}
	return mode
}

// isBoundary returns true for administrative boundary relations.
func isBoundary(tags osm.Tags) bool {
	t := tags.Find("type")
	return (t == "boundary" || t == "multipolygon") && tags.Find("boundary") == "administrative"
}

// routeStopMembers returns the node members of a route that passengers board
// at, in relation order. PTv2 routes mark them with stop/platform roles
// (including the _entry_only/_exit_only variants); older routes leave the
// role empty on stop nodes. Consecutive duplicates are collapsed.
func routeStopMembers(members osm.Members) []osm.NodeID {
	var out []osm.NodeID
	for _, m := range members {
		if m.Type != osm.TypeNode {
			continue
		}
		switch m.Role {
		case "", "stop", "platform",
			"stop_entry_only", "stop_exit_only",
			"platform_entry_only", "platform_exit_only":
		default:
			continue
		}
		id := osm.NodeID(m.Ref)
		if len(out) > 0 && out[len(out)-1] == id {
			continue
		}
		out = append(out, id)
	}
	return out
}

// subareaMembers returns the relation members of a boundary with role subarea.
func subareaMembers(members osm.Members) []osm.RelationID {
	var out []osm.RelationID
	for _, m := range members {
		if m.Type == osm.TypeRelation && m.Role == "subarea" {
			out = append(out, osm.RelationID(m.Ref))
		}
	}
	return out
}

// routeRef picks the public label of a route relation.
func routeRef(id osm.RelationID, tags osm.Tags) string {
	for _, k := range []string{"ref", "name"} {
		if v := tags.Find(k); v != "" {
			return v
		}
	}
	return fmt.Sprintf("relation/%d", id)
}

// BBox defines a geographic bounding box for filtering.
// If non-zero, only stops inside the box are kept.
type BBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// IsZero returns true if the bbox is unset.
func (b BBox) IsZero() bool {
	return b.MinLat == 0 && b.MaxLat == 0 && b.MinLng == 0 && b.MaxLng == 0
}

// Contains returns true if the point is inside the bounding box.
func (b BBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// ParseOptions configures the OSM parser.
type ParseOptions struct {
	BBox BBox // if non-zero, filter stops to this bounding box
}

// Parse reads an OSM PBF file and returns transit stops, routes and
// administrative areas. The reader is consumed twice (seeks back to start
// for the second pass), so it must implement io.ReadSeeker.
func Parse(ctx context.Context, rs io.ReadSeeker, opts ...ParseOptions) (*ParseResult, error) {
	var opt ParseOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	useBBox := !opt.BBox.IsZero()

	// Pass 1: relations. Route members tell us which nodes are stops even
	// when the nodes themselves are untagged.
	var routes []RawRoute
	var areas []RawArea
	referencedNodes := make(map[osm.NodeID]struct{})

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipWays = true

	for scanner.Scan() {
		r, ok := scanner.Object().(*osm.Relation)
		if !ok {
			continue
		}

		if mode := isTransitRoute(r.Tags); mode != "" {
			stops := routeStopMembers(r.Members)
			if len(stops) < 2 {
				continue
			}
			for _, id := range stops {
				referencedNodes[id] = struct{}{}
			}
			routes = append(routes, RawRoute{
				ID:    r.ID,
				Ref:   routeRef(r.ID, r.Tags),
				Mode:  mode,
				Stops: stops,
			})
			continue
		}

		if isBoundary(r.Tags) {
			areas = append(areas, RawArea{
				ID:       r.ID,
				Name:     r.Tags.Find("name"),
				Subareas: subareaMembers(r.Members),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 1 (relations): %w", err)
	}
	scanner.Close()

	log.Info().
		Int("routes", len(routes)).
		Int("areas", len(areas)).
		Int("referenced_nodes", len(referencedNodes)).
		Msg("OSM pass 1 complete")

	// Pass 2: nodes.
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for pass 2: %w", err)
	}

	var stops []RawStop
	var bboxFiltered int

	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}

		if _, needed := referencedNodes[n.ID]; !needed && !isStopNode(n.Tags) {
			continue
		}
		if useBBox && !opt.BBox.Contains(n.Lat, n.Lon) {
			bboxFiltered++
			continue
		}

		stops = append(stops, RawStop{
			ID:   n.ID,
			Name: n.Tags.Find("name"),
			Lat:  n.Lat,
			Lon:  n.Lon,
		})
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	scanner.Close()

	if bboxFiltered > 0 {
		log.Info().Int("stops", bboxFiltered).Msg("Filtered stops outside bounding box")
	}
	log.Info().Int("stops", len(stops)).Msg("OSM pass 2 complete")

	return &ParseResult{
		Stops:  stops,
		Routes: routes,
		Areas:  areas,
	}, nil
}
