// Package loader reads a transit network from a directory of CSV files.
//
//	stops.csv         id,name,x,y
//	regions.csv       id,name,parent
//	region_stops.csv  region,stop
//	routes.csv        route,seq,stop
//	trips.csv         route,trip,seq,time
//
// Every file is optional. Times are minutes from midnight or HH:MM.
package loader

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"github.com/azybler/transitnet/pkg/geo"
	"github.com/azybler/transitnet/pkg/network"
)

type StopRow struct {
	ID   int64  `csv:"id"`
	Name string `csv:"name"`
	X    int    `csv:"x"`
	Y    int    `csv:"y"`
}

type RegionRow struct {
	ID     string `csv:"id"`
	Name   string `csv:"name"`
	Parent string `csv:"parent"`
}

type RegionStopRow struct {
	Region string `csv:"region"`
	Stop   int64  `csv:"stop"`
}

type RouteStopRow struct {
	Route string `csv:"route"`
	Seq   int    `csv:"seq"`
	Stop  int64  `csv:"stop"`
}

type TripTimeRow struct {
	Route string    `csv:"route"`
	Trip  string    `csv:"trip"`
	Seq   int       `csv:"seq"`
	Time  ClockTime `csv:"time"`
}

// ClockTime is a time of day in minutes, written either as a plain number
// of minutes or as HH:MM.
type ClockTime network.Time

var ErrBadTime = errors.New("invalid time of day")

func (c *ClockTime) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if h, m, ok := strings.Cut(s, ":"); ok {
		hh, err1 := strconv.Atoi(h)
		mm, err2 := strconv.Atoi(m)
		if err1 != nil || err2 != nil || hh < 0 || mm < 0 || mm > 59 {
			return fmt.Errorf("%w: %q", ErrBadTime, s)
		}
		*c = ClockTime(hh*60 + mm)
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	*c = ClockTime(v)
	return nil
}

// Dataset holds the raw rows of every file.
type Dataset struct {
	Stops       []*StopRow
	Regions     []*RegionRow
	RegionStops []*RegionStopRow
	RouteStops  []*RouteStopRow
	TripTimes   []*TripTimeRow
}

func (d *Dataset) files() map[string]any {
	return map[string]any{
		"stops.csv":        &d.Stops,
		"regions.csv":      &d.Regions,
		"region_stops.csv": &d.RegionStops,
		"routes.csv":       &d.RouteStops,
		"trips.csv":        &d.TripTimes,
	}
}

// FileNames lists the files ReadDir looks for, in load order.
var FileNames = []string{"stops.csv", "regions.csv", "region_stops.csv", "routes.csv", "trips.csv"}

// ParseFile decodes one of the known files into d.
func (d *Dataset) ParseFile(name string, r io.Reader) error {
	dest, ok := d.files()[name]
	if !ok {
		return fmt.Errorf("unknown file %q", name)
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if err := gocsv.UnmarshalCSV(cr, dest); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// ReadDir parses every known file present in dir.
func ReadDir(dir string) (*Dataset, error) {
	d := &Dataset{}
	for _, name := range FileNames {
		f, err := os.Open(filepath.Join(dir, name))
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("file", name).Msg("CSV file not present")
			continue
		}
		if err != nil {
			return nil, err
		}
		log.Info().Str("file", name).Msg("Loading file")
		err = d.ParseFile(name, f)
		f.Close()
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Stats counts accepted and rejected rows or entities.
type Stats struct {
	Stops       int
	Regions     int
	RegionLinks int
	StopLinks   int
	Routes      int
	Trips       int
	Rejected    int
}

// Apply adds the dataset to n. Rows the network rejects are logged and
// counted in Stats.Rejected; loading continues.
func (d *Dataset) Apply(n *network.Network) Stats {
	var s Stats
	reject := func(err error, what string, id any) {
		log.Warn().Err(err).Interface("id", id).Msgf("Rejected %s", what)
		s.Rejected++
	}

	for _, r := range d.Stops {
		err := n.AddStop(network.StopID(r.ID), network.Name(r.Name), geo.Coord{X: r.X, Y: r.Y})
		if err != nil {
			reject(err, "stop", r.ID)
			continue
		}
		s.Stops++
	}

	for _, r := range d.Regions {
		if err := n.AddRegion(network.RegionID(r.ID), network.Name(r.Name)); err != nil {
			reject(err, "region", r.ID)
			continue
		}
		s.Regions++
	}
	for _, r := range d.Regions {
		if r.Parent == "" {
			continue
		}
		if err := n.AddSubregionToRegion(network.RegionID(r.ID), network.RegionID(r.Parent)); err != nil {
			reject(err, "subregion link", r.ID)
			continue
		}
		s.RegionLinks++
	}

	for _, r := range d.RegionStops {
		if err := n.AddStopToRegion(network.StopID(r.Stop), network.RegionID(r.Region)); err != nil {
			reject(err, "region stop", r.Stop)
			continue
		}
		s.StopLinks++
	}

	for _, g := range groupBy(d.RouteStops, func(r *RouteStopRow) string { return r.Route }) {
		slices.SortStableFunc(g.rows, func(a, b *RouteStopRow) int { return cmp.Compare(a.Seq, b.Seq) })
		stops := make([]network.StopID, len(g.rows))
		for i, r := range g.rows {
			stops[i] = network.StopID(r.Stop)
		}
		if err := n.AddRoute(network.RouteID(g.key), stops); err != nil {
			reject(err, "route", g.key)
			continue
		}
		s.Routes++
	}

	type tripKey struct{ route, trip string }
	for _, g := range groupBy(d.TripTimes, func(r *TripTimeRow) tripKey { return tripKey{r.Route, r.Trip} }) {
		slices.SortStableFunc(g.rows, func(a, b *TripTimeRow) int { return cmp.Compare(a.Seq, b.Seq) })
		times := make([]network.Time, len(g.rows))
		for i, r := range g.rows {
			times[i] = network.Time(r.Time)
		}
		if err := n.AddTrip(network.RouteID(g.key.route), times); err != nil {
			reject(err, "trip", g.key.route+"/"+g.key.trip)
			continue
		}
		s.Trips++
	}

	n.CreationFinished()
	return s
}

type group[K comparable, R any] struct {
	key  K
	rows []R
}

// groupBy groups rows by key, keeping groups in order of first appearance.
func groupBy[K comparable, R any](rows []R, key func(R) K) []*group[K, R] {
	var out []*group[K, R]
	index := make(map[K]*group[K, R])
	for _, r := range rows {
		k := key(r)
		g, ok := index[k]
		if !ok {
			g = &group[K, R]{key: k}
			index[k] = g
			out = append(out, g)
		}
		g.rows = append(g.rows, r)
	}
	return out
}
