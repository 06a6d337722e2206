package main

import (
	"fmt"
	"io"

	"github.com/azybler/transitnet/pkg/network"
	"github.com/azybler/transitnet/pkg/routing"
)

// printJourney writes one line per leg. Removed stops have no name and are
// printed by id only.
func printJourney(w io.Writer, n *network.Network, res *routing.Result) {
	if res.Empty() {
		fmt.Fprintln(w, "no journey found")
		return
	}
	name := func(id network.StopID) string {
		if s, ok := n.StopName(id); ok {
			return string(s)
		}
		return "-"
	}
	route := func(id network.RouteID) string {
		if id == network.NoRoute {
			return "(arrive)"
		}
		return string(id)
	}

	for _, l := range res.Legs {
		fmt.Fprintf(w, "%-8d %-24s %-16s %10.1f\n", l.Stop, name(l.Stop), route(l.Route), l.Distance)
	}
	for _, l := range res.TimedLegs {
		fmt.Fprintf(w, "%-8d %-24s %-16s %02d:%02d\n", l.Stop, name(l.Stop), route(l.Route), l.Time/60, l.Time%60)
	}
}
