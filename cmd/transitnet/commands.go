package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/azybler/transitnet/pkg/api"
	"github.com/azybler/transitnet/pkg/config"
	"github.com/azybler/transitnet/pkg/loader"
	"github.com/azybler/transitnet/pkg/network"
	"github.com/azybler/transitnet/pkg/osm"
	"github.com/azybler/transitnet/pkg/routing"
)

// dataFlags are shared by every command.
func dataFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "YAML configuration file",
			EnvVars: []string{"TRANSITNET_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "csv-dir",
			Usage:   "directory with stops.csv, regions.csv, region_stops.csv, routes.csv and trips.csv",
			EnvVars: []string{"TRANSITNET_CSV_DIR"},
		},
		&cli.StringFlag{
			Name:    "osm-file",
			Usage:   "OSM PBF extract to import stops, routes and boundaries from",
			EnvVars: []string{"TRANSITNET_OSM_FILE"},
		},
		&cli.IntFlag{
			Name:  "boarding-window",
			Usage: "minutes after the start time the first earliest-arrival departure may leave",
		},
	}, extra...)
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if c.IsSet("csv-dir") {
		cfg.Data.CSVDir = c.String("csv-dir")
	}
	if c.IsSet("osm-file") {
		cfg.Data.OSMFile = c.String("osm-file")
	}
	if c.IsSet("boarding-window") {
		cfg.Search.BoardingWindow = c.Int("boarding-window")
	}
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}
	if c.IsSet("cors-origin") {
		cfg.Server.CORSOrigins = c.StringSlice("cors-origin")
	}
	return cfg, cfg.Validate()
}

// buildNetwork seeds a network from the configured OSM extract and CSV
// directory, in that order.
func buildNetwork(ctx context.Context, cfg config.Config) (*network.Network, error) {
	start := time.Now()
	n := network.New()

	if cfg.Data.OSMFile != "" {
		f, err := os.Open(cfg.Data.OSMFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		var opts osm.ParseOptions
		if b := cfg.Data.BBox; b != nil {
			opts.BBox = osm.BBox{MinLat: b.MinLat, MaxLat: b.MaxLat, MinLng: b.MinLng, MaxLng: b.MaxLng}
		}
		res, err := osm.Parse(ctx, f, opts)
		if err != nil {
			return nil, fmt.Errorf("osm import: %w", err)
		}
		s := osm.Load(res, n)
		log.Info().
			Int("stops", s.Stops).
			Int("routes", s.Routes).
			Int("regions", s.Regions).
			Int("skipped_routes", s.SkippedRoutes).
			Int("skipped_links", s.SkippedLinks).
			Msg("Loaded OSM extract")
	}

	if cfg.Data.CSVDir != "" {
		ds, err := loader.ReadDir(cfg.Data.CSVDir)
		if err != nil {
			return nil, fmt.Errorf("csv import: %w", err)
		}
		s := ds.Apply(n)
		log.Info().
			Int("stops", s.Stops).
			Int("regions", s.Regions).
			Int("routes", s.Routes).
			Int("trips", s.Trips).
			Int("rejected", s.Rejected).
			Msg("Loaded CSV directory")
	}

	n.CreationFinished()
	log.Info().Dur("elapsed", time.Since(start).Round(time.Millisecond)).Msg("Network ready")
	return n, nil
}

func newEngine(n *network.Network, cfg config.Config) *routing.Engine {
	return routing.NewEngine(n, routing.Options{BoardingWindow: network.Duration(cfg.Search.BoardingWindow)})
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "load the network and serve the HTTP API",
		Flags: dataFlags(
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP port",
				EnvVars: []string{"TRANSITNET_PORT"},
			},
			&cli.StringSliceFlag{
				Name:  "cors-origin",
				Usage: "allowed CORS origin (repeatable, empty = same-origin)",
			},
		),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			n, err := buildNetwork(c.Context, cfg)
			if err != nil {
				return err
			}

			scfg := api.DefaultConfig(fmt.Sprintf(":%d", cfg.Server.Port))
			scfg.ReadTimeout = cfg.Server.ReadTimeout
			scfg.WriteTimeout = cfg.Server.WriteTimeout
			scfg.RequestTimeout = cfg.Server.RequestTimeout
			scfg.MaxConcurrent = cfg.Server.MaxConcurrent
			scfg.CORSOrigins = cfg.Server.CORSOrigins

			srv := api.NewServer(scfg, api.NewHandlers(n, newEngine(n, cfg)))
			return api.ListenAndServe(srv)
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "load the network and log a summary",
		Flags: dataFlags(),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			n, err := buildNetwork(c.Context, cfg)
			if err != nil {
				return err
			}

			s := n.Stats()
			ev := log.Info().
				Int("stops", s.Stops).
				Int("regions", s.Regions).
				Int("routes", s.Routes).
				Int("trips", s.Trips)
			if lo, ok := n.MinCoord(); ok {
				hi, _ := n.MaxCoord()
				ev = ev.Int64("min_coord_stop", int64(lo)).Int64("max_coord_stop", int64(hi))
			}
			ev.Msg("Network summary")
			return nil
		},
	}
}

func journeyCommand() *cli.Command {
	return &cli.Command{
		Name:      "journey",
		Usage:     "load the network and run one journey search",
		ArgsUsage: " ",
		Flags: dataFlags(
			&cli.StringFlag{
				Name:  "variant",
				Value: string(routing.VariantLeast),
				Usage: "one of " + variantList(),
			},
			&cli.Int64Flag{Name: "from", Required: true, Usage: "origin stop id"},
			&cli.Int64Flag{Name: "to", Value: int64(network.NoStop), Usage: "destination stop id (ignored by cycle)"},
			&cli.IntFlag{Name: "start", Usage: "start time in minutes from midnight (earliest only)"},
			&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "search time limit"},
		),
		Action: func(c *cli.Context) error {
			variant, err := routing.ParseVariant(c.String("variant"))
			if err != nil {
				return err
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			n, err := buildNetwork(c.Context, cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
			defer cancel()
			res, err := newEngine(n, cfg).Plan(ctx, routing.Query{
				Variant: variant,
				From:    network.StopID(c.Int64("from")),
				To:      network.StopID(c.Int64("to")),
				Start:   network.Time(c.Int("start")),
			})
			if err != nil {
				return err
			}
			printJourney(c.App.Writer, n, res)
			return nil
		},
	}
}

func variantList() string {
	names := make([]string, len(routing.Variants))
	for i, v := range routing.Variants {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
