package clicommand

import (
	"context"

	"github.com/buildkite/orffinder/internal/findserver"
	"github.com/buildkite/orffinder/metrics"
	"github.com/buildkite/orffinder/signalwatcher"
	"github.com/buildkite/orffinder/version"
	"github.com/urfave/cli"
)

const serveHelpDescription = `Usage:

    orffinder serve [options...]

Description:

Indexes a genome once and answers find queries over HTTP until interrupted.

Endpoints:

    GET /v1/find?start=<start>&end=<end>[&positions=true]
    GET /v1/stats
    GET /status
    GET /metrics      (Prometheus)

Exits with status 2 when the genome is empty, longer than --max-genome-length,
or holds symbols outside the alphabet.

Example:

    $ orffinder serve --genome-file chr1.fa --listen 127.0.0.1:8080
    $ curl '127.0.0.1:8080/v1/find?start=AB&end=CD'`

type ServeConfig struct {
	GlobalConfig
	GenomeConfig
	MetricsConfig

	Listen       string `cli:"listen" validate:"required"`
	CacheSize    int    `cli:"cache-size"`
	CacheMatches int    `cli:"cache-matches"`
}

var ServeCommand = cli.Command{
	Name:        "serve",
	Usage:       "Answer find queries over HTTP",
	Description: serveHelpDescription,
	Flags: flags(genomeFlags, []cli.Flag{
		cli.StringFlag{
			Name:   "listen",
			Value:  "127.0.0.1:8080",
			Usage:  "The address to listen on",
			EnvVar: envPrefix + "LISTEN",
		},
		cli.IntFlag{
			Name:   "cache-size",
			Value:  findserver.DefaultCacheSize,
			Usage:  "How many query results to keep in memory. 0 disables the cache",
			EnvVar: envPrefix + "CACHE_SIZE",
		},
		cli.IntFlag{
			Name:   "cache-matches",
			Value:  findserver.DefaultCacheMatches,
			Usage:  "How many matches the cached results may hold in total. Larger results are computed on every request",
			EnvVar: envPrefix + "CACHE_MATCHES",
		},
	}, metricsFlags, globalFlags),
	Action: func(c *cli.Context) error {
		cfg, l, err := setupLoggerAndConfig[ServeConfig](c)
		if err != nil {
			return err
		}

		ctx, cancel := signalwatcher.Context(context.Background(), l)
		defer cancel()

		collector := metrics.NewCollector(l, metrics.CollectorConfig{
			Datadog:     cfg.MetricsDatadog,
			DatadogHost: cfg.MetricsDatadogHost,
		})
		if err := collector.Start(); err != nil {
			return err
		}
		defer func() {
			if err := collector.Stop(); err != nil {
				l.Error("Stopping metrics collection: %v", err)
			}
		}()
		scope := collector.Scope(metrics.Tags{"version": version.Version()})

		finder, err := loadFinder(l, cfg.GenomeConfig, scope)
		if err != nil {
			return err
		}

		srv, err := findserver.NewServer(finder,
			findserver.WithLogger(l),
			findserver.WithCacheSize(cfg.CacheSize),
			findserver.WithCacheMatches(cfg.CacheMatches),
			findserver.WithMetricsScope(scope.With(metrics.Tags{"alphabet": finder.Alphabet().String()})),
		)
		if err != nil {
			return err
		}

		return srv.ListenAndServe(ctx, cfg.Listen)
	},
}
