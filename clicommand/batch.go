package clicommand

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/buildkite/orffinder/internal/querydoc"
	"github.com/buildkite/orffinder/internal/tempfile"
	"github.com/buildkite/orffinder/logger"
	"github.com/buildkite/orffinder/metrics"
	"github.com/buildkite/orffinder/orf"
	"github.com/buildkite/orffinder/signalwatcher"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

const batchHelpDescription = `Usage:

    orffinder batch --queries <file> [options...]

Description:

Runs every query in a YAML or JSON query document against one genome, which
is indexed once. Queries run concurrently; results are written in the same
order as the queries.

A query document looks like:

    queries:
      - name: first
        start: AB
        end: CD
      - start: A
        end: D

Exits with status 2 when the genome is empty, longer than --max-genome-length,
or holds symbols outside the alphabet.

Example:

    $ orffinder batch --genome-file chr1.fa --queries queries.yml --output results.json`

type BatchConfig struct {
	GlobalConfig
	GenomeConfig

	Queries     string `cli:"queries" normalize:"filepath" validate:"required,file-exists"`
	Output      string `cli:"output" normalize:"filepath"`
	Format      string `cli:"format"`
	Concurrency int    `cli:"concurrency"`
	Positions   bool   `cli:"positions"`
	Sort        bool   `cli:"sort"`
}

var BatchCommand = cli.Command{
	Name:        "batch",
	Usage:       "Run a document of find queries against a genome",
	Description: batchHelpDescription,
	Flags: flags(genomeFlags, []cli.Flag{
		cli.StringFlag{
			Name:   "queries",
			Value:  "",
			Usage:  "Path to the YAML or JSON query document",
			EnvVar: envPrefix + "QUERIES",
		},
		cli.StringFlag{
			Name:   "output",
			Value:  "",
			Usage:  "Write the results document to this file instead of stdout",
			EnvVar: envPrefix + "OUTPUT",
		},
		cli.StringFlag{
			Name:   "format",
			Value:  "",
			Usage:  "The results format, valid options are: json, yaml (default: from the --output extension, else yaml)",
			EnvVar: envPrefix + "FORMAT",
		},
		cli.IntFlag{
			Name:   "concurrency",
			Value:  runtime.NumCPU(),
			Usage:  "How many queries to run at once",
			EnvVar: envPrefix + "CONCURRENCY",
		},
		PositionsFlag,
		SortFlag,
	}, globalFlags),
	Action: func(c *cli.Context) error {
		cfg, l, err := setupLoggerAndConfig[BatchConfig](c)
		if err != nil {
			return err
		}

		ctx, cancel := signalwatcher.Context(context.Background(), l)
		defer cancel()

		format := querydoc.Format(cfg.Format)
		switch format {
		case "":
			format = querydoc.FormatFromPath(cfg.Output)
		case querydoc.FormatJSON, querydoc.FormatYAML:
		default:
			return fmt.Errorf("invalid format %q, valid options are: json, yaml", cfg.Format)
		}

		doc, err := querydoc.ReadFile(cfg.Queries)
		if err != nil {
			return err
		}

		finder, err := loadFinder(l, cfg.GenomeConfig, nil)
		if err != nil {
			return err
		}

		results, err := runBatch(ctx, l, finder, doc.Queries, cfg)
		if err != nil {
			return err
		}

		out := querydoc.Results{Results: results}
		if cfg.Output == "" {
			return querydoc.Encode(c.App.Writer, format, out)
		}
		if err := tempfile.WriteFile(cfg.Output, 0o644, func(w io.Writer) error {
			return querydoc.Encode(w, format, out)
		}); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
		l.Info("Wrote %d results to %s", len(results), cfg.Output)
		return nil
	},
}

// runBatch answers queries with at most cfg.Concurrency running at once. The
// results are in query order.
func runBatch(ctx context.Context, l logger.Logger, finder *orf.Finder, queries []querydoc.Query, cfg *BatchConfig) ([]querydoc.Result, error) {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]querydoc.Result, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, q := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			t := time.Now()
			matches := finder.Matches(q.Start, q.End)
			metrics.ObserveQuery(nil, time.Since(t), len(matches))

			if cfg.Sort {
				sortMatches(matches)
			}
			results[i] = newResult(finder, q, matches, cfg.Positions)

			l.WithFields(logger.IntField("query", i)).Debug("%q...%q: %d results", q.Start, q.End, len(matches))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("running queries: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("running queries: %w", err)
	}
	return results, nil
}
