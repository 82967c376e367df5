package clicommand

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/buildkite/orffinder/internal/querydoc"
	"github.com/buildkite/orffinder/metrics"
	"github.com/buildkite/orffinder/orf"
	"github.com/urfave/cli"
)

const findHelpDescription = `Usage:

    orffinder find <start> <end> [options...]

Description:

Prints every substring of the genome that begins with <start> and ends with
<end>, where the occurrence of <start> and the occurrence of <end> don't
overlap. A substring is printed once for each pair of occurrences that spells
it, so the same substring can be printed more than once.

Finding nothing isn't an error: the command prints nothing (or an empty
result) and exits 0.

Exits with status 2 when the genome is empty, longer than --max-genome-length,
or holds symbols outside the alphabet.

Example:

    $ orffinder find --genome AAABBBCCCDDD AB CD
    ABBBCCCD

    $ orffinder find --genome-file chr1.fa.gz --alphabet nucleotides --format json ATG TAA`

type FindConfig struct {
	GlobalConfig
	GenomeConfig

	Start     string `cli:"arg:0" label:"start" validate:"required"`
	End       string `cli:"arg:1" label:"end" validate:"required"`
	Format    string `cli:"format"`
	Positions bool   `cli:"positions"`
	Sort      bool   `cli:"sort"`
	Count     bool   `cli:"count"`
}

var FormatFlag = cli.StringFlag{
	Name:   "format",
	Value:  "plain",
	Usage:  "The output format, valid options are: plain, json, yaml",
	EnvVar: envPrefix + "FORMAT",
}

var PositionsFlag = cli.BoolFlag{
	Name:   "positions",
	Usage:  "Include the half-open [start, end) position of each substring",
	EnvVar: envPrefix + "POSITIONS",
}

var SortFlag = cli.BoolFlag{
	Name:   "sort",
	Usage:  "Order results by position instead of the index's order",
	EnvVar: envPrefix + "SORT",
}

var FindCommand = cli.Command{
	Name:        "find",
	Usage:       "Find the substrings of a genome between a start and an end",
	Description: findHelpDescription,
	Flags: flags(genomeFlags, []cli.Flag{
		FormatFlag,
		PositionsFlag,
		SortFlag,
		cli.BoolFlag{
			Name:   "count",
			Usage:  "Print the number of results instead of the results",
			EnvVar: envPrefix + "COUNT",
		},
	}, globalFlags),
	Action: func(c *cli.Context) error {
		cfg, l, err := setupLoggerAndConfig[FindConfig](c)
		if err != nil {
			return err
		}

		if err := validateFormat(cfg.Format); err != nil {
			return err
		}

		finder, err := loadFinder(l, cfg.GenomeConfig, nil)
		if err != nil {
			return err
		}

		t := time.Now()
		if cfg.Count {
			n := finder.Count(cfg.Start, cfg.End)
			metrics.ObserveQuery(nil, time.Since(t), n)
			return writeCount(c.App.Writer, cfg.Format, cfg.Start, cfg.End, n)
		}

		matches := finder.Matches(cfg.Start, cfg.End)
		metrics.ObserveQuery(nil, time.Since(t), len(matches))
		l.Debug("Found %d results for %q...%q in %v", len(matches), cfg.Start, cfg.End, time.Since(t))

		if cfg.Sort {
			sortMatches(matches)
		}

		result := newResult(finder, querydoc.Query{Start: cfg.Start, End: cfg.End}, matches, cfg.Positions)
		return writeResult(c.App.Writer, cfg.Format, result)
	},
}

func validateFormat(format string) error {
	switch format {
	case "", "plain", string(querydoc.FormatJSON), string(querydoc.FormatYAML):
		return nil
	}
	return fmt.Errorf("invalid format %q, valid options are: plain, json, yaml", format)
}

func sortMatches(matches []orf.Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		return matches[i].End < matches[j].End
	})
}

// newResult spells out matches as substrings of the finder's genome.
func newResult(finder *orf.Finder, q querydoc.Query, matches []orf.Match, positions bool) querydoc.Result {
	genome := finder.Genome()
	r := querydoc.Result{
		Name:    q.Name,
		Start:   q.Start,
		End:     q.End,
		Count:   len(matches),
		Results: make([]string, 0, len(matches)),
	}
	for _, m := range matches {
		r.Results = append(r.Results, genome[m.Start:m.End])
		if positions {
			r.Positions = append(r.Positions, [2]int{m.Start, m.End})
		}
	}
	return r
}

func writeResult(w io.Writer, format string, r querydoc.Result) error {
	if format == "" || format == "plain" {
		for i, s := range r.Results {
			var err error
			if r.Positions != nil {
				_, err = fmt.Fprintf(w, "%d\t%d\t%s\n", r.Positions[i][0], r.Positions[i][1], s)
			} else {
				_, err = fmt.Fprintln(w, s)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}
	return querydoc.Encode(w, querydoc.Format(format), r)
}

type countResult struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Count int    `json:"count" yaml:"count"`
}

func writeCount(w io.Writer, format, start, end string, n int) error {
	if format == "" || format == "plain" {
		_, err := fmt.Fprintln(w, n)
		return err
	}
	return querydoc.Encode(w, querydoc.Format(format), countResult{Start: start, End: end, Count: n})
}
