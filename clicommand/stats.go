package clicommand

import (
	"fmt"

	"github.com/buildkite/orffinder/internal/querydoc"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli"
)

const statsHelpDescription = `Usage:

    orffinder stats [options...]

Description:

Indexes a genome and prints the size of the index.

Exits with status 2 when the genome is empty, longer than --max-genome-length,
or holds symbols outside the alphabet.

Example:

    $ orffinder stats --genome ABAB
    Genome length:   4 symbols
    Alphabet:        ABCD
    Forward trie:    12 nodes
    Backward trie:   12 nodes`

type StatsConfig struct {
	GlobalConfig
	GenomeConfig

	Format string `cli:"format"`
}

type statsResult struct {
	Length        int    `json:"length" yaml:"length"`
	Alphabet      string `json:"alphabet" yaml:"alphabet"`
	ForwardNodes  int    `json:"forward_nodes" yaml:"forward_nodes"`
	BackwardNodes int    `json:"backward_nodes" yaml:"backward_nodes"`
}

var StatsCommand = cli.Command{
	Name:        "stats",
	Usage:       "Print the size of a genome's index",
	Description: statsHelpDescription,
	Flags:       flags(genomeFlags, []cli.Flag{FormatFlag}, globalFlags),
	Action: func(c *cli.Context) error {
		cfg, l, err := setupLoggerAndConfig[StatsConfig](c)
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

		stats := finder.Stats()
		res := statsResult{
			Length:        stats.Length,
			Alphabet:      finder.Alphabet().String(),
			ForwardNodes:  stats.ForwardNodes,
			BackwardNodes: stats.BackwardNodes,
		}

		if cfg.Format != "" && cfg.Format != "plain" {
			return querydoc.Encode(c.App.Writer, querydoc.Format(cfg.Format), res)
		}

		_, err = fmt.Fprintf(c.App.Writer,
			"Genome length:   %s symbols\nAlphabet:        %s\nForward trie:    %s nodes\nBackward trie:   %s nodes\n",
			humanize.Comma(int64(res.Length)),
			res.Alphabet,
			humanize.Comma(int64(res.ForwardNodes)),
			humanize.Comma(int64(res.BackwardNodes)),
		)
		return err
	},
}
