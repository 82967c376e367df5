package clicommand

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/buildkite/orffinder/internal/alphabet"
	"github.com/buildkite/orffinder/internal/genomefile"
	"github.com/buildkite/orffinder/logger"
	"github.com/buildkite/orffinder/metrics"
	"github.com/buildkite/orffinder/orf"
	"github.com/dustin/go-humanize"
)

var errNoGenome = errors.New("one of --genome or --genome-file is required")

// alphabetFromFlag resolves the --alphabet value: a predefined alphabet name,
// or the symbols themselves.
func alphabetFromFlag(value string) (*alphabet.Alphabet, error) {
	switch strings.ToLower(value) {
	case "", "letters":
		return alphabet.Letters, nil
	case "nucleotides", "dna":
		return alphabet.Nucleotides, nil
	}
	a, err := alphabet.New(value)
	if err != nil {
		return nil, fmt.Errorf("invalid alphabet %q: %w", value, err)
	}
	return a, nil
}

// readGenome returns the genome named by cfg and a short description of where
// it came from.
func readGenome(cfg GenomeConfig) (genome, source string, err error) {
	switch {
	case cfg.Genome != "" && cfg.GenomeFile != "":
		return "", "", errors.New("--genome and --genome-file can't be used together")

	case cfg.Genome != "":
		return cfg.Genome, "--genome", nil

	case cfg.GenomeFile != "":
		records, err := genomefile.ReadFile(cfg.GenomeFile)
		if err != nil {
			return "", "", err
		}
		genome, err := genomefile.Select(records, cfg.Record)
		if err != nil {
			return "", "", fmt.Errorf("%s: %w", cfg.GenomeFile, err)
		}
		source = cfg.GenomeFile
		if cfg.Record != "" {
			source += " (" + cfg.Record + ")"
		}
		return genome, source, nil

	default:
		return "", "", errNoGenome
	}
}

// loadFinder reads and indexes the genome named by cfg. scope may be nil. A
// genome that can't be indexed comes back as an ExitError with
// ExitCodeInvalidGenome.
func loadFinder(l logger.Logger, cfg GenomeConfig, scope *metrics.Scope) (*orf.Finder, error) {
	a, err := alphabetFromFlag(cfg.Alphabet)
	if err != nil {
		return nil, err
	}

	genome, source, err := readGenome(cfg)
	if err != nil {
		return nil, err
	}

	l.Debug("Indexing %s symbols from %s", humanize.Comma(int64(len(genome))), source)

	t := time.Now()
	finder, err := orf.New(genome, orf.WithAlphabet(a), orf.WithMaxLength(cfg.MaxGenomeLength))
	if err != nil {
		return nil, genomeExitError(fmt.Errorf("indexing genome from %s: %w", source, err))
	}
	took := time.Since(t)

	stats := finder.Stats()
	metrics.ObserveIndex(scope, took, stats.ForwardNodes, stats.BackwardNodes)
	l.WithFields(
		logger.IntField("forward_nodes", stats.ForwardNodes),
		logger.IntField("backward_nodes", stats.BackwardNodes),
		logger.DurationField("took", took),
	).Info("Indexed genome of %s symbols", humanize.Comma(int64(stats.Length)))

	return finder, nil
}
