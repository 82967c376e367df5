package clicommand

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/buildkite/orffinder/cliconfig"
	"github.com/buildkite/orffinder/internal/osutil"
	"github.com/buildkite/orffinder/logger"
	"github.com/urfave/cli"
)

const envPrefix = "ORFFINDER_"

var ConfigFlag = cli.StringFlag{
	Name:   "config",
	Value:  "",
	Usage:  "Path to a configuration file",
	EnvVar: envPrefix + "CONFIG",
}

var DebugFlag = cli.BoolFlag{
	Name:   "debug",
	Usage:  "Enable debug mode. Synonym for `--log-level debug`. Takes precedence over `--log-level`",
	EnvVar: envPrefix + "DEBUG",
}

var LogLevelFlag = cli.StringFlag{
	Name:   "log-level",
	Value:  "notice",
	Usage:  "Set the log level, valid options are: debug, info, notice, warn, error, fatal",
	EnvVar: envPrefix + "LOG_LEVEL",
}

var LogFormatFlag = cli.StringFlag{
	Name:   "log-format",
	Value:  "text",
	Usage:  "The format to use for the logger output, valid options are: text, json",
	EnvVar: envPrefix + "LOG_FORMAT",
}

var NoColorFlag = cli.BoolFlag{
	Name:   "no-color",
	Usage:  "Don't show colors in logging",
	EnvVar: envPrefix + "NO_COLOR",
}

var globalFlags = []cli.Flag{
	ConfigFlag,
	NoColorFlag,
	DebugFlag,
	LogLevelFlag,
	LogFormatFlag,
}

var GenomeFlag = cli.StringFlag{
	Name:   "genome",
	Value:  "",
	Usage:  "The genome to index, given literally",
	EnvVar: envPrefix + "GENOME",
}

var GenomeFileFlag = cli.StringFlag{
	Name:   "genome-file",
	Value:  "",
	Usage:  "Read the genome from a plain text or FASTA file, optionally gzip (.gz) or zstd (.zst) compressed",
	EnvVar: envPrefix + "GENOME_FILE",
}

var RecordFlag = cli.StringFlag{
	Name:   "record",
	Value:  "",
	Usage:  "The FASTA record to index when --genome-file holds several (default: the first)",
	EnvVar: envPrefix + "RECORD",
}

var AlphabetFlag = cli.StringFlag{
	Name:   "alphabet",
	Value:  "letters",
	Usage:  "The symbols the genome is written in: letters (ABCD), nucleotides (ACGT), or the symbols themselves",
	EnvVar: envPrefix + "ALPHABET",
}

// DefaultMaxGenomeLength keeps the index to roughly half a gigabyte. Both
// tries hold about n²/2 nodes, measured at ~1.8 GB for 4,000 symbols.
const DefaultMaxGenomeLength = 2000

var MaxGenomeLengthFlag = cli.IntFlag{
	Name:   "max-genome-length",
	Value:  DefaultMaxGenomeLength,
	Usage:  "Refuse genomes longer than this many symbols. The index grows with the square of the length (about 460 MB at the default). 0 means no limit",
	EnvVar: envPrefix + "MAX_GENOME_LENGTH",
}

var genomeFlags = []cli.Flag{
	GenomeFlag,
	GenomeFileFlag,
	RecordFlag,
	AlphabetFlag,
	MaxGenomeLengthFlag,
}

var MetricsDatadogFlag = cli.BoolFlag{
	Name:   "metrics-datadog",
	Usage:  "Send metrics to DogStatsD for Datadog",
	EnvVar: envPrefix + "METRICS_DATADOG",
}

var MetricsDatadogHostFlag = cli.StringFlag{
	Name:   "metrics-datadog-host",
	Value:  "127.0.0.1:8125",
	Usage:  "The dogstatsd instance to send metrics to using udp",
	EnvVar: envPrefix + "METRICS_DATADOG_HOST",
}

var metricsFlags = []cli.Flag{
	MetricsDatadogFlag,
	MetricsDatadogHostFlag,
}

// flags joins flag groups into one slice for a command. The result is clipped
// so that appending to it (as cli does with the help flag) never writes into a
// shared array.
func flags(groups ...[]cli.Flag) []cli.Flag {
	var all []cli.Flag
	for _, g := range groups {
		all = append(all, g...)
	}
	return slices.Clip(all)
}

// DefaultConfigFilePaths lists where a config file is looked for when --config
// isn't given.
func DefaultConfigFilePaths() (paths []string) {
	if home, err := osutil.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".orffinder", "orffinder.cfg"))
	}
	paths = append(paths, "/etc/orffinder/orffinder.cfg")

	// Also check beside the binary.
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "orffinder.cfg"))
	}
	return paths
}

// CreateLogger builds the logger described by the global config, printing to w.
func CreateLogger(cfg GlobalConfig, w io.Writer) (logger.Logger, error) {
	var printer logger.Printer
	switch cfg.LogFormat {
	case "", "text":
		tp := logger.NewTextPrinter(w)
		if cfg.NoColor {
			tp.Colors = false
		}
		printer = tp
	case "json":
		printer = logger.NewJSONPrinter(w)
	default:
		return nil, fmt.Errorf("invalid log format %q, valid options are: text, json", cfg.LogFormat)
	}

	l := logger.NewConsoleLogger(printer, os.Exit)

	if cfg.LogLevel != "" {
		level, err := logger.LevelFromString(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		l.SetLevel(level)
	}
	if cfg.Debug {
		l.SetLevel(logger.DEBUG)
	}

	return l, nil
}

// globalConfigOf lets setupLoggerAndConfig reach the embedded GlobalConfig of
// any command config.
type globalConfigOf interface {
	global() GlobalConfig
}

func (g GlobalConfig) global() GlobalConfig { return g }

// setupLoggerAndConfig loads the command config of type T and creates a logger
// from its global flags. Config warnings are logged once the logger exists.
func setupLoggerAndConfig[T any, PT interface {
	*T
	globalConfigOf
}](c *cli.Context) (*T, logger.Logger, error) {
	cfg := PT(new(T))

	loader := cliconfig.Loader{
		CLI:                    c,
		Config:                 cfg,
		DefaultConfigFilePaths: DefaultConfigFilePaths(),
	}
	warnings, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}

	l, err := CreateLogger(cfg.global(), c.App.ErrWriter)
	if err != nil {
		return nil, nil, loader.Errorf("%v.", err)
	}

	for _, warning := range warnings {
		l.Warn("%s", warning)
	}
	if loader.File != nil {
		l.Debug("Loaded config file %s", loader.File.Path)
	}

	return (*T)(cfg), l, nil
}
