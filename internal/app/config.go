package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/coltab/coltab/internal/logging"
	"github.com/coltab/coltab/internal/sample"
	"github.com/coltab/coltab/internal/width"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/peterbourgon/ff/v4/ffyaml"
)

const defaultRows = 100

var errInvalidColumnSpec = errors.New("invalid column spec")

type config struct {
	Rows        int
	Columns     []string
	MinWidth    float64
	StyleFile   string
	LogFile     string
	Seed        int
	Debug       bool
	PrintWidths bool
	Version     bool

	loggingOptions logging.Options
	sizings        map[string]width.Sizing
}

// set config in order of precedence:
// 1. flags > 2. env vars > 3. config file
func parse(stderr io.Writer, args []string) (config, error) {
	var cfg config

	home, err := os.UserHomeDir()
	if err != nil {
		return config{}, fmt.Errorf("retrieving user's home directory: %w", err)
	}
	defaultConfigFile := filepath.Join(home, ".coltab.yaml")

	fs := ff.NewFlagSet("coltab")
	fs.IntVar(&cfg.Rows, 'n', "rows", defaultRows, "Number of sample rows to generate.")
	fs.StringListVar(&cfg.Columns, 0, "column", "Column sizing, as key:weight=N, key:fixed=N or key:wrap. Can set more than once.")
	fs.Float64Var(&cfg.MinWidth, 0, "min-width", 0, "Minimum column width in cells. Zero leaves widths unclamped.")
	fs.StringVar(&cfg.StyleFile, 's', "style", "", "Path to a YAML file styling the table.")
	fs.StringVar(&cfg.LogFile, 0, "log-file", "", "Write logs to this file in addition to the footer.")
	fs.IntVar(&cfg.Seed, 0, "seed", 0, "Seed for generating sample rows. Zero picks a random seed.")
	fs.BoolVar(&cfg.Debug, 'd', "debug", "Log bubbletea messages to messages.log")
	fs.BoolVar(&cfg.PrintWidths, 0, "print-widths", "Print the final column widths as JSON upon exit.")
	fs.BoolVar(&cfg.Version, 'v', "version", "Print version.")
	_ = fs.String('c', "config", defaultConfigFile, "Path to config file.")

	{
		usage := fmt.Sprintf("Logging level (valid: %s).", strings.Join(logging.ValidLevels(), ","))
		fs.StringEnumVar(&cfg.loggingOptions.Level, 'l', "log-level", usage, logging.ValidLevels()...)
	}

	err = ff.Parse(fs, args,
		ff.WithEnvVarPrefix("COLTAB"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ffyaml.Parse),
		ff.WithConfigAllowMissingFile(),
	)
	if err != nil {
		// ff.Parse returns an error if there is an error or if -h/--help is
		// passed; in either case print flag usage in addition to error message.
		fmt.Fprintln(stderr, ffhelp.Flags(fs))
		return config{}, err
	}

	// Perform any conversions from the flag parsed primitive types to
	// internal types.
	cfg.sizings, err = parseColumnSpecs(cfg.Columns)
	if err != nil {
		return config{}, err
	}
	if cfg.MinWidth < 0 {
		return config{}, fmt.Errorf("min-width must not be negative: %v", cfg.MinWidth)
	}
	return cfg, nil
}

func parseColumnSpecs(specs []string) (map[string]width.Sizing, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	sizings := make(map[string]width.Sizing, len(specs))
	for _, spec := range specs {
		key, sizing, err := parseColumnSpec(spec)
		if err != nil {
			return nil, err
		}
		sizings[key] = sizing
	}
	return sizings, nil
}

// parseColumnSpec parses key:weight=N, key:fixed=N or key:wrap. The sizing
// value itself is validated when the columns are built.
func parseColumnSpec(spec string) (string, width.Sizing, error) {
	key, sizing, ok := strings.Cut(spec, ":")
	if !ok || key == "" {
		return "", width.Sizing{}, fmt.Errorf("%w: %q: expected key:sizing", errInvalidColumnSpec, spec)
	}
	if !slices.Contains(sample.Keys(), key) {
		return "", width.Sizing{}, fmt.Errorf("%w: %q: unknown column %q (valid: %s)",
			errInvalidColumnSpec, spec, key, strings.Join(sample.Keys(), ","))
	}
	if sizing == "wrap" {
		return key, width.WrapContent(), nil
	}
	kind, value, ok := strings.Cut(sizing, "=")
	if !ok {
		return "", width.Sizing{}, fmt.Errorf("%w: %q: expected weight=N, fixed=N or wrap", errInvalidColumnSpec, spec)
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", width.Sizing{}, fmt.Errorf("%w: %q: %w", errInvalidColumnSpec, spec, err)
	}
	switch kind {
	case "weight":
		return key, width.Weight(n), nil
	case "fixed":
		return key, width.Fixed(n), nil
	default:
		return "", width.Sizing{}, fmt.Errorf("%w: %q: unknown sizing %q", errInvalidColumnSpec, spec, kind)
	}
}
