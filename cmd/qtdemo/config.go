package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/robert-butts/quadtree"
	"github.com/robert-butts/quadtree/export"
	"github.com/robert-butts/quadtree/pointgen"
)

// Config drives one demo run. It can be read from a YAML file; flags set on the
// command line take precedence over the file.
type Config struct {
	Points       int     `yaml:"points"`
	Capacity     int     `yaml:"capacity"`
	MaxDepth     int     `yaml:"max_depth"`
	Range        float64 `yaml:"range"`
	Seed         int64   `yaml:"seed"`
	Distribution string  `yaml:"distribution"`
	Query        struct {
		X        float64 `yaml:"x"`
		Y        float64 `yaml:"y"`
		HalfSize float64 `yaml:"half_size"`
	} `yaml:"query"`
	// Out is the export file. "-" writes to stdout, "" disables the export.
	Out      string `yaml:"out"`
	Format   string `yaml:"format"`
	LogLevel string `yaml:"log_level"`
}

func DefaultConfig() Config {
	c := Config{
		Points:       400,
		Capacity:     4,
		MaxDepth:     quadtree.DefaultMaxDepth,
		Range:        1000.0,
		Distribution: string(pointgen.DistScaled),
		Out:          "quadtree.json",
		Format:       string(export.JSON),
		LogLevel:     "info",
	}
	c.Query.HalfSize = 50.0
	return c
}

// LoadConfig reads the YAML file at path over base. Keys missing from the file keep their base values.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return base, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return base, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Points < 0 {
		errs = append(errs, fmt.Errorf("points must not be negative, got %d", c.Points))
	}
	if c.Capacity < 1 {
		errs = append(errs, fmt.Errorf("capacity must be at least 1, got %d", c.Capacity))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth))
	}
	if !(c.Range > 0) {
		errs = append(errs, fmt.Errorf("range must be positive, got %v", c.Range))
	}
	if !(c.Query.HalfSize > 0) {
		errs = append(errs, fmt.Errorf("query half_size must be positive, got %v", c.Query.HalfSize))
	}
	switch pointgen.Distribution(c.Distribution) {
	case pointgen.DistUniform, pointgen.DistScaled:
	default:
		errs = append(errs, fmt.Errorf("unknown distribution %q", c.Distribution))
	}
	if _, err := export.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// parseConfig builds the run configuration from command line arguments.
func parseConfig(args []string) (Config, error) {
	def := DefaultConfig()
	fs := flag.NewFlagSet("qtdemo", flag.ContinueOnError)
	var (
		configPath   = fs.String("config", "", "YAML config file")
		points       = fs.Int("points", def.Points, "number of points to insert")
		capacity     = fs.Int("capacity", def.Capacity, "points per node before it subdivides")
		maxDepth     = fs.Int("max-depth", def.MaxDepth, "depth at which nodes stop subdividing")
		rng          = fs.Float64("range", def.Range, "half size of the root region, centered on the origin")
		seed         = fs.Int64("seed", def.Seed, "random seed, 0 for a random one")
		distribution = fs.String("distribution", def.Distribution, "point distribution: uniform or scaled")
		queryX       = fs.Float64("query-x", def.Query.X, "query region center x")
		queryY       = fs.Float64("query-y", def.Query.Y, "query region center y")
		queryHalf    = fs.Float64("query-half", def.Query.HalfSize, "query region half size")
		out          = fs.String("out", def.Out, `export file, "-" for stdout, empty to skip`)
		format       = fs.String("format", def.Format, "export format: json or yaml")
		logLevel     = fs.String("log-level", def.LogLevel, "log level")
	)
	if err := fs.Parse(args); err != nil {
		return def, err
	}

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath, def); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "points":
			cfg.Points = *points
		case "capacity":
			cfg.Capacity = *capacity
		case "max-depth":
			cfg.MaxDepth = *maxDepth
		case "range":
			cfg.Range = *rng
		case "seed":
			cfg.Seed = *seed
		case "distribution":
			cfg.Distribution = *distribution
		case "query-x":
			cfg.Query.X = *queryX
		case "query-y":
			cfg.Query.Y = *queryY
		case "query-half":
			cfg.Query.HalfSize = *queryHalf
		case "out":
			cfg.Out = *out
		case "format":
			cfg.Format = *format
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	return cfg, cfg.Validate()
}
