// Package config resolves host settings: built-in defaults, then MAZEGEN_* environment
// variables, then command line flags.
package config

import (
	"flag"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/lixenwraith/mazegen/grid"
	"github.com/lixenwraith/mazegen/maze"
	"github.com/lixenwraith/mazegen/parameter"
	"github.com/lixenwraith/mazegen/rng"
)

// Config holds settings shared by the command line hosts
type Config struct {
	Width, Height int
	Seed          int32 // 0 = random
	Algorithm     string
	GridKind      string
	RandomKind    string

	TileSize     int
	TileCapacity int
	ExploreSide  int

	Debug bool
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Width:        parameter.DefaultWidth,
		Height:       parameter.DefaultHeight,
		Algorithm:    parameter.DefaultAlgorithm,
		GridKind:     parameter.DefaultGridKind,
		RandomKind:   parameter.DefaultRandomKind,
		TileSize:     parameter.DefaultTileSize,
		TileCapacity: parameter.DefaultTileCapacity,
		ExploreSide:  parameter.DefaultExploreSide,
	}
}

// Load applies environment overrides to the defaults. Malformed values are ignored.
func Load() *Config {
	cfg := Default()

	envInt("MAZEGEN_WIDTH", &cfg.Width)
	envInt("MAZEGEN_HEIGHT", &cfg.Height)
	envInt("MAZEGEN_TILE_SIZE", &cfg.TileSize)
	envInt("MAZEGEN_TILE_CAPACITY", &cfg.TileCapacity)
	envInt("MAZEGEN_EXPLORE_SIDE", &cfg.ExploreSide)

	if seed := os.Getenv("MAZEGEN_SEED"); seed != "" {
		if val, err := strconv.ParseInt(seed, 10, 32); err == nil {
			cfg.Seed = int32(val)
		}
	}

	envString("MAZEGEN_ALGORITHM", &cfg.Algorithm)
	envString("MAZEGEN_GRID", &cfg.GridKind)
	envString("MAZEGEN_RANDOM", &cfg.RandomKind)

	if debug := os.Getenv("MAZEGEN_DEBUG"); debug != "" {
		if val, err := strconv.ParseBool(debug); err == nil {
			cfg.Debug = val
		}
	}

	return cfg
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			*dst = val
		}
	}
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// BindFlags registers the generation flags on fs with the current values as defaults
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "maze width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "maze height in cells")
	fs.Var((*seedValue)(&c.Seed), "seed", "int32 seed (0 = random)")
	fs.StringVar(&c.Algorithm, "algorithm", c.Algorithm, "generation algorithm")
	fs.StringVar(&c.GridKind, "grid", c.GridKind, "grid storage kind")
	fs.StringVar(&c.RandomKind, "random", c.RandomKind, "random generator kind")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "write debug logs under logs/")
}

// BindTileFlags registers the tiled exploration flags on fs
func (c *Config) BindTileFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.TileSize, "tile", c.TileSize, "tile edge in cells")
	fs.IntVar(&c.TileCapacity, "capacity", c.TileCapacity, "resident tiles")
	fs.IntVar(&c.ExploreSide, "side", c.ExploreSide, "logical maze side for exploration")
}

// seedValue parses a flag into an int32 seed
type seedValue int32

func (s *seedValue) String() string { return strconv.FormatInt(int64(*s), 10) }

func (s *seedValue) Set(v string) error {
	val, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return errors.Errorf("seed %q is not an int32", v)
	}
	*s = seedValue(val)
	return nil
}

// Validate checks ranges and kind names
func (c *Config) Validate() error {
	if c.Width < parameter.MinMazeSide || c.Width > parameter.MaxMazeSide {
		return errors.Errorf("width %d outside [%d, %d]", c.Width, parameter.MinMazeSide, parameter.MaxMazeSide)
	}
	if c.Height < parameter.MinMazeSide || c.Height > parameter.MaxMazeSide {
		return errors.Errorf("height %d outside [%d, %d]", c.Height, parameter.MinMazeSide, parameter.MaxMazeSide)
	}
	if _, err := maze.ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}
	if _, err := grid.Lookup(grid.Kind(c.GridKind)); err != nil {
		return err
	}
	if _, err := rng.New(rng.Kind(c.RandomKind), 1); err != nil {
		return err
	}
	if c.TileSize < 1 {
		return errors.Errorf("tile size %d must be positive", c.TileSize)
	}
	if c.TileCapacity < 1 {
		return errors.Errorf("tile capacity %d must be positive", c.TileCapacity)
	}
	if c.ExploreSide < parameter.MinMazeSide || c.ExploreSide > parameter.MaxExploreSide {
		return errors.Errorf("explore side %d outside [%d, %d]", c.ExploreSide, parameter.MinMazeSide, parameter.MaxExploreSide)
	}
	return nil
}

// Options converts the generation settings for maze.Generate
func (c *Config) Options() maze.Options {
	return maze.Options{
		Width:      c.Width,
		Height:     c.Height,
		Seed:       c.Seed,
		Algorithm:  maze.Algorithm(c.Algorithm),
		GridKind:   grid.Kind(c.GridKind),
		RandomKind: rng.Kind(c.RandomKind),
	}
}
