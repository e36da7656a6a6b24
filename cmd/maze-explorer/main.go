package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mazegen/audio"
	"github.com/lixenwraith/mazegen/config"
	"github.com/lixenwraith/mazegen/logging"
	"github.com/lixenwraith/mazegen/maze"
	"github.com/lixenwraith/mazegen/parameter"
	"github.com/lixenwraith/mazegen/tiles"
)

func main() {
	cfg := config.Load()
	if os.Getenv("MAZEGEN_ALGORITHM") == "" {
		cfg.Algorithm = string(maze.AlgDivision)
	}
	cfg.BindFlags(flag.CommandLine)
	cfg.BindTileFlags(flag.CommandLine)
	archive := flag.Bool("archive", false, "keep evicted tiles encoded in memory instead of regenerating them")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	audioCfg := audio.LoadConfig()
	if *mute {
		audioCfg.Enabled = false
	}

	if logFile := logging.Setup(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}
	log, _ := logging.Run("maze-explorer")

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "maze-explorer: %v\n", err)
		os.Exit(2)
	}

	cache, store, err := buildCache(context.Background(), cfg, *archive, log)
	if err != nil {
		log.WithError(err).Error("Cache setup failed")
		fmt.Fprintf(os.Stderr, "maze-explorer: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	registerCrashScreen(screen)
	defer func() {
		handleCrash(recover())
	}()

	sounds := audio.NewSoundManager(audioCfg)
	if err := sounds.Initialize(); err != nil {
		// Non-fatal, the explorer runs without sound
		log.WithError(err).Warn("Audio initialization failed")
	}

	ex := NewExplorer(screen, cache, exploreSide(cfg), sounds, log)
	ex.archive = store
	log.WithFields(logrus.Fields{
		"session":   ex.session.String(),
		"side":      ex.side,
		"algorithm": cfg.Algorithm,
		"seed":      cfg.Seed,
	}).Info("Exploration started")

	ex.run()

	sounds.Cleanup()
	registerCrashScreen(nil)
	screen.Fini()
	log.WithField("stats", fmt.Sprintf("%+v", cache.Stats())).Info("Exploration ended")
}

// exploreSide is the logical maze side: the tile-local division maze can be huge, other
// algorithms are materialized at the configured width
func exploreSide(cfg *config.Config) int {
	if localParts(cfg.Algorithm) {
		return cfg.ExploreSide
	}
	return cfg.Width
}

func localParts(alg string) bool {
	return alg == string(maze.AlgDivision) || alg == string(maze.AlgDivisionPath)
}

// buildCache picks the part generator for the configured algorithm and wraps it in a cache
func buildCache(ctx context.Context, cfg *config.Config, archive bool, log logrus.FieldLogger) (*tiles.Cache, *tiles.Archive, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if cfg.Seed == 0 {
		cfg.Seed = int32(time.Now().UnixNano()) | 1
	}

	var gen tiles.PartGenerator
	if localParts(cfg.Algorithm) {
		g, err := tiles.DivisionParts(cfg.ExploreSide, cfg.ExploreSide, cfg.Seed, cfg.Options().RandomKind)
		if err != nil {
			return nil, nil, err
		}
		gen = g
	} else {
		opts := cfg.Options()
		opts.Height = opts.Width
		if opts.Width > parameter.MaxMazeSide {
			return nil, nil, errors.Errorf("%s mazes are materialized whole; width %d exceeds %d",
				cfg.Algorithm, opts.Width, parameter.MaxMazeSide)
		}
		g, res, err := tiles.GeneratedParts(ctx, opts)
		if err != nil {
			return nil, nil, err
		}
		log.WithFields(logrus.Fields{"id": res.ID.String(), "elapsed": res.Elapsed}).Info("Maze materialized")
		gen = g
	}

	var store *tiles.Archive
	var onEvict tiles.EvictFunc
	if archive {
		store = tiles.NewArchive(log)
		gen = store.Restore(gen)
		onEvict = store.Evict
	}

	cache, err := tiles.New(cfg.TileCapacity, cfg.TileSize, gen, onEvict, tiles.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	return cache, store, nil
}
