package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/lixenwraith/mazegen/config"
	"github.com/lixenwraith/mazegen/grid"
	"github.com/lixenwraith/mazegen/logging"
	"github.com/lixenwraith/mazegen/maze"
	"github.com/lixenwraith/mazegen/parameter"
)

type runFlags struct {
	solve       bool
	verify      bool
	interactive bool
	quiet       bool
	color       string
	out         string
}

func main() {
	cfg := config.Load()
	var rf runFlags

	cfg.BindFlags(flag.CommandLine)
	flag.BoolVar(&rf.solve, "solve", true, "find and draw the path from (1,1) to the last room")
	flag.BoolVar(&rf.verify, "verify", false, "check the maze is perfect and count wall segments")
	flag.BoolVar(&rf.interactive, "i", false, "prompt for settings in a loop")
	flag.BoolVar(&rf.quiet, "q", false, "do not draw the maze")
	flag.StringVar(&rf.color, "color", "auto", "color the path: auto, always, never")
	flag.StringVar(&rf.out, "out", "", "write the bit-packed grid to this file")
	flag.Parse()

	if logFile := logging.Setup(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}
	log, _ := logging.Run("maze-generator")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !rf.interactive {
		if err := generate(ctx, cfg, rf, log); err != nil {
			log.WithError(err).Error("Generation failed")
			fmt.Fprintf(os.Stderr, "maze-generator: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := newPrompter(os.Stdin, os.Stdout)
	for {
		fmt.Println("\n=== PERFECT MAZE GENERATOR ===")
		p.ask(cfg)
		if err := generate(ctx, cfg, rf, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if ctx.Err() != nil || !p.confirm("\nGenerate another? [Y/n]: ", true) {
			return
		}
	}
}

func generate(ctx context.Context, cfg *config.Config, rf runFlags, log logrus.FieldLogger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := cfg.Options()
	opts.Solve = rf.solve
	stderrTTY := term.IsTerminal(int(os.Stderr.Fd()))
	if stderrTTY {
		opts.Progress = progressBar(os.Stderr)
	}

	log.WithFields(logrus.Fields{
		"width":     opts.Width,
		"height":    opts.Height,
		"seed":      opts.Seed,
		"algorithm": opts.Algorithm,
		"grid":      opts.GridKind,
		"random":    opts.RandomKind,
	}).Info("Generating maze")

	res, err := maze.Generate(ctx, opts)
	if stderrTTY {
		fmt.Fprint(os.Stderr, "\r\x1b[K")
	}
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"id":      res.ID.String(),
		"seed":    res.Seed,
		"elapsed": res.Elapsed,
		"path":    len(res.Path),
	}).Info("Maze generated")

	summary(os.Stdout, res)
	if rf.solve && res.Path == nil {
		fmt.Println("Status: no path between start and end")
	}
	if rf.verify {
		report(os.Stdout, res, len(grid.WallSegments(res.Grid)))
	}
	if !rf.quiet {
		if err := draw(os.Stdout, res, drawSettings(rf.color)); err != nil {
			return errors.Wrap(err, "draw maze")
		}
	}
	if rf.out != "" {
		if err := save(rf.out, res.Grid); err != nil {
			return err
		}
		log.WithField("file", rf.out).Info("Grid saved")
	}
	return nil
}

// drawSettings resolves color and clipping against stdout
func drawSettings(color string) drawOptions {
	fd := int(os.Stdout.Fd())
	tty := term.IsTerminal(fd)

	var opts drawOptions
	switch color {
	case "always":
		opts.color = true
	case "auto":
		opts.color = tty
	}
	if tty {
		if w, _, err := term.GetSize(fd); err == nil {
			opts.maxWidth = w
		}
	}
	return opts
}

// progressBar draws a throttled bar on a terminal
func progressBar(w io.Writer) maze.Progress {
	var last time.Time
	return func(x, y, step, total int) {
		if total <= 0 || (step != total && time.Since(last) < parameter.ProgressInterval) {
			return
		}
		last = time.Now()
		filled := step * parameter.ProgressBarWidth / total
		bar := make([]rune, parameter.ProgressBarWidth)
		for i := range bar {
			bar[i] = '-'
			if i < filled {
				bar[i] = '#'
			}
		}
		fmt.Fprintf(w, "\r[%s] %3d%%", string(bar), step*100/total)
	}
}

// save writes g in the bit-packed encoding, converting other storage kinds first
func save(path string, g grid.Grid) error {
	bg, ok := g.(*grid.BitGrid)
	if !ok {
		bg = grid.NewBitGrid(g.Width(), g.Height())
		if err := grid.CloneInto(g, bg); err != nil {
			return err
		}
	}
	data, err := bg.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
