package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/lixenwraith/mazegen/core"
	"github.com/lixenwraith/mazegen/maze"
	"github.com/lixenwraith/mazegen/parameter"
)

// drawOptions controls the printer
type drawOptions struct {
	color    bool // ANSI truecolor path gradient
	maxWidth int  // clip columns, 0 = no clip
}

// draw prints the maze one rune per cell. Path cells are colored from red at the start to
// green at the end by their progress byte when color is on.
func draw(w io.Writer, res *maze.Result, opts drawOptions) error {
	g := res.Grid
	width, height := g.Width(), g.Height()
	if opts.maxWidth > 0 && opts.maxWidth < width {
		width = opts.maxWidth
	}

	progress := make(map[core.Point]uint8, len(res.Path))
	for _, p := range res.Path {
		progress[p.Point()] = p.Progress
	}
	start, end := maze.DefaultStart(), maze.DefaultEnd(g.Width(), g.Height())

	bw := bufio.NewWriter(w)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := core.Point{X: x, Y: y}
			pr, onPath := progress[p]

			switch {
			case res.Path != nil && p == start:
				bw.WriteRune(parameter.PrintStart)
			case res.Path != nil && p == end:
				bw.WriteRune(parameter.PrintEnd)
			case !g.Get(x, y):
				bw.WriteRune(parameter.PrintWall)
			case onPath && opts.color:
				fmt.Fprintf(bw, "\x1b[38;2;%d;%d;60m%c\x1b[0m", 255-pr, pr, parameter.PrintPath)
			case onPath:
				bw.WriteRune(parameter.PrintPath)
			default:
				bw.WriteRune(parameter.PrintOpen)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// summary prints the generation facts
func summary(w io.Writer, res *maze.Result) {
	fmt.Fprintf(w, "Run %s\n", res.ID)
	fmt.Fprintf(w, "Algorithm %s, seed %d, %dx%d, done in %v\n",
		res.Algorithm, res.Seed, res.Grid.Width(), res.Grid.Height(), res.Elapsed)
	if res.Path != nil {
		fmt.Fprintf(w, "Solution path length: %d steps\n", len(res.Path))
	}
}

// report prints the verifier results
func report(w io.Writer, res *maze.Result, segments int) {
	rep := maze.Verify(res.Grid)
	fmt.Fprintf(w, "Perfect: %v (flood %v)\n", rep.Perfect(), maze.IsPerfect(res.Grid))
	fmt.Fprintf(w, "Open cells %d, rooms %d/%d, components %d, cycles %d, open 2x2 blocks %d\n",
		rep.OpenCells, rep.RoomsOpen, rep.Rooms, rep.Components, rep.Cycles, rep.OpenBlocks)
	fmt.Fprintf(w, "Wall segments: %d\n", segments)
}
