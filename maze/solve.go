package maze

import (
	"github.com/lixenwraith/mazegen/core"
	"github.com/lixenwraith/mazegen/grid"
)

// Solver neighbour priority: right, down, left, up
var stepDirs = [4]core.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}

const noDir = -1

// FindPath walks the maze depth first from start to end and returns the route with
// progress tags. The stack itself is the visited set, which only holds because a perfect
// maze has no second route back to a cell. After a backtrack the directions up to the one
// just retreated from are skipped so the walk never re-enters the dead branch.
// ok is false when the walk exhausts without reaching end.
func FindPath(g grid.Grid, start, end core.Point) (path []core.PathPoint, ok bool) {
	w, h := g.Width(), g.Height()
	open := func(p core.Point) bool {
		return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h && g.Get(p.X, p.Y)
	}
	if !open(start) || !open(end) {
		return nil, false
	}

	// A route longer than the grid means the walk is circling a loop
	limit := w * h

	stack := make([]core.Point, 1, 256)
	stack[0] = start
	prev := core.Point{X: -1, Y: -1}
	lastBackTrackDir := noDir

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		if curr == end {
			return tagProgress(stack), true
		}
		if len(stack) > limit {
			return nil, false
		}

		moved := false
		for dir := lastBackTrackDir + 1; dir < len(stepDirs); dir++ {
			next := curr.Add(stepDirs[dir].X, stepDirs[dir].Y)
			if next == prev || !open(next) {
				continue
			}
			stack = append(stack, next)
			prev = curr
			lastBackTrackDir = noDir
			moved = true
			break
		}
		if moved {
			continue
		}

		dead := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			break
		}
		top := stack[len(stack)-1]
		prev = core.Point{X: -1, Y: -1}
		if len(stack) > 1 {
			prev = stack[len(stack)-2]
		}
		lastBackTrackDir = dirIndex(dead.X-top.X, dead.Y-top.Y)
	}
	return nil, false
}

// FindDefaultPath solves from DefaultStart to DefaultEnd
func FindDefaultPath(g grid.Grid) ([]core.PathPoint, bool) {
	return FindPath(g, DefaultStart(), DefaultEnd(g.Width(), g.Height()))
}

// PathGrid builds an overlay grid of the same size marking path cells open
func PathGrid(g grid.Grid, path []core.PathPoint) grid.Grid {
	ox, oy := g.Origin()
	overlay := grid.NewBitGridAt(ox, oy, g.Width(), g.Height())
	for _, p := range path {
		overlay.Set(p.X, p.Y, true)
	}
	return overlay
}

func tagProgress(points []core.Point) []core.PathPoint {
	out := make([]core.PathPoint, len(points))
	for i, p := range points {
		out[i] = core.PathPoint{X: p.X, Y: p.Y, Progress: core.ProgressAt(i, len(points))}
	}
	return out
}

func dirIndex(dx, dy int) int {
	for i, d := range stepDirs {
		if d.X == dx && d.Y == dy {
			return i
		}
	}
	return noDir
}
