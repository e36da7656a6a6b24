package maze

import (
	"math/bits"

	"github.com/zyedidia/generic/stack"

	"github.com/lixenwraith/mazegen/core"
	"github.com/lixenwraith/mazegen/grid"
	"github.com/lixenwraith/mazegen/rng"
)

// Neighbour order shared by both backtracker tiers: left, right, up, down
var jumpDirs = [4]core.Point{{X: -2, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: -2}, {X: 0, Y: 2}}

// Backtrack carves a maze with the recursive backtracker, starting at room (1,1).
// The grid must be all wall. Candidates are collected in order left, right, up, down and one
// is picked with r.NextN(len(candidates)).
func Backtrack[G grid.Grid, R rng.Random](g G, r R, progress Progress) {
	lastX, lastY := LastRoom(g.Width()), LastRoom(g.Height())
	if lastX < 1 || lastY < 1 {
		return
	}
	st := newStepper(progress, 2*RoomCount(g.Width(), g.Height())-1)

	s := stack.New[core.Point]()
	s.Push(core.Point{X: 1, Y: 1})
	g.Set(1, 1, true)
	st.report(1, 1)

	candidates := make([]core.Point, 0, 4)
	for s.Size() > 0 {
		curr := s.Peek()
		candidates = candidates[:0]

		for _, d := range jumpDirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			if nx > 0 && nx <= lastX && ny > 0 && ny <= lastY && !g.Get(nx, ny) {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			s.Pop()
			continue
		}

		d := candidates[r.NextN(len(candidates))]
		wallX, wallY := curr.X+d.X/2, curr.Y+d.Y/2
		nextX, nextY := curr.X+d.X, curr.Y+d.Y

		g.Set(wallX, wallY, true)
		st.report(wallX, wallY)
		g.Set(nextX, nextY, true)
		st.report(nextX, nextY)

		s.Push(core.Point{X: nextX, Y: nextY})
	}
}

// BacktrackFast is the same walk as Backtrack with a flat slice stack and a neighbour bitmask.
// It draws from r identically, so both produce the same maze for the same seed.
func BacktrackFast[G grid.Grid, R rng.Random](g G, r R, progress Progress) {
	lastX, lastY := LastRoom(g.Width()), LastRoom(g.Height())
	if lastX < 1 || lastY < 1 {
		return
	}
	st := newStepper(progress, 2*RoomCount(g.Width(), g.Height())-1)

	s := make([]core.Point, 1, 64)
	s[0] = core.Point{X: 1, Y: 1}
	g.Set(1, 1, true)
	st.report(1, 1)

	for len(s) > 0 {
		curr := s[len(s)-1]
		x, y := curr.X, curr.Y

		mask := b2i(x-2 > 0 && !g.Get(x-2, y)) |
			b2i(x+2 <= lastX && !g.Get(x+2, y))<<1 |
			b2i(y-2 > 0 && !g.Get(x, y-2))<<2 |
			b2i(y+2 <= lastY && !g.Get(x, y+2))<<3

		count := bits.OnesCount8(uint8(mask))
		if count == 0 {
			s = s[:len(s)-1]
			continue
		}

		// Clear the lowest set bits until the chosen one is lowest
		for k := r.NextN(count); k > 0; k-- {
			mask &= mask - 1
		}
		d := jumpDirs[bits.TrailingZeros8(uint8(mask))]

		wallX, wallY := x+d.X/2, y+d.Y/2
		nextX, nextY := x+d.X, y+d.Y
		g.Set(wallX, wallY, true)
		st.report(wallX, wallY)
		g.Set(nextX, nextY, true)
		st.report(nextX, nextY)

		s = append(s, core.Point{X: nextX, Y: nextY})
	}
}
