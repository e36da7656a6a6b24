package maze

import (
	"github.com/lixenwraith/mazegen/core"
	"github.com/lixenwraith/mazegen/grid"
	"github.com/lixenwraith/mazegen/rng"
)

// Recursive division starts from an open interior and adds walls. Every rect reseeds the
// generator from its own tag before deciding its split, so a rect's wall, doorway and child
// seeds are a pure function of the tag. That is what lets a window of the maze be generated
// alone and still match the full maze cell for cell.
//
// Per rect the draws are, in order: axis coin (ties only), wall offset, doorway offset,
// first child seed, second child seed.

// pathLink is an arena node of the solved path threaded through the division
type pathLink struct {
	p    core.Point
	next int
}

type divider[G grid.Grid, R rng.Random] struct {
	g G
	r R

	// Window in logical coordinates
	wx, wy, ww, wh int
	lastX, lastY   int

	st    stepper
	links []pathLink

	splits, scanned int // rects split and wall cells walked, for cost checks
}

// Division carves a full maze by recursive division. r must be freshly seeded with the
// maze seed; the root rect tag is its first draw. The interior starts open without progress
// reports; progress covers only the wall cells the division adds.
func Division[G grid.Grid, R rng.Random](g G, r R, progress Progress) {
	DivisionPart(g, r, g.Width(), g.Height(), progress)
}

// DivisionPart carves the window covered by g (its Origin and size) of a logical
// width×height division maze. Cells of the window outside the logical maze are wall.
// r must be freshly seeded with the maze seed.
// Work is bounded by the window area plus the depth of the recursion, not by width×height.
func DivisionPart[G grid.Grid, R rng.Random](g G, r R, width, height int, progress Progress) {
	divisionPart(g, r, width, height, progress)
}

func divisionPart[G grid.Grid, R rng.Random](g G, r R, width, height int, progress Progress) *divider[G, R] {
	d := newDivider(g, r, width, height, progress)
	d.fillWindow()
	if d.lastX < 1 || d.lastY < 1 {
		return d
	}
	root := core.NewRect(1, 1, d.lastX, d.lastY, r.Next())
	d.run(root)
	return d
}

// DivisionWithPath carves a full maze like Division and returns the solved path from
// DefaultStart to DefaultEnd, collected from the doorways as the recursion crosses them.
func DivisionWithPath[G grid.Grid, R rng.Random](g G, r R, progress Progress) []core.Point {
	d := newDivider(g, r, g.Width(), g.Height(), progress)
	d.fillWindow()
	if d.lastX < 1 || d.lastY < 1 {
		return nil
	}

	start, end := DefaultStart(), DefaultEnd(g.Width(), g.Height())
	d.links = append(d.links, pathLink{p: start, next: core.NoLink})
	right := 0
	if end != start {
		d.links[0].next = 1
		d.links = append(d.links, pathLink{p: end, next: core.NoLink})
		right = 1
	}

	root := core.NewRect(1, 1, d.lastX, d.lastY, r.Next())
	root.Left, root.Right, root.PathPassesThrough = 0, right, true
	d.run(root)

	path := make([]core.Point, 0, len(d.links))
	for i := 0; i != core.NoLink; i = d.links[i].next {
		path = append(path, d.links[i].p)
	}
	return path
}

func newDivider[G grid.Grid, R rng.Random](g G, r R, width, height int, progress Progress) *divider[G, R] {
	ox, oy := g.Origin()
	lastX, lastY := LastRoom(width), LastRoom(height)
	total := 0
	if lastX >= 1 && lastY >= 1 {
		total = lastX*lastY - (2*RoomCount(width, height) - 1)
	}
	return &divider[G, R]{
		g: g, r: r,
		wx: ox, wy: oy, ww: g.Width(), wh: g.Height(),
		lastX: lastX, lastY: lastY,
		st: newStepper(progress, total),
	}
}

// fillWindow opens every window cell inside the maze interior and walls the rest
func (d *divider[G, R]) fillWindow() {
	for ly := 0; ly < d.wh; ly++ {
		y := d.wy + ly
		rowOpen := y >= 1 && y <= d.lastY
		for lx := 0; lx < d.ww; lx++ {
			x := d.wx + lx
			d.g.Set(lx, ly, rowOpen && x >= 1 && x <= d.lastX)
		}
	}
}

func (d *divider[G, R]) run(root core.Rect) {
	if !root.Splittable() {
		d.finishPath(root)
		return
	}

	work := make([]core.Rect, 1, 64)
	work[0] = root
	for len(work) > 0 {
		rect := work[len(work)-1]
		work = work[:len(work)-1]

		a, b := d.split(rect)
		for _, child := range [2]core.Rect{a, b} {
			if child.Splittable() {
				if child.PathPassesThrough || child.Intersects(d.wx, d.wy, d.ww, d.wh) {
					work = append(work, child)
				}
				continue
			}
			d.finishPath(child)
		}
	}
}

// split draws the rect's wall and doorway, carves the part inside the window and returns
// both children with fresh seeds and their share of the path
func (d *divider[G, R]) split(rect core.Rect) (core.Rect, core.Rect) {
	r := d.r
	r.Reinitialise(rect.Seed)
	d.splits++

	vertical := rect.W > rect.H
	if rect.W == rect.H {
		vertical = r.NextN(2) == 0
	}

	var first, second core.Rect
	var door, nearFirst, nearSecond core.Point

	if vertical {
		wallX := rect.X + 1 + 2*r.NextN((rect.W-1)/2)
		doorY := rect.Y + 2*r.NextN((rect.H+1)/2)
		first = core.NewRect(rect.X, rect.Y, wallX-rect.X, rect.H, r.Next())
		second = core.NewRect(wallX+1, rect.Y, rect.X+rect.W-wallX-1, rect.H, r.Next())
		door = core.Point{X: wallX, Y: doorY}
		nearFirst, nearSecond = door.Add(-1, 0), door.Add(1, 0)

		if wallX >= d.wx && wallX < d.wx+d.ww {
			lo, hi := max(rect.Y, d.wy), min(rect.Y+rect.H, d.wy+d.wh)
			for y := lo; y < hi; y++ {
				if y != doorY {
					d.carve(wallX, y)
				}
			}
			d.scanned += max(hi-lo, 0)
		}
	} else {
		wallY := rect.Y + 1 + 2*r.NextN((rect.H-1)/2)
		doorX := rect.X + 2*r.NextN((rect.W+1)/2)
		first = core.NewRect(rect.X, rect.Y, rect.W, wallY-rect.Y, r.Next())
		second = core.NewRect(rect.X, wallY+1, rect.W, rect.Y+rect.H-wallY-1, r.Next())
		door = core.Point{X: doorX, Y: wallY}
		nearFirst, nearSecond = door.Add(0, -1), door.Add(0, 1)

		if wallY >= d.wy && wallY < d.wy+d.wh {
			lo, hi := max(rect.X, d.wx), min(rect.X+rect.W, d.wx+d.ww)
			for x := lo; x < hi; x++ {
				if x != doorX {
					d.carve(x, wallY)
				}
			}
			d.scanned += max(hi-lo, 0)
		}
	}

	if rect.PathPassesThrough {
		d.threadPath(rect, &first, &second, door, nearFirst, nearSecond)
	}
	return first, second
}

// carve turns a logical cell to wall when it falls inside the window
func (d *divider[G, R]) carve(x, y int) {
	lx, ly := x-d.wx, y-d.wy
	if lx < 0 || ly < 0 || lx >= d.ww || ly >= d.wh {
		return
	}
	d.g.Set(lx, ly, false)
	d.st.report(x, y)
}

// threadPath hands the rect's path segment to its children. When the endpoints end up on
// opposite sides the doorway joins them: left .. nearA, door, nearB .. right.
func (d *divider[G, R]) threadPath(rect core.Rect, first, second *core.Rect, door, nearFirst, nearSecond core.Point) {
	left, right := rect.Left, rect.Right
	a, b := d.links[left].p, d.links[right].p
	aFirst, bFirst := first.Contains(a), first.Contains(b)

	if aFirst == bFirst {
		side := second
		if aFirst {
			side = first
		}
		side.Left, side.Right, side.PathPassesThrough = left, right, true
		return
	}

	nearA, nearB := nearSecond, nearFirst
	sideA, sideB := second, first
	if aFirst {
		nearA, nearB = nearFirst, nearSecond
		sideA, sideB = first, second
	}

	// Reuse an endpoint node when the doorway sits right next to it
	idxA := left
	if nearA != a {
		idxA = d.addLink(nearA)
	}
	idxDoor := d.addLink(door)
	idxB := right
	if nearB != b {
		idxB = d.addLink(nearB)
	}

	if idxA != left {
		d.links[left].next = idxA
	}
	d.links[idxA].next = idxDoor
	d.links[idxDoor].next = idxB
	if idxB != right {
		d.links[idxB].next = right
	}

	sideA.Left, sideA.Right, sideA.PathPassesThrough = left, idxA, true
	sideB.Left, sideB.Right, sideB.PathPassesThrough = idxB, right, true
}

// finishPath fills a straight corridor rect's path segment with the cells between its ends
func (d *divider[G, R]) finishPath(rect core.Rect) {
	if !rect.PathPassesThrough || rect.Left == rect.Right {
		return
	}
	a, b := d.links[rect.Left].p, d.links[rect.Right].p
	if a == b {
		return
	}

	dx, dy := sign(b.X-a.X), sign(b.Y-a.Y)
	prev := rect.Left
	for p := a.Add(dx, dy); p != b; p = p.Add(dx, dy) {
		idx := d.addLink(p)
		d.links[prev].next = idx
		prev = idx
	}
	d.links[prev].next = rect.Right
}

func (d *divider[G, R]) addLink(p core.Point) int {
	d.links = append(d.links, pathLink{p: p, next: core.NoLink})
	return len(d.links) - 1
}

func sign(v int) int {
	return b2i(v > 0) - b2i(v < 0)
}
