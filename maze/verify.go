package maze

import (
	"github.com/spakin/disjoint"

	"github.com/lixenwraith/mazegen/core"
	"github.com/lixenwraith/mazegen/grid"
)

// IsPerfect is the test oracle: flood the walls reachable from (0,0) on a clone and require
// every cell of the trimmed (W-1)×(H-1) region to end up set. A loop in the open cells
// encloses a wall island the flood cannot reach.
func IsPerfect(g grid.Grid) bool {
	w, h := g.Width(), g.Height()
	if w < 2 || h < 2 {
		return false
	}
	c := g.Clone()

	stack := []core.Point{{X: 0, Y: 0}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h || c.Get(p.X, p.Y) {
			continue
		}
		c.Set(p.X, p.Y, true)
		stack = append(stack, p.Add(1, 0), p.Add(-1, 0), p.Add(0, 1), p.Add(0, -1))
	}

	for y := 0; y < h-1; y++ {
		for x := 0; x < w-1; x++ {
			if !c.Get(x, y) {
				return false
			}
		}
	}
	return true
}

// Report describes the open-cell graph of a grid
type Report struct {
	OpenCells  int
	Components int // connected components of open cells
	Cycles     int // edges that closed a loop
	OpenBlocks int // 2×2 all-open squares
	RoomsOpen  int
	Rooms      int
}

// Perfect reports a single loop-free component with every room open and no open squares
func (r Report) Perfect() bool {
	return r.Components == 1 && r.Cycles == 0 && r.OpenBlocks == 0 && r.RoomsOpen == r.Rooms
}

// Verify checks connectivity and acyclicity of the open cells with a disjoint-set forest
func Verify(g grid.Grid) Report {
	w, h := g.Width(), g.Height()
	rep := Report{Rooms: RoomCount(w, h)}
	elems := make([]*disjoint.Element, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !g.Get(x, y) {
				continue
			}
			rep.OpenCells++
			if isRoom(x, y) && x <= LastRoom(w) && y <= LastRoom(h) {
				rep.RoomsOpen++
			}
			e := disjoint.NewElement()
			elems[y*w+x] = e

			if x > 0 {
				if left := elems[y*w+x-1]; left != nil {
					rep.Cycles += join(e, left)
				}
			}
			if y > 0 {
				if up := elems[(y-1)*w+x]; up != nil {
					rep.Cycles += join(e, up)
				}
				if x > 0 && elems[(y-1)*w+x-1] != nil && elems[y*w+x-1] != nil && elems[(y-1)*w+x] != nil {
					rep.OpenBlocks++
				}
			}
		}
	}

	roots := make(map[*disjoint.Element]struct{})
	for _, e := range elems {
		if e != nil {
			roots[e.Find()] = struct{}{}
		}
	}
	rep.Components = len(roots)
	return rep
}

// join unions two elements and returns 1 when they were already connected
func join(a, b *disjoint.Element) int {
	if a.Find() == b.Find() {
		return 1
	}
	disjoint.Union(a, b)
	return 0
}
