package maze

import (
	"github.com/lixenwraith/mazegen/grid"
	"github.com/lixenwraith/mazegen/rng"
)

// kruskalCell is a union-find node: a room, or a wall between two rooms.
// Rooms point at the component they belong to; merging rewrites that pointer for
// every member of the smaller component.
type kruskalCell struct {
	x, y      int
	solid     bool
	component *kruskalComponent
	a, b      *kruskalCell // rooms separated by a wall node
}

type kruskalComponent struct {
	members []*kruskalCell
}

// Kruskal carves a maze with randomized Kruskal. Every room starts as its own component,
// the walls between adjacent rooms are shuffled with Fisher-Yates driven by r, and each
// wall is opened when its rooms are still in different components.
func Kruskal[G grid.Grid, R rng.Random](g G, r R, progress Progress) {
	lastX, lastY := LastRoom(g.Width()), LastRoom(g.Height())
	if lastX < 1 || lastY < 1 {
		return
	}
	cols, rows := RoomsAlong(g.Width()), RoomsAlong(g.Height())
	rooms := make([]kruskalCell, cols*rows)
	st := newStepper(progress, 2*len(rooms)-1)

	for ry := 0; ry < rows; ry++ {
		for rx := 0; rx < cols; rx++ {
			c := &rooms[ry*cols+rx]
			c.x, c.y = 2*rx+1, 2*ry+1
			c.component = &kruskalComponent{members: []*kruskalCell{c}}
			g.Set(c.x, c.y, true)
			st.report(c.x, c.y)
		}
	}

	walls := make([]kruskalCell, 0, (cols-1)*rows+cols*(rows-1))
	for ry := 0; ry < rows; ry++ {
		for rx := 0; rx < cols; rx++ {
			c := &rooms[ry*cols+rx]
			if rx+1 < cols {
				walls = append(walls, kruskalCell{x: c.x + 1, y: c.y, solid: true, a: c, b: &rooms[ry*cols+rx+1]})
			}
			if ry+1 < rows {
				walls = append(walls, kruskalCell{x: c.x, y: c.y + 1, solid: true, a: c, b: &rooms[(ry+1)*cols+rx]})
			}
		}
	}

	for i := len(walls) - 1; i > 0; i-- {
		j := r.NextN(i + 1)
		walls[i], walls[j] = walls[j], walls[i]
	}

	for i := range walls {
		w := &walls[i]
		ca, cb := w.a.component, w.b.component
		if ca == cb {
			continue
		}

		if len(ca.members) < len(cb.members) {
			ca, cb = cb, ca
		}
		for _, m := range cb.members {
			m.component = ca
		}
		ca.members = append(ca.members, cb.members...)
		cb.members = nil

		w.solid = false
		g.Set(w.x, w.y, true)
		st.report(w.x, w.y)
	}
}
