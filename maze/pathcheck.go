package maze

import (
	"github.com/pkg/errors"
	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/mazegen/core"
	"github.com/lixenwraith/mazegen/grid"
)

// ValidatePath checks a solved route against g: it starts at start, ends at end, every step
// moves to an open 4-neighbour, no cell repeats and progress never decreases
func ValidatePath(g grid.Grid, path []core.PathPoint, start, end core.Point) error {
	if len(path) == 0 {
		return errors.New("path is empty")
	}
	if p := path[0].Point(); p != start {
		return errors.Errorf("path starts at %v, expected %v", p, start)
	}
	if p := path[len(path)-1].Point(); p != end {
		return errors.Errorf("path ends at %v, expected %v", p, end)
	}

	seen := mapset.New[core.Point]()
	for i, pp := range path {
		p := pp.Point()
		if p.X < 0 || p.Y < 0 || p.X >= g.Width() || p.Y >= g.Height() || !g.Get(p.X, p.Y) {
			return errors.Errorf("path step %d at %v is not an open cell", i, p)
		}
		if seen.Has(p) {
			return errors.Errorf("path step %d revisits %v", i, p)
		}
		seen.Put(p)

		if i == 0 {
			continue
		}
		prev := path[i-1]
		if abs(p.X-prev.X)+abs(p.Y-prev.Y) != 1 {
			return errors.Errorf("path step %d from %v to %v is not adjacent", i, prev.Point(), p)
		}
		if pp.Progress < prev.Progress {
			return errors.Errorf("path progress drops at step %d: %d after %d", i, pp.Progress, prev.Progress)
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
