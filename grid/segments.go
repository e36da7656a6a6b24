package grid

import "github.com/lixenwraith/mazegen/core"

// WallSegments scans a finished maze into maximal wall runs over [0,W-1)×[0,H-1).
// Horizontal runs come first, then vertical runs; a wall cell with no horizontal or
// vertical wall neighbour is reported once as a single-cell horizontal segment.
func WallSegments(g Grid) []core.WallSegment {
	w, h := g.Width()-1, g.Height()-1
	if w <= 0 || h <= 0 {
		return nil
	}

	wall := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h && !g.Get(x, y)
	}

	var segs []core.WallSegment

	for y := 0; y < h; y++ {
		for x := 0; x < w; {
			if !wall(x, y) {
				x++
				continue
			}
			start := x
			for x < w && wall(x, y) {
				x++
			}
			end := x - 1
			if end > start || (!wall(start, y-1) && !wall(start, y+1)) {
				segs = append(segs, core.WallSegment{XStart: start, YStart: y, XEnd: end, YEnd: y})
			}
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; {
			if !wall(x, y) {
				y++
				continue
			}
			start := y
			for y < h && wall(x, y) {
				y++
			}
			if end := y - 1; end > start {
				segs = append(segs, core.WallSegment{XStart: x, YStart: start, XEnd: x, YEnd: end})
			}
		}
	}

	return segs
}
