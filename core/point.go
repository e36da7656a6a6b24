package core

// Point is a cell coordinate in grid space
type Point struct {
	X, Y int
}

// Add returns p offset by (dx, dy)
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// PathPoint is a solved-path cell tagged with its relative position along the path
// Progress runs 0 (start) to 255 (end)
type PathPoint struct {
	X, Y     int
	Progress uint8
}

// Point drops the progress tag
func (p PathPoint) Point() Point {
	return Point{X: p.X, Y: p.Y}
}

// ProgressAt maps path index i of n points to a progress byte, rounding to nearest.
// The first point is always 0; a single point path never reaches 255.
func ProgressAt(i, n int) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8((i*255*2 + (n - 1)) / (2 * (n - 1)))
}

// WallSegment is a contiguous horizontal or vertical run of wall cells, inclusive on both ends
type WallSegment struct {
	XStart, YStart int
	XEnd, YEnd     int
}

// Len returns the number of cells covered by the segment
func (s WallSegment) Len() int {
	if s.XStart == s.XEnd {
		return s.YEnd - s.YStart + 1
	}
	return s.XEnd - s.XStart + 1
}

// Horizontal reports whether the segment runs along a row
func (s WallSegment) Horizontal() bool {
	return s.YStart == s.YEnd && s.XEnd > s.XStart
}
