package core

// NoLink marks a Rect that carries no solved-path segment
const NoLink = -1

// Rect is a recursive-division work item: a region of open lattice cells plus the seed that
// decides its split. X, Y are the top-left room, W, H are odd spans in cells.
// Left and Right index path link nodes owned by the division pass; they are NoLink unless
// PathPassesThrough is set.
type Rect struct {
	X, Y int
	W, H int
	Seed int32

	Left, Right       int
	PathPassesThrough bool
}

// NewRect creates a rect with no path segment
func NewRect(x, y, w, h int, seed int32) Rect {
	return Rect{X: x, Y: y, W: w, H: h, Seed: seed, Left: NoLink, Right: NoLink}
}

// Intersects reports whether the rect overlaps the window [x, x+w) × [y, y+h)
func (r Rect) Intersects(x, y, w, h int) bool {
	return r.X < x+w && x < r.X+r.W && r.Y < y+h && y < r.Y+r.H
}

// Contains reports whether p lies inside the rect
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Splittable reports whether the rect still encloses a 2×2 open block and needs a wall
func (r Rect) Splittable() bool {
	return r.W >= 3 && r.H >= 3
}
