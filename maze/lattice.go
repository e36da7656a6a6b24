// Package maze carves perfect mazes into grids and solves them.
//
// Mazes live on a lattice: rooms sit at odd coordinates (1,1), (3,1), ... and the cells
// between two rooms are walls that may be opened. Row and column 0 are always wall. For an
// odd side n the last room is n-2 and row n-1 is the closing wall; for an even side the
// last room is n-3 and the final row is an unused trailing wall.
package maze

import "github.com/lixenwraith/mazegen/core"

// LastRoom returns the largest room coordinate on an axis of length n, or a value below 1
// when the axis holds no room
func LastRoom(n int) int {
	return n - 2 - (n+1)%2
}

// RoomsAlong returns the number of rooms on an axis of length n
func RoomsAlong(n int) int {
	last := LastRoom(n)
	if last < 1 {
		return 0
	}
	return (last-1)/2 + 1
}

// RoomCount returns the number of rooms in a w×h maze
func RoomCount(w, h int) int {
	return RoomsAlong(w) * RoomsAlong(h)
}

// EnsureOdd rounds a requested side down to the nearest odd value, minimum 3
func EnsureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

// DefaultStart is the first room
func DefaultStart() core.Point {
	return core.Point{X: 1, Y: 1}
}

// DefaultEnd is the last room of a w×h maze
func DefaultEnd(w, h int) core.Point {
	return core.Point{X: LastRoom(w), Y: LastRoom(h)}
}

func isRoom(x, y int) bool {
	return x&1 == 1 && y&1 == 1
}

// b2i is the bool-to-int conversion used to build neighbour masks
func b2i(b bool) int {
	var v int
	if b {
		v = 1
	}
	return v
}
