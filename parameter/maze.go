package parameter

import "time"

// Generation Defaults
const (
	// DefaultWidth and DefaultHeight size a maze when none is given
	DefaultWidth  = 41
	DefaultHeight = 21

	// DefaultAlgorithm is the fast backtracker tier
	DefaultAlgorithm = "backtrack-fast"

	// DefaultGridKind is bit-packed storage
	DefaultGridKind = "bit"

	// DefaultRandomKind is the reference subtractive generator
	DefaultRandomKind = "net"

	// MinMazeSide is the smallest side that still holds a room
	MinMazeSide = 3

	// MaxMazeSide bounds fully materialized mazes (bit grid of 64k×64k is 512 MiB)
	MaxMazeSide = 65536
)

// Tiled Exploration
const (
	// DefaultTileSize is the tile edge in cells
	DefaultTileSize = 64

	// DefaultTileCapacity is resident tiles per cache
	DefaultTileCapacity = 16

	// DefaultExploreSide is the logical side of the explorer's division maze
	DefaultExploreSide = 1 << 20

	// MaxExploreSide bounds the explorer's logical maze
	MaxExploreSide = 1 << 30
)

// Progress Reporting
const (
	// ProgressInterval throttles CLI progress output
	ProgressInterval = 100 * time.Millisecond

	// ProgressBarWidth in characters
	ProgressBarWidth = 40
)
