package parameter

import "time"

// Explorer Layout
const (
	// StatusLines at the bottom of the explorer screen
	StatusLines = 2

	// FrameInterval is the redraw tick (~30 FPS)
	FrameInterval = 33 * time.Millisecond

	// EventQueueSize buffers terminal events between polls
	EventQueueSize = 100

	// StatusMessageTimeout is how long a transient status message stays
	StatusMessageTimeout = 2 * time.Second

	// TrailLength is how many past positions the explorer draws
	TrailLength = 24
)

// Explorer Glyphs
const (
	WallChar   = '█'
	OpenChar   = ' '
	PlayerChar = '@'
	GoalChar   = '$'
	TrailChar  = '·'
)

// Printer Glyphs
const (
	PrintWall  = '█'
	PrintOpen  = ' '
	PrintPath  = '•'
	PrintStart = 'S'
	PrintEnd   = 'E'
)
