package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer; longer means fewer underruns, more latency
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap between two plays of the same sound
	MinSoundGap = 50 * time.Millisecond
)

// Bump Sound (walking into a wall)
const (
	BumpSoundFrequency = 110.0
	BumpSoundDuration  = 70 * time.Millisecond
	BumpSoundAttack    = 5 * time.Millisecond
	BumpSoundRelease   = 30 * time.Millisecond
)

// Goal Sound (two-note chime)
const (
	GoalSoundNote1Frequency = 987.77  // B5
	GoalSoundNote2Frequency = 1318.51 // E6
	GoalSoundNote1Duration  = 90 * time.Millisecond
	GoalSoundNote2Duration  = 320 * time.Millisecond
	GoalSoundAttack         = 5 * time.Millisecond
	GoalSoundNote1Release   = 40 * time.Millisecond
	GoalSoundNote2Release   = 240 * time.Millisecond
)

// Tile Sound (a tile was generated)
const (
	TileSoundFrequency = 1760.0
	TileSoundDuration  = 25 * time.Millisecond
)
