package audio

// SoundType represents different sound effects
type SoundType int

const (
	SoundBump SoundType = iota // Walked into a wall
	SoundGoal                  // Reached the goal cell
	SoundTile                  // A tile was generated
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"bump", "goal", "tile"}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// ParseSoundType maps a config key back to its SoundType
func ParseSoundType(name string) (SoundType, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundType(i), true
		}
	}
	return 0, false
}
