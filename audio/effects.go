package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/mazegen/parameter"
)

// WaveType selects an oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// shape maps a phase in [0,1) to an amplitude in [-1,1]
func (w WaveType) shape(phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// tone is a fixed-length periodic wave
type tone struct {
	wave      WaveType
	phase     float64
	step      float64 // phase advance per sample
	remaining int
}

// NewOscillator streams duration worth of a freq Hz wave
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &tone{
		wave:      wave,
		step:      freq / float64(rate),
		remaining: rate.N(duration),
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	n := min(len(samples), t.remaining)
	for i := 0; i < n; i++ {
		v := t.wave.shape(t.phase)
		samples[i] = [2]float64{v, v}
		_, t.phase = math.Modf(t.phase + t.step)
	}
	t.remaining -= n
	return n, n > 0
}

func (t *tone) Err() error { return nil }

// envelope ramps the wrapped stream in over attack samples and out over release samples,
// cutting it at length
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	length   int
}

// NewEnvelope wraps s with a linear attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		length:   rate.N(duration),
	}
}

// gain at sample index pos; release wins where it overlaps the attack
func (e *envelope) gain(pos int) float64 {
	left := e.length - pos
	switch {
	case e.release > 0 && left <= e.release && pos >= e.attack:
		return float64(left) / float64(e.release)
	case e.release > 0 && left <= e.release && pos < e.attack:
		return min(float64(left)/float64(e.release), float64(pos)/float64(e.attack))
	case pos < e.attack:
		return float64(pos) / float64(e.attack)
	}
	return 1
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.pos >= e.length {
		return 0, false
	}
	n, ok := e.streamer.Stream(samples[:min(len(samples), e.length-e.pos)])
	for i := 0; i < n; i++ {
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateBumpSound generates a dull thud for walking into a wall
func CreateBumpSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(parameter.BumpSoundFrequency, parameter.BumpSoundDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, parameter.BumpSoundDuration, parameter.BumpSoundAttack, parameter.BumpSoundRelease, rate)

	return newVolume(shaped, cfg.EffectVolumes[SoundBump]*cfg.MasterVolume)
}

// CreateGoalSound generates a two-note chime for reaching the goal
func CreateGoalSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	n1 := NewOscillator(parameter.GoalSoundNote1Frequency, parameter.GoalSoundNote1Duration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, parameter.GoalSoundNote1Duration, parameter.GoalSoundAttack, parameter.GoalSoundNote1Release, rate)

	n2 := NewOscillator(parameter.GoalSoundNote2Frequency, parameter.GoalSoundNote2Duration, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, parameter.GoalSoundNote2Duration, parameter.GoalSoundAttack, parameter.GoalSoundNote2Release, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), cfg.EffectVolumes[SoundGoal]*cfg.MasterVolume)
}

// CreateTileSound generates a short tick when a tile is generated.
// Returns nil when the tone is above the sample rate's Nyquist limit.
func CreateTileSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	sine, err := generators.SineTone(rate, parameter.TileSoundFrequency)
	if err != nil {
		return nil
	}
	tick := beep.Take(rate.N(parameter.TileSoundDuration), sine)

	return newVolume(tick, cfg.EffectVolumes[SoundTile]*cfg.MasterVolume)
}

// SoundEffect returns the streamer for the given type, nil for unknown types
func SoundEffect(soundType SoundType, cfg *Config) beep.Streamer {
	switch soundType {
	case SoundBump:
		return CreateBumpSound(cfg)
	case SoundGoal:
		return CreateGoalSound(cfg)
	case SoundTile:
		return CreateTileSound(cfg)
	default:
		return nil
	}
}
