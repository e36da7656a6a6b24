package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/lixenwraith/mazegen/parameter"
)

// SoundManager plays feedback sounds through one speaker mixer. Every method is safe to
// call before or without a successful Initialize; playback is then skipped.
type SoundManager struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	initialized bool
	lastPlayed  [soundTypeCount]time.Time
	now         func() time.Time
}

// NewSoundManager creates a sound manager; a nil cfg uses DefaultConfig
func NewSoundManager(cfg *Config) *SoundManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize opens the speaker. A disabled config leaves the manager silent and is not
// an error.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return errors.Wrap(err, "speaker init")
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Enabled reports whether sounds reach the speaker
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play queues a sound. Repeats of one type closer than MinSoundGap are dropped.
// Returns whether the sound was queued.
func (sm *SoundManager) Play(soundType SoundType) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || soundType < 0 || soundType >= soundTypeCount {
		return false
	}

	now := sm.now()
	if now.Sub(sm.lastPlayed[soundType]) < parameter.MinSoundGap {
		return false
	}

	s := SoundEffect(soundType, sm.cfg)
	if s == nil {
		return false
	}
	sm.lastPlayed[soundType] = now

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	return true
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}
