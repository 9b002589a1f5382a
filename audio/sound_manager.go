// Package audio synthesizes the spaceship's engine and power-up sounds with
// beep. A SoundManager satisfies starship.Sound.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundManager mixes the thruster hum and the power-up chime. All methods
// are safe for concurrent use and do nothing until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	volume      float64
	thruster    *beep.Ctrl
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a sound manager playing at volume, clamped to [0, 1].
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		volume: math.Max(0, math.Min(1, volume)),
		mixer:  &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences every sound. beep has no speaker Close, so the mixer is
// only cleared.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	if sm.thruster != nil {
		sm.thruster.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()
	sm.thruster = nil
	sm.initialized = false
}

// ThrusterOn starts the looping engine hum. No-op while it is playing.
func (sm *SoundManager) ThrusterOn() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	if sm.thruster != nil {
		sm.thruster.Paused = false
		return
	}
	sm.thruster = &beep.Ctrl{Streamer: withVolume(NewHumGenerator(sampleRate), sm.volume)}
	sm.mixer.Add(sm.thruster)
}

// ThrusterOff pauses the engine hum.
func (sm *SoundManager) ThrusterOff() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.thruster == nil {
		return
	}
	speaker.Lock()
	sm.thruster.Paused = true
	speaker.Unlock()
}

// PowerUp plays the rising power-up chime once.
func (sm *SoundManager) PowerUp() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	chime := beep.Take(sampleRate.N(chimeDuration), NewChimeGenerator(sampleRate))
	speaker.Lock()
	sm.mixer.Add(withVolume(chime, sm.volume))
	speaker.Unlock()
}

// Thrusting reports whether the engine hum is playing.
func (sm *SoundManager) Thrusting() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.thruster != nil && !sm.thruster.Paused
}

// withVolume scales s by the linear volume vol. Zero is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
