// Package audio plays short sound cues through the system speaker
package audio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SoundManager plays cues on a shared mixer
// Every method is a no-op until Initialize succeeds, so the game runs without a device
// The speaker is opened at most once per process; Cleanup only silences it
type SoundManager struct {
	mu         sync.Mutex
	cfg        *AudioConfig
	sampleRate beep.SampleRate
	mixer      *beep.Mixer
	opened     bool
	active     bool
}

// NewSoundManager creates a sound manager, a nil config uses defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:        cfg,
		sampleRate: beep.SampleRate(cfg.SampleRate),
		mixer:      &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer
// After Cleanup it resumes playback on the already open speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.active {
		return nil
	}
	if !sm.cfg.Enabled {
		return fmt.Errorf("audio disabled by configuration")
	}
	if sm.opened {
		sm.active = true
		return nil
	}

	if err := speaker.Init(sm.sampleRate, sm.sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.opened = true
	sm.active = true
	return nil
}

// Initialized reports whether cues are being played
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.active
}

// Play queues a cue on the mixer without blocking on playback
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.active {
		return
	}

	s, err := buildCue(sm.sampleRate, c, sm.cfg.MasterVolume)
	if err != nil {
		log.Printf("audio: %v", err)
		return
	}

	// The mixer is read by the speaker goroutine
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Cleanup stops all sounds and ignores further cues until Initialize
// The speaker stays open since the output context can only be created once
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.active {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.active = false
}
