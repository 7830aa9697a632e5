// Package audio plays the tower's sound cues through the beep speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	// PitchStep is added to the success pitch for every consecutive perfect
	// placement after the first.
	PitchStep = 0.05
	maxPitch  = 2.0
)

// SoundManager implements tower.Audio. Before Initialize (or when the
// device cannot be opened) it only tracks pitch and stays silent.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	pitch       float64
	initialized bool
	played      int
}

// NewSoundManager creates a silent sound manager at the given volume (0..1).
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		pitch:  1.0,
	}
}

// Initialize opens the audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Close stops every sound. beep has no speaker close, so the device stays
// open with an empty mixer.
func (sm *SoundManager) Close() {
	if sm.isInitialized() {
		speaker.Lock()
		sm.mixer.Clear()
		speaker.Unlock()
	}

	sm.mu.Lock()
	sm.initialized = false
	sm.mu.Unlock()
}

func (sm *SoundManager) isInitialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// PlaySuccessCue plays the placement chime at the current pitch.
func (sm *SoundManager) PlaySuccessCue() {
	sm.mu.Lock()
	pitch := sm.pitch
	sm.mu.Unlock()

	sm.play(SuccessTone(pitch, sm.volume, sampleRate))
}

// PlayFailureCue plays the failure buzz.
func (sm *SoundManager) PlayFailureCue() {
	sm.play(FailureTone(sm.volume, sampleRate))
}

// RaisePitch steps the success pitch up, capped at twice the base.
func (sm *SoundManager) RaisePitch() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.pitch = min(maxPitch, sm.pitch+PitchStep)
}

// ResetPitch returns the success pitch to its base.
func (sm *SoundManager) ResetPitch() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.pitch = 1.0
}

// Pitch returns the current success pitch multiplier.
func (sm *SoundManager) Pitch() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.pitch
}

// Played returns how many cues were sent to the device.
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

func (sm *SoundManager) play(s beep.Streamer) {
	if !sm.isInitialized() {
		return
	}

	// the mixer is read by the speaker goroutine
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()

	sm.mu.Lock()
	sm.played++
	sm.mu.Unlock()
}
