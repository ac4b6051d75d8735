package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/udisondev/horde/internal/model"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Tone describes one generated cue.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Volume   float64 // log2 gain, 0 = unchanged
}

// DefaultTones returns cues for every sound: a short high hit and a long low death groan.
func DefaultTones() map[model.Sound]Tone {
	return map[model.Sound]Tone{
		model.SoundHit:   {Freq: 660, Duration: 60 * time.Millisecond, Volume: -1},
		model.SoundDeath: {Freq: 110, Duration: 400 * time.Millisecond, Volume: 0},
	}
}

// SoundManager mixes one-shot cues into the speaker.
// Safe for concurrent use; Play is a no-op until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	tones       map[model.Sound]Tone
	initialized bool
	played      int
}

// NewSoundManager creates a new sound manager with DefaultTones.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		tones: DefaultTones(),
	}
}

// Initialize sets up the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	slog.Info("audio initialized", "sampleRate", int(sampleRate))
	return nil
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close; clearing the mixer silences output.
	sm.initialized = false
}

// Play mixes the cue for sound. Unknown sounds are ignored.
func (sm *SoundManager) Play(sound model.Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	tone, ok := sm.tones[sound]
	if !ok {
		return
	}

	streamer := &effects.Volume{
		Streamer: beep.Take(sampleRate.N(tone.Duration), NewToneGenerator(sampleRate, tone.Freq, tone.Duration)),
		Base:     2,
		Volume:   tone.Volume,
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	sm.played++
}

// Played returns number of cues mixed since Initialize.
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}
