// Package audio plays the background theme.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	tempo      = 144
	volume     = 0.7
)

// Music is a looping theme that can be paused and resumed.
type Music struct {
	mu      sync.Mutex
	ctrl    *beep.Ctrl
	out     beep.Streamer
	started bool
}

func NewMusic() *Music {
	ctrl := &beep.Ctrl{Streamer: NewTheme(sampleRate, tempo, Korobeiniki)}
	return &Music{
		ctrl: ctrl,
		out:  &effects.Volume{Streamer: ctrl, Base: 2, Volume: math.Log2(volume)},
	}
}

// Start opens the speaker and begins playback.
func (m *Music) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(m.out)
	m.started = true
	return nil
}

// Toggle pauses or resumes the theme and reports whether it is now playing.
func (m *Music) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	m.ctrl.Paused = !m.ctrl.Paused
	return !m.ctrl.Paused
}

// Playing reports whether the theme is audible.
func (m *Music) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return !m.ctrl.Paused
}

// Close stops playback and releases the speaker.
func (m *Music) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.started = false
}
