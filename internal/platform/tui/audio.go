package tui

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// bell is the terminal bell control character.
const bell = "\a"

// bellSource is implemented by audio adapters whose cues are delivered
// through the program's view output.
type bellSource interface {
	TakeBells() string
}

// TerminalAudio plays cues as terminal bells. Cues are queued and handed
// to the Bubble Tea renderer by Model.View, which owns the output stream.
// Looping tracks have no terminal equivalent; their state is only tracked
// and logged.
type TerminalAudio struct {
	mu      sync.Mutex
	logger  *log.Logger
	muted   bool
	pending int
	playing map[tetris.Track]bool
}

// NewTerminalAudio creates an audio adapter. muted=true keeps it silent.
func NewTerminalAudio(muted bool, logger *log.Logger) *TerminalAudio {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TerminalAudio{
		logger:  logger,
		muted:   muted,
		playing: make(map[tetris.Track]bool),
	}
}

// PlayLoop marks a looping track as playing.
func (a *TerminalAudio) PlayLoop(t tetris.Track) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.playing[t] = true
	a.logger.Debug("audio loop", "track", t)
}

// PlayOnce queues one bell.
func (a *TerminalAudio) PlayOnce(t tetris.Track) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logger.Debug("audio cue", "track", t)
	if a.muted {
		return
	}
	a.pending++
}

// TakeBells drains the queued cues as bell characters.
func (a *TerminalAudio) TakeBells() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := a.pending
	a.pending = 0
	return strings.Repeat(bell, n)
}

// Stop marks a track as stopped.
func (a *TerminalAudio) Stop(t tetris.Track) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.playing, t)
	a.logger.Debug("audio stop", "track", t)
}

// Playing reports whether a looping track is active.
func (a *TerminalAudio) Playing(t tetris.Track) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playing[t]
}
