package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// TouchConfig holds the gesture thresholds.
type TouchConfig struct {
	TapMax        time.Duration // longest press that still counts as a tap
	SwipeMinCells int           // drag distance, in terminal cells, that makes a swipe
	MoveCooldown  time.Duration // minimum time between repeated swipe moves
}

// TouchConfigFrom reads the gesture thresholds from the game config.
func TouchConfigFrom(c config.TetrisControls) TouchConfig {
	return TouchConfig{
		TapMax:        time.Duration(c.TapMaxMs) * time.Millisecond,
		SwipeMinCells: max(c.SwipeMinCells, 1),
		MoveCooldown:  time.Duration(c.MoveCooldownMs) * time.Millisecond,
	}
}

// TouchTracker turns mouse press/drag/release sequences into game actions:
// a short press without movement is a tap, a drag is a swipe that repeats
// while held, throttled by the move cooldown. Offsets are measured from
// where the press started.
type TouchTracker struct {
	cfg TouchConfig

	active   bool
	start    core.Point
	startAt  time.Time
	lastMove time.Time
	moved    bool
}

// NewTouchTracker creates a tracker with the given thresholds.
func NewTouchTracker(cfg TouchConfig) *TouchTracker {
	return &TouchTracker{cfg: cfg}
}

// Handle consumes one mouse event and returns the action it completes, if
// any. A tap rotates while a game runs, resumes a paused game and
// restarts otherwise.
func (t *TouchTracker) Handle(msg tea.MouseMsg, now time.Time, state core.GameState) core.Action {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return core.ActionNone
	}

	pos := core.Point{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		t.active = true
		t.start = pos
		t.startAt = now
		t.lastMove = time.Time{}
		t.moved = false
		return core.ActionNone

	case tea.MouseActionMotion:
		if !t.active {
			return core.ActionNone
		}
		return t.swipe(pos, now)

	case tea.MouseActionRelease:
		if !t.active {
			return core.ActionNone
		}
		t.active = false
		if t.moved {
			return core.ActionNone
		}
		if now.Sub(t.startAt) > t.cfg.TapMax || t.distance(pos) >= t.cfg.SwipeMinCells {
			return core.ActionNone
		}
		return tapAction(state)
	}

	return core.ActionNone
}

func (t *TouchTracker) swipe(pos core.Point, now time.Time) core.Action {
	dx := pos.X - t.start.X
	dy := pos.Y - t.start.Y
	if core.Abs(dx) < t.cfg.SwipeMinCells && core.Abs(dy) < t.cfg.SwipeMinCells {
		return core.ActionNone
	}
	if !t.lastMove.IsZero() && now.Sub(t.lastMove) < t.cfg.MoveCooldown {
		return core.ActionNone
	}

	t.moved = true
	t.lastMove = now

	if core.Abs(dx) > core.Abs(dy) {
		if dx > 0 {
			return core.ActionRight
		}
		return core.ActionLeft
	}
	if dy > 0 {
		return core.ActionDown
	}
	// Swiping up has no move of its own.
	return core.ActionNone
}

func (t *TouchTracker) distance(pos core.Point) int {
	return max(core.Abs(pos.X-t.start.X), core.Abs(pos.Y-t.start.Y))
}

func tapAction(state core.GameState) core.Action {
	switch {
	case state.Paused && !state.GameOver:
		if !state.Started {
			return core.ActionRestart
		}
		return core.ActionPause
	case state.Started && !state.GameOver:
		return core.ActionRotate
	default:
		return core.ActionRestart
	}
}
