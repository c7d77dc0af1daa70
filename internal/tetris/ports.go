package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Renderer draws one frame of the playfield. Coordinates are grid cells.
// The controller calls it once per frame and holds no drawing logic itself.
type Renderer interface {
	ClearFrame()
	DrawBackground()
	DrawCell(x, y int, c Color)
	// DrawMessage draws centered text. size is a relative emphasis from 2
	// to 5; verticalFraction places the text at that fraction of the field
	// height, 0 = top, 1 = bottom.
	DrawMessage(text string, size int, verticalFraction float64)
}

// Track names an audio cue.
type Track int

const (
	TrackMusic Track = iota
	TrackLineClear
	TrackGameOver
)

// String returns the track name used in logs.
func (t Track) String() string {
	switch t {
	case TrackMusic:
		return "music"
	case TrackLineClear:
		return "line-clear"
	case TrackGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Audio plays cues on state transitions. Implementations swallow their own
// playback failures.
type Audio interface {
	PlayLoop(t Track)
	PlayOnce(t Track)
	Stop(t Track)
}

// KeyValueStore persists small string values between sessions.
// Get reports ok=false when the key has never been set.
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Scheduler delivers one-shot frame callbacks. core.FrameQueue implements it.
type Scheduler interface {
	RequestFrame(fn core.FrameFunc) core.FrameID
	CancelFrame(id core.FrameID)
}

// Intent is a discrete, already-debounced player request.
type Intent int

const (
	IntentNone Intent = iota
	IntentMoveLeft
	IntentMoveRight
	IntentSoftDrop
	IntentRotate
	IntentPause
	IntentRestart
)

// String returns a human-readable intent name.
func (i Intent) String() string {
	switch i {
	case IntentMoveLeft:
		return "move-left"
	case IntentMoveRight:
		return "move-right"
	case IntentSoftDrop:
		return "soft-drop"
	case IntentRotate:
		return "rotate"
	case IntentPause:
		return "pause"
	case IntentRestart:
		return "restart"
	default:
		return "none"
	}
}

// IntentFor maps a platform action to an engine intent.
func IntentFor(a core.Action) Intent {
	switch a {
	case core.ActionLeft:
		return IntentMoveLeft
	case core.ActionRight:
		return IntentMoveRight
	case core.ActionDown:
		return IntentSoftDrop
	case core.ActionRotate:
		return IntentRotate
	case core.ActionPause:
		return IntentPause
	case core.ActionRestart:
		return IntentRestart
	default:
		return IntentNone
	}
}

type nopAudio struct{}

func (nopAudio) PlayLoop(Track) {}
func (nopAudio) PlayOnce(Track) {}
func (nopAudio) Stop(Track)     {}
