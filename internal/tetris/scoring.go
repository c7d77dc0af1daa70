package tetris

import (
	"strconv"
	"time"
)

// BestScoreKey is the key the best score is stored under.
const BestScoreKey = "score"

// SpeedPolicy converts cleared rows into score and drop-interval changes.
// It is a value type; the zero value awards nothing.
type SpeedPolicy struct {
	BonusScore int           // points per cleared row
	NextSpeed  int           // score gained since the last checkpoint that triggers a speed-up
	Step       time.Duration // interval reduction per speed-up
	Floor      time.Duration // the interval never drops below this
	Disabled   bool          // award score but never speed up
}

// DefaultSpeedPolicy returns the reference policy for a base drop interval.
func DefaultSpeedPolicy(base time.Duration) SpeedPolicy {
	return SpeedPolicy{
		BonusScore: 100,
		NextSpeed:  500,
		Step:       25 * time.Millisecond,
		Floor:      base - 100*time.Millisecond,
	}
}

// Progress is the scoring state the policy advances.
type Progress struct {
	Score        int
	Checkpoint   int // score at the last speed-up
	DropInterval time.Duration
}

// Award applies one cleared row. Multi-row clears call it once per row;
// there is no combo bonus.
func (sp SpeedPolicy) Award(p Progress) Progress {
	p.Score += sp.BonusScore
	if sp.Disabled || sp.NextSpeed <= 0 {
		return p
	}
	if p.Score-p.Checkpoint >= sp.NextSpeed {
		p.Checkpoint = p.Score
		p.DropInterval = max(p.DropInterval-sp.Step, sp.Floor)
	}
	return p
}

// FormatScore encodes a score for the key/value store.
func FormatScore(score int) string {
	return strconv.Itoa(score)
}

// ParseScore decodes a stored score. Empty values decode as zero.
func ParseScore(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}
