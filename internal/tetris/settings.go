package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// SettingsFromConfig converts a validated game configuration into engine
// settings.
func SettingsFromConfig(cfg config.TetrisConfig) Settings {
	base := ms(cfg.Timing.BaseIntervalMs)
	return Settings{
		Width:        cfg.Grid.Width,
		Height:       cfg.Grid.Height,
		MaxHeight:    cfg.Grid.MaxHeight,
		BaseInterval: base,
		Lookahead:    cfg.Controls.Lookahead,
		Policy: SpeedPolicy{
			BonusScore: cfg.Scoring.BonusScore,
			NextSpeed:  cfg.Scoring.NextSpeed,
			Step:       ms(cfg.Timing.SpeedStepMs),
			Floor:      base - ms(cfg.Timing.FloorOffsetMs),
			Disabled:   !cfg.Difficulty.Enabled,
		},
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
