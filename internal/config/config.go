// Package config provides YAML-based game configuration loading and
// difficulty presets for the tetris platform.
package config

import (
	"errors"
	"fmt"
)

// TetrisConfig contains all configuration for the tetris game.
type TetrisConfig struct {
	Grid       TetrisGrid       `yaml:"grid"`
	Timing     TetrisTiming     `yaml:"timing"`
	Scoring    TetrisScoring    `yaml:"scoring"`
	Controls   TetrisControls   `yaml:"controls"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TetrisGrid defines the playfield dimensions.
type TetrisGrid struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	MaxHeight int `yaml:"max_height"`
}

// TetrisTiming defines the drop interval and its progression, in milliseconds.
type TetrisTiming struct {
	BaseIntervalMs int `yaml:"base_interval_ms"`
	SpeedStepMs    int `yaml:"speed_step_ms"`
	FloorOffsetMs  int `yaml:"floor_offset_ms"`
}

// TetrisScoring defines score awards and the speed-up threshold.
type TetrisScoring struct {
	BonusScore int `yaml:"bonus_score"`
	NextSpeed  int `yaml:"next_speed"`
}

// TetrisControls defines input tuning.
type TetrisControls struct {
	Lookahead      int `yaml:"lookahead"`
	MoveCooldownMs int `yaml:"move_cooldown_ms"`
	TapMaxMs       int `yaml:"tap_max_ms"`
	SwipeMinCells  int `yaml:"swipe_min_cells"`
}

// DifficultyConfig toggles speed progression.
type DifficultyConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Validate checks that the configuration describes a playable field.
func (c TetrisConfig) Validate() error {
	var errs []error

	if c.Grid.Width < MinGridWidth {
		errs = append(errs, fmt.Errorf("grid.width %d is below the minimum %d", c.Grid.Width, MinGridWidth))
	}
	if c.Grid.MaxHeight < SpawnDepth {
		errs = append(errs, fmt.Errorf("grid.max_height %d must be at least %d so pieces spawn above it", c.Grid.MaxHeight, SpawnDepth))
	}
	if c.Grid.Height < c.Grid.MaxHeight+MinRowsBelowCeiling {
		errs = append(errs, fmt.Errorf("grid.height %d leaves fewer than %d rows below max_height %d",
			c.Grid.Height, MinRowsBelowCeiling, c.Grid.MaxHeight))
	}
	if c.Timing.BaseIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("timing.base_interval_ms must be positive"))
	}
	if c.Timing.SpeedStepMs < 0 || c.Timing.FloorOffsetMs < 0 {
		errs = append(errs, fmt.Errorf("timing.speed_step_ms and timing.floor_offset_ms must not be negative"))
	}
	if c.Timing.FloorOffsetMs >= c.Timing.BaseIntervalMs && c.Timing.BaseIntervalMs > 0 {
		errs = append(errs, fmt.Errorf("timing.floor_offset_ms %d must be below base_interval_ms %d",
			c.Timing.FloorOffsetMs, c.Timing.BaseIntervalMs))
	}
	if c.Scoring.BonusScore < 0 {
		errs = append(errs, fmt.Errorf("scoring.bonus_score must not be negative"))
	}
	if c.Controls.Lookahead < 1 {
		errs = append(errs, fmt.Errorf("controls.lookahead must be at least 1"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid tetris config: %w", errors.Join(errs...))
	}
	return nil
}

// Field limits. The spawn table spans 4 columns starting 8 cells from the
// left wall of the 20-wide reference grid and reaches row 4.
const (
	MinGridWidth        = 8
	MinRowsBelowCeiling = 6
	SpawnDepth          = 4
)
