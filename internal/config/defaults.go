package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Grid: TetrisGrid{
			Width:     20,
			Height:    30,
			MaxHeight: 4,
		},
		Timing: TetrisTiming{
			BaseIntervalMs: 300,
			SpeedStepMs:    25,
			FloorOffsetMs:  100,
		},
		Scoring: TetrisScoring{
			BonusScore: 100,
			NextSpeed:  500,
		},
		Controls: TetrisControls{
			Lookahead:      2,
			MoveCooldownMs: 150,
			TapMaxMs:       300,
			SwipeMinCells:  2,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tetris":
		return defaultTetrisYAML
	default:
		return nil
	}
}
