package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset parses a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// Describe returns a one-line summary for menus.
func (p DifficultyPreset) Describe() string {
	switch p {
	case DifficultyEasy:
		return "Slow start (400 ms), speeds up"
	case DifficultyNormal:
		return "Classic pace (300 ms), speeds up"
	case DifficultyHard:
		return "Fast start (200 ms), speeds up"
	case DifficultyFixed:
		return "Config pace, never speeds up"
	default:
		return ""
	}
}

// BaseIntervalForPreset returns the starting drop interval in milliseconds,
// or 0 when the preset keeps the configured value.
func BaseIntervalForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 400
	case DifficultyNormal:
		return 300
	case DifficultyHard:
		return 200
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	if preset == "" {
		return
	}
	cfg.Difficulty.Enabled = true
	if ms := BaseIntervalForPreset(preset); ms > 0 {
		cfg.Timing.BaseIntervalMs = ms
		// Keep the fastest speed reachable above zero.
		if cfg.Timing.FloorOffsetMs >= ms {
			cfg.Timing.FloorOffsetMs = ms / 2
		}
	}
}
