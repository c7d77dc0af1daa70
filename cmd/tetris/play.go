package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing right away. The game waits for Enter on its start screen.

Controls:
  Left/Right, A/D  - Move
  Up, W            - Rotate
  Down, S          - Soft drop
  Space/P          - Pause
  Enter/R          - Start / restart
  Esc/B            - Quit (when paused or over)
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit
  Mouse            - Tap to rotate, drag to move

Difficulty options:
  easy   - Slow start, speeds up as you score
  normal - Default speed, speeds up as you score
  hard   - Fast start, speeds up as you score
  fixed  - Config speed, never speeds up

Examples:
  tetris play
  tetris play --difficulty hard
  tetris play --config ./my-tetris.yaml
  tetris play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := tetris.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'tetris list' to see available games", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	defer closeStore(store)

	cfg := runtimeConfig()
	cfg.Seed = newSeed()

	if _, err := tui.Run(game, newEnv(store, preset), cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
