package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty picker menu",
	Long: `Start in interactive menu mode.

Pick a difficulty with the arrow keys or j/k and press Enter to play.
Press Tab for the high score table. Leaving a paused or finished
game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - High scores
  Q            - Quit

Examples:
  tetris menu
  tetris menu --fps 30
  tetris menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	defer closeStore(store)

	var kv tetris.KeyValueStore = storage.NewMemory()
	if store != nil {
		kv = store
	}

	cfg := runtimeConfig()
	selected := preset

	for {
		menuResult, err := tui.RunMenu(kv, selected, cfg)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		selected = menuResult.Preset

		game, err := registry.Create(tetris.GameID)
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}

		cfg.Seed = newSeed()

		env := newEnv(store, selected)
		env.KV = kv
		quit, err := tui.Run(game, env, cfg)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if quit {
			return nil
		}
	}
}
