// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris play              - Play right away
//	tetris menu              - Pick a difficulty, play, browse high scores
//	tetris serve             - Start SSH server for remote play
//	tetris scores            - Show the high score table
//	tetris list              - List available games
//
// Global flags:
//
//	--fps <rate>         - Set frame rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.tetris/tetris.db)
//	--config <path>      - Use a custom tetris YAML config
//	--difficulty <name>  - easy, normal, hard or fixed
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
	flagMute       bool
)

// Set by PersistentPreRunE.
var (
	logger  *log.Logger
	logFile *os.File
	preset  config.DifficultyPreset
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `Tetris is a terminal falling-block puzzle. Pieces fall one row per
tick; fill a row between the walls to clear it and score. Every few hundred
points the drop speeds up.

Available commands:
  play     - Start a game right away
  menu     - Pick a difficulty, play, and browse high scores
  serve    - Start SSH server for remote play
  scores   - View high scores
  list     - Show available games

Examples:
  tetris play
  tetris play --difficulty hard
  tetris menu
  tetris serve --ssh :2222
  tetris scores`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.tetris/tetris.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&flagMute, "mute", false, "Disable the terminal bell")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup validates the global flags and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	p, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	preset = p

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	// Interactive commands own the terminal, so logs only go to a file.
	var out io.Writer = os.Stderr
	switch cmd.Name() {
	case "play", "menu":
		out = io.Discard
	}
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "tetris",
	})

	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficulty(preset)
	return nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database. Without one the game still runs and
// keeps its best score in memory.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// newEnv wires the platform services for a local session.
func newEnv(store *storage.Store, p config.DifficultyPreset) tui.Env {
	env := tui.Env{
		Audio:  tui.NewTerminalAudio(flagMute, logger),
		Logger: logger,
		Preset: p,
	}
	if store != nil {
		env.Store = store
		env.KV = store
	}

	// Gesture thresholds come from the same config the game loads.
	if cfg, err := config.LoadTetris(flagConfig); err == nil {
		env.Touch = tui.TouchConfigFrom(cfg.Controls)
	}
	return env
}

// closeStore closes the database if one was opened.
func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close scores database", "error", err)
	}
}

// newSeed returns the seed for the next game.
func newSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
