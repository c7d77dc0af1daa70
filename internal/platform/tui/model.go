package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Env carries the platform services a game session uses.
type Env struct {
	Store  *storage.Store       // score history; nil disables it
	KV     tetris.KeyValueStore // best score; defaults to Store, then memory
	Audio  tetris.Audio
	Logger *log.Logger
	Preset config.DifficultyPreset
	Touch  TouchConfig

	// Renderer styles the game screen; nil means the local terminal.
	Renderer *lipgloss.Renderer

	// ScreenshotDir defaults to ~/.tetris/screenshots.
	ScreenshotDir string
}

// withDefaults fills unset services.
func (e Env) withDefaults() Env {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	if e.KV == nil {
		if e.Store != nil {
			e.KV = e.Store
		} else {
			e.KV = storage.NewMemory()
		}
	}
	if e.Touch == (TouchConfig{}) {
		e.Touch = TouchConfigFrom(config.DefaultTetrisConfig().Controls)
	}
	return e
}

// Optional game capabilities, discovered by type assertion so that the
// platform only depends on registry.Game.
type (
	collaboratorUser interface {
		Use(audio tetris.Audio, store tetris.KeyValueStore, logger *log.Logger)
	}
	presetSetter interface {
		SetPreset(p config.DifficultyPreset)
	}
	linesCounter interface {
		Lines() int
	}
)

var _ tetris.KeyValueStore = (*storage.Store)(nil)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	painter    *Painter
	env        Env
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	touch      *TouchTracker
	now        func() time.Time

	standalone bool // back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game and wires the
// environment into it.
func NewModel(game registry.Game, env Env, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	env = env.withDefaults()

	if u, ok := game.(collaboratorUser); ok {
		u.Use(env.Audio, env.KV, env.Logger)
	}
	if p, ok := game.(presetSetter); ok && env.Preset != "" {
		p.SetPreset(env.Preset)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		painter:    NewPainter(env.Renderer),
		env:        env,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		touch:      NewTouchTracker(env.Touch),
		now:        time.Now,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if err := m.saveScreenshot(); err != nil {
			m.env.Logger.Warn("screenshot failed", "error", err)
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves only when nothing is in play.
	if action, _ := m.keyMapper.MapKey(msg); action == core.ActionBack {
		s := m.gameState
		if !s.Started || s.Paused || s.GameOver {
			m.backToMenu = true
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

// handleMouse turns taps and drags into actions.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a := m.touch.Handle(msg, m.now(), m.gameState); a != core.ActionNone {
		m.inputFrame.Set(a)
	}
	return m, nil
}

// handleResize processes window resize events. The game pauses itself.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	m.gameState = m.game.State()
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case m.gameState.GameOver && !m.scoreSaved:
		m.saveScore()
		m.scoreSaved = true
	case !m.gameState.GameOver:
		// A restart after game over starts a new record.
		m.scoreSaved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

func (m Model) saveScore() {
	entry := storage.ScoreEntry{
		GameID: m.game.ID(),
		Score:  m.gameState.Score,
		Mode:   string(m.env.Preset),
	}
	if lc, ok := m.game.(linesCounter); ok {
		entry.Lines = lc.Lines()
	}
	m.env.Logger.Info("game finished", "score", entry.Score, "lines", entry.Lines, "mode", entry.Mode)

	if m.env.Store == nil || entry.Score <= 0 {
		return
	}
	if _, err := m.env.Store.SaveScore(entry); err != nil {
		m.env.Logger.Warn("could not save score", "error", err)
	}
}

// saveScreenshot writes the current screen as plain text.
func (m Model) saveScreenshot() error {
	m.game.Render(m.screen)

	dir := m.env.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("tui: cannot find home directory: %w", err)
		}
		dir = filepath.Join(home, ".tetris", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}

	timestamp := m.now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	m.env.Logger.Info("screenshot saved", "path", path)
	return nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	view := m.painter.Render(m.screen)
	if bells, ok := m.env.Audio.(bellSource); ok {
		view += bells.TakeBells()
	}
	return view
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game. It reports
// whether the player quit entirely rather than going back.
func Run(game registry.Game, env Env, cfg core.RuntimeConfig) (quit bool, err error) {
	model := NewModel(game, env, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Taps and drags
	)

	finalModel, err := p.Run()
	if err != nil {
		return true, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return true, nil
	}
	return !m.BackToMenu(), nil
}
