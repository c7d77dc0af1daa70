package tetris

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// GameID is the registry and score-table identifier.
const GameID = "tetris"

// Layout constants for the terminal view.
const (
	hudWidth   = 24 // columns right of the field
	hudGap     = 2
	headerRows = 1 // title row above the field
	footerRows = 1 // status row below the field
)

// Package-level variables for config
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the YAML config file used by the next Reset.
// Empty means the default search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficulty sets the preset applied on the next Reset.
func SetDifficulty(p config.DifficultyPreset) {
	difficultyPreset = p
}

// GetDifficulty returns the currently selected preset.
func GetDifficulty() config.DifficultyPreset {
	return difficultyPreset
}

// Game adapts a Controller to the registry.Game frame contract. Every Step
// advances a virtual clock by one platform frame and fires the frame queue,
// so the controller sees the same scheduling it would under a display
// refresh callback.
type Game struct {
	cfgPath  string
	preset   config.DifficultyPreset
	cfg      config.TetrisConfig
	ctrl     *Controller
	frames   *core.FrameQueue
	clock    time.Duration
	perFrame time.Duration

	audio  Audio
	store  KeyValueStore
	logger *log.Logger

	screenW   int
	screenH   int
	cellWidth int
	showHUD   bool
	tooSmall  bool
}

// New creates a tetris game with inert collaborators, using the package
// config path and difficulty.
func New() *Game {
	return &Game{
		cfgPath: configPath,
		preset:  difficultyPreset,
		logger:  log.New(io.Discard),
	}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Use wires the platform collaborators. Call it before Reset; a nil value
// leaves the previous collaborator in place.
func (g *Game) Use(audio Audio, store KeyValueStore, logger *log.Logger) {
	if audio != nil {
		g.audio = audio
	}
	if store != nil {
		g.store = store
	}
	if logger != nil {
		g.logger = logger
	}
}

// SetPreset overrides the difficulty for the next Reset of this game only.
func (g *Game) SetPreset(p config.DifficultyPreset) {
	g.preset = p
}

// Preset returns the difficulty this game resets with.
func (g *Game) Preset() config.DifficultyPreset {
	return g.preset
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset loads the configuration and builds a fresh idle controller.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadTetris(g.cfgPath)
	if err != nil {
		g.logger.Warn("using default config", "path", g.cfgPath, "error", err)
		cfg = config.DefaultTetrisConfig()
	}
	config.ApplyTetrisPreset(&cfg, g.preset)
	g.cfg = cfg

	tickRate := rc.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.perFrame = time.Second / time.Duration(tickRate)
	g.clock = 0
	g.frames = core.NewFrameQueue()

	g.ctrl = NewController(SettingsFromConfig(cfg), Options{
		Audio:     g.audio,
		Store:     g.store,
		Scheduler: g.frames,
		Logger:    g.logger,
		Rand:      rand.New(rand.NewSource(rc.Seed)),
	})

	g.layout(rc.ScreenW, rc.ScreenH)
}

// Resize relayouts the view. A running game pauses, as the player has
// most likely lost sight of the field.
func (g *Game) Resize(w, h int) {
	g.layout(w, h)
	if g.ctrl != nil {
		g.ctrl.Pause()
	}
}

func (g *Game) layout(w, h int) {
	g.screenW = w
	g.screenH = h

	cols, rows := g.cfg.Grid.Width, g.cfg.Grid.Height
	needH := rows + headerRows + footerRows

	switch {
	case w >= 2*cols+hudGap+hudWidth:
		g.cellWidth, g.showHUD = 2, true
	case w >= cols+hudGap+hudWidth:
		g.cellWidth, g.showHUD = 1, true
	default:
		g.cellWidth, g.showHUD = 1, false
	}
	g.tooSmall = w < cols || h < needH
}

// Controller exposes the engine for tests and tooling.
func (g *Game) Controller() *Controller {
	return g.ctrl
}

// Lines returns the rows cleared in the current session.
func (g *Game) Lines() int {
	if g.ctrl == nil {
		return 0
	}
	return g.ctrl.Lines()
}

// Config returns the configuration loaded by the last Reset.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}

// Step applies the queued actions in order, then advances one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.ctrl == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Actions() {
		g.ctrl.Handle(IntentFor(a))
	}

	before := g.ctrl.Ticks()
	g.clock += g.perFrame
	g.frames.Fire(g.clock)

	return core.StepResult{
		State:   g.State(),
		Dropped: g.ctrl.Ticks() != before,
	}
}

// State returns the platform view of the game state.
func (g *Game) State() core.GameState {
	if g.ctrl == nil {
		return core.GameState{}
	}
	s := g.ctrl.State()
	return core.GameState{
		Score:     g.ctrl.Score(),
		BestScore: g.ctrl.BestScore(),
		Started:   s != StateIdle,
		GameOver:  s == StateGameOver,
		Paused:    s == StatePaused || g.tooSmall,
	}
}

// Controls returns the key help shown beside the field.
func (g *Game) Controls() []string {
	return []string{
		"←/→  move",
		"↑    rotate",
		"↓    soft drop",
		"SPC  pause",
		"ENT  start/restart",
		"B    menu",
		"Q    quit",
	}
}

// Render draws the field, the HUD and the state overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.ctrl == nil {
		g.renderTooSmall(dst)
		return
	}

	cols, rows := g.cfg.Grid.Width, g.cfg.Grid.Height
	fieldW := cols * g.cellWidth
	totalW := fieldW
	if g.showHUD {
		totalW += hudGap + hudWidth
	}
	originX := max((g.screenW-totalW)/2, 0)
	originY := max((g.screenH-rows-headerRows-footerRows)/2, 0) + headerRows

	title := "T E T R I S"
	dst.DrawTextColored(originX+(fieldW-len([]rune(title)))/2, originY-1, title, core.ColorBrightCyan)

	field := NewScreenRenderer(dst, core.Point{X: originX, Y: originY}, cols, rows, g.cellWidth)
	g.ctrl.Render(field)

	status := g.ctrl.State().String()
	dst.DrawTextColored(originX, originY+rows, fmt.Sprintf("[%s]", status), core.ColorGray)

	if g.showHUD {
		g.renderHUD(dst, originX+fieldW+hudGap, originY)
	}
}

func (g *Game) renderHUD(dst *core.Screen, x, y int) {
	c := g.ctrl
	lines := []struct {
		text  string
		color core.Color
	}{
		{fmt.Sprintf("Score  %d", c.Score()), core.ColorBrightWhite},
		{fmt.Sprintf("Best   %d", c.BestScore()), core.ColorBrightYellow},
		{fmt.Sprintf("Lines  %d", c.Lines()), core.ColorWhite},
		{fmt.Sprintf("Speed  %d ms", c.DropInterval().Milliseconds()), core.ColorWhite},
		{fmt.Sprintf("Mode   %s", g.modeName()), core.ColorWhite},
	}
	for i, l := range lines {
		dst.DrawTextColored(x, y+i, l.text, l.color)
	}

	y += len(lines) + 1
	dst.DrawTextColored(x, y, "Controls", core.ColorCyan)
	for i, line := range g.Controls() {
		dst.DrawTextColored(x, y+1+i, line, core.ColorGray)
	}
}

func (g *Game) modeName() string {
	if g.preset == "" {
		return "normal"
	}
	return string(g.preset)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	need := fmt.Sprintf("Need at least %dx%d", g.cfg.Grid.Width, g.cfg.Grid.Height+headerRows+footerRows)
	dst.DrawTextCentered(y+1, need)
}
