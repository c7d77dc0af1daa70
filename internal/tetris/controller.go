package tetris

import (
	"io"
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// State is the controller lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Settings are the fixed parameters of a session.
type Settings struct {
	Width        int           // grid columns including both walls
	Height       int           // grid rows
	MaxHeight    int           // a full cell on this row ends the game
	BaseInterval time.Duration // drop interval at session start
	Lookahead    int           // rows checked before a manual soft drop
	Policy       SpeedPolicy
}

// DefaultSettings returns the reference 20x30 configuration.
func DefaultSettings() Settings {
	base := 300 * time.Millisecond
	return Settings{
		Width:        20,
		Height:       30,
		MaxHeight:    4,
		BaseInterval: base,
		Lookahead:    2,
		Policy:       DefaultSpeedPolicy(base),
	}
}

// Options carries the collaborators of a Controller. Nil fields get inert
// defaults; a nil Scheduler means the caller drives Tick directly.
type Options struct {
	Audio     Audio
	Store     KeyValueStore
	Scheduler Scheduler
	Logger    *log.Logger
	Rand      *rand.Rand
}

// Controller owns one game session: the grid, the falling piece, the placed
// blocks, the score and the frame loop. It is not safe for concurrent use;
// frame callbacks and input handlers must run on one goroutine.
type Controller struct {
	settings Settings

	grid   *Grid
	piece  *Piece
	placed PlacedBlocks

	progress Progress
	best     int
	lines    int
	ticks    uint64
	state    State

	// Frame loop
	dropCounter  time.Duration
	lastFrame    time.Duration
	hasLastFrame bool
	frameID      core.FrameID
	framePending bool

	rng    *rand.Rand
	audio  Audio
	store  KeyValueStore
	sched  Scheduler
	logger *log.Logger
}

// NewController creates an idle controller and reads the stored best score.
func NewController(s Settings, opts Options) *Controller {
	c := &Controller{
		settings: s,
		grid:     NewGrid(s.Width, s.Height),
		progress: Progress{DropInterval: s.BaseInterval},
		rng:      opts.Rand,
		audio:    opts.Audio,
		store:    opts.Store,
		sched:    opts.Scheduler,
		logger:   opts.Logger,
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.audio == nil {
		c.audio = nopAudio{}
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	c.loadBest()
	return c
}

// Start begins a session from Idle. It is the same transition as Restart.
func (c *Controller) Start() {
	c.Restart()
}

// Restart discards the current session and begins a new one: fresh grid,
// no placed blocks, no piece, zero score, base drop interval.
func (c *Controller) Restart() {
	c.cancelFrame()

	c.grid.Reset(c.settings.Width, c.settings.Height)
	c.placed.Reset()
	c.piece = nil
	c.progress = Progress{DropInterval: c.settings.BaseInterval}
	c.lines = 0
	c.ticks = 0
	c.dropCounter = 0
	c.hasLastFrame = false
	c.loadBest()

	c.setState(StateRunning)
	c.audio.PlayLoop(TrackMusic)
	c.requestFrame()
}

// TogglePause switches between Running and Paused. Other states ignore it.
func (c *Controller) TogglePause() {
	switch c.state {
	case StateRunning:
		c.Pause()
	case StatePaused:
		c.Resume()
	}
}

// Pause stops the frame loop. The drop accumulator is kept.
func (c *Controller) Pause() {
	if c.state != StateRunning {
		return
	}
	c.cancelFrame()
	c.setState(StatePaused)
	c.audio.Stop(TrackMusic)
}

// Resume restarts the frame loop where Pause left it.
func (c *Controller) Resume() {
	if c.state != StatePaused {
		return
	}
	// Time spent paused must not count toward the next drop.
	c.hasLastFrame = false
	c.setState(StateRunning)
	c.audio.PlayLoop(TrackMusic)
	c.requestFrame()
}

// Handle applies one player intent and reports whether it changed anything.
// Moves are accepted only while Running with a falling piece that is not
// already resting; a blocked move is a silent no-op.
func (c *Controller) Handle(in Intent) bool {
	switch in {
	case IntentPause:
		before := c.state
		c.TogglePause()
		return c.state != before
	case IntentRestart:
		c.Restart()
		return true
	case IntentNone:
		return false
	}

	if c.state != StateRunning || c.piece == nil {
		return false
	}
	p := c.piece
	if p.CollidesWithGround(c.grid) || p.CollidesWithPlaced(c.grid) {
		return false
	}

	switch in {
	case IntentMoveLeft:
		if p.CollidesLeft(c.grid) {
			return false
		}
		p.MoveBy(DirLeft)
	case IntentMoveRight:
		if p.CollidesRight(c.grid) {
			return false
		}
		p.MoveBy(DirRight)
	case IntentSoftDrop:
		if p.PredictsCollisionBelow(c.grid, c.settings.Lookahead) {
			return false
		}
		p.MoveBy(DirDown)
	case IntentRotate:
		before := p.Cells()
		p.Rotate(c.grid)
		return !samePoints(before, p.cells)
	default:
		return false
	}
	return true
}

// frame is the scheduled callback. Logic runs only once the accumulated
// time reaches the drop interval; the accumulator then restarts at zero.
func (c *Controller) frame(now time.Duration) {
	c.framePending = false
	if c.state != StateRunning {
		return
	}

	if c.hasLastFrame && now > c.lastFrame {
		c.dropCounter += now - c.lastFrame
	}
	c.lastFrame = now
	c.hasLastFrame = true

	if c.dropCounter >= c.progress.DropInterval {
		c.Tick()
		c.dropCounter = 0
	}

	if c.state == StateRunning {
		c.requestFrame()
	}
}

// Tick runs one logic step: spawn if needed, clear full rows, then lock or
// drop the falling piece, then check for game over.
func (c *Controller) Tick() {
	if c.state != StateRunning {
		return
	}
	c.ticks++

	if c.piece == nil {
		c.spawn()
	}

	if cleared := c.ClearPass(); cleared > 0 {
		for range cleared {
			c.audio.PlayOnce(TrackLineClear)
		}
		c.logger.Debug("rows cleared", "rows", cleared, "score", c.progress.Score, "interval", c.progress.DropInterval)
	}

	if c.piece.CollidesWithGround(c.grid) || c.piece.CollidesWithPlaced(c.grid) {
		c.piece.Lock(c.grid, &c.placed)
		c.piece = nil
	} else {
		c.piece.ApplyGravityStep()
	}

	if c.toppedOut() {
		c.gameOver()
	}
}

// ClearPass scans rows bottom to top and removes every full interior row,
// collapsing the rows above it. Each row awards score through the speed
// policy. It returns the number of rows removed.
func (c *Controller) ClearPass() int {
	cleared := 0
	for y := c.grid.Height() - 1; y >= 0; {
		if !c.grid.RowFull(y) {
			y--
			continue
		}

		c.progress = c.settings.Policy.Award(c.progress)
		cleared++

		c.grid.ClearRow(y)
		c.placed.RemoveRow(y)
		c.grid.CollapseAbove(y)
		c.placed.ShiftAbove(y)
		// Row y now holds what was above it. Scanning it again, instead of
		// moving on to y-1, clears stacked full rows in the same pass.
	}

	if cleared > 0 {
		c.lines += cleared
		c.saveBest()
	}
	return cleared
}

func (c *Controller) spawn() {
	s := Shape(c.rng.Intn(shapeCount))
	p := Spawn(s, c.settings.Width)
	c.piece = &p
}

func (c *Controller) toppedOut() bool {
	return !c.grid.RowEmpty(c.settings.MaxHeight)
}

func (c *Controller) gameOver() {
	c.cancelFrame()
	c.setState(StateGameOver)
	c.audio.Stop(TrackMusic)
	c.audio.PlayOnce(TrackGameOver)
	c.logger.Info("game over", "score", c.progress.Score, "lines", c.lines, "best", c.best)
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	c.logger.Debug("state change", "from", c.state, "to", s)
	c.state = s
}

func (c *Controller) requestFrame() {
	if c.sched == nil || c.framePending {
		return
	}
	c.frameID = c.sched.RequestFrame(c.frame)
	c.framePending = true
}

func (c *Controller) cancelFrame() {
	if c.sched == nil || !c.framePending {
		return
	}
	c.sched.CancelFrame(c.frameID)
	c.framePending = false
}

func (c *Controller) loadBest() {
	if c.store == nil {
		return
	}
	value, ok, err := c.store.Get(BestScoreKey)
	if err != nil {
		c.logger.Warn("could not read best score", "error", err)
		return
	}
	if !ok {
		return
	}
	best, err := ParseScore(value)
	if err != nil {
		c.logger.Warn("ignoring malformed best score", "value", value, "error", err)
		return
	}
	c.best = best
}

func (c *Controller) saveBest() {
	if c.progress.Score <= c.best {
		return
	}
	c.best = c.progress.Score
	if c.store == nil {
		return
	}
	if err := c.store.Set(BestScoreKey, FormatScore(c.best)); err != nil {
		c.logger.Warn("could not save best score", "error", err)
	}
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Score returns the live score.
func (c *Controller) Score() int {
	return c.progress.Score
}

// BestScore returns the best score seen, stored or live.
func (c *Controller) BestScore() int {
	return c.best
}

// Lines returns the number of rows cleared this session.
func (c *Controller) Lines() int {
	return c.lines
}

// Ticks returns the number of logic ticks this session.
func (c *Controller) Ticks() uint64 {
	return c.ticks
}

// DropInterval returns the current time between automatic drops.
func (c *Controller) DropInterval() time.Duration {
	return c.progress.DropInterval
}

// Settings returns the session parameters.
func (c *Controller) Settings() Settings {
	return c.settings
}

// Grid returns the playfield. Callers must treat it as read-only.
func (c *Controller) Grid() *Grid {
	return c.grid
}

// Piece returns a copy of the falling piece, if any.
func (c *Controller) Piece() (Piece, bool) {
	if c.piece == nil {
		return Piece{}, false
	}
	return NewPiece(c.piece.cells, c.piece.color, c.piece.shape), true
}

// Placed returns the placed-block records. Callers must not modify them.
func (c *Controller) Placed() []PlacedBlock {
	return c.placed.Blocks()
}

// Render draws the current frame: background, walls, ceiling markers,
// placed blocks, the falling piece and the state messages.
func (c *Controller) Render(r Renderer) {
	w, h := c.grid.Width(), c.grid.Height()

	r.ClearFrame()
	r.DrawBackground()

	switch c.state {
	case StateIdle:
		r.DrawMessage(strconv.Itoa(c.best), 5, 0.5)
	default:
		r.DrawMessage(strconv.Itoa(c.progress.Score), 5, 0.5)
	}

	for y := 0; y < h; y++ {
		r.DrawCell(0, y, ColorRed)
		r.DrawCell(w-1, y, ColorRed)
	}
	r.DrawCell(0, c.settings.MaxHeight, ColorPink)
	r.DrawCell(w-1, c.settings.MaxHeight, ColorPink)

	for _, b := range c.placed.Blocks() {
		for _, p := range b.Cells {
			r.DrawCell(p.X, p.Y, b.Color)
		}
	}
	if c.piece != nil {
		for _, p := range c.piece.cells {
			r.DrawCell(p.X, p.Y, c.piece.color)
		}
	}

	switch c.state {
	case StateIdle:
		r.DrawMessage("Press Enter to Start", 2, 0.4)
	case StatePaused:
		r.DrawMessage("Pause", 3, 0.25)
	case StateGameOver:
		r.DrawMessage("Game Over", 3, 0.2)
		r.DrawMessage("Press Enter to Restart", 2, 0.3)
	}
}

func samePoints(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
