package tetris

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type memStore struct {
	values map[string]string
	getErr error
	setErr error
	sets   int
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (s *memStore) Get(key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memStore) Set(key, value string) error {
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

type recordingAudio struct {
	calls []string
}

func (a *recordingAudio) PlayLoop(t Track) { a.calls = append(a.calls, "loop:"+t.String()) }
func (a *recordingAudio) PlayOnce(t Track) { a.calls = append(a.calls, "once:"+t.String()) }
func (a *recordingAudio) Stop(t Track)     { a.calls = append(a.calls, "stop:"+t.String()) }

type harness struct {
	ctrl   *Controller
	frames *core.FrameQueue
	audio  *recordingAudio
	store  *memStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		frames: core.NewFrameQueue(),
		audio:  &recordingAudio{},
		store:  newMemStore(),
	}
	h.ctrl = NewController(DefaultSettings(), Options{
		Audio:     h.audio,
		Store:     h.store,
		Scheduler: h.frames,
		Rand:      rand.New(rand.NewSource(1)),
	})
	return h
}

// place puts a piece of the given shape at its spawn position.
func (h *harness) place(s Shape) {
	p := Spawn(s, h.ctrl.settings.Width)
	h.ctrl.piece = &p
}

func TestControllerStartsIdle(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, StateIdle, h.ctrl.State())
	assert.Equal(t, 0, h.frames.Pending())
	assert.False(t, h.ctrl.Handle(IntentMoveLeft))
	assert.False(t, h.ctrl.Handle(IntentPause))
	assert.Equal(t, StateIdle, h.ctrl.State())
}

func TestStartSchedulesLoop(t *testing.T) {
	h := newHarness(t)

	h.ctrl.Start()

	assert.Equal(t, StateRunning, h.ctrl.State())
	assert.Equal(t, 1, h.frames.Pending())
	assert.Equal(t, []string{"loop:music"}, h.audio.calls)
	assert.Equal(t, 300*time.Millisecond, h.ctrl.DropInterval())
}

func TestFrameLoopTicksOnDropInterval(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()

	h.frames.Fire(0)
	assert.Equal(t, uint64(0), h.ctrl.Ticks())
	h.frames.Fire(150 * time.Millisecond)
	assert.Equal(t, uint64(0), h.ctrl.Ticks())
	h.frames.Fire(300 * time.Millisecond)
	assert.Equal(t, uint64(1), h.ctrl.Ticks())

	// The accumulator restarts at zero after a tick.
	h.frames.Fire(500 * time.Millisecond)
	assert.Equal(t, uint64(1), h.ctrl.Ticks())
	h.frames.Fire(600 * time.Millisecond)
	assert.Equal(t, uint64(2), h.ctrl.Ticks())

	assert.Equal(t, 1, h.frames.Pending(), "loop keeps exactly one request in flight")
}

func TestPauseCancelsFrameAndKeepsAccumulator(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()
	h.frames.Fire(0)
	h.frames.Fire(200 * time.Millisecond)

	require.True(t, h.ctrl.Handle(IntentPause))
	assert.Equal(t, StatePaused, h.ctrl.State())
	assert.Equal(t, 0, h.frames.Pending())

	// Moves are ignored while paused.
	h.place(ShapeT)
	assert.False(t, h.ctrl.Handle(IntentMoveLeft))

	require.True(t, h.ctrl.Handle(IntentPause))
	assert.Equal(t, StateRunning, h.ctrl.State())
	require.Equal(t, 1, h.frames.Pending())

	// A long pause adds nothing; the 200ms already accumulated still counts.
	h.frames.Fire(10 * time.Second)
	assert.Equal(t, uint64(0), h.ctrl.Ticks())
	h.frames.Fire(10*time.Second + 100*time.Millisecond)
	assert.Equal(t, uint64(1), h.ctrl.Ticks())

	assert.Equal(t, []string{"loop:music", "stop:music", "loop:music"}, h.audio.calls)
}

func TestTickSpawnsThenFalls(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()

	_, ok := h.ctrl.Piece()
	require.False(t, ok)

	h.ctrl.Tick()
	p, ok := h.ctrl.Piece()
	require.True(t, ok)
	sp := Spawn(p.Shape(), 20)
	spawn := sp.Cells()
	for i, c := range p.Cells() {
		assert.Equal(t, spawn[i].Add(0, 1), c)
	}
}

func TestTickLocksOnGround(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()
	p := NewPiece([]Point{{X: 3, Y: 29}, {X: 4, Y: 29}}, ColorGreen, ShapeI)
	h.ctrl.piece = &p

	h.ctrl.Tick()

	_, ok := h.ctrl.Piece()
	assert.False(t, ok, "locked piece is released")
	assert.True(t, h.ctrl.Grid().IsFull(3, 29))
	assert.Len(t, h.ctrl.Placed(), 1)
	assert.Equal(t, StateRunning, h.ctrl.State())
}

func TestHandleMoves(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()
	h.place(ShapeT)

	require.True(t, h.ctrl.Handle(IntentMoveLeft))
	p, _ := h.ctrl.Piece()
	assert.Equal(t, Point{X: 8, Y: 2}, p.Cells()[0])

	require.True(t, h.ctrl.Handle(IntentMoveRight))
	require.True(t, h.ctrl.Handle(IntentMoveRight))
	p, _ = h.ctrl.Piece()
	assert.Equal(t, Point{X: 10, Y: 2}, p.Cells()[0])

	require.True(t, h.ctrl.Handle(IntentSoftDrop))
	p, _ = h.ctrl.Piece()
	assert.Equal(t, Point{X: 10, Y: 3}, p.Cells()[0])

	require.True(t, h.ctrl.Handle(IntentRotate))
	assert.False(t, h.ctrl.Handle(IntentNone))
}

func TestHandleStopsAtWalls(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()
	h.place(ShapeI)

	moves := 0
	for h.ctrl.Handle(IntentMoveLeft) {
		moves++
		require.Less(t, moves, 20)
	}
	p, _ := h.ctrl.Piece()
	assert.Equal(t, 7, moves)
	assert.Equal(t, 1, p.Cells()[0].X)
	assertWalls(t, h.ctrl.Grid())
}

func TestHandleRejectsRestingPiece(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()
	p := NewPiece([]Point{{X: 5, Y: 29}, {X: 6, Y: 29}}, ColorGreen, ShapeI)
	h.ctrl.piece = &p

	assert.False(t, h.ctrl.Handle(IntentMoveLeft))
	assert.False(t, h.ctrl.Handle(IntentRotate))
	assert.False(t, h.ctrl.Handle(IntentSoftDrop))
}

func TestSoftDropStopsShortOfGround(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()
	p := NewPiece([]Point{{X: 5, Y: 26}}, ColorGreen, ShapeI)
	h.ctrl.piece = &p

	require.True(t, h.ctrl.Handle(IntentSoftDrop))
	assert.False(t, h.ctrl.Handle(IntentSoftDrop))
	got, _ := h.ctrl.Piece()
	assert.Equal(t, []Point{{X: 5, Y: 27}}, got.Cells())
}

func TestClearPassFullRow(t *testing.T) {
	h := newHarness(t)
	fillRow(h.ctrl.Grid(), 10)

	n := h.ctrl.ClearPass()

	assert.Equal(t, 1, n)
	assert.True(t, h.ctrl.Grid().RowEmpty(10))
	assert.Equal(t, 100, h.ctrl.Score())
	assertWalls(t, h.ctrl.Grid())
}

func TestClearPassCollapsesAbove(t *testing.T) {
	h := newHarness(t)
	g := h.ctrl.Grid()
	fillRow(g, 10)
	g.Mark([]Point{{X: 5, Y: 9}})

	h.ctrl.ClearPass()

	assert.True(t, g.IsFull(5, 10))
	assert.False(t, g.IsFull(5, 9))
	assert.Equal(t, 100, h.ctrl.Score())
	assertWalls(t, g)
}

func TestClearPassLeavesPartialRow(t *testing.T) {
	h := newHarness(t)
	g := h.ctrl.Grid()
	fillRow(g, 20)
	g.ClearRow(20)
	for x := 1; x < g.Width()-2; x++ {
		g.Mark([]Point{{X: x, Y: 20}})
	}
	before := g.Rows()

	assert.Equal(t, 0, h.ctrl.ClearPass())
	assert.Equal(t, before, g.Rows())
	assert.Equal(t, 0, h.ctrl.Score())
	assert.Equal(t, 0, h.store.sets)
}

func TestClearPassAdjacentRows(t *testing.T) {
	h := newHarness(t)
	g := h.ctrl.Grid()
	fillRow(g, 28)
	fillRow(g, 29)
	g.Mark([]Point{{X: 3, Y: 27}})

	assert.Equal(t, 2, h.ctrl.ClearPass())
	assert.Equal(t, 200, h.ctrl.Score())
	assert.Equal(t, 2, h.ctrl.Lines())
	assert.True(t, g.IsFull(3, 29))
	assert.True(t, g.RowEmpty(28))
	assertWalls(t, g)
}

func TestClearPassUpdatesPlacedBlocks(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()

	// A vertical bar standing in the last gap of row 29.
	g := h.ctrl.Grid()
	for x := 1; x < g.Width()-2; x++ {
		g.Mark([]Point{{X: x, Y: 29}})
	}
	p := NewPiece([]Point{{X: 18, Y: 27}, {X: 18, Y: 28}, {X: 18, Y: 29}}, ColorGreen, ShapeI)
	p.Lock(g, &h.ctrl.placed)

	require.Equal(t, 1, h.ctrl.ClearPass())

	blocks := h.ctrl.Placed()
	require.Len(t, blocks, 1)
	assert.Equal(t, []Point{{X: 18, Y: 28}, {X: 18, Y: 29}}, blocks[0].Cells)
	assert.True(t, g.IsFull(18, 29))
	assert.False(t, g.IsFull(18, 27))
}

func TestClearPassPlaysSoundPerRow(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()
	fillRow(h.ctrl.Grid(), 29)
	fillRow(h.ctrl.Grid(), 28)

	h.ctrl.Tick()

	assert.Equal(t, []string{"loop:music", "once:line-clear", "once:line-clear"}, h.audio.calls)
}

func TestClearPassNoSoundWithoutRows(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()

	h.ctrl.Tick()

	assert.Equal(t, []string{"loop:music"}, h.audio.calls)
}

func TestGameOverAtCeiling(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()
	h.ctrl.Grid().Mark([]Point{{X: 1, Y: 4}})

	h.frames.Fire(0)
	h.frames.Fire(300 * time.Millisecond)

	assert.Equal(t, StateGameOver, h.ctrl.State())
	assert.Equal(t, 0, h.frames.Pending(), "game over cancels the loop")
	assert.Equal(t, []string{"loop:music", "stop:music", "once:game-over"}, h.audio.calls)

	// Terminal until restart.
	assert.False(t, h.ctrl.Handle(IntentPause))
	assert.False(t, h.ctrl.Handle(IntentMoveLeft))
	h.ctrl.Tick()
	assert.Equal(t, StateGameOver, h.ctrl.State())
}

func TestRestartResetsSession(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()
	fillRow(h.ctrl.Grid(), 29)
	for i := 0; i < 5; i++ {
		fillRow(h.ctrl.Grid(), 29)
		h.ctrl.ClearPass()
	}
	require.Equal(t, 500, h.ctrl.Score())
	require.Less(t, h.ctrl.DropInterval(), 300*time.Millisecond)
	h.ctrl.Grid().Mark([]Point{{X: 1, Y: 4}})
	h.ctrl.Tick()
	require.Equal(t, StateGameOver, h.ctrl.State())

	require.True(t, h.ctrl.Handle(IntentRestart))

	assert.Equal(t, StateRunning, h.ctrl.State())
	assert.Equal(t, 0, h.ctrl.Score())
	assert.Equal(t, 500, h.ctrl.BestScore())
	assert.Equal(t, 0, h.ctrl.Lines())
	assert.Equal(t, 300*time.Millisecond, h.ctrl.DropInterval())
	assert.Empty(t, h.ctrl.Placed())
	assert.True(t, h.ctrl.Grid().RowEmpty(4))
	_, ok := h.ctrl.Piece()
	assert.False(t, ok)
	assert.Equal(t, 1, h.frames.Pending())
}

func TestRestartWhileRunningCancelsPendingFrame(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()
	require.Equal(t, 1, h.frames.Pending())

	h.ctrl.Restart()

	assert.Equal(t, 1, h.frames.Pending())
}

func TestBestScorePersistence(t *testing.T) {
	h := newHarness(t)
	h.store.values[BestScoreKey] = "150"
	h.ctrl = NewController(DefaultSettings(), Options{Store: h.store, Scheduler: h.frames})

	assert.Equal(t, 150, h.ctrl.BestScore())

	h.ctrl.Start()
	fillRow(h.ctrl.Grid(), 29)
	h.ctrl.ClearPass()
	assert.Equal(t, 0, h.store.sets, "100 does not beat 150")

	fillRow(h.ctrl.Grid(), 29)
	h.ctrl.ClearPass()
	assert.Equal(t, "200", h.store.values[BestScoreKey])
	assert.Equal(t, 200, h.ctrl.BestScore())
}

func TestStoreFailuresAreSwallowed(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("disk gone")
	store.setErr = errors.New("disk gone")
	c := NewController(DefaultSettings(), Options{Store: store})

	assert.Equal(t, 0, c.BestScore())
	c.Start()
	fillRow(c.Grid(), 29)
	assert.Equal(t, 1, c.ClearPass())
	assert.Equal(t, 100, c.BestScore())
	assert.Equal(t, 1, store.sets)
}

func TestMalformedBestScoreIgnored(t *testing.T) {
	store := newMemStore()
	store.values[BestScoreKey] = "not-a-number"

	c := NewController(DefaultSettings(), Options{Store: store})

	assert.Equal(t, 0, c.BestScore())
}

func TestSameSeedSameGame(t *testing.T) {
	run := func() Snapshot {
		c := NewController(DefaultSettings(), Options{Rand: rand.New(rand.NewSource(7))})
		c.Start()
		for i := 0; i < 400; i++ {
			switch i % 7 {
			case 1:
				c.Handle(IntentMoveLeft)
			case 3:
				c.Handle(IntentRotate)
			case 5:
				c.Handle(IntentMoveRight)
			}
			c.Tick()
		}
		return c.Snapshot()
	}

	assert.Equal(t, run(), run())
}

func TestGridWallsSurviveLongGame(t *testing.T) {
	c := NewController(DefaultSettings(), Options{Rand: rand.New(rand.NewSource(99))})
	c.Start()
	for i := 0; i < 2000 && c.State() == StateRunning; i++ {
		if i%3 == 0 {
			c.Handle(IntentMoveLeft)
		}
		c.Tick()
		assertWalls(t, c.Grid())
	}
}

type recordingRenderer struct {
	cleared  int
	bg       int
	cells    map[Point]Color
	messages []string
}

func (r *recordingRenderer) ClearFrame()     { r.cleared++ }
func (r *recordingRenderer) DrawBackground() { r.bg++ }
func (r *recordingRenderer) DrawCell(x, y int, c Color) {
	if r.cells == nil {
		r.cells = make(map[Point]Color)
	}
	r.cells[Point{X: x, Y: y}] = c
}
func (r *recordingRenderer) DrawMessage(text string, size int, frac float64) {
	r.messages = append(r.messages, text)
}

func TestRenderFrames(t *testing.T) {
	h := newHarness(t)

	r := &recordingRenderer{}
	h.ctrl.Render(r)
	assert.Equal(t, 1, r.cleared)
	assert.Equal(t, 1, r.bg)
	assert.Equal(t, ColorRed, r.cells[Point{X: 0, Y: 0}])
	assert.Equal(t, ColorRed, r.cells[Point{X: 19, Y: 29}])
	assert.Equal(t, ColorPink, r.cells[Point{X: 0, Y: 4}])
	assert.Equal(t, ColorPink, r.cells[Point{X: 19, Y: 4}])
	assert.Equal(t, []string{"0", "Press Enter to Start"}, r.messages)

	h.ctrl.Start()
	h.place(ShapeO)
	r = &recordingRenderer{}
	h.ctrl.Render(r)
	assert.Equal(t, ColorBlue, r.cells[Point{X: 9, Y: 2}])
	assert.Equal(t, []string{"0"}, r.messages)

	h.ctrl.Pause()
	r = &recordingRenderer{}
	h.ctrl.Render(r)
	assert.Equal(t, []string{"0", "Pause"}, r.messages)
}
