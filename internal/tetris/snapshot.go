package tetris

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick         uint64
	State        State
	Score        int
	Best         int
	Lines        int
	DropInterval int64 // milliseconds
	Piece        []Point
	PieceShape   Shape
	Board        []string // one row per grid row, '#' full, '.' empty
}

// Snapshot returns the current controller snapshot for determinism verification.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Tick:         c.ticks,
		State:        c.state,
		Score:        c.progress.Score,
		Best:         c.best,
		Lines:        c.lines,
		DropInterval: c.progress.DropInterval.Milliseconds(),
		Board:        c.grid.Rows(),
	}
	if c.piece != nil {
		s.Piece = c.piece.Cells()
		s.PieceShape = c.piece.shape
	}
	return s
}

// Snapshot returns the snapshot of the underlying controller.
func (g *Game) Snapshot() Snapshot {
	if g.ctrl == nil {
		return Snapshot{}
	}
	return g.ctrl.Snapshot()
}
