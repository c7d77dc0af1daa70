package tetris

// Direction is a translation applied to a whole piece.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirDown
)

func (d Direction) delta() (dx, dy int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 1
	}
}

// Piece is the falling group of cells. The third cell is the rotation pivot.
// A Piece owns its cell slice; NewPiece and Spawn never alias their input.
type Piece struct {
	cells []Point
	color Color
	shape Shape
}

// NewPiece builds a piece from a copy of cells.
func NewPiece(cells []Point, color Color, shape Shape) Piece {
	return Piece{
		cells: append([]Point(nil), cells...),
		color: color,
		shape: shape,
	}
}

// Cells returns a copy of the piece coordinates.
func (p Piece) Cells() []Point {
	return append([]Point(nil), p.cells...)
}

// Color returns the piece color.
func (p Piece) Color() Color {
	return p.color
}

// Shape returns the piece shape.
func (p Piece) Shape() Shape {
	return p.shape
}

// MoveBy shifts every cell one step in d. It does not check collisions;
// callers query the Collides* predicates first.
func (p *Piece) MoveBy(d Direction) {
	dx, dy := d.delta()
	for i := range p.cells {
		p.cells[i] = p.cells[i].Add(dx, dy)
	}
}

// ApplyGravityStep moves the piece down one row.
func (p *Piece) ApplyGravityStep() {
	p.MoveBy(DirDown)
}

// Rotate turns the piece 90 degrees about its pivot. If any rotated cell
// would leave the grid or land on a full cell the piece is left unchanged.
// There are no kick offsets.
func (p *Piece) Rotate(g *Grid) {
	if !p.shape.Rotates() || len(p.cells) < 3 {
		return
	}

	pivot := p.cells[2]
	rotated := make([]Point, len(p.cells))
	for i, c := range p.cells {
		n := Point{
			X: pivot.X - (c.Y - pivot.Y),
			Y: pivot.Y + (c.X - pivot.X),
		}
		if !g.InBounds(n.X, n.Y) || g.IsFull(n.X, n.Y) {
			return
		}
		rotated[i] = n
	}
	p.cells = rotated
}

// CollidesWithGround reports whether any cell sits on the bottom row.
func (p *Piece) CollidesWithGround(g *Grid) bool {
	for _, c := range p.cells {
		if c.Y == g.Height()-1 {
			return true
		}
	}
	return false
}

// CollidesWithPlaced reports whether any cell rests on a full cell.
func (p *Piece) CollidesWithPlaced(g *Grid) bool {
	return p.blockedBy(g, 0, 1)
}

// CollidesLeft reports whether any cell has a full cell to its left.
func (p *Piece) CollidesLeft(g *Grid) bool {
	return p.blockedBy(g, -1, 0)
}

// CollidesRight reports whether any cell has a full cell to its right.
func (p *Piece) CollidesRight(g *Grid) bool {
	return p.blockedBy(g, 1, 0)
}

// blockedBy reports whether any neighbor at (dx, dy) is full. Neighbors
// below the last row are left to CollidesWithGround; the side walls keep
// horizontal neighbors in bounds.
func (p *Piece) blockedBy(g *Grid, dx, dy int) bool {
	for _, c := range p.cells {
		n := c.Add(dx, dy)
		if n.Y >= g.Height() {
			continue
		}
		if !g.InBounds(n.X, n.Y) || g.IsFull(n.X, n.Y) {
			return true
		}
	}
	return false
}

// PredictsCollisionBelow reports whether, within lookahead rows under any
// cell, the grid is full or the cell would reach the bottom row. It gates
// the manual soft drop so it never overshoots into the ground or a block.
func (p *Piece) PredictsCollisionBelow(g *Grid, lookahead int) bool {
	for _, c := range p.cells {
		for i := 1; i <= lookahead; i++ {
			y := c.Y + i
			if y >= g.Height()-1 {
				return true
			}
			if g.IsFull(c.X, y) {
				return true
			}
		}
	}
	return false
}

// Lock turns the piece into placed state: its cells and color are appended
// to placed and marked full on the grid. The caller drops its reference to
// the piece afterwards.
func (p *Piece) Lock(g *Grid, placed *PlacedBlocks) {
	placed.Add(p.cells, p.color)
	g.Mark(p.cells)
}
