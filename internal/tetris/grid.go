// Package tetris implements the falling-block game engine: the grid, pieces,
// line clearing, scoring and the game controller state machine.
//
// The engine owns no goroutines and does no I/O of its own. Drawing, sound,
// persistence and frame scheduling are reached through the small interfaces
// in ports.go.
package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Point is a grid cell coordinate. Row 0 is the top; gravity increases Y.
type Point = core.Point

// CellState is the occupancy of one grid cell.
type CellState uint8

const (
	Empty CellState = iota
	Full
)

// Grid is the playfield occupancy map. Columns 0 and Width()-1 are walls and
// stay Full for the lifetime of the grid.
type Grid struct {
	width  int
	height int
	cells  [][]CellState // [y][x]
}

// NewGrid creates an empty grid with its side walls set.
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Reset(width, height)
	return g
}

// Reset reinitializes every cell to Empty except the wall columns.
func (g *Grid) Reset(width, height int) {
	g.width = width
	g.height = height
	g.cells = make([][]CellState, height)
	for y := range g.cells {
		row := make([]CellState, width)
		row[0] = Full
		row[width-1] = Full
		g.cells[y] = row
	}
}

// Width returns the number of columns including the walls.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsFull reports whether the cell is occupied. The caller must keep (x, y)
// in bounds; out-of-range access panics.
func (g *Grid) IsFull(x, y int) bool {
	return g.cells[y][x] == Full
}

// Mark sets each listed cell to Full.
func (g *Grid) Mark(cells []Point) {
	for _, p := range cells {
		g.cells[p.Y][p.X] = Full
	}
}

// RowFull reports whether every interior cell of row y is occupied.
func (g *Grid) RowFull(y int) bool {
	for x := 1; x < g.width-1; x++ {
		if g.cells[y][x] != Full {
			return false
		}
	}
	return true
}

// RowEmpty reports whether no interior cell of row y is occupied.
func (g *Grid) RowEmpty(y int) bool {
	for x := 1; x < g.width-1; x++ {
		if g.cells[y][x] == Full {
			return false
		}
	}
	return true
}

// ClearRow empties every interior cell of row y. Walls are untouched.
func (g *Grid) ClearRow(y int) {
	for x := 1; x < g.width-1; x++ {
		g.cells[y][x] = Empty
	}
}

// CollapseAbove moves every occupied interior cell above row y down by one.
// Rows are processed from y-1 upward so each cell moves exactly once.
// Row y is expected to have just been cleared.
func (g *Grid) CollapseAbove(y int) {
	for above := y - 1; above >= 0; above-- {
		for x := 1; x < g.width-1; x++ {
			if g.cells[above][x] == Full {
				g.cells[above][x] = Empty
				g.cells[above+1][x] = Full
			}
		}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([][]CellState, g.height)}
	for y, row := range g.cells {
		c.cells[y] = append([]CellState(nil), row...)
	}
	return c
}

// Rows renders the grid as text, '#' for full and '.' for empty.
func (g *Grid) Rows() []string {
	out := make([]string, g.height)
	buf := make([]byte, g.width)
	for y, row := range g.cells {
		for x, c := range row {
			if c == Full {
				buf[x] = '#'
			} else {
				buf[x] = '.'
			}
		}
		out[y] = string(buf)
	}
	return out
}
