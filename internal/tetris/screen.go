package tetris

import (
	"math"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Block glyphs.
const (
	blockRune      = '█'
	backgroundRune = '·'
)

// ScreenRenderer draws the playfield into a region of a core.Screen. Each
// grid cell is CellWidth characters wide and one row tall.
type ScreenRenderer struct {
	dst       *core.Screen
	origin    core.Point
	cols      int
	rows      int
	cellWidth int
}

// NewScreenRenderer creates a renderer for a cols x rows grid whose top-left
// cell lands on origin.
func NewScreenRenderer(dst *core.Screen, origin core.Point, cols, rows, cellWidth int) *ScreenRenderer {
	return &ScreenRenderer{
		dst:       dst,
		origin:    origin,
		cols:      cols,
		rows:      rows,
		cellWidth: max(cellWidth, 1),
	}
}

// Bounds returns the screen rectangle covered by the field.
func (r *ScreenRenderer) Bounds() core.Rect {
	return core.NewRect(r.origin.X, r.origin.Y, r.cols*r.cellWidth, r.rows)
}

// ClearFrame blanks the field region.
func (r *ScreenRenderer) ClearFrame() {
	r.dst.DrawRect(r.Bounds(), ' ')
}

// DrawBackground dots every cell so the empty field reads as a grid.
func (r *ScreenRenderer) DrawBackground() {
	for y := 0; y < r.rows; y++ {
		for x := 0; x < r.cols; x++ {
			sx, sy := r.cellOrigin(x, y)
			r.dst.SetCell(sx, sy, backgroundRune, core.ColorGray)
		}
	}
}

// DrawCell fills one grid cell with a solid block.
func (r *ScreenRenderer) DrawCell(x, y int, c Color) {
	sx, sy := r.cellOrigin(x, y)
	for i := 0; i < r.cellWidth; i++ {
		r.dst.SetCell(sx+i, sy, blockRune, c.ScreenColor())
	}
}

// DrawMessage centers text across the field. Size picks the emphasis:
// up to 2 is plain, 3 and 4 are boxed, 5 and above are letter-spaced.
func (r *ScreenRenderer) DrawMessage(text string, size int, verticalFraction float64) {
	b := r.Bounds()
	y := b.Y + int(math.Round(verticalFraction*float64(r.rows)))

	if size >= 5 {
		text = spaced(text)
	}
	w := len([]rune(text))
	x := b.X + (b.W-w)/2

	switch {
	case size >= 5:
		r.dst.DrawTextColored(x, y, text, core.ColorBrightWhite)
	case size >= 3:
		r.dst.DrawRect(core.NewRect(x-2, y-1, w+4, 3), ' ')
		r.dst.DrawBox(core.NewRect(x-2, y-1, w+4, 3))
		r.dst.DrawTextColored(x, y, text, core.ColorBrightWhite)
	default:
		r.dst.DrawTextColored(x, y, text, core.ColorWhite)
	}
}

func (r *ScreenRenderer) cellOrigin(x, y int) (int, int) {
	return r.origin.X + x*r.cellWidth, r.origin.Y + y
}

func spaced(s string) string {
	runes := []rune(s)
	parts := make([]string, len(runes))
	for i, c := range runes {
		parts[i] = string(c)
	}
	return strings.Join(parts, " ")
}
