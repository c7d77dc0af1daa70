package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Shape is one of the five piece shapes.
type Shape int

const (
	ShapeI Shape = iota
	ShapeJ
	ShapeL
	ShapeO
	ShapeT

	shapeCount = 5
)

// String returns the single-letter shape tag.
func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	case ShapeO:
		return "O"
	case ShapeT:
		return "T"
	default:
		return "?"
	}
}

// Rotates reports whether rotation changes the shape at all.
func (s Shape) Rotates() bool {
	switch s {
	case ShapeO:
		return false
	case ShapeI, ShapeJ, ShapeL, ShapeT:
		return true
	default:
		return false
	}
}

// Color is a block color.
type Color int

const (
	ColorOrange Color = iota
	ColorYellow
	ColorBlue
	ColorGreen
	ColorPurple
	ColorRed  // walls
	ColorPink // ceiling markers
)

// String returns the color name.
func (c Color) String() string {
	switch c {
	case ColorOrange:
		return "orange"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorPurple:
		return "purple"
	case ColorRed:
		return "red"
	case ColorPink:
		return "pink"
	default:
		return "unknown"
	}
}

// ScreenColor maps a block color to a terminal color.
func (c Color) ScreenColor() core.Color {
	switch c {
	case ColorOrange:
		return core.ColorOrange
	case ColorYellow:
		return core.ColorBrightYellow
	case ColorBlue:
		return core.ColorBrightBlue
	case ColorGreen:
		return core.ColorBrightGreen
	case ColorPurple:
		return core.ColorPurple
	case ColorRed:
		return core.ColorRed
	case ColorPink:
		return core.ColorPink
	default:
		return core.ColorDefault
	}
}

// referenceWidth is the grid width the spawn table is laid out for.
const referenceWidth = 20

type template struct {
	color Color
	cells [5]core.Point
	n     int
}

// templates is indexed by Shape. Arrays keep the table immutable: every
// spawn copies the cells out by value.
var templates = [shapeCount]template{
	ShapeI: {color: ColorGreen, n: 4, cells: [5]core.Point{{X: 8, Y: 2}, {X: 9, Y: 2}, {X: 10, Y: 2}, {X: 11, Y: 2}}},
	ShapeJ: {color: ColorPurple, n: 5, cells: [5]core.Point{{X: 8, Y: 2}, {X: 9, Y: 2}, {X: 10, Y: 2}, {X: 11, Y: 2}, {X: 11, Y: 3}}},
	ShapeL: {color: ColorOrange, n: 5, cells: [5]core.Point{{X: 8, Y: 4}, {X: 8, Y: 3}, {X: 9, Y: 3}, {X: 10, Y: 3}, {X: 11, Y: 3}}},
	ShapeO: {color: ColorBlue, n: 4, cells: [5]core.Point{{X: 9, Y: 2}, {X: 10, Y: 2}, {X: 9, Y: 3}, {X: 10, Y: 3}}},
	ShapeT: {color: ColorYellow, n: 4, cells: [5]core.Point{{X: 9, Y: 2}, {X: 8, Y: 3}, {X: 9, Y: 3}, {X: 10, Y: 3}}},
}

// Spawn returns a fresh piece of the given shape at its spawn position,
// centered for a grid of the given width.
func Spawn(s Shape, gridWidth int) Piece {
	t := templates[s]
	dx := spawnOffset(gridWidth)
	cells := make([]core.Point, t.n)
	for i := 0; i < t.n; i++ {
		cells[i] = t.cells[i].Add(dx, 0)
	}
	return Piece{cells: cells, color: t.color, shape: s}
}

// SpawnBounds returns the extent of every spawn template on a grid of the
// given width: min/max column and max row.
func SpawnBounds(gridWidth int) (minX, maxX, maxY int) {
	minX, maxX = gridWidth, -1
	for s := Shape(0); s < shapeCount; s++ {
		for _, p := range Spawn(s, gridWidth).cells {
			minX = min(minX, p.X)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
	}
	return minX, maxX, maxY
}

func spawnOffset(gridWidth int) int {
	d := gridWidth - referenceWidth
	if d < 0 {
		return -((-d + 1) / 2)
	}
	return d / 2
}
