package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnCopiesTemplate(t *testing.T) {
	a := Spawn(ShapeT, 20)
	a.MoveBy(DirDown)
	b := Spawn(ShapeT, 20)

	assert.Equal(t, []Point{{X: 9, Y: 2}, {X: 8, Y: 3}, {X: 9, Y: 3}, {X: 10, Y: 3}}, b.Cells())
	assert.NotEqual(t, a.Cells(), b.Cells())
}

func TestNewPieceDoesNotAlias(t *testing.T) {
	src := []Point{{X: 4, Y: 1}, {X: 5, Y: 1}, {X: 4, Y: 2}, {X: 5, Y: 2}}
	p := NewPiece(src, ColorBlue, ShapeO)
	src[0] = Point{X: 99, Y: 99}

	assert.Equal(t, Point{X: 4, Y: 1}, p.Cells()[0])

	out := p.Cells()
	out[1] = Point{X: 42, Y: 42}
	assert.Equal(t, Point{X: 5, Y: 1}, p.Cells()[1])
}

func TestSpawnCatalog(t *testing.T) {
	tests := []struct {
		shape Shape
		color Color
		cells []Point
	}{
		{ShapeL, ColorOrange, []Point{{X: 8, Y: 4}, {X: 8, Y: 3}, {X: 9, Y: 3}, {X: 10, Y: 3}, {X: 11, Y: 3}}},
		{ShapeT, ColorYellow, []Point{{X: 9, Y: 2}, {X: 8, Y: 3}, {X: 9, Y: 3}, {X: 10, Y: 3}}},
		{ShapeO, ColorBlue, []Point{{X: 9, Y: 2}, {X: 10, Y: 2}, {X: 9, Y: 3}, {X: 10, Y: 3}}},
		{ShapeI, ColorGreen, []Point{{X: 8, Y: 2}, {X: 9, Y: 2}, {X: 10, Y: 2}, {X: 11, Y: 2}}},
		{ShapeJ, ColorPurple, []Point{{X: 8, Y: 2}, {X: 9, Y: 2}, {X: 10, Y: 2}, {X: 11, Y: 2}, {X: 11, Y: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			p := Spawn(tt.shape, 20)
			assert.Equal(t, tt.color, p.Color())
			assert.Equal(t, tt.shape, p.Shape())
			assert.Equal(t, tt.cells, p.Cells())
		})
	}
}

func TestSpawnCentersOnOtherWidths(t *testing.T) {
	for _, w := range []int{8, 9, 12, 20, 31} {
		minX, maxX, maxY := SpawnBounds(w)
		assert.Greater(t, minX, 0, "width %d", w)
		assert.Less(t, maxX, w-1, "width %d", w)
		assert.Equal(t, 4, maxY, "width %d", w)
	}
}

func TestMoveBy(t *testing.T) {
	p := NewPiece([]Point{{X: 5, Y: 5}, {X: 6, Y: 5}}, ColorGreen, ShapeI)

	p.MoveBy(DirLeft)
	assert.Equal(t, []Point{{X: 4, Y: 5}, {X: 5, Y: 5}}, p.Cells())
	p.MoveBy(DirRight)
	p.MoveBy(DirRight)
	assert.Equal(t, []Point{{X: 6, Y: 5}, {X: 7, Y: 5}}, p.Cells())
	p.ApplyGravityStep()
	assert.Equal(t, []Point{{X: 6, Y: 6}, {X: 7, Y: 6}}, p.Cells())
}

func TestRotateOIsNoOp(t *testing.T) {
	g := NewGrid(20, 30)
	cells := []Point{{X: 4, Y: 1}, {X: 5, Y: 1}, {X: 4, Y: 2}, {X: 5, Y: 2}}
	p := NewPiece(cells, ColorBlue, ShapeO)

	p.Rotate(g)
	assert.Equal(t, cells, p.Cells())

	// Still a no-op with neighbors packed in.
	g.Mark([]Point{{X: 3, Y: 1}, {X: 6, Y: 2}, {X: 4, Y: 3}})
	p.Rotate(g)
	assert.Equal(t, cells, p.Cells())
}

func TestRotateAboutThirdCell(t *testing.T) {
	g := NewGrid(20, 30)
	p := NewPiece([]Point{{X: 4, Y: 2}, {X: 5, Y: 2}, {X: 6, Y: 2}, {X: 5, Y: 3}}, ColorYellow, ShapeT)

	p.Rotate(g)

	assert.Equal(t, []Point{{X: 6, Y: 0}, {X: 6, Y: 1}, {X: 6, Y: 2}, {X: 5, Y: 1}}, p.Cells())
}

func TestRotateFourTimesRestores(t *testing.T) {
	g := NewGrid(20, 30)
	p := Spawn(ShapeL, 20)
	p.MoveBy(DirDown)
	p.MoveBy(DirDown)
	p.MoveBy(DirDown)
	start := p.Cells()

	for i := 0; i < 4; i++ {
		p.Rotate(g)
	}
	assert.Equal(t, start, p.Cells())
}

func TestRotateRejected(t *testing.T) {
	tests := []struct {
		name  string
		cells []Point
		shape Shape
		full  []Point
	}{
		{
			name:  "past left edge",
			cells: []Point{{X: 1, Y: 5}, {X: 1, Y: 6}, {X: 1, Y: 7}, {X: 1, Y: 8}, {X: 1, Y: 9}},
			shape: ShapeJ,
		},
		{
			name:  "past right edge",
			cells: []Point{{X: 18, Y: 5}, {X: 18, Y: 6}, {X: 18, Y: 7}, {X: 18, Y: 8}, {X: 18, Y: 9}},
			shape: ShapeJ,
		},
		{
			name:  "into left wall",
			cells: []Point{{X: 1, Y: 5}, {X: 1, Y: 6}, {X: 1, Y: 7}, {X: 1, Y: 8}},
			shape: ShapeI,
		},
		{
			name:  "above top row",
			cells: []Point{{X: 4, Y: 0}, {X: 5, Y: 0}, {X: 6, Y: 0}, {X: 5, Y: 1}},
			shape: ShapeT,
		},
		{
			name:  "onto occupied cell",
			cells: []Point{{X: 4, Y: 2}, {X: 5, Y: 2}, {X: 6, Y: 2}, {X: 5, Y: 3}},
			shape: ShapeT,
			full:  []Point{{X: 6, Y: 0}},
		},
		{
			name:  "past bottom row",
			cells: []Point{{X: 8, Y: 29}, {X: 9, Y: 29}, {X: 10, Y: 29}, {X: 11, Y: 29}},
			shape: ShapeI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(20, 30)
			g.Mark(tt.full)
			p := NewPiece(tt.cells, ColorGreen, tt.shape)

			p.Rotate(g)

			assert.Equal(t, tt.cells, p.Cells())
		})
	}
}

func TestSpawnedValueAccessors(t *testing.T) {
	assert.Equal(t, ShapeT, Spawn(ShapeT, 20).Shape())
	assert.NotEmpty(t, Spawn(ShapeT, 20).Cells())
	assert.Equal(t, ColorGreen, NewPiece(nil, ColorGreen, ShapeI).Color())
}

func TestCollisionPredicates(t *testing.T) {
	g := NewGrid(20, 30)

	// Against the walls.
	p := NewPiece([]Point{{X: 1, Y: 10}, {X: 2, Y: 10}}, ColorGreen, ShapeI)
	assert.True(t, p.CollidesLeft(g))
	assert.False(t, p.CollidesRight(g))
	assert.False(t, p.CollidesWithPlaced(g))
	assert.False(t, p.CollidesWithGround(g))

	p = NewPiece([]Point{{X: 17, Y: 10}, {X: 18, Y: 10}}, ColorGreen, ShapeI)
	assert.True(t, p.CollidesRight(g))
	assert.False(t, p.CollidesLeft(g))

	// Resting on a block.
	g.Mark([]Point{{X: 5, Y: 11}})
	p = NewPiece([]Point{{X: 5, Y: 10}, {X: 6, Y: 10}}, ColorGreen, ShapeI)
	assert.True(t, p.CollidesWithPlaced(g))

	// On the bottom row.
	p = NewPiece([]Point{{X: 5, Y: 29}}, ColorGreen, ShapeI)
	assert.True(t, p.CollidesWithGround(g))
	assert.False(t, p.CollidesWithPlaced(g))
}

func TestPredictsCollisionBelow(t *testing.T) {
	tests := []struct {
		name string
		y    int
		full []Point
		want bool
	}{
		{"open field", 10, nil, false},
		{"block two rows down", 10, []Point{{X: 5, Y: 12}}, true},
		{"block three rows down", 10, []Point{{X: 5, Y: 13}}, false},
		{"would reach bottom", 27, nil, true},
		{"two above bottom is still clear", 26, nil, false},
		{"on bottom row", 29, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(20, 30)
			g.Mark(tt.full)
			p := NewPiece([]Point{{X: 5, Y: tt.y}}, ColorGreen, ShapeI)
			assert.Equal(t, tt.want, p.PredictsCollisionBelow(g, 2))
		})
	}
}

func TestLock(t *testing.T) {
	g := NewGrid(20, 30)
	var placed PlacedBlocks
	p := NewPiece([]Point{{X: 3, Y: 29}, {X: 4, Y: 29}}, ColorOrange, ShapeI)

	p.Lock(g, &placed)

	require.Equal(t, 1, placed.Len())
	assert.Equal(t, ColorOrange, placed.Blocks()[0].Color)
	assert.Equal(t, []Point{{X: 3, Y: 29}, {X: 4, Y: 29}}, placed.Blocks()[0].Cells)
	assert.True(t, g.IsFull(3, 29))
	assert.True(t, g.IsFull(4, 29))
}

func TestPlacedBlocksRemoveAndShift(t *testing.T) {
	var placed PlacedBlocks
	placed.Add([]Point{{X: 2, Y: 9}, {X: 2, Y: 10}}, ColorGreen)
	placed.Add([]Point{{X: 5, Y: 10}}, ColorBlue)

	placed.RemoveRow(10)

	require.Equal(t, 1, placed.Len(), "record left with no cells is deleted")
	assert.Equal(t, []Point{{X: 2, Y: 9}}, placed.Blocks()[0].Cells)

	placed.ShiftAbove(10)
	assert.Equal(t, []Point{{X: 2, Y: 10}}, placed.Blocks()[0].Cells)
	assert.Equal(t, 1, placed.CellCount())

	placed.Reset()
	assert.Equal(t, 0, placed.Len())
}
