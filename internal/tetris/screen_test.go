package tetris

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestScreenRendererCells(t *testing.T) {
	screen := core.NewScreen(30, 10)
	r := NewScreenRenderer(screen, core.Point{X: 2, Y: 1}, 10, 8, 2)

	assert.Equal(t, core.NewRect(2, 1, 20, 8), r.Bounds())

	r.DrawBackground()
	assert.Equal(t, backgroundRune, screen.Get(2, 1))
	assert.Equal(t, ' ', screen.Get(3, 1))

	r.DrawCell(3, 2, ColorGreen)
	assert.Equal(t, core.Cell{Rune: blockRune, Color: core.ColorBrightGreen}, screen.GetCell(8, 3))
	assert.Equal(t, core.Cell{Rune: blockRune, Color: core.ColorBrightGreen}, screen.GetCell(9, 3))

	r.ClearFrame()
	assert.Equal(t, ' ', screen.Get(8, 3))
}

func TestScreenRendererMessages(t *testing.T) {
	screen := core.NewScreen(40, 20)
	r := NewScreenRenderer(screen, core.Point{X: 0, Y: 0}, 20, 20, 2)

	r.DrawMessage("1200", 5, 0.5)
	assert.Contains(t, screen.Row(10), "1 2 0 0")

	r.DrawMessage("Pause", 3, 0.25)
	assert.Contains(t, screen.Row(5), "Pause")
	assert.Contains(t, screen.Row(4), "┌")
	assert.Contains(t, screen.Row(6), "┘")

	r.DrawMessage("Press Enter", 2, 0.8)
	row := screen.Row(16)
	assert.Contains(t, row, "Press Enter")
	assert.Equal(t, 14, strings.Index(row, "Press Enter"))
}

func TestSpaced(t *testing.T) {
	assert.Equal(t, "1 0 0", spaced("100"))
	assert.Equal(t, "", spaced(""))
}
