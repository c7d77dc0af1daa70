package tetris

// PlacedBlock is the remaining geometry of a locked piece.
type PlacedBlock struct {
	Cells []Point
	Color Color
}

// PlacedBlocks is the collection of locked pieces, kept for redraw and for
// removing cells as rows clear. Its cells mirror the Full interior cells of
// the grid.
type PlacedBlocks struct {
	blocks []PlacedBlock
}

// Add records a locked piece. cells is copied.
func (pb *PlacedBlocks) Add(cells []Point, c Color) {
	pb.blocks = append(pb.blocks, PlacedBlock{
		Cells: append([]Point(nil), cells...),
		Color: c,
	})
}

// Len returns the number of block records.
func (pb *PlacedBlocks) Len() int {
	return len(pb.blocks)
}

// Blocks returns the block records. The slice must not be modified.
func (pb *PlacedBlocks) Blocks() []PlacedBlock {
	return pb.blocks
}

// CellCount returns the number of cells across all records.
func (pb *PlacedBlocks) CellCount() int {
	n := 0
	for _, b := range pb.blocks {
		n += len(b.Cells)
	}
	return n
}

// RemoveRow drops every cell on row y and deletes records left empty.
func (pb *PlacedBlocks) RemoveRow(y int) {
	kept := pb.blocks[:0]
	for _, b := range pb.blocks {
		cells := b.Cells[:0]
		for _, c := range b.Cells {
			if c.Y != y {
				cells = append(cells, c)
			}
		}
		if len(cells) == 0 {
			continue
		}
		b.Cells = cells
		kept = append(kept, b)
	}
	clear(pb.blocks[len(kept):])
	pb.blocks = kept
}

// ShiftAbove moves every cell above row y down one row, matching
// Grid.CollapseAbove.
func (pb *PlacedBlocks) ShiftAbove(y int) {
	for i := range pb.blocks {
		for j, c := range pb.blocks[i].Cells {
			if c.Y < y {
				pb.blocks[i].Cells[j].Y++
			}
		}
	}
}

// Reset drops every record.
func (pb *PlacedBlocks) Reset() {
	pb.blocks = nil
}
