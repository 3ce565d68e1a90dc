package game

import (
	"fmt"
	"strings"
)

// Board is a fixed-size grid of cells. Its dimensions never change after
// construction and wall cells are never overwritten by moves.
type Board struct {
	rows  int
	cols  int
	cells []Cell // row-major
}

// NewBoard copies shape into a new board. Ragged rows are padded with walls
// up to the width of the first row.
func NewBoard(shape [][]Cell) *Board {
	rows := len(shape)
	cols := 0
	if rows > 0 {
		cols = len(shape[0])
	}
	b := &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c < len(shape[r]) {
				b.cells[r*cols+c] = shape[r][c]
			} else {
				b.cells[r*cols+c] = Wall
			}
		}
	}
	return b
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// Size is the number of cells, which is also the size of the action space.
func (b *Board) Size() int { return len(b.cells) }

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// At returns the cell at (row, col). Out-of-bounds reads return Wall.
func (b *Board) At(row, col int) Cell {
	if !b.InBounds(row, col) {
		return Wall
	}
	return b.cells[row*b.cols+col]
}

// Set overwrites a cell. Walls and out-of-bounds coordinates are rejected.
func (b *Board) Set(row, col int, c Cell) error {
	if !b.InBounds(row, col) {
		return fmt.Errorf("cell (%d,%d) out of bounds", row, col)
	}
	if b.cells[row*b.cols+col] == Wall {
		return fmt.Errorf("cell (%d,%d) is a wall", row, col)
	}
	b.cells[row*b.cols+col] = c
	return nil
}

// Index maps a coordinate to its action index.
func (b *Board) Index(row, col int) int {
	return row*b.cols + col
}

// Coord maps an action index back to a coordinate.
func (b *Board) Coord(index int) (row, col int) {
	return index / b.cols, index % b.cols
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		rows:  b.rows,
		cols:  b.cols,
		cells: cells,
	}
}

// Count returns the number of disks owned by p.
func (b *Board) Count(p Player) int {
	n := 0
	for _, c := range b.cells {
		if c.OwnedBy(p) {
			n++
		}
	}
	return n
}

// Occupied returns the number of disks on the board.
func (b *Board) Occupied() int {
	n := 0
	for _, c := range b.cells {
		if c.IsOwned() {
			n++
		}
	}
	return n
}

// Playable returns the number of non-wall cells.
func (b *Board) Playable() int {
	n := 0
	for _, c := range b.cells {
		if c != Wall {
			n++
		}
	}
	return n
}

// Equal reports whether both boards have the same dimensions and contents.
func (b *Board) Equal(other *Board) bool {
	if b.rows != other.rows || b.cols != other.cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the board with row and column indices.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for c := 0; c < b.cols; c++ {
		fmt.Fprintf(&sb, "%3d", c)
	}
	sb.WriteByte('\n')
	for r := 0; r < b.rows; r++ {
		fmt.Fprintf(&sb, "%3d", r)
		for c := 0; c < b.cols; c++ {
			fmt.Fprintf(&sb, "%3s", b.At(r, c))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
