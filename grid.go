package wordsearchx

import (
	"math"
	"strconv"
)

// Coord is a (row, col) position on a grid.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String renders the coordinate as "(row,col)".
func (c Coord) String() string {
	return "(" + strconv.Itoa(c.Row) + "," + strconv.Itoa(c.Col) + ")"
}

// Step returns the coordinate k steps away from c along d.
func (c Coord) Step(d Direction, k int) Coord {
	return Coord{Row: c.Row + k*d.DRow, Col: c.Col + k*d.DCol}
}

// Direction is a unit step between adjacent cells.
type Direction struct {
	DRow int
	DCol int
}

// Directions lists the eight king-move offsets in search order.
// The order is part of the result contract: when a word can be read in
// several directions from the same start cell, the earliest entry wins.
var Directions = [8]Direction{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid is a rows x cols board of single-byte cells stored row-major.
type Grid struct {
	// Rows is the number of rows.
	Rows int
	// Cols is the number of columns.
	Cols int
	// Cells holds Rows*Cols bytes; cell (r, c) lives at Cells[r*Cols+c].
	Cells []byte
}

// NewGrid validates the extents against the cell buffer and returns a Grid.
func NewGrid(rows, cols int, cells []byte) (Grid, error) {
	g := Grid{Rows: rows, Cols: cols, Cells: cells}
	if err := g.Validate(); err != nil {
		return Grid{}, err
	}
	return g, nil
}

// Validate reports ErrInvalidGrid when the extents are negative or do not cover the buffer exactly.
func (g Grid) Validate() error {
	if g.Rows < 0 || g.Cols < 0 {
		return markf(ErrInvalidGrid, "grid extents must be non-negative, got %dx%d", g.Rows, g.Cols)
	}
	if g.Cols != 0 && g.Rows > math.MaxInt/g.Cols {
		return markf(ErrInvalidGrid, "grid %dx%d is too large", g.Rows, g.Cols)
	}
	if g.Rows*g.Cols != len(g.Cells) {
		return markf(ErrInvalidGrid, "grid %dx%d needs %d cells, got %d", g.Rows, g.Cols, g.Rows*g.Cols, len(g.Cells))
	}
	return nil
}

// InBounds reports whether (row, col) addresses a cell.
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// At returns the cell at (row, col). The caller must check InBounds first.
func (g Grid) At(row, col int) byte {
	return g.Cells[row*g.Cols+col]
}

// String renders the grid one row per line.
func (g Grid) String() string {
	if g.Cols == 0 {
		return ""
	}
	buf := make([]byte, 0, len(g.Cells)+g.Rows)
	for r := 0; r < g.Rows; r++ {
		if r > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, g.Cells[r*g.Cols:(r+1)*g.Cols]...)
	}
	return string(buf)
}
