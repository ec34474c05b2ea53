// Package board converts host-side puzzle representations into the flat
// forms the solver works on, and allocates result buffers for it.
package board

import (
	"github.com/cockroachdb/errors"
	"github.com/letmevibethatforyou/wordsearchx"
)

// FromCells builds a grid from a 2-D array of single-character strings, the
// shape in which most UI toolkits hand over a board. Every row must have the
// same length and every cell must hold exactly one byte.
func FromCells(cells [][]string) (wordsearchx.Grid, error) {
	rows := len(cells)
	if rows == 0 {
		return wordsearchx.Grid{}, nil
	}
	cols := len(cells[0])

	flat := make([]byte, 0, rows*cols)
	for r, row := range cells {
		if len(row) != cols {
			return wordsearchx.Grid{}, errors.Mark(
				errors.Newf("row %d has %d cells, expected %d", r, len(row), cols),
				wordsearchx.ErrInvalidPuzzle,
			)
		}
		for c, cell := range row {
			if len(cell) != 1 {
				return wordsearchx.Grid{}, errors.Mark(
					errors.Newf("cell (%d,%d) holds %q, expected a single character", r, c, cell),
					wordsearchx.ErrInvalidPuzzle,
				)
			}
			flat = append(flat, cell[0])
		}
	}

	return wordsearchx.NewGrid(rows, cols, flat)
}

// FromRows builds a grid from one string per row.
func FromRows(rows []string) (wordsearchx.Grid, error) {
	if len(rows) == 0 {
		return wordsearchx.Grid{}, nil
	}
	cols := len(rows[0])

	flat := make([]byte, 0, len(rows)*cols)
	for r, row := range rows {
		if len(row) != cols {
			return wordsearchx.Grid{}, errors.Mark(
				errors.Newf("row %d is %d characters wide, expected %d", r, len(row), cols),
				wordsearchx.ErrInvalidPuzzle,
			)
		}
		flat = append(flat, row...)
	}

	return wordsearchx.NewGrid(len(rows), cols, flat)
}

// Rows renders a grid back into one string per row.
func Rows(g wordsearchx.Grid) []string {
	rows := make([]string, g.Rows)
	for r := range rows {
		rows[r] = string(g.Cells[r*g.Cols : (r+1)*g.Cols])
	}
	return rows
}

// AllocateResults returns one coordinate buffer per word, each exactly
// len(word) long and capped so that appending to one can never spill into
// its neighbour. All buffers share a single backing array.
func AllocateResults(words []string) [][]wordsearchx.Coord {
	total := 0
	for _, w := range words {
		total += len(w)
	}

	slab := make([]wordsearchx.Coord, total)
	results := make([][]wordsearchx.Coord, len(words))
	off := 0
	for i, w := range words {
		end := off + len(w)
		results[i] = slab[off:end:end]
		off = end
	}
	return results
}
